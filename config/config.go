package config

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	defaultBucket    = "wasi-s3-dm"
	defaultKey       = "data.csv"
	defaultGroupBy   = "Country"
	defaultAlias     = "Count"
	defaultFormat    = FormatTable
	envPrefixSpin    = "SPIN_CONFIG_"
	envSessionToken  = envPrefixSpin + "AWS_SESSION_TOKEN"
	envAccessKeyID   = envPrefixSpin + "AWS_ACCESS_KEY_ID"
	envSecretAccess  = envPrefixSpin + "AWS_SECRET_ACCESS_KEY"
	envSpinBucket    = envPrefixSpin + "S3_BUCKET"
	envSpinKey       = envPrefixSpin + "S3_KEY"
	envSpinRegion    = envPrefixSpin + "AWS_REGION"
	envBucket        = "S3_BUCKET"
	envKey           = "S3_KEY"
	envRegion        = "AWS_REGION"
	envEndpoint      = "S3_ENDPOINT"
	envGroupByColumn = "GROUP_BY"
)

// Output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

type Config struct {
	S3      *S3      `yaml:"s3,omitempty" json:"s3,omitempty"`
	Query   *Query   `yaml:"query,omitempty" json:"query,omitempty"`
	Pool    *Pool    `yaml:"pool,omitempty" json:"pool,omitempty"`
	Output  *Output  `yaml:"output,omitempty" json:"output,omitempty"`
	Metrics *Metrics `yaml:"metrics,omitempty" json:"metrics,omitempty"`
}

type S3 struct {
	Bucket          string `yaml:"bucket,omitempty" json:"bucket,omitempty"`
	Key             string `yaml:"key,omitempty" json:"key,omitempty"`
	Region          string `yaml:"region,omitempty" json:"region,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	UsePathStyle    bool   `yaml:"use-path-style,omitempty" json:"use-path-style,omitempty"`
	AccessKeyID     string `yaml:"access-key-id,omitempty" json:"access-key-id,omitempty"`
	SecretAccessKey string `yaml:"secret-access-key,omitempty" json:"-"`
	SessionToken    string `yaml:"session-token,omitempty" json:"-"`
}

// StaticCredentials reports whether explicit credentials are configured.
func (s *S3) StaticCredentials() bool {
	return s.AccessKeyID != ""
}

type Query struct {
	GroupBy    string   `yaml:"group-by,omitempty" json:"group-by,omitempty"`
	Alias      string   `yaml:"alias,omitempty" json:"alias,omitempty"`
	Ascending  bool     `yaml:"ascending,omitempty" json:"ascending,omitempty"`
	Limit      int      `yaml:"limit,omitempty" json:"limit,omitempty"`
	NullValues []string `yaml:"null-values,omitempty" json:"null-values,omitempty"`
}

// Pool carries sizing hints for the fork-join pool. They are passed to the
// pool builder, which accepts and ignores them.
type Pool struct {
	Threads int `yaml:"threads,omitempty" json:"threads,omitempty"`
}

type Output struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

type Metrics struct {
	Textfile string `yaml:"textfile,omitempty" json:"textfile,omitempty"`
}

// New reads the YAML file (if any), applies environment overrides and
// validates the result.
func New(file string) (*Config, error) {
	c, err := Load(file)
	if err != nil {
		return nil, err
	}
	return c, c.validateSetDefaults()
}

// Load reads the YAML file (if any) and applies environment overrides
// without validating. Callers that layer more overrides on top call
// [Config.Validate] afterwards.
func Load(file string) (*Config, error) {
	c := new(Config)
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		err = yaml.Unmarshal(b, c)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", file, err)
		}
		log.Debugf("read config file %s", file)
	}
	c.ensureSections()
	c.applyEnv(os.LookupEnv)
	return c, nil
}

func (c *Config) ensureSections() {
	if c.S3 == nil {
		c.S3 = new(S3)
	}
	if c.Query == nil {
		c.Query = new(Query)
	}
	if c.Pool == nil {
		c.Pool = new(Pool)
	}
	if c.Output == nil {
		c.Output = new(Output)
	}
	if c.Metrics == nil {
		c.Metrics = new(Metrics)
	}
}

// applyEnv overlays environment variables. Plain names come first, the
// SPIN_CONFIG_ names used inside the component host win over them.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, name string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	set(&c.S3.Bucket, envBucket)
	set(&c.S3.Key, envKey)
	set(&c.S3.Region, envRegion)
	set(&c.S3.Endpoint, envEndpoint)
	set(&c.Query.GroupBy, envGroupByColumn)

	set(&c.S3.Bucket, envSpinBucket)
	set(&c.S3.Key, envSpinKey)
	set(&c.S3.Region, envSpinRegion)
	set(&c.S3.AccessKeyID, envAccessKeyID)
	set(&c.S3.SecretAccessKey, envSecretAccess)
	// an empty session token means "no token"
	set(&c.S3.SessionToken, envSessionToken)
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	c.ensureSections()
	return c.validateSetDefaults()
}

func (c *Config) validateSetDefaults() error {
	if c.S3.Bucket == "" {
		c.S3.Bucket = defaultBucket
	}
	if c.S3.Key == "" {
		c.S3.Key = defaultKey
	}
	if c.S3.StaticCredentials() != (c.S3.SecretAccessKey != "") {
		return errors.New("s3 access-key-id and secret-access-key must be set together")
	}
	if c.S3.SessionToken != "" && !c.S3.StaticCredentials() {
		return errors.New("s3 session-token requires access-key-id and secret-access-key")
	}
	if c.Query.GroupBy == "" {
		c.Query.GroupBy = defaultGroupBy
	}
	if c.Query.Alias == "" {
		c.Query.Alias = defaultAlias
	}
	if c.Query.Alias == c.Query.GroupBy {
		return fmt.Errorf("count alias %q collides with group-by column", c.Query.Alias)
	}
	if c.Query.Limit < 0 {
		return fmt.Errorf("query limit must be non-negative, got %d", c.Query.Limit)
	}
	if c.Pool.Threads < 0 {
		return fmt.Errorf("pool threads must be non-negative, got %d", c.Pool.Threads)
	}
	switch c.Output.Format {
	case "":
		c.Output.Format = defaultFormat
	case FormatTable, FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	return nil
}
