// Package objectstore fetches whole objects from S3 compatible storage.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"

	"github.com/baxromumarov/forkjoin/config"
)

// credentialSource is reported as the origin of static credentials.
const credentialSource = "environment"

// ErrEmptyObject is returned when the fetched object has no content.
var ErrEmptyObject = errors.New("objectstore: object is empty")

// GetObjectAPI is the part of the S3 client the Fetcher needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ GetObjectAPI = (*s3.Client)(nil)

// NewClient creates an S3 client. Static credentials are used when an
// access key is configured, the default credential chain otherwise.
func NewClient(ctx context.Context, cfg *config.S3) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.StaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(staticCredentials(cfg)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	log.WithFields(log.Fields{
		"region":             awsCfg.Region,
		"endpoint":           cfg.Endpoint,
		"static-credentials": cfg.StaticCredentials(),
	}).Debug("creating s3 client")

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
	}), nil
}

func staticCredentials(cfg *config.S3) credentials.StaticCredentialsProvider {
	return credentials.StaticCredentialsProvider{
		Value: aws.Credentials{
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			SessionToken:    cfg.SessionToken,
			Source:          credentialSource,
		},
	}
}

// Fetcher downloads objects into memory.
type Fetcher struct {
	api GetObjectAPI
}

// NewFetcher returns a Fetcher reading through api.
func NewFetcher(api GetObjectAPI) *Fetcher {
	return &Fetcher{api: api}
}

// Fetch reads the whole object stored under bucket/key.
func (f *Fetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := f.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object s3://%s/%s: %w", bucket, key, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrEmptyObject)
	}

	log.WithFields(log.Fields{
		"bucket": bucket,
		"key":    key,
		"bytes":  len(b),
	}).Debug("fetched object")
	return b, nil
}
