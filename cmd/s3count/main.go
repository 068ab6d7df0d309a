// Command s3count fetches a CSV object from S3, groups its rows by one
// column and prints the group counts, largest first.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/baxromumarov/forkjoin/config"
	"github.com/baxromumarov/forkjoin/metrics"
	"github.com/baxromumarov/forkjoin/objectstore"
	"github.com/baxromumarov/forkjoin/pipeline"
)

var version = "dev"
var commit = ""

var (
	configFile  string
	debug       bool
	versionFlag bool

	bucket      string
	key         string
	region      string
	endpoint    string
	groupBy     string
	alias       string
	ascending   bool
	limit       int
	threads     int
	format      string
	metricsFile string
)

var rootCmd = &cobra.Command{
	Use:           "s3count",
	Short:         "count rows of an S3 CSV object grouped by a column",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "set log level to DEBUG")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "print version")

	rootCmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket name")
	rootCmd.Flags().StringVar(&key, "key", "", "S3 object key")
	rootCmd.Flags().StringVar(&region, "region", "", "S3 region")
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "S3 endpoint URL")
	rootCmd.Flags().StringVar(&groupBy, "group-by", "", "column to group by")
	rootCmd.Flags().StringVar(&alias, "alias", "", "name of the count column")
	rootCmd.Flags().BoolVar(&ascending, "ascending", false, "sort counts ascending")
	rootCmd.Flags().IntVar(&limit, "limit", 0, "print at most this many groups, 0 prints all")
	rootCmd.Flags().IntVar(&threads, "threads", 0, "thread count hint for the pool")
	rootCmd.Flags().StringVar(&format, "format", "", "print format, 'table', 'csv' or 'json'")
	rootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if versionFlag {
		fmt.Fprintln(cmd.OutOrStdout(), version+"-"+commit)
		return nil
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(cmd.ErrOrStderr())
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"bucket":   cfg.S3.Bucket,
		"key":      cfg.S3.Key,
		"group-by": cfg.Query.GroupBy,
	}).Debug("config loaded")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, err := objectstore.NewClient(ctx, cfg.S3)
	if err != nil {
		return err
	}

	opts := []pipeline.Option{
		pipeline.WithOutput(cmd.OutOrStdout()),
		pipeline.WithLogger(log.WithField("component", "s3count")),
	}
	if cfg.Metrics.Textfile != "" {
		rec, err := metrics.New(nil, metrics.Options{})
		if err != nil {
			return err
		}
		opts = append(opts, pipeline.WithRecorder(rec))
	}

	return pipeline.New(cfg, objectstore.NewFetcher(client), opts...).Run(ctx)
}

// applyFlags overrides config values with the flags set on the command line.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	setString := func(dst *string, name, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	setString(&cfg.S3.Bucket, "bucket", bucket)
	setString(&cfg.S3.Key, "key", key)
	setString(&cfg.S3.Region, "region", region)
	setString(&cfg.S3.Endpoint, "endpoint", endpoint)
	setString(&cfg.Query.GroupBy, "group-by", groupBy)
	setString(&cfg.Query.Alias, "alias", alias)
	setString(&cfg.Output.Format, "format", format)
	setString(&cfg.Metrics.Textfile, "metrics-file", metricsFile)

	if flags.Changed("ascending") {
		cfg.Query.Ascending = ascending
	}
	if flags.Changed("limit") {
		cfg.Query.Limit = limit
	}
	if flags.Changed("threads") {
		cfg.Pool.Threads = threads
	}
}
