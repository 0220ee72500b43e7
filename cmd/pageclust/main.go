// Command pageclust clusters directories of HTML pages by structure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hupe1980/pagecluster"
	"github.com/hupe1980/pagecluster/internal/config"
)

var (
	cfgFile string
	envFile string
	cfg     *config.Config
	logger  *pagecluster.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pageclust",
	Short: "Online clustering of HTML pages by structure",
	Long: `pageclust groups HTML pages into a fixed number of clusters using the
element/class tokens of each page. Sessions can be seeded with exemplar
pages, persisted to a snapshot store and resumed later.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}

		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
		if err := applyFlags(cmd); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = cfg.Logger()
		return err
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "pageclust.yaml", "config file path (defaults apply if missing)")
	pf.StringVar(&envFile, "env", ".env", "dotenv file with store credentials")
	pf.Int("clusters", 0, "number of clusters")
	pf.Int("batch-size", 0, "pages per mini-batch (default 10 x clusters)")
	pf.Float64("max-std-dev", 0, "outlier threshold in standard deviations")
	pf.Bool("no-outliers", false, "disable outlier detection")
	pf.String("store", "", "snapshot store: none, local, badger, minio, s3")
	pf.String("store-dir", "", "directory for local and badger stores")
	pf.String("bucket", "", "bucket for minio and s3 stores")
	pf.String("snapshot", "", "snapshot name within the store")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(clusterCmd, seedCmd, classifyCmd)
}

// applyFlags overrides file values with explicitly set flags.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	var err error
	set := func(name string, fn func() error) {
		if err == nil && flags.Changed(name) {
			err = fn()
		}
	}

	set("clusters", func() (e error) { cfg.Cluster.Clusters, e = flags.GetInt("clusters"); return })
	set("batch-size", func() (e error) { cfg.Cluster.BatchSize, e = flags.GetInt("batch-size"); return })
	set("max-std-dev", func() (e error) { cfg.Cluster.MaxStdDev, e = flags.GetFloat64("max-std-dev"); return })
	set("no-outliers", func() (e error) { cfg.Cluster.DisableOutliers, e = flags.GetBool("no-outliers"); return })
	set("store", func() (e error) { cfg.Store.Type, e = flags.GetString("store"); return })
	set("store-dir", func() (e error) { cfg.Store.Dir, e = flags.GetString("store-dir"); return })
	set("bucket", func() (e error) { cfg.Store.Bucket, e = flags.GetString("bucket"); return })
	set("snapshot", func() (e error) { cfg.Snapshot.Name, e = flags.GetString("snapshot"); return })
	set("log-level", func() (e error) { cfg.Log.Level, e = flags.GetString("log-level"); return })
	set("metrics-addr", func() (e error) { cfg.Metrics.Addr, e = flags.GetString("metrics-addr"); return })

	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
