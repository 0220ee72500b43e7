package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagecluster"
	"github.com/hupe1980/pagecluster/htmlpage"
)

var (
	clusterResume    bool
	clusterExemplars string
	clusterNoFlush   bool
)

var clusterCmd = &cobra.Command{
	Use:   "cluster DIR",
	Short: "Cluster every page below DIR and print its cluster",
	Long: `Walk DIR, add every UTF-8 file as a page, then print "url cluster" for
each page. A cluster of -1 marks an outlier.

With a snapshot store configured the session is saved afterwards; --resume
continues the stored session instead of starting a new one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.release()

		pages, err := loadDir(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Total pages: %d\n", len(pages))

		c, err := clusterSession(ctx, e)
		if err != nil {
			return err
		}

		if err := clusterPages(ctx, cmd.OutOrStdout(), c, pages, !clusterNoFlush); err != nil {
			return err
		}
		printLabels(cmd.OutOrStdout(), c, pages)

		return e.save(ctx, c)
	},
}

func init() {
	f := clusterCmd.Flags()
	f.BoolVar(&clusterResume, "resume", false, "continue the stored session")
	f.StringVar(&clusterExemplars, "exemplars", "", "directory with one exemplar page per cluster")
	f.BoolVar(&clusterNoFlush, "no-flush", false, "leave a partial last batch pending")
}

func clusterSession(ctx context.Context, e *env) (*pagecluster.Clusterer, error) {
	if clusterResume {
		return e.loadSession(ctx)
	}

	var exemplars []*htmlpage.Page
	if clusterExemplars != "" {
		var err error
		if exemplars, err = loadDir(ctx, clusterExemplars); err != nil {
			return nil, err
		}
		if len(exemplars) == 0 {
			return nil, pagecluster.ErrNoExemplars
		}
	}
	return e.newSession(exemplars)
}

// clusterPages feeds pages in order and reports timings.
func clusterPages(ctx context.Context, w io.Writer, c *pagecluster.Clusterer, pages []*htmlpage.Page, flush bool) error {
	start := time.Now()
	for _, p := range pages {
		if err := tolerate(c.AddPage(ctx, p), p.URL); err != nil {
			return err
		}
	}
	if flush {
		if err := tolerate(c.Flush(ctx), "final batch"); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	fmt.Fprintf(w, "Clustering in %v seconds\n", elapsed.Seconds())
	if len(pages) > 0 {
		perPage := float64(elapsed) / float64(len(pages)) / float64(time.Millisecond)
		fmt.Fprintf(w, "    per page: %v ms\n", perPage)
	}
	return nil
}

// tolerate turns ErrTooFewPoints into a warning; the batch stays pending.
func tolerate(err error, what string) error {
	if errors.Is(err, pagecluster.ErrTooFewPoints) {
		logger.Warn("batch kept pending", "at", what, "error", err)
		return nil
	}
	return err
}

func printLabels(w io.Writer, c *pagecluster.Clusterer, pages []*htmlpage.Page) {
	for _, p := range pages {
		label, err := c.Classify(p)
		if err != nil {
			fmt.Fprintf(w, "%s error: %v\n", p.URL, err)
			continue
		}
		fmt.Fprintf(w, "%s %d\n", p.URL, label)
	}
}
