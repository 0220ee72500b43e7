package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagecluster"
)

var seedCmd = &cobra.Command{
	Use:   "seed DIR",
	Short: "Start a stored session with one cluster per exemplar page in DIR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.release()

		if e.store == nil {
			return errors.New("seed requires a snapshot store")
		}

		exemplars, err := loadDir(ctx, args[0])
		if err != nil {
			return err
		}
		if len(exemplars) == 0 {
			return pagecluster.ErrNoExemplars
		}

		c, err := e.newSession(exemplars)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "session %s: %d clusters, dimension %d\n", c.ID(), c.NumClusters(), c.Dimension())
		for i, p := range exemplars {
			fmt.Fprintf(out, "%s %d\n", p.URL, i)
		}

		return e.save(ctx, c)
	},
}
