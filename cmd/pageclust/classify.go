package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagecluster/htmlpage"
)

var classifyCmd = &cobra.Command{
	Use:   "classify PATH...",
	Short: "Classify pages against the stored session",
	Long: `Load the stored session and print "url cluster" for every page in
PATH. Directories are walked. The session is not modified.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.release()

		c, err := e.loadSession(ctx)
		if err != nil {
			return err
		}

		var pages []*htmlpage.Page
		var files []string
		for _, arg := range args {
			fi, err := os.Stat(arg)
			if err != nil {
				return err
			}
			if !fi.IsDir() {
				files = append(files, arg)
				continue
			}
			dirPages, err := loadDir(ctx, arg)
			if err != nil {
				return err
			}
			pages = append(pages, dirPages...)
		}

		filePages, err := loadFiles(ctx, files)
		if err != nil {
			return err
		}
		pages = append(pages, filePages...)

		printLabels(cmd.OutOrStdout(), c, pages)
		return nil
	},
}
