package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// uiNamespace holds every page and form string.
const uiNamespace = "ui"

type rootOptions struct {
	envFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Personal portfolio site with an HTMX contact form",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"},
		"dotenv files to read before the environment; missing files are skipped")

	cmd.AddCommand(
		newServeCmd(opts),
		newCheckCmd(opts),
		newCVUploadCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return cmd
}
