package commands

import (
	"fmt"

	"github.com/IannnnnW/ambso-site/pkg/config"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every page to static HTML",
	Long: `Renders every page of the site, including one page per CMS record,
into a directory that can be served by any static file host.

Example:
  ambso-site export --out ./public`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Output directory (default: $EXPORT_DIR or ./public)")
}

func runExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = config.ExportDir
	}

	site, fetcher, err := newSite()
	if err != nil {
		return err
	}
	res, err := site.Export(cmd.Context(), fetcher, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s", len(res.Written), out)
	if len(res.Skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d skipped)", len(res.Skipped))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
