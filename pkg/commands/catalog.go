package commands

import (
	"encoding/json"
	"fmt"

	"github.com/IannnnnW/ambso-site/pkg/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [key]",
	Short: "List fallback catalog entries or print one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, key := range cat.Keys() {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		return nil
	}

	v, ok := cat.Get(args[0])
	if !ok {
		return fmt.Errorf("no catalog entry %q", args[0])
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
