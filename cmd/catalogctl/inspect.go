package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/partsearch/internal/core"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show how a workbook would be loaded",
	Long:  `Load any workbook and report its sheets, merged columns and row count without touching the data directory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		key := core.CatalogForFile(path)
		def, ok := core.Get(key)
		if !ok {
			def = core.CatalogDefinition{Key: key, Label: key, File: filepath.Base(path)}
		}

		t, err := core.LoadTable(def, path)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), map[string]any{
			"catalog": def.Key,
			"label":   def.Label,
			"path":    t.Path,
			"sheets":  t.Sheets,
			"columns": t.Columns,
			"rows":    t.Len(),
		})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
