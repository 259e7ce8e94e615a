package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/partsearch/internal/core/catalogs"
	"github.com/JonMunkholm/partsearch/internal/logging"
)

var (
	catalogFile string
	dataDir     string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Inspect and search parts catalogs",
	Long: `catalogctl reads catalog spreadsheets directly from disk. It lists the
configured catalogs, searches one of them with the server's matching rules, or
reports how a workbook would be loaded.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr so stdout stays valid JSON
		slog.SetDefault(logging.New(cmd.ErrOrStderr(), logLevel, "text"))

		if catalogFile == "" {
			return nil
		}
		defs, err := catalogs.LoadFile(catalogFile)
		if err != nil {
			return err
		}
		catalogs.Replace(defs)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalogs", os.Getenv("CATALOG_FILE"), "YAML catalog mapping (default: built-in catalogs)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", envOr("CATALOG_DATA_DIR", "data"), "directory catalog files are resolved against")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
