package main

import (
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/partsearch/internal/core"
)

var loadCatalogs bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured catalogs",
	Long:  `List the configured catalogs. With --load each source file is read so the row counts are filled in.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		if loadCatalogs {
			svc.LoadAll(cmd.Context())
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"catalogs": svc.Status()})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&loadCatalogs, "load", false, "load each catalog to report rows and sheets")
}

func newService() (*core.Service, error) {
	return core.NewService(core.NewStore(), core.All(), core.WithDataDir(dataDir))
}
