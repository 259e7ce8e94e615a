package main

import (
	"github.com/spf13/cobra"
)

var (
	page     int
	pageSize int
)

var searchCmd = &cobra.Command{
	Use:   "search <catalog> [query]",
	Short: "Search a catalog",
	Long: `Load a catalog from its source file and print one page of matching rows.
The query is normalized like the server does, so "V-8" matches "v8 engine".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		key, query := args[0], ""
		if len(args) == 2 {
			query = args[1]
		}

		if _, err := svc.Refresh(cmd.Context(), key); err != nil {
			return err
		}
		result, err := svc.Search(cmd.Context(), key, query, page, pageSize)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	searchCmd.Flags().IntVar(&pageSize, "page-size", 30, "rows per page")
}
