package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yairfalse/hakija/internal/filters"
	"github.com/yairfalse/hakija/pkg/resolver"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available filters",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	// Listing names never touches AWS, so no client is needed.
	reg := filters.New(resolver.NewWithClients(nil))
	for _, name := range reg.Names() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
