package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{Use: "gamesctl", Short: "Games analytics command line"}
	root.SilenceUsage = true

	root.AddCommand(newSummaryCmd())
	root.AddCommand(newSnapshotCmd())
	root.AddCommand(newSectionsCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
