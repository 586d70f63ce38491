package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import seeders so their init() funcs run and register themselves.
	_ "github.com/upahaar/upahaar/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "upahaar",
	Short: "Upahaar — gifting store backend CLI",
	Long:  "Upahaar is the backend for a curated gifting store. Use this CLI to run the server and manage its data.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(indexEnsureCmd)

	rootCmd.AddCommand(queueWorkCmd)
}
