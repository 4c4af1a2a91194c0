package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dockv/dockv/cmd/kv"
	"github.com/dockv/dockv/cmd/serve"
	"github.com/dockv/dockv/cmd/util"
)

const (
	Version = "0.1.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dockv",
		Short: "document mapping client for remote key-value stores",
		Long: fmt.Sprintf(`dockv (v%s)

A typed document mapping layer and self-healing connection manager
for remote key-value stores, with a bundled development server.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dockv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dockv v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob, binary)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
