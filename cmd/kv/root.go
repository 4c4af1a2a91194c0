package kv

import (
	"github.com/spf13/cobra"

	"github.com/dockv/dockv/client"
	"github.com/dockv/dockv/cmd/util"
	"github.com/dockv/dockv/rpc/common"
)

var (
	storeClient *client.Client

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:   "kv",
		Short: "Interact with the remote store",
		Long:  "Run primitive key-value operations against the configured store through the connection manager.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}

			config := util.GetClientConfig()
			common.InitLoggers(*config)

			c, err := client.New(*config)
			if err != nil {
				return err
			}
			storeClient = c
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if storeClient != nil {
				return storeClient.Close()
			}
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common store connection flags to the KV command
	util.SetupClientFlags(KeyValueCommands)

	// Add Commands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(scanCmd)
	KeyValueCommands.AddCommand(pingCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}
