package kv

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if ok := storeClient.Set(key, []byte(value)); !ok {
				return fmt.Errorf("set failed (store unreachable?)")
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, found := storeClient.Get(key)
			fmt.Printf("key=%s, found=%v, value=%s\n", key, found, value)
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storeClient.Delete(args[0])
			fmt.Println("delete successfully")
			return nil
		},
	}
	scanCmd = &cobra.Command{
		Use:   "scan [key-base]",
		Short: "Lists all documents for a key base name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs := storeClient.ScanByKeyBase(args[0])
			for _, doc := range docs {
				fmt.Printf("%s\t%s\n", doc.Key, doc.Value)
			}
			fmt.Printf("%d documents\n", len(docs))
			return nil
		},
	}
	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Probes store connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if storeClient.IsConnected() {
				fmt.Println("connected")
				return nil
			}
			return fmt.Errorf("not connected")
		},
	}
)
