package serve

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdUtil "github.com/dockv/dockv/cmd/util"
	"github.com/dockv/dockv/rpc/common"
	"github.com/dockv/dockv/rpc/serializer"
	"github.com/dockv/dockv/rpc/server"
)

var (
	// ServeCmd starts the bundled development server
	ServeCmd = &cobra.Command{
		Use:     "serve",
		Short:   "Start the dockv development server",
		Long:    `Start the in-memory development server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is DOCKV_<flag> (e.g. DOCKV_PORT=6379)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "network"
	ServeCmd.PersistentFlags().String(key, "tcp", cmdUtil.WrapString("Socket type to listen on: tcp or unix"))

	key = "host"
	ServeCmd.PersistentFlags().String(key, "localhost", cmdUtil.WrapString("Address to bind (or socket path for unix network)"))

	key = "port"
	ServeCmd.PersistentFlags().Int(key, 6379, cmdUtil.WrapString("Port to listen on (ignored for unix network)"))

	key = "password"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Password clients must present during the handshake, empty for no auth"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig binds the command line flags to viper
func processConfig(cmd *cobra.Command, _ []string) error {
	return viper.BindPFlags(cmd.Flags())
}

// run starts the development server and blocks until interrupted
func run(_ *cobra.Command, _ []string) error {
	common.InitLoggers(common.ClientConfig{LogLevel: viper.GetString("log-level")})

	// parse the serializer
	s, err := serializer.ForName(viper.GetString("serializer"))
	if err != nil {
		return err
	}

	network := viper.GetString("network")
	var address string
	switch network {
	case "tcp":
		address = fmt.Sprintf("%s:%d", viper.GetString("host"), viper.GetInt("port"))
	case "unix":
		address = viper.GetString("host")
	default:
		return fmt.Errorf("invalid network %s (expected tcp or unix)", network)
	}

	srv := server.NewServer(viper.GetString("password"), s)
	if err := srv.Listen(network, address); err != nil {
		return err
	}
	fmt.Printf("dockv development server listening on %s://%s\n", network, srv.Addr())

	// block until interrupted
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("shutting down")
	return srv.Close()
}

// initConfig reads in ENV variables if set
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dockv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
