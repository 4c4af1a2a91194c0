package util

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dockv/dockv/rpc/common"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds common store connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "network"
	cmd.PersistentFlags().String(key, "tcp", WrapString("Socket type to dial: tcp or unix"))

	key = "host"
	cmd.PersistentFlags().String(key, "localhost", WrapString("Store host (or socket path for unix network)"))

	key = "port"
	cmd.PersistentFlags().Int(key, 6379, WrapString("Store port (ignored for unix network)"))

	key = "db"
	cmd.PersistentFlags().Int(key, 0, WrapString("Database index to select during the handshake"))

	key = "password"
	cmd.PersistentFlags().String(key, "", WrapString("Password for the store, empty for no auth"))

	key = "heartbeat-interval"
	cmd.PersistentFlags().Int(key, common.DefaultHeartbeatIntervalSec, WrapString("Seconds between connection liveness probes"))

	key = "socket-timeout"
	cmd.PersistentFlags().Int(key, common.DefaultSocketTimeoutSec, WrapString("Per-operation socket deadline in seconds"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dockv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	return &common.ClientConfig{
		Network:              viper.GetString("network"),
		Host:                 viper.GetString("host"),
		Port:                 viper.GetInt("port"),
		DB:                   viper.GetInt("db"),
		Password:             viper.GetString("password"),
		HeartbeatIntervalSec: viper.GetInt("heartbeat-interval"),
		SocketTimeoutSec:     viper.GetInt("socket-timeout"),
		Serializer:           viper.GetString("serializer"),
		LogLevel:             viper.GetString("log-level"),
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
