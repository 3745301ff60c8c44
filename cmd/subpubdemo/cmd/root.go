// Package cmd provides the Cobra commands for the subpubdemo CLI.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	redisAddr string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "subpubdemo",
	Short: "Exercise the subpub broker from the command line",
	Long: `subpubdemo wires a subpub.Broker end to end for manual testing:

  subpubdemo serve           start a local broker, optionally bridged to Redis
  subpubdemo sub <channel>   subscribe and print every message received
  subpubdemo pub <channel> <message>   publish one message

Set REDIS_ADDR (or pass --redis) to bridge publishes across processes via
the Redis cluster engine instead of staying purely in-process.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if redisAddr == "" {
			redisAddr = os.Getenv("REDIS_ADDR")
		}
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address for the cluster engine (default: $REDIS_ADDR, in-process only if unset)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}
