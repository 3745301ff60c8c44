package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kestrelbus/subpub"
	"github.com/kestrelbus/subpub/object"
)

var errNoCrossProcessEngine = errors.New("subpubdemo: pub/sub across separate processes needs --redis (or $REDIS_ADDR); an in-process-only broker cannot see another process's subscribers")

var pubCmd = &cobra.Command{
	Use:   "pub <channel> <message>",
	Short: "Publish one message to a channel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if redisAddr == "" {
			return errNoCrossProcessEngine
		}
		broker, closer, err := buildBroker()
		if err != nil {
			return err
		}
		defer closer()

		name := object.NewSymbol([]byte(args[0]))
		defer name.Release()
		payload := object.NewBytes([]byte(args[1]))
		defer payload.Release()

		if err := broker.Publish(name, payload, nil); err != nil {
			return err
		}
		log.Info().Str("channel", args[0]).Msg("published")
		return nil
	},
}

var subCmd = &cobra.Command{
	Use:   "sub <channel>",
	Short: "Subscribe to a channel (or glob pattern) and print every message received",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if redisAddr == "" {
			return errNoCrossProcessEngine
		}
		broker, closer, err := buildBroker()
		if err != nil {
			return err
		}
		defer closer()

		usePattern, _ := cmd.Flags().GetBool("pattern")
		name := object.NewSymbol([]byte(args[0]))
		defer name.Release()

		sub := broker.Subscribe(name, usePattern, func(msg *subpub.Message) {
			log.Info().Str("channel", string(msg.Channel.Bytes())).Bytes("payload", msg.Payload.Bytes()).Msg("received")
		}, nil, nil, nil)
		defer broker.Unsubscribe(sub)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}

func init() {
	subCmd.Flags().Bool("pattern", false, "treat the channel argument as a glob pattern")
	rootCmd.AddCommand(pubCmd, subCmd)
	_ = os.Stdin // reserved: future -f/--file publish mode reads from stdin
}
