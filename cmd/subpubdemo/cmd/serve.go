package cmd

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kestrelbus/subpub"
	"github.com/kestrelbus/subpub/object"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a short end-to-end demo against a broker",
	RunE: func(cmd *cobra.Command, args []string) error {
		broker, closer, err := buildBroker()
		if err != nil {
			return err
		}
		defer closer()

		news := object.NewSymbol([]byte("news"))
		defer news.Release()
		userPattern := object.NewSymbol([]byte("user.*"))
		defer userPattern.Release()

		newsSub := broker.Subscribe(news, false, func(msg *subpub.Message) {
			log.Info().Str("channel", "news").Bytes("payload", msg.Payload.Bytes()).Msg("received")
		}, nil, nil, nil)
		defer broker.Unsubscribe(newsSub)

		userSub := broker.Subscribe(userPattern, true, func(msg *subpub.Message) {
			log.Info().Str("channel", string(msg.Channel.Bytes())).Bytes("payload", msg.Payload.Bytes()).Msg("received")
		}, nil, nil, nil)
		defer broker.Unsubscribe(userSub)

		publish := func(channel, data string) {
			name := object.NewSymbol([]byte(channel))
			payload := object.NewBytes([]byte(data))
			if err := broker.Publish(name, payload, nil); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("publish had no effect")
			}
			name.Release()
			payload.Release()
		}

		publish("news", "GoLang is awesome!")
		publish("user.42", "profile updated")
		publish("users.42", "should not be delivered: no matching pattern")

		time.Sleep(100 * time.Millisecond) // let deferred deliveries run before exit
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
