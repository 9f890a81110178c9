package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ifro-labs/ferro/pkg/client"
	"github.com/ifro-labs/ferro/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   "Follow estimates and reloads on a ferro server",
		GroupID: gAdvanced,
		Long: `Follow estimates and reloads on a ferro server until interrupted.

Requires --server.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if serverAddr == "" {
				return errors.New("watch needs a server, set --server")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for ev := range client.NewClient(serverAddr).SubscribeEvents(ctx) {
				printEvent(cmd, ev)
			}
			return nil
		},
	}
}

func printEvent(cmd *cobra.Command, ev events.Event) {
	switch ev.Name {
	case events.CatalogReloaded:
		payload, err := events.DecodeAs[events.CatalogReloadedEvent](ev)
		if err != nil {
			logrus.WithError(err).Errorf("failed to decode %s event", ev.Name)
			return
		}
		cmd.Printf("%s  experiments reloaded: %v\n", timestamp(payload.Ts), payload.Experiments)
	case events.EstimatesCompleted:
		payload, err := events.DecodeAs[events.EstimatesCompletedEvent](ev)
		if err != nil {
			logrus.WithError(err).Errorf("failed to decode %s event", ev.Name)
			return
		}
		cmd.Printf("%s  experiment %s: %s samples, %s unfit for consumption\n",
			timestamp(payload.Ts), payload.Experiment, bold("%d", payload.Samples), unsafeCount(payload.Unsafe))
	default:
		logrus.WithField("event", ev.Name).Debug("ignoring unknown event")
	}
}

func timestamp(ts int64) string {
	return time.Unix(ts, 0).Format(time.DateTime)
}
