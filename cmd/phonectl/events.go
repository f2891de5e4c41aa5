package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/PhonesBot_Go/internal/event"
)

func newEventsCmd() *cobra.Command {
	events := &cobra.Command{
		Use:   "events",
		Short: "Event system commands",
	}

	var path string
	deadLetters := &cobra.Command{
		Use:   "dead-letters",
		Short: "List events that exhausted their publish retries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.DeadLetterPath
			}

			entries, err := event.ReadDeadLetters(path)
			if err != nil {
				return err
			}

			printHeader("Dead letters: " + path)
			if len(entries) == 0 {
				printSuccess("no dead-lettered events")
				return nil
			}
			for _, e := range entries {
				printRow("%s  %-20s  attempts=%d  %s",
					e.Timestamp.Format(time.RFC3339), e.Event.Type, e.Attempts, e.LastError)
			}
			printWarn("%d event(s) were never delivered", len(entries))
			return nil
		},
	}
	deadLetters.Flags().StringVar(&path, "file", "", "dead-letter file (defaults to EVENT_DEAD_LETTER_PATH)")

	events.AddCommand(deadLetters)
	return events
}
