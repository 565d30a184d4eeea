package root

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AAChaika/duotasks/internal/remind"
	"github.com/AAChaika/duotasks/internal/ui"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daily reminder scheduler until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sched := remind.New(svc, remind.Options{
				StreakHour: cfg.StreakReminderHour,
				EmptyHour:  cfg.EmptyReminderHour,
			})

			fmt.Fprintf(cmd.OutOrStdout(), "%s Reminder scheduler running (streak %02d:00, empty list %02d:00, %s)\n",
				ui.IconBell, cfg.StreakReminderHour, cfg.EmptyReminderHour, cfg.Timezone)
			sched.Run(ctx)
			return nil
		},
	}
}
