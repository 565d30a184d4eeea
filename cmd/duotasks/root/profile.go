package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AAChaika/duotasks/internal/ui"
)

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show XP, level, streak and badge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.Profile(ctx, flagUser, flagUser)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Profile"))
			fmt.Fprintln(out, ui.LabelValue("XP", p.XP))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d (best %d)", p.StreakCurrent, p.StreakBest)))
			if p.Badge != nil {
				fmt.Fprintln(out, ui.LabelValue("Best badge", fmt.Sprintf("%s %s", p.Badge.Icon, p.Badge.Name)))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Best badge", ui.Muted.Render("none yet")))
			}
			fmt.Fprintln(out, ui.LabelValue("Active tasks", p.ActiveTasks))
			reminders := "off"
			if p.ReminderEnabled {
				reminders = "on"
			}
			fmt.Fprintln(out, ui.LabelValue("Reminders", reminders))
			return nil
		},
	}
}
