package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AAChaika/duotasks/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := strconv.ParseInt(args[0], 10, 64)

			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Complete(ctx, id, flagUser)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Duplicate {
				fmt.Fprintf(out, "%s %q was already counted just now.\n", ui.IconDone, res.Title)
				return nil
			}

			fmt.Fprintf(out, "%s Done: %q  %s+%d XP  %s streak %d\n",
				ui.IconDone, res.Title, ui.IconBolt, res.XPGained, ui.IconFlame, res.Streak)
			if res.LevelUp {
				fmt.Fprintf(out, "%s %s — level %d → %d\n", ui.IconSparkle, ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			if res.BadgeUnlocked {
				fmt.Fprintf(out, "%s New badge: %s %s (streak %d)\n",
					ui.IconTrophy, res.Badge.Icon, ui.Gold.Render(res.Badge.Name), res.Badge.Threshold)
			}
			return nil
		},
	}

	return cmd
}
