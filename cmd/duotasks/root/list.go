package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AAChaika/duotasks/internal/ui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.ListActive(ctx, flagUser)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No active tasks. Add one with `duotasks add`."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTask, "Active tasks"))
			for _, t := range tasks {
				fmt.Fprintf(out, "  #%d  %s  (difficulty %d)\n", t.ID, t.Title, t.Difficulty)
			}
			return nil
		},
	}
}
