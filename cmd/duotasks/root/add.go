package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AAChaika/duotasks/internal/engine"
	"github.com/AAChaika/duotasks/internal/ui"
)

func newAddCmd() *cobra.Command {
	var diff int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			created, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				UserID:     flagUser,
				ChatID:     flagUser,
				Title:      args[0],
				Difficulty: diff,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added #%d %q (difficulty %d)\n",
				ui.IconTask, created.TaskID, created.Title, created.Difficulty)
			return nil
		},
	}

	cmd.Flags().IntVarP(&diff, "diff", "d", 1, "Difficulty (1-3)")

	return cmd
}
