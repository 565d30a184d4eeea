package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AAChaika/duotasks/internal/ui"
)

func newRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind <on|off>",
		Short: "Toggle the daily streak reminder",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
				return errors.New("argument must be 'on' or 'off'")
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

			enabled := args[0] == "on"
			if err := svc.SetReminder(ctx, flagUser, flagUser, enabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Daily reminders %s\n", ui.IconBell, args[0])
			return nil
		},
	}

	return cmd
}
