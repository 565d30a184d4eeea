package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AAChaika/duotasks/internal/ui"
)

const Version = "0.1.0"

var (
	flagConfig string
	flagUser   int64
)

var rootCmd = &cobra.Command{
	Use:           "duotasks",
	Short:         "duotasks — XP, levels, streaks and badges for your task list",
	Long:          "duotasks turns completed tasks into XP, levels, daily streaks and badges — like Duolingo, but for productivity.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: $DUOTASKS_CONFIG)")
	rootCmd.PersistentFlags().Int64VarP(&flagUser, "user", "u", 1, "Acting user ID (the external chat identity)")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newRemoveCmd(),
		newListCmd(),
		newProfileCmd(),
		newRemindCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
