package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <label>",
		Short: "Show a game and who has checked in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameView

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster <label>",
		Short: "Show a game's roster grouped by team and list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GroupedRoster

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/roster", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRebalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebalance <label>",
		Short: "Evenly redistribute a game's members across teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RebalanceResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/rebalance", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
