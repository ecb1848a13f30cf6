package cli

import (
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckinCmd() *cobra.Command {
	var payload string
	var member string
	var scanCmd string

	cmd := &cobra.Command{
		Use:   "checkin <label>",
		Short: "Check a member in to a game",
		Long: `Check a member in to a game.

The badge payload can be supplied three ways:
  --payload URL      the raw text of a scanned badge
  --member NAME      a member name, wrapped into a payload locally
  --scan-cmd CMD     a shell command that prints the scanned payload
                     to stdout (e.g. a camera capture tool)

Exactly one of the three must be given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			given := 0
			for _, v := range []string{payload, member, scanCmd} {
				if v != "" {
					given++
				}
			}
			if given != 1 {
				return fmt.Errorf("exactly one of --payload, --member or --scan-cmd must be given")
			}

			if member != "" {
				payload = fmt.Sprintf("%s/checkin?member=%s",
					strings.TrimSuffix(cfg.ServerURL, "/"), url.QueryEscape(member))
			}

			if scanCmd != "" {
				captured, err := capturePayload(scanCmd)
				if err != nil {
					return fmt.Errorf("scan failed, nothing was checked in: %w", err)
				}
				payload = captured
			}

			var result CheckInResult
			body := map[string]string{"payload": payload}
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/checkins", args[0]), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "Raw scanned badge payload")
	cmd.Flags().StringVar(&member, "member", "", "Member name to check in")
	cmd.Flags().StringVar(&scanCmd, "scan-cmd", "", "Command that prints a scanned payload to stdout")

	return cmd
}

// capturePayload runs an external scanner command and returns its trimmed
// stdout. A failing or silent scanner aborts the check-in before any request
// is made.
func capturePayload(scanCmd string) (string, error) {
	out, err := exec.Command("sh", "-c", scanCmd).Output()
	if err != nil {
		return "", err
	}
	captured := strings.TrimSpace(string(out))
	if captured == "" {
		return "", fmt.Errorf("scanner produced no output")
	}
	return captured, nil
}
