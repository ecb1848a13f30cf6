package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func newQRCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "qr <member-name>",
		Short: "Download a printable QR badge for a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberName := args[0]

			png, err := client.GetRaw("/api/v1/qr?member=" + url.QueryEscape(memberName))
			if err != nil {
				return err
			}

			if outFile == "" {
				outFile = fmt.Sprintf("%s.png", memberName)
			}

			if err := os.WriteFile(outFile, png, 0644); err != nil {
				return fmt.Errorf("failed to write badge: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Badge for %s written to %s", memberName, outFile))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Output file (default <member-name>.png)")

	return cmd
}
