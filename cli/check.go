package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Send a canary request to OpenAI and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := build(cmd, opts)
			if err != nil {
				return err
			}
			defer d.log.Sync()

			res, err := d.relay.Canary(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
