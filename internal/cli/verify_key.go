package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-key [KEY]",
		Short: "Check an API key with the provider (default: the active key)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			key := s.client.Credential()
			if len(args) == 1 {
				key = args[0]
			}

			valid, err := s.client.CheckKey(cmd.Context(), key)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return &ExitError{code: exitIndeterminate, message: err.Error()}
			}
			if !valid {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return &ExitError{code: exitNegative}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	return cmd
}
