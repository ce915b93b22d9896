package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSaveKeyCmd(a *app) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "save-key KEY",
		Short: "Store an API key in the settings database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if verify && !s.client.VerifyKey(cmd.Context(), args[0]) {
				return &ExitError{code: exitNegative, message: "key rejected by provider; not saved"}
			}
			if err := s.client.SaveKey(cmd.Context(), args[0]); err != nil {
				return err
			}
			if s.client.Credential() != args[0] {
				fmt.Fprintf(cmd.OutOrStdout(), "saved; %s still takes precedence\n", s.cfg.SharedKeyOption)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "saved")
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Verify the key with the provider before saving")
	return cmd
}
