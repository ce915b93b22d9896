package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketgeek/akismetclient-go/client"
)

func newCheckCmd(a *app) *cobra.Command {
	var sub client.Submission

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Ask the provider whether a registration is spam",
		Long: `Ask the provider whether a registration is spam.

Prints "spam" (exit 1) or "ham" (exit 0). When the provider gives no
verdict the configured fail policy decides and the exit code is 2.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			spam, err := s.client.CheckSpam(cmd.Context(), sub)
			if err != nil {
				spam = s.client.FailPolicy().Verdict(err)
				fmt.Fprintln(cmd.OutOrStdout(), verdictWord(spam))
				return &ExitError{code: exitIndeterminate, message: err.Error()}
			}
			fmt.Fprintln(cmd.OutOrStdout(), verdictWord(spam))
			if spam {
				return &ExitError{code: exitNegative}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sub.Email, "email", "", "Registrant email")
	cmd.Flags().StringVar(&sub.Username, "username", "", "Registrant username")
	cmd.Flags().StringVar(&sub.UserIP, "ip", "", "Registrant IP address")
	cmd.Flags().StringVar(&sub.UserAgent, "user-agent", "", "Registrant user agent")
	cmd.Flags().StringVar(&sub.Referrer, "referrer", "", "Registrant referrer")
	return cmd
}

func verdictWord(spam bool) string {
	if spam {
		return "spam"
	}
	return "ham"
}
