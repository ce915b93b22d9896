package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rocketgeek/akismetclient-go/internal/trace"
)

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect recorded provider exchanges",
	}
	cmd.AddCommand(newTraceShowCmd())
	return cmd
}

func newTraceShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the exchanges in a trace file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exchanges, err := trace.ReadFile(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, ex := range exchanges {
					if err := enc.Encode(ex); err != nil {
						return err
					}
				}
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tCOMMAND\tRESULT\tDURATION")
			for _, ex := range exchanges {
				result := ex.Body
				if ex.Error != "" {
					result = ex.Error
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ex.Time.Format("2006-01-02T15:04:05Z07:00"), ex.Command, result, ex.Duration)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per exchange")
	return cmd
}
