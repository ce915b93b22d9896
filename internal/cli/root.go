package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketgeek/akismetclient-go/client"
)

type app struct {
	configPath string
	logLevel   string
	logFormat  string
	tracePath  string

	// transport replaces the TLS transport when set
	transport client.Transport
}

func NewRoot(version string) *cobra.Command {
	return newRoot(version, &app{})
}

func newRoot(version string, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "akismetctl",
		Short:         "akismetctl: Akismet spam checks for registrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("akismetctl {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&a.configPath, "config", getenvDefault("AKISMET_CONFIG", ""), "Path to config YAML")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", getenvDefault("AKISMET_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", getenvDefault("AKISMET_LOG_FORMAT", "text"), "Log format: text|json")
	cmd.PersistentFlags().StringVar(&a.tracePath, "trace", "", "Record provider exchanges to this zstd trace file (overrides trace_path)")

	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newVerifyKeyCmd(a))
	cmd.AddCommand(newSaveKeyCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newTraceCmd())

	return cmd
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
