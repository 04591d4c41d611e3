/*
Package cli provides the commands of the notifier binary.
*/
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	configFile string
	logLevel   string
	logFormat  string
	emailUser  string
	emailPass  string
	adminEmail string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "notifier",
		Short: "Email notifications for project request changes",
		Long: `Notifier watches the project request collection and emails the internal
team and the client when a request is created or its status changes.

Example:
  notifier serve                          # Watch the change feed and send mail
  notifier resolve                        # Show which mail credentials resolved
  notifier render --kind created -a r.json # Preview the mail a record would produce`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "notifier.yaml", "runtime config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: json, text or pretty (overrides LOG_FORMAT)")
	pf.StringVar(&flags.emailUser, "email-user", "", "sender account")
	pf.StringVar(&flags.emailPass, "email-pass", "", "sender password")
	pf.StringVar(&flags.adminEmail, "admin-email", "", "internal notification recipient")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newResolveCmd(flags))
	root.AddCommand(newRenderCmd(flags))
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
