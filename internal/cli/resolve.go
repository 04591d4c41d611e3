package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResolveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Show which mail credentials the fallback chain resolves to",
		Long: `Resolve walks the credential chain (flags, environment, email.* and
gmail.* in the runtime config) and prints the result with the password masked.
Nothing is sent.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, err := loadApp(flags)
			if err != nil {
				return err
			}
			creds, err := resolveCredentials(cmd, flags, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sender:    %s\n", orUnset(creds.SenderUser))
			fmt.Fprintf(out, "password:  %s\n", mask(creds.SenderPass))
			fmt.Fprintf(out, "admin:     %s\n", orUnset(creds.AdminRecipient))
			if missing := creds.Missing(); len(missing) > 0 {
				fmt.Fprintf(out, "missing:   %s\n", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func mask(s string) string {
	if s == "" {
		return "(unset)"
	}
	return strings.Repeat("*", min(len(s), 8))
}

