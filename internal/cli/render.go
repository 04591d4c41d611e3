package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/changenotify/notify"
)

type renderFlags struct {
	kind   string
	id     string
	before string
	after  string
	asJSON bool
}

func newRenderCmd(flags *globalFlags) *cobra.Command {
	rf := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the messages a change would produce",
		Long: `Render classifies a change built from JSON snapshot files and prints the
rendered messages. Nothing is sent.

Example:
  notifier render --kind created --after record.json
  notifier render --kind updated --before old.json --after new.json --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, err := loadApp(flags)
			if err != nil {
				return err
			}
			creds, err := resolveCredentials(cmd, flags, log)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(creds)
			if err != nil {
				return err
			}

			evt := notify.ChangeEvent{Kind: notify.ChangeKind(rf.kind), RecordID: rf.id}
			if evt.Kind != notify.Created && evt.Kind != notify.Updated {
				return fmt.Errorf("--kind must be %q or %q", notify.Created, notify.Updated)
			}
			if evt.After, err = readSnapshot(rf.after); err != nil {
				return err
			}
			if evt.Before, err = readSnapshot(rf.before); err != nil {
				return err
			}

			msgs := notify.NewService(renderer, nil, log).Plan(cmd.Context(), evt)
			return printMessages(cmd.OutOrStdout(), msgs, rf.asJSON)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&rf.kind, "kind", "k", string(notify.Created), "change kind: created or updated")
	f.StringVar(&rf.id, "id", "", "record identifier used when the snapshot has no projectId")
	f.StringVarP(&rf.before, "before", "b", "", "JSON file with the snapshot before the change")
	f.StringVarP(&rf.after, "after", "a", "", "JSON file with the snapshot after the change")
	f.BoolVar(&rf.asJSON, "json", false, "print messages as JSON")
	return cmd
}

func readSnapshot(path string) (notify.Snapshot, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s notify.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return s, nil
}

func printMessages(w io.Writer, msgs []notify.Message, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if msgs == nil {
			msgs = []notify.Message{}
		}
		return enc.Encode(msgs)
	}

	if len(msgs) == 0 {
		_, err := fmt.Fprintln(w, "no messages")
		return err
	}
	for i, m := range msgs {
		if i > 0 {
			fmt.Fprintln(w, "----")
		}
		fmt.Fprintf(w, "Role: %s\nFrom: %s\nTo: %s\nSubject: %s\n\n%s\n", m.Role, m.From, m.To, m.Subject, m.Body)
	}
	return nil
}
