package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hajduko/SaWinHETUtility/internal/display"
	"github.com/hajduko/SaWinHETUtility/internal/format"
	"github.com/hajduko/SaWinHETUtility/internal/transform"
)

var inspectFlags struct {
	format string
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <record>",
		Short: "Summarise the document a record would produce",
		Long: "Reconstruct the document from a flat record without attachments and\n" +
			"print one row per top-level section. Exits non-zero when a mandatory\n" +
			"field is missing or the site inspection date is malformed.",
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
	addFormatFlag(cmd, &inspectFlags.format)
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	mode, err := format.ParseMode(inspectFlags.format)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	entries, err := transform.ParseRecordBytes(data)
	if err != nil {
		return err
	}
	sections := transform.Reconstruct(entries)

	tb := format.NewTable(mode)
	tb.Title(fmt.Sprintf("%s (%d entries)", args[0], len(entries)))
	tb.Header("Section", "Key", "Content")
	for _, key := range sections.Document.Keys() {
		v, _ := sections.Document.Get(key)
		tb.Row(display.Section(key), key, describe(v))
	}
	printTable(cmd, tb)

	out := cmd.OutOrStdout()
	if _, err := transform.Transform(transform.Input{Entries: entries}); err != nil {
		var fe *transform.FieldError
		if errors.As(err, &fe) {
			fmt.Fprintf(out, "Not ready: %s\n", display.FieldPath(strings.ReplaceAll(fe.Path, ".", "__")))
		}
		return err
	}
	fmt.Fprintln(out, "Ready for conversion.")
	return nil
}

// describe summarises one top-level document value.
func describe(v any) string {
	switch v := v.(type) {
	case *transform.Object:
		return plural(v.Len(), "field")
	case []*transform.Structure:
		return plural(len(v), "structure")
	case []*transform.Proposal:
		return plural(len(v), "proposal")
	case []*transform.System:
		return plural(len(v), "system")
	case []any:
		return plural(len(v), "item")
	case nil:
		return "empty"
	default:
		return format.Truncate(transform.Text(v), 40)
	}
}
