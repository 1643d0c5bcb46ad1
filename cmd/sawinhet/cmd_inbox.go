package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hajduko/SaWinHETUtility/internal/format"
	"github.com/hajduko/SaWinHETUtility/internal/inbox"
	"github.com/hajduko/SaWinHETUtility/internal/manifest"
)

var inboxFlags struct {
	format string
}

func newInboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List pending records in the inbox",
		Args:  cobra.NoArgs,
		RunE:  runInbox,
	}
	addFormatFlag(cmd, &inboxFlags.format)
	return cmd
}

func runInbox(cmd *cobra.Command, _ []string) error {
	mode, err := format.ParseMode(inboxFlags.format)
	if err != nil {
		return err
	}
	box, err := inbox.Open(cfg.InboxDir)
	if err != nil {
		return err
	}
	items, err := box.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Inbox %s is empty.\n", cfg.InboxDir)
		return nil
	}

	at := now()
	tb := format.NewTable(mode)
	tb.Title("Inbox")
	tb.Header("Key", "Lead", "Size", "Modified", "Manifest")
	var total int64
	for _, it := range items {
		path, err := box.Path(it.Key)
		if err != nil {
			return err
		}
		_, hasManifest := manifest.Sibling(path, isFile)
		tb.Row(it.Key, inbox.LeadCode(it.Key), format.FmtBytes(it.Size), format.FmtAge(it.ModTime, at), format.BoolMark(hasManifest))
		total += it.Size
	}
	tb.Footer(plural(len(items), "record"), "", format.FmtBytes(total), "", "")
	tb.Columns(format.ColumnConfig{Number: 3, Align: format.AlignRight})
	printTable(cmd, tb)
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
