package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hajduko/SaWinHETUtility/internal/format"
	"github.com/hajduko/SaWinHETUtility/internal/store"
)

var historyFlags struct {
	lead   string
	limit  int
	format string
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	f := cmd.Flags()
	f.StringVar(&historyFlags.lead, "lead", "", "Only conversions of this lead code")
	f.IntVar(&historyFlags.limit, "limit", 20, "Maximum rows (0 = all)")
	addFormatFlag(cmd, &historyFlags.format)
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	mode, err := format.ParseMode(historyFlags.format)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	convs, err := st.List(store.ListOptions{LeadCode: historyFlags.lead, Limit: historyFlags.limit})
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No conversions recorded.")
		return nil
	}

	at := now()
	tb := format.NewTable(mode)
	tb.Title("History")
	tb.Header("ID", "Lead", "Input", "Images", "PDF", "Output", "SHA-256", "When")
	for _, c := range convs {
		tb.Row(
			format.Truncate(c.ID, 8),
			c.LeadCode,
			c.InputKey,
			c.Images,
			format.FmtBytes(c.PDFBytes),
			format.FmtBytes(c.OutputBytes),
			format.Truncate(c.SHA256, 12),
			format.FmtAge(c.CreatedAt, at),
		)
	}
	tb.Footer(plural(len(convs), "conversion"), "", "", "", "", "", "", "")
	tb.Columns(
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
	)
	printTable(cmd, tb)
	return nil
}
