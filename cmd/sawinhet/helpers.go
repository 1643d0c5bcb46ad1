package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hajduko/SaWinHETUtility/internal/convert"
	"github.com/hajduko/SaWinHETUtility/internal/format"
	"github.com/hajduko/SaWinHETUtility/internal/inbox"
	"github.com/hajduko/SaWinHETUtility/internal/logging"
	"github.com/hajduko/SaWinHETUtility/internal/store"
)

// now is replaced in tests to pin relative ages.
var now = time.Now

// openRunner wires the inbox, outbox and ledger from cfg. The returned
// close function releases the ledger.
func openRunner() (*convert.Runner, func() error, error) {
	box, err := inbox.Open(cfg.InboxDir)
	if err != nil {
		return nil, nil, err
	}
	out, err := inbox.OpenOutbox(cfg.OutputDir)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	r := &convert.Runner{
		Inbox:     box,
		Outbox:    out,
		Store:     st,
		KeepInput: cfg.KeepInput,
		Logger:    logging.New("convert"),
	}
	return r, st.Close, nil
}

// addFormatFlag registers --format on a listing command.
func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "format", "table", "Output format: table, markdown or csv")
}

func printTable(cmd *cobra.Command, tb format.TableBuilder) {
	fmt.Fprintln(cmd.OutOrStdout(), tb.String())
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return format.FmtCount(int64(n)) + " " + noun + "s"
}
