package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hajduko/SaWinHETUtility/internal/convert"
	"github.com/hajduko/SaWinHETUtility/internal/display"
	"github.com/hajduko/SaWinHETUtility/internal/format"
	"github.com/hajduko/SaWinHETUtility/internal/inbox"
)

var batchFlags struct {
	format string
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert every inbox record that has a manifest",
		Long: "Convert every record in the inbox that has a sibling manifest\n" +
			"(<name>.manifest.yaml, .yml or .json). Records without a manifest are\n" +
			"listed as skipped. Exits non-zero when any conversion fails.",
		Args: cobra.NoArgs,
		RunE: runBatch,
	}
	addFormatFlag(cmd, &batchFlags.format)
	return cmd
}

func runBatch(cmd *cobra.Command, _ []string) error {
	mode, err := format.ParseMode(batchFlags.format)
	if err != nil {
		return err
	}
	runner, closeStore, err := openRunner()
	if err != nil {
		return err
	}
	defer closeStore()

	box, err := inbox.Open(cfg.InboxDir)
	if err != nil {
		return err
	}
	work, err := convert.InboxJobs(cmd.Context(), box)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(work.Jobs) == 0 && len(work.Pending) == 0 && len(work.Invalid) == 0 {
		fmt.Fprintf(out, "Inbox %s is empty.\n", cfg.InboxDir)
		return nil
	}

	results := append(runner.RunBatch(cmd.Context(), work.Jobs, cfg.Workers), work.Invalid...)

	tb := format.NewTable(mode)
	tb.Title("Batch")
	tb.Header("Input", "Lead", "Outcome", "Detail", "Duration")
	for _, res := range results {
		key := res.Job.Key()
		if res.Err != nil {
			tb.Row(key, inbox.LeadCode(key), display.Outcome("failed"), res.Err.Error(), format.FmtDuration(res.Duration))
			continue
		}
		tb.Row(key, res.Conversion.LeadCode, display.Outcome("converted"), res.Conversion.OutputPath, format.FmtDuration(res.Duration))
	}
	for _, it := range work.Pending {
		tb.Row(it.Key, inbox.LeadCode(it.Key), display.Outcome("skipped"), "no manifest", "-")
	}
	tb.Columns(format.ColumnConfig{Number: 4, MaxWidth: 60})
	printTable(cmd, tb)

	if n := convert.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d conversions failed", n, len(results))
	}
	return nil
}
