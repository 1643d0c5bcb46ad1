package main

import (
	"github.com/spf13/cobra"

	"github.com/hajduko/SaWinHETUtility/internal/display"
	"github.com/hajduko/SaWinHETUtility/internal/format"
	"github.com/hajduko/SaWinHETUtility/internal/photo"
)

var categoriesFlags struct {
	format string
}

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List image categories and which are required",
		Args:  cobra.NoArgs,
		RunE:  runCategories,
	}
	addFormatFlag(cmd, &categoriesFlags.format)
	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	mode, err := format.ParseMode(categoriesFlags.format)
	if err != nil {
		return err
	}
	tb := format.NewTable(mode)
	tb.Title("Image categories")
	tb.Header("Code", "Name", "Required")
	for _, s := range photo.Vocabulary() {
		tb.Row(string(s.Category), display.Category(string(s.Category)), display.Requirement(string(s.Requirement)))
	}
	tb.Columns(format.ColumnConfig{Number: 3, Align: format.AlignCenter})
	printTable(cmd, tb)
	return nil
}
