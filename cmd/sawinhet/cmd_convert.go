package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hajduko/SaWinHETUtility/internal/convert"
	"github.com/hajduko/SaWinHETUtility/internal/manifest"
)

var convertFlags struct {
	record     string
	pdf        string
	manifest   string
	images     []string
	photos     []string
	categories []string
	notes      []string
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert one record into a certificate document",
		Long: "Convert one flat record, its calculations PDF and photos into <lead-code>.json\n" +
			"in the output directory. Inputs come from flags or from a --manifest file.\n\n" +
			"Images are given either as repeated --image path=...,category=...,note=...\n" +
			"or as parallel --photo/--category/--note lists of equal length.",
		Args: cobra.NoArgs,
		RunE: runConvert,
	}

	f := cmd.Flags()
	f.StringVar(&convertFlags.record, "record", "", "Path to the flat record JSON")
	f.StringVar(&convertFlags.pdf, "pdf", "", "Path to the calculations PDF")
	f.StringVarP(&convertFlags.manifest, "manifest", "m", "", "Path to a job manifest (YAML or JSON)")
	f.StringArrayVar(&convertFlags.images, "image", nil, "Image as path=<file>,category=<code>[,note=<text>] (repeatable)")
	f.StringArrayVar(&convertFlags.photos, "photo", nil, "Image file (repeatable, paired with --category)")
	f.StringArrayVar(&convertFlags.categories, "category", nil, "Image category (repeatable)")
	f.StringArrayVar(&convertFlags.notes, "note", nil, "Image note (repeatable, optional)")
	cmd.MarkFlagsMutuallyExclusive("manifest", "record")
	return cmd
}

func runConvert(cmd *cobra.Command, _ []string) error {
	job, err := convertJob()
	if err != nil {
		return err
	}
	runner, closeStore, err := openRunner()
	if err != nil {
		return err
	}
	defer closeStore()

	conv, err := runner.Run(cmd.Context(), job)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), conv.OutputPath)
	return nil
}

func convertJob() (convert.Job, error) {
	f := convertFlags
	imageFlags := len(f.images) + len(f.photos) + len(f.categories) + len(f.notes)

	if f.manifest != "" {
		if f.pdf != "" || imageFlags > 0 {
			return convert.Job{}, errors.New("--manifest cannot be combined with --pdf or image flags")
		}
		m, err := manifest.LoadFromPath(f.manifest)
		if err != nil {
			return convert.Job{}, err
		}
		return convert.FromManifest(m), nil
	}
	if f.record == "" {
		return convert.Job{}, errors.New("either --record or --manifest is required")
	}

	job := convert.Job{Record: f.record, PDF: f.pdf}
	for _, s := range f.images {
		img, err := manifest.ParseImageFlag(s)
		if err != nil {
			return convert.Job{}, err
		}
		job.Images = append(job.Images, img)
	}
	if len(f.photos)+len(f.categories)+len(f.notes) > 0 {
		zipped, err := manifest.Zip(f.photos, f.categories, f.notes)
		if err != nil {
			return convert.Job{}, err
		}
		job.Images = append(job.Images, zipped...)
	}
	return job, nil
}
