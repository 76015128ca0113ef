package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/MalithGihan/annotation-extractor/internal/codesign"
	"github.com/MalithGihan/annotation-extractor/internal/output"
)

var sliceOpts struct {
	thumb  string
	size   string
	toClip bool
}

var sliceCmd = &cobra.Command{
	Use:   "slice-url",
	Short: "Size a slice thumbnail URL to an export size",
	Long: `Rewrite the /thumbnail/WxH segment of a slice URL to the size of the
selected export, given as a label like "750px x 1624px".`,
	Example: `  annox slice-url --thumb https://cdn.example.com/img/a/thumbnail/100x100/format/png --size "750px x 1624px" --copy`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		u, ok := codesign.SliceURL(sliceOpts.thumb, sliceOpts.size)
		if !ok {
			return errors.Newf("cannot read a size from %q", sliceOpts.size)
		}
		if sliceOpts.toClip {
			if err := output.CopyText(u); err != nil {
				return err
			}
			logger.Info("slice URL copied to clipboard", "url", u)
			return nil
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), u)
		return err
	},
}

func init() {
	f := sliceCmd.Flags()
	f.StringVar(&sliceOpts.thumb, "thumb", "", "slice thumbnail URL")
	f.StringVar(&sliceOpts.size, "size", "", `export size label, e.g. "750px x 1624px"`)
	f.BoolVar(&sliceOpts.toClip, "copy", false, "copy the URL to the clipboard instead of printing it")
	_ = sliceCmd.MarkFlagRequired("thumb")
	_ = sliceCmd.MarkFlagRequired("size")
}
