package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MalithGihan/annotation-extractor/internal/codesign"
	"github.com/MalithGihan/annotation-extractor/internal/extract"
	"github.com/MalithGihan/annotation-extractor/internal/output"
)

var screensOpts struct {
	designID string
	pageURL  string
	asJSON   bool
}

var screensCmd = &cobra.Command{
	Use:   "screens",
	Short: "List the screens of a design with their preview URLs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		designID := screensOpts.designID
		if designID == "" {
			id, ok := codesign.ParseDesignID(screensOpts.pageURL)
			if !ok {
				return extract.ErrNoDesign
			}
			designID = id
		}

		screens, err := newClient().Screens(cmd.Context(), designID)
		if err != nil {
			return err
		}
		logger.Debug("screens fetched", "design", designID, "count", len(screens))

		if screensOpts.asJSON {
			return output.Write(cmd.OutOrStdout(), screens)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPREVIEW")
		for _, s := range screens {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, s.PreviewURL())
		}
		return tw.Flush()
	},
}

func init() {
	f := screensCmd.Flags()
	f.StringVar(&screensOpts.designID, "design", "", "design id")
	f.StringVar(&screensOpts.pageURL, "url", "", "design page URL (alternative to --design)")
	f.BoolVar(&screensOpts.asJSON, "json", false, "print JSON instead of a table")
	screensCmd.MarkFlagsOneRequired("design", "url")
	screensCmd.MarkFlagsMutuallyExclusive("design", "url")
}
