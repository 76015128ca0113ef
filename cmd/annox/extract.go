package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/MalithGihan/annotation-extractor/internal/annotation"
	"github.com/MalithGihan/annotation-extractor/internal/extract"
	"github.com/MalithGihan/annotation-extractor/internal/ingest"
	"github.com/MalithGihan/annotation-extractor/internal/output"
	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

var extractOpts struct {
	req    extract.Request
	file   string
	toClip bool
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the annotation tree of one layer",
	Long: `Fetch a screen's annotation data and print the sanitized layer tree
rooted at the selected layer. Select the layer with --object-id or --name
(the first layer with that name wins). Use --file to read a meta document
saved on disk instead of fetching it.`,
	Example: `  annox extract --url https://codesign.qq.com/app/design/123456/board --screen s1 --object-id 42 --copy
  annox extract --file screen.json --name "Nav Bar"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			tree types.AnnotationNode
			err  error
		)
		if extractOpts.file != "" {
			tree, err = extractFromFile(extractOpts.file, extractOpts.req.Selector)
		} else {
			tree, err = newExtractor().Run(cmd.Context(), extractOpts.req)
		}
		if errors.Is(err, extract.ErrNotFound) {
			logger.Warn("no layer matches", "selector", extractOpts.req.Selector)
			return nil
		}
		if err != nil {
			return err
		}

		if extractOpts.toClip {
			if err := output.Copy(tree); err != nil {
				return err
			}
			logger.Info("annotation copied to clipboard", "layer", tree.Name, "object_id", tree.ObjectID)
			return nil
		}
		return output.Write(cmd.OutOrStdout(), tree)
	},
}

func extractFromFile(path string, sel annotation.Selector) (types.AnnotationNode, error) {
	p, err := ingest.ParseMeta(path)
	if err != nil {
		return types.AnnotationNode{}, err
	}
	for _, n := range p.Notes {
		logger.Warn(n, "file", path)
	}
	return extract.FromDocument(p.Doc, sel)
}

func init() {
	f := extractCmd.Flags()
	f.StringVar(&extractOpts.req.DesignID, "design", "", "design id")
	f.StringVar(&extractOpts.req.PageURL, "url", "", "design page URL (alternative to --design)")
	f.StringVar(&extractOpts.req.ScreenID, "screen", "", "screen id")
	f.StringVar(&extractOpts.req.ObjectID, "object-id", "", "object id of the root layer")
	f.StringVar(&extractOpts.req.Name, "name", "", "name of the root layer")
	f.StringVar(&extractOpts.file, "file", "", "read the meta document from this file")
	f.BoolVar(&extractOpts.toClip, "copy", false, "copy the tree to the clipboard instead of printing it")
	extractCmd.MarkFlagsOneRequired("object-id", "name")
	extractCmd.MarkFlagsMutuallyExclusive("design", "url")
	extractCmd.MarkFlagsMutuallyExclusive("file", "screen")
}
