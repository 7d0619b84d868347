package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/extentix/internal/build"
	"github.com/standardbeagle/extentix/internal/extract"
	"github.com/standardbeagle/extentix/internal/indextotext"
	"github.com/standardbeagle/extentix/internal/lexicon"
)

// index bundles the in-memory structures a build pass populates: the L3
// term dictionary and its index-to-text map. Persisting these to the
// on-disk formats of spec §6.1/§6.2 is the index-build pipeline's job,
// named in spec.md §1 as out of this module's scope; this command
// exercises the collaborator surfaces (internal/build, internal/extract)
// that feed that pipeline.
type index struct {
	lex *lexicon.Lexicon
	i2t *indextotext.Map
}

func buildIndexFromFiles(root string, rel []string, extractor extract.TextExtractor, stemmingLevel int) (*index, error) {
	idx := &index{
		lex: lexicon.New(lexicon.NewStemmer(stemmingLevel >= 3, 3, nil), lexicon.NewFuzzyExpander(false, 0, 0)),
		i2t: indextotext.New(),
	}

	var position int64
	for _, r := range rel {
		text, err := extractor.Extract(root + string(os.PathSeparator) + r)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", r, err)
		}
		if err := idx.i2t.Append(position, 0); err != nil {
			return nil, err
		}
		for _, term := range strings.Fields(string(text)) {
			if err := idx.lex.Add(strings.ToLower(term), position); err != nil {
				return nil, fmt.Errorf("indexing %s at %d: %w", r, position, err)
			}
			position++
		}
	}
	return idx, nil
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "walk the document collection and report lexicon statistics",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "include", Usage: "include glob patterns"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "exclude glob patterns"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			root := c.String("root")
			filter := build.Filter{Include: c.StringSlice("include"), Exclude: c.StringSlice("exclude")}
			rel, err := build.Walk(root, filter)
			if err != nil {
				return fmt.Errorf("walking %s: %w", root, err)
			}
			idx, err := buildIndexFromFiles(root, rel, extract.NewPlainText(os.ReadFile), cfg.Lexicon.StemmingLevel)
			if err != nil {
				return err
			}
			first, last := idx.lex.IndexRange()
			fmt.Printf("files indexed: %d\nterms: %d\nindex range: [%d, %d]\nindex-to-text entries: %d\n",
				len(rel), idx.lex.TermCount(), first, last, idx.i2t.Len())
			return nil
		},
	}
}
