package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/extentix/internal/build"
	"github.com/standardbeagle/extentix/internal/extent"
	"github.com/standardbeagle/extentix/internal/extract"
	"github.com/standardbeagle/extentix/internal/query"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "AND-combine one or more terms and print matching extents",
		ArgsUsage: "TERM [TERM...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "maximum extents to print (0 = unbounded)", Value: 20},
		},
		Action: func(c *cli.Context) error {
			terms := c.Args().Slice()
			if len(terms) == 0 {
				return fmt.Errorf("query: at least one TERM is required")
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			root := c.String("root")
			rel, err := build.Walk(root, build.Filter{})
			if err != nil {
				return fmt.Errorf("walking %s: %w", root, err)
			}
			idx, err := buildIndexFromFiles(root, rel, extract.NewPlainText(os.ReadFile), cfg.Lexicon.StemmingLevel)
			if err != nil {
				return err
			}

			compiler := query.NewCompiler(idx.lex)
			var expr *query.Expr
			if len(terms) == 1 {
				expr = query.Term(terms[0])
			} else {
				leaves := make([]*query.Expr, len(terms))
				for i, t := range terms {
					leaves[i] = query.Term(t)
				}
				expr = query.And(leaves...)
			}
			list := compiler.Compile(expr)

			ctx, cancel := ctxWithInterrupt()
			defer cancel()
			driver := query.NewDriver(list)
			results, err := driver.Collect(ctx, 0, extent.MaxOffset, c.Int("limit"))
			if err != nil {
				return err
			}
			for _, e := range results {
				fmt.Printf("[%d, %d]\n", e.Start, e.End)
			}
			fmt.Printf("%d match(es)\n", len(results))
			return nil
		},
	}
}
