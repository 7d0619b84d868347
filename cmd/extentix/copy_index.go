package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/extentix/internal/compactidx"
	"github.com/standardbeagle/extentix/internal/store"
)

// copyIndexCommand relocates a compact-index trailer to a new file,
// shifting every interval descriptor by the page-range delta, grounded
// on original_source/terabyte/copy_index.cpp's copyHeaderAndDescriptors
// (SPEC_FULL §C.2).
func copyIndexCommand() *cli.Command {
	return &cli.Command{
		Name:      "copy-index",
		Usage:     "relocate a compact-index trailer into a new file handle",
		ArgsUsage: "INPUT_INDEX IN_HANDLE OUTPUT_INDEX OUT_HANDLE DELTA",
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 5 {
				return fmt.Errorf("copy-index: INPUT_INDEX IN_HANDLE OUTPUT_INDEX OUT_HANDLE DELTA are all required")
			}
			inPath, outPath := c.Args().Get(0), c.Args().Get(2)
			var inHandle, outHandle int32
			var delta int64
			if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &inHandle); err != nil {
				return fmt.Errorf("copy-index: invalid IN_HANDLE: %w", err)
			}
			if _, err := fmt.Sscanf(c.Args().Get(3), "%d", &outHandle); err != nil {
				return fmt.Errorf("copy-index: invalid OUT_HANDLE: %w", err)
			}
			if _, err := fmt.Sscanf(c.Args().Get(4), "%d", &delta); err != nil {
				return fmt.Errorf("copy-index: invalid DELTA: %w", err)
			}

			in, err := store.Open(inPath)
			if err != nil {
				return fmt.Errorf("opening %s: %w", inPath, err)
			}
			defer in.Close()
			inFile, err := in.Open(inHandle)
			if err != nil {
				return fmt.Errorf("opening input handle %d: %w", inHandle, err)
			}
			_, descriptors, err := compactidx.Read(inFile)
			if err != nil {
				return fmt.Errorf("reading trailer: %w", err)
			}

			relocated := compactidx.Relocate(descriptors, delta)

			out, err := store.Open(outPath)
			if err != nil {
				return fmt.Errorf("opening %s: %w", outPath, err)
			}
			defer out.Close()
			outFile, err := out.Open(outHandle)
			if err != nil {
				return fmt.Errorf("opening output handle %d: %w", outHandle, err)
			}
			if err := compactidx.Write(outFile, relocated); err != nil {
				return fmt.Errorf("writing relocated trailer: %w", err)
			}

			fmt.Printf("relocated %d descriptors by delta %d\n", len(relocated), delta)
			return nil
		},
	}
}
