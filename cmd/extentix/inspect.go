package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/extentix/internal/compactidx"
	"github.com/standardbeagle/extentix/internal/store"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print a compact-index trailer's interval directory",
		ArgsUsage: "INDEX_FILE HANDLE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "kdl", Usage: "render as a KDL sidecar instead of a table"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 2 {
				return fmt.Errorf("inspect: INDEX_FILE and HANDLE are required")
			}
			path := c.Args().Get(0)
			var handle int32
			if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &handle); err != nil {
				return fmt.Errorf("inspect: invalid HANDLE %q: %w", c.Args().Get(1), err)
			}

			s, err := store.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer s.Close()

			f, err := s.Open(handle)
			if err != nil {
				return fmt.Errorf("opening file handle %d: %w", handle, err)
			}
			hdr, descriptors, err := compactidx.Read(f)
			if err != nil {
				return fmt.Errorf("reading compact-index trailer: %w", err)
			}

			if c.Bool("kdl") {
				fmt.Print(compactidx.WriteSidecarKDL(descriptors))
				return nil
			}
			fmt.Printf("fingerprint: %#x\ndescriptors: %d\n", hdr.Fingerprint, hdr.DescriptorCount)
			for _, d := range descriptors {
				fmt.Printf("  [%d, %d]  %q .. %q\n", d.IntervalStart, d.IntervalEnd, d.FirstTerm, d.LastTerm)
			}
			return nil
		},
	}
}
