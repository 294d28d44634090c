package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jpl-au/gck"
)

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the decoded regions and features of a container",
		Long: `Decodes a container and prints what was read, before any pairing,
classification or pruning. Useful for working out why a feature did or did
not make it into an export.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := gck.ParseDigest(a.cfg.Digest)
			if err != nil {
				return err
			}
			f, err := gck.Open(args[0], gck.DecodeOptions{Logger: a.logger, Digest: alg})
			if err != nil {
				return err
			}
			return a.printFile(f)
		},
	}
}

func (a *app) printFile(f *gck.File) error {
	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "file:\t%s (%s, %d bytes)\n", f.Path, f.Type, f.Size)
	fmt.Fprintf(w, "digest:\t%s\n", f.Digest)
	fmt.Fprintf(w, "construct:\t%s\n", f.ConstructName)
	fmt.Fprintf(w, "circular:\t%t\n", f.Circular)
	fmt.Fprintf(w, "sequence:\t%d bp\n", f.SequenceLength)
	fmt.Fprintf(w, "blocks:\tregions %d (%d), features %d (%d), sites %d (%d)\n",
		f.RegionBlockLength, f.RegionCount,
		f.FeatureBlockLength, f.FeatureCount,
		f.SiteBlockLength, f.SiteCount)
	for _, warn := range f.Warnings {
		fmt.Fprintf(w, "warning:\t%s\n", warn)
	}

	fmt.Fprintln(w, "\nREGION\tSTART\tEND\tCOLOUR\tDISPLAY")
	for i, r := range f.Regions {
		fmt.Fprintf(w, "%d\t%d\t%d\t#%s\t%t\n", i, r.Start, r.End, r.Colour.Hex(), r.Display)
	}

	fmt.Fprintln(w, "\nFEATURE\tSTART\tEND\tSTRAND\tTYPE\tAUTO\tNAME\tCOMMENT")
	for i, ft := range f.Features {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%t\t%s\t%s\n",
			i, ft.Start, ft.End, ft.Strand, ft.Type, ft.Automatic, ft.Name, ft.Comment)
	}
	return w.Flush()
}
