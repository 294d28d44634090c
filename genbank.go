// GenBank flat file export.
//
// The writer formats what Reconcile produced and performs no filtering of
// its own. Feature keys start at column 6, locations and qualifiers at
// column 22. Optional ApE qualifiers carry display colours and arrow
// shapes for the ApE plasmid editor.
package gck

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// GenBankOptions configures WriteGenBank.
type GenBankOptions struct {
	ApE  bool      // add ApEinfo colour and arrow qualifiers
	Date time.Time // LOCUS date; zero means now
}

const (
	qualifierIndent = "                     " // 21 spaces
	basesPerGroup   = 10
	groupsPerLine   = 6
)

// WriteGenBank writes f and its reconciled features as a GenBank record.
func WriteGenBank(w io.Writer, f *File, features []*Feature, opts GenBankOptions) error {
	bw := bufio.NewWriter(w)
	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	topology := "linear      "
	if f.Circular {
		topology = "circular    "
	}
	fmt.Fprintf(bw, "%-12s%-16.15s%10d bp ds-DNA     %s %s\n",
		"LOCUS", f.ConstructName, f.SequenceLength, topology, date.Format("2-Jan-2006"))
	bw.WriteString("DEFINITION .\n")
	bw.WriteString("ACCESSION   \n")
	bw.WriteString("VERSION     \n")
	bw.WriteString("SOURCE     .\n")
	bw.WriteString("  ORGANISM .\n")
	bw.WriteString("COMMENT\n")
	if opts.ApE {
		bw.WriteString("COMMENT    ApEinfo:methylated:1\n")
	}

	fmt.Fprintf(bw, "%-21s%s\n", "FEATURES", "Location/Qualifiers")
	for _, ft := range features {
		fmt.Fprintf(bw, "%5s%-16.15s", " ", ft.Type)
		if ft.Strand == StrandReverse {
			fmt.Fprintf(bw, "complement(%d..%d)\n", ft.Start, ft.End)
		} else {
			fmt.Fprintf(bw, "%d..%d\n", ft.Start, ft.End)
		}
		fmt.Fprintf(bw, "%s/label=%-2.52s\n", qualifierIndent, ft.Name)
		if ft.HasComment {
			fmt.Fprintf(bw, "%s/comment=\"%-2s\"\n", qualifierIndent, ft.Comment)
		}
		if opts.ApE {
			writeApE(bw, ft)
		}
	}

	writeOrigin(bw, f.Sequence)
	bw.WriteString("//\n")
	return bw.Flush()
}

// writeApE writes ApE display qualifiers. Features without a colour get
// red for genes and green for everything else.
func writeApE(bw *bufio.Writer, ft *Feature) {
	colour := "#00ff00"
	switch {
	case !ft.Colour.Black():
		colour = "#" + ft.Colour.Hex()
	case ft.Type == Gene:
		colour = "#ff0000"
	}
	fmt.Fprintf(bw, "%s/ApEinfo_fwdcolor=%s\n", qualifierIndent, colour)
	fmt.Fprintf(bw, "%s/ApEinfo_revcolor=%s\n", qualifierIndent, colour)

	arrow := "{{} {} 0}"
	switch ft.Strand {
	case StrandForward, StrandReverse:
		arrow = "{{0 1 2 0 0 -1} {} 0}"
	case StrandBoth:
		arrow = "{{0 1 2 0 0 -1} {0 1 2 0 0 -1} 0}"
	}
	fmt.Fprintf(bw, "%s/ApEinfo_graphicformat=arrow_data %s\n", qualifierIndent, arrow)
	fmt.Fprintf(bw, "%swidth 5 offset 0\n", qualifierIndent)
}

// writeOrigin writes the sequence in lines of 60 bases, in groups of ten,
// each line led by the 1-based position of its first base.
func writeOrigin(bw *bufio.Writer, seq string) {
	bw.WriteString("ORIGIN\n")
	const perLine = basesPerGroup * groupsPerLine
	for i := 0; i < len(seq); i += perLine {
		fmt.Fprintf(bw, "%9d", i+1)
		end := min(i+perLine, len(seq))
		for g := i; g < end; g += basesPerGroup {
			bw.WriteByte(' ')
			bw.WriteString(seq[g:min(g+basesPerGroup, end)])
		}
		bw.WriteByte('\n')
	}
}
