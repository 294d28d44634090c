// Annotation model populated by Decode.
//
// A File owns its Regions and Features. Regions come from the display
// layer of the container (coloured spans), Features from the annotation
// layer (named, typed, stranded spans). Feature embeds Region, which embeds
// Site, so presence flags and coordinates are plain field accesses on all
// three.
package gck

import "fmt"

// Site records whether an on-disk object owns a trailing name or comment
// entry in the names section that follows its block.
type Site struct {
	HasName    bool
	HasComment bool
	Position   int
}

// Colour is an RGB display colour.
type Colour struct {
	R, G, B byte
}

// Black reports whether every channel is zero. Black regions are the
// unannotated base sequence.
func (c Colour) Black() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Hex returns the colour as six upper-case hex digits.
func (c Colour) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Region is a coloured span of the sequence. Start and End are 1-based
// and inclusive. End >= Start is not guaranteed for damaged inputs.
type Region struct {
	Site
	Start    int
	End      int
	FontType byte
	Colour   Colour
	Grouping int16
	Display  bool
}

// Span returns End - Start.
func (r *Region) Span() int {
	return r.End - r.Start
}

// Contains reports whether o lies within r, boundaries included.
func (r *Region) Contains(o *Region) bool {
	return o.Start >= r.Start && o.End <= r.End
}

// Near reports whether both ends of o are within tol bases of r's.
func (r *Region) Near(o *Region, tol int) bool {
	return abs(r.Start-o.Start) <= tol && abs(r.End-o.End) <= tol
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Feature is a named, typed annotation.
type Feature struct {
	Region
	Name      string
	Comment   string
	Strand    Strand
	Type      RegionType
	Automatic bool // created by the editor itself rather than the user
}

// File is a decoded container.
type File struct {
	Path   string
	Type   FileType
	Size   int64
	Digest string

	Sequence       string
	SequenceLength int

	RegionBlockLength  int
	FeatureBlockLength int
	SiteBlockLength    int
	RegionCount        int
	FeatureCount       int
	SiteCount          int

	Regions  []Region
	Features []Feature

	ConstructName string
	Circular      bool

	// Warnings lists recoverable problems met while decoding.
	Warnings []string
}

func (f *File) warn(format string, args ...any) {
	f.Warnings = append(f.Warnings, fmt.Sprintf(format, args...))
}
