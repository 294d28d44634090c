// Enumerations shared by the decoder, the reconciler and the writers.
package gck

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RegionType classifies a feature. The numeric value is its stable machine
// code; String returns the GenBank feature key used on export.
type RegionType uint8

const (
	Gene RegionType = iota
	CDS
	MiscBinding
	MiscFeature
	MiscRecomb
	MiscRNA
	MiscSignal
	Primer
	PrimerBind
	RepOrigin
	SigPeptide
	Terminator
	Exclude
	Promoter
)

var regionTypeNames = [...]string{
	Gene:        "gene",
	CDS:         "CDS",
	MiscBinding: "misc_binding",
	MiscFeature: "misc_feature",
	MiscRecomb:  "misc_recomb",
	MiscRNA:     "misc_rna",
	MiscSignal:  "misc_signal",
	Primer:      "primer",
	PrimerBind:  "primer_bind",
	RepOrigin:   "rep_origin",
	SigPeptide:  "sig_peptide",
	Terminator:  "terminator",
	Exclude:     "exclude",
	Promoter:    "promoter",
}

// Code returns the machine code of t.
func (t RegionType) Code() byte {
	return byte(t)
}

func (t RegionType) String() string {
	if int(t) < len(regionTypeNames) {
		return regionTypeNames[t]
	}
	return fmt.Sprintf("RegionType(%d)", uint8(t))
}

// ParseRegionType maps a type name to a RegionType. Export names and the
// upper-case constant spelling ("MISC_FEATURE") are both accepted; matching
// ignores case.
func ParseRegionType(name string) (RegionType, error) {
	name = strings.TrimSpace(name)
	for i, n := range regionTypeNames {
		if strings.EqualFold(n, name) {
			return RegionType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Strand is the orientation of a feature. Values match the on-disk codes.
type Strand uint8

const (
	StrandNone    Strand = 0
	StrandReverse Strand = 1
	StrandForward Strand = 2
	StrandBoth    Strand = 3
)

// strandFromCode decodes the strand byte. Unknown codes are read as forward.
func strandFromCode(b byte) Strand {
	switch b {
	case 0:
		return StrandNone
	case 1:
		return StrandReverse
	case 2:
		return StrandForward
	case 3:
		return StrandBoth
	default:
		return StrandForward
	}
}

func (s Strand) String() string {
	switch s {
	case StrandNone:
		return "none"
	case StrandReverse:
		return "reverse"
	case StrandForward:
		return "forward"
	case StrandBoth:
		return "both"
	}
	return fmt.Sprintf("Strand(%d)", uint8(s))
}

// FileType is the container subtype. The two subtypes differ only in an
// optional block inside the trailing section and can only be told apart by
// file extension.
type FileType uint8

const (
	TypeGCC FileType = iota // .gcc
	TypeGCS                 // .gcs
)

func (t FileType) String() string {
	if t == TypeGCS {
		return "gcs"
	}
	return "gcc"
}

// FileTypeFromPath derives the subtype from a path's extension. A trailing
// .zst is looked through, so "vector.gcs.zst" is TypeGCS.
func FileTypeFromPath(path string) (FileType, error) {
	name := strings.TrimSuffix(strings.ToLower(filepath.Base(path)), zstdExt)
	switch filepath.Ext(name) {
	case ".gcc":
		return TypeGCC, nil
	case ".gcs":
		return TypeGCS, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedExt, path)
}

// BaseName returns the file name of path without its container and
// compression extensions.
func BaseName(path string) string {
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), zstdExt) {
		name = name[:len(name)-len(zstdExt)]
	}
	ext := filepath.Ext(name)
	switch strings.ToLower(ext) {
	case ".gcc", ".gcs":
		return name[:len(name)-len(ext)]
	}
	return name
}
