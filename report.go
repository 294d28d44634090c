// JSON export.
//
// A Report carries the same content as a GenBank export plus decode
// metadata (subtype, digest, warnings), for tooling that would rather not
// parse flat files.
package gck

import (
	"io"

	json "github.com/goccy/go-json"
)

// Report is the JSON form of a reconciled File.
type Report struct {
	Source         string          `json:"source"`
	Type           string          `json:"type"`
	Digest         string          `json:"digest,omitempty"`
	Construct      string          `json:"construct"`
	Circular       bool            `json:"circular"`
	SequenceLength int             `json:"sequence_length"`
	Sequence       string          `json:"sequence"`
	Warnings       []string        `json:"warnings,omitempty"`
	Features       []ReportFeature `json:"features"`
}

// ReportFeature is one exported feature.
type ReportFeature struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Strand  string `json:"strand"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
	Colour  string `json:"colour,omitempty"`
}

// NewReport builds the report for f and its reconciled features.
func NewReport(f *File, features []*Feature) *Report {
	r := &Report{
		Source:         f.Path,
		Type:           f.Type.String(),
		Digest:         f.Digest,
		Construct:      f.ConstructName,
		Circular:       f.Circular,
		SequenceLength: f.SequenceLength,
		Sequence:       f.Sequence,
		Warnings:       f.Warnings,
		Features:       make([]ReportFeature, 0, len(features)),
	}
	for _, ft := range features {
		rf := ReportFeature{
			Start:  ft.Start,
			End:    ft.End,
			Strand: ft.Strand.String(),
			Type:   ft.Type.String(),
			Name:   ft.Name,
		}
		if ft.HasComment {
			rf.Comment = ft.Comment
		}
		if !ft.Colour.Black() {
			rf.Colour = "#" + ft.Colour.Hex()
		}
		r.Features = append(r.Features, rf)
	}
	return r
}

// WriteJSON writes the report for f and its reconciled features.
func WriteJSON(w io.Writer, f *File, features []*Feature) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(f, features))
}
