// Package gck decodes Gene Construction Kit container files (.gcc and .gcs)
// into an annotation model and reconciles that model into a clean,
// classified feature list ready for GenBank export.
//
// The container format is undocumented. Nothing in the bytes identifies a
// record's type; every section is located by adding up lengths read from
// earlier sections, so decoding is a single forward pass over a Cursor.
// Colour-annotated display regions and typed features are stored in two
// separate lists that only loosely agree with each other, and Reconcile
// merges them, classifies features against a rule list, and prunes
// duplicates according to a Level.
package gck

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// tell a damaged input (ErrTruncated, ErrNegativeLength) apart from a
// configuration problem (ErrInvalidPattern, ErrUnknownType, ErrInvalidLevel).
var (
	ErrTruncated      = errors.New("truncated container")
	ErrNegativeLength = errors.New("negative length field")
	ErrInvalidPattern = errors.New("invalid regex pattern")
	ErrUnknownType    = errors.New("unknown region type")
	ErrInvalidLevel   = errors.New("invalid aggressiveness level")
	ErrDecompress     = errors.New("decompression failed")
	ErrUnsupportedExt = errors.New("unsupported file extension")
	ErrUnknownDigest  = errors.New("unknown digest algorithm")
)
