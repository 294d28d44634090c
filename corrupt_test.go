// Damaged input tests.
//
// A decoder for an undocumented format spends most of its life on files
// that do not quite match what it expects. These tests take the valid
// plasmid fixture, damage specific length fields, and check that Decode
// either reports the documented sentinel or, for the trailing heuristic,
// falls back. Offsets below are for gcktest.Plasmid: 72 bases, three
// regions, two 0x5C byte features.
//
//	  28  sequence length (int32)
//	 104  region block length, 112 region count (int16)
//	 246  feature block length, 254 feature count (int16)
//	 440  names: "lacZ=alpha" (1+10), comment length at 451
//	 463  site block
package gck

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strconv"
	"testing"
)

const (
	offSeqLength     = HeaderSize - 4
	offRegionCount   = 112
	offFeatureLength = 246
	offFeatureCount  = 254
	offCommentLength = 451
	offSiteBlock     = 463
)

func patched(off int, b ...byte) []byte {
	data := fixtureBytes()
	copy(data[off:], b)
	return data
}

func decodeErr(data []byte, typ FileType) error {
	_, err := Decode(bytes.NewReader(data), int64(len(data)), typ, DecodeOptions{})
	return err
}

// TestCorruptLayoutOffsets guards the offsets used below against changes
// to the fixture.
func TestCorruptLayoutOffsets(t *testing.T) {
	data := fixtureBytes()
	if got := binary.BigEndian.Uint16(data[offRegionCount:]); got != 3 {
		t.Errorf("region count at %d = %d, want 3", offRegionCount, got)
	}
	if got := binary.BigEndian.Uint16(data[offFeatureCount:]); got != 2 {
		t.Errorf("feature count at %d = %d, want 2", offFeatureCount, got)
	}
	if got := binary.BigEndian.Uint32(data[offCommentLength:]); got != 8 {
		t.Errorf("comment length at %d = %d, want 8", offCommentLength, got)
	}
	if got := binary.BigEndian.Uint32(data[offSiteBlock:]); got != 6+2*88 {
		t.Errorf("site block length at %d = %d, want %d", offSiteBlock, got, 6+2*88)
	}
}

func TestCorruptFatal(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		// The sequence length points far past the end; the region block
		// length cannot be read.
		{"sequence length too large", patched(offSeqLength, 0, 1, 0, 0), ErrTruncated},
		{"sequence length negative", patched(offSeqLength, 0xFF, 0xFF, 0xFF, 0xF0), ErrNegativeLength},
		{"region count negative", patched(offRegionCount, 0xFF, 0xFF), ErrNegativeLength},
		{"region count too large", patched(offRegionCount, 0x7F, 0xFF), ErrTruncated},
		{"feature count negative", patched(offFeatureCount, 0x80, 0x00), ErrNegativeLength},
		// Record size comes out enormous, so the first record overruns.
		{"feature block length too large", patched(offFeatureLength, 0x7F, 0, 0, 0), ErrTruncated},
		// Record size comes out below the last known field.
		{"feature block length too small", patched(offFeatureLength, 0, 0, 0, 50), ErrTruncated},
		{"comment length negative", patched(offCommentLength, 0xFF, 0xFF, 0xFF, 0xFE), ErrNegativeLength},
		{"comment length too large", patched(offCommentLength, 0, 0x10, 0, 0), ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := decodeErr(tt.data, TypeGCC); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestCorruptTrailerRecovers damages the site block only. Everything up to
// the names still decodes; topology falls back to circular with a warning.
func TestCorruptTrailerRecovers(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"site count negative", patched(offSiteBlock+8, 0xFF, 0xFF)},
		{"site count too large", patched(offSiteBlock+8, 0x7F, 0xFF)},
		{"site block length zero", patched(offSiteBlock, 0, 0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := decodeBytes(t, tt.data, TypeGCC)
			if !f.Circular {
				t.Error("Circular = false, want fallback true")
			}
			if len(f.Warnings) == 0 {
				t.Error("no warning recorded")
			}
			if f.FeatureCount != 2 || f.Features[0].Name != "lacZ=alpha" {
				t.Errorf("features lost: %d, %+v", f.FeatureCount, f.Features)
			}
		})
	}
}

// TestCorruptNeverPanics damages every byte of the fixture in turn and
// truncates it at every length. Decode may fail, but must not panic, and
// a failed decode returns no File.
func TestCorruptNeverPanics(t *testing.T) {
	orig := fixtureBytes()
	check := func(data []byte, what string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("%s: panic: %v", what, r)
			}
		}()
		for _, typ := range []FileType{TypeGCC, TypeGCS} {
			f, err := Decode(bytes.NewReader(data), int64(len(data)), typ, DecodeOptions{})
			if (err == nil) == (f == nil) {
				t.Fatalf("%s: File %v with err %v", what, f != nil, err)
			}
			if f != nil {
				Reconcile(f, Options{Level: LevelHighest, IncludeUnnamed: true})
			}
		}
	}
	for i := range orig {
		for _, v := range []byte{0x00, 0x7F, 0xFF} {
			data := append([]byte(nil), orig...)
			data[i] = v
			check(data, "byte "+strconv.Itoa(i))
		}
	}
	for n := range len(orig) {
		check(orig[:n], "length "+strconv.Itoa(n))
	}
}
