package gck

import (
	"bytes"
	"errors"
	"testing"
)

func TestLayoutConstants(t *testing.T) {
	if HeaderSize != 32 {
		t.Errorf("HeaderSize = %d, want 32", HeaderSize)
	}
	if RegionRecordSize != 44 {
		t.Errorf("RegionRecordSize = %d, want 44", RegionRecordSize)
	}
	if FeatureRecordSize != 92 {
		t.Errorf("FeatureRecordSize = %d, want 92", FeatureRecordSize)
	}
}

// TestReadHeader checks the block lengths and derived offsets for the
// plasmid fixture: 72 bases, three regions and two 0x5C byte features.
func TestReadHeader(t *testing.T) {
	data := fixtureBytes()
	c := NewCursor(bytes.NewReader(data), int64(len(data)))
	h, err := readHeader(c)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}
	want := header{sequenceLength: 72, regionBlockLength: 6 + 3*44, featureBlockLength: 6 + 2*92}
	if h != want {
		t.Errorf("header = %+v, want %+v", h, want)
	}
	if got := h.regionBlockStart(); got != 104 {
		t.Errorf("regionBlockStart = %d, want 104", got)
	}
	if got := h.featureBlockStart(); got != 246 {
		t.Errorf("featureBlockStart = %d, want 246", got)
	}
	if got := h.namesStart(); got != 440 {
		t.Errorf("namesStart = %d, want 440", got)
	}
	// The first name entry is the length-prefixed "lacZ=alpha".
	if data[440] != 10 || string(data[441:451]) != "lacZ=alpha" {
		t.Errorf("names section starts with %q", data[440:451])
	}
}

func TestReadHeaderShort(t *testing.T) {
	data := fixtureBytes()
	for _, n := range []int{0, HeaderSize - 1, HeaderSize + 72 + 2, 246 + 3} {
		c := NewCursor(bytes.NewReader(data[:n]), int64(n))
		if _, err := readHeader(c); !errors.Is(err, ErrTruncated) {
			t.Errorf("%d bytes: err = %v, want ErrTruncated", n, err)
		}
	}
}

func TestReadSequence(t *testing.T) {
	data := fixtureBytes()
	c := NewCursor(bytes.NewReader(data), int64(len(data)))
	seq, err := readSequence(c, 72)
	if err != nil {
		t.Fatalf("readSequence: %v", err)
	}
	if seq[:8] != "ATGCATGC" || len(seq) != 72 {
		t.Errorf("sequence = %q", seq)
	}
	if c.Offset() != HeaderSize+72 {
		t.Errorf("offset after sequence = %d, want %d", c.Offset(), HeaderSize+72)
	}
}
