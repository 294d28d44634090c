// Package gcktest builds synthetic containers for tests.
//
// Only the fields the decoder understands are written; everything else in
// a record is zero. Positions are given the way they are stored: Start is
// 0-based, End is 1-based.
package gcktest

import (
	"bytes"
	"encoding/binary"
)

// Sizes mirrored from the decoder so fixtures do not depend on it.
const (
	headerSize         = 0x20
	regionRecordSize   = 0x2C
	featureRecordSize  = 0x5C
	siteRecordSize     = 88
	generationSize     = 260
	constructNameGap   = 706
	topologyGap        = 16
	automaticMarker    = 0x0115
	countedBlockPrefix = 6
)

// Region is one region record.
type Region struct {
	Start, End int32
	Font       byte
	R, G, B    byte
}

// Feature is one feature record and its names entry.
type Feature struct {
	Start, End int32
	CDS        bool
	Strand     byte
	R, G, B    byte
	Name       string // empty: no name entry
	Comment    string // empty: no comment entry
	Automatic  bool
}

// Site is one cut site record and its names entry.
type Site struct {
	Name    string
	Comment string
}

// Trailer is everything after the feature names.
type Trailer struct {
	Sites       []Site
	Unknown     []byte
	Generations int16
	GCSBlock    []byte // written only when GCS is set and Generations > 0
	Construct   string
	Topology    byte
}

// Container describes a whole file.
type Container struct {
	Sequence string
	Regions  []Region
	Features []Feature

	// FeatureRecordSize overrides the 0x5C default.
	FeatureRecordSize int
	// RegionPadding adds bytes at the end of the region block.
	RegionPadding int

	GCS     bool
	Trailer *Trailer // nil: file ends after the feature names
}

// Bytes encodes the container.
func (c Container) Bytes() []byte {
	var b bytes.Buffer
	seqLen := int32(len(c.Sequence))

	hdr := make([]byte, headerSize)
	binary.BigEndian.PutUint32(hdr[headerSize-4:], uint32(seqLen))
	b.Write(hdr)
	b.WriteString(c.Sequence)

	// Region block.
	putInt32(&b, int32(countedBlockPrefix+regionRecordSize*len(c.Regions)+c.RegionPadding))
	putInt32(&b, seqLen)
	putInt16(&b, int16(len(c.Regions)))
	for _, r := range c.Regions {
		rec := make([]byte, regionRecordSize)
		binary.BigEndian.PutUint32(rec[0:], uint32(r.Start))
		binary.BigEndian.PutUint32(rec[4:], uint32(r.End))
		rec[12] = r.Font
		rec[16], rec[18], rec[20] = r.R, r.G, r.B
		b.Write(rec)
	}
	b.Write(make([]byte, c.RegionPadding))

	// Feature block.
	size := c.FeatureRecordSize
	if size == 0 {
		size = featureRecordSize
	}
	putInt32(&b, int32(countedBlockPrefix+size*len(c.Features)))
	putInt32(&b, seqLen)
	putInt16(&b, int16(len(c.Features)))
	for _, f := range c.Features {
		// Records shorter than the known fields are written truncated.
		rec := make([]byte, max(size, featureRecordSize))
		binary.BigEndian.PutUint32(rec[0:], uint32(f.Start))
		binary.BigEndian.PutUint32(rec[4:], uint32(f.End))
		if f.CDS {
			binary.BigEndian.PutUint16(rec[14:], 1)
		}
		rec[30] = f.Strand
		rec[42], rec[44], rec[46] = f.R, f.G, f.B
		if f.Name != "" {
			binary.BigEndian.PutUint32(rec[48:], 1)
		}
		if f.Comment != "" {
			binary.BigEndian.PutUint32(rec[52:], 1)
		}
		if f.Automatic {
			binary.BigEndian.PutUint16(rec[56:], automaticMarker)
		}
		b.Write(rec[:size])
	}
	for _, f := range c.Features {
		putNames(&b, f.Name, f.Comment)
	}

	if t := c.Trailer; t != nil {
		putInt32(&b, int32(countedBlockPrefix+siteRecordSize*len(t.Sites)))
		putInt32(&b, seqLen)
		putInt16(&b, int16(len(t.Sites)))
		for _, s := range t.Sites {
			rec := make([]byte, siteRecordSize)
			if s.Name != "" {
				binary.BigEndian.PutUint32(rec[32:], 1)
			}
			if s.Comment != "" {
				binary.BigEndian.PutUint32(rec[36:], 1)
			}
			b.Write(rec)
		}
		for _, s := range t.Sites {
			putNames(&b, s.Name, s.Comment)
		}
		putInt32(&b, int32(len(t.Unknown)))
		b.Write(t.Unknown)
		putInt16(&b, t.Generations)
		if t.Generations > 0 {
			b.Write(make([]byte, generationSize*int(t.Generations)))
		}
		if c.GCS && t.Generations > 0 && len(t.GCSBlock) > 0 {
			putInt32(&b, int32(len(t.GCSBlock)))
			b.Write(t.GCSBlock)
		}
		b.Write(make([]byte, constructNameGap))
		b.WriteByte(byte(len(t.Construct)))
		b.WriteString(t.Construct)
		b.Write(make([]byte, topologyGap))
		b.WriteByte(t.Topology)
	}
	return b.Bytes()
}

func putNames(b *bytes.Buffer, name, comment string) {
	if name != "" {
		b.WriteByte(byte(len(name)))
		b.WriteString(name)
	}
	if comment != "" {
		putInt32(b, int32(len(comment)))
		b.WriteString(comment)
	}
}

func putInt32(b *bytes.Buffer, v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	b.Write(buf[:])
}

func putInt16(b *bytes.Buffer, v int16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	b.Write(buf[:])
}

// Plasmid returns a small circular construct with one named CDS, one
// unnamed gene, a coloured region over the CDS and a free-standing one.
func Plasmid() Container {
	return Container{
		Sequence: "ATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGC",
		Regions: []Region{
			{Start: 9, End: 42, R: 255},        // over the CDS
			{Start: 49, End: 70, G: 128, B: 64}, // free-standing
			{Start: 0, End: 72},                 // black: base sequence
		},
		Features: []Feature{
			{Start: 10, End: 40, CDS: true, Strand: 2, Name: "lacZ=alpha", Comment: "reporter"},
			{Start: 2, End: 8, Strand: 1},
		},
		Trailer: &Trailer{
			Sites:     []Site{{Name: "EcoRI"}, {Name: "BamHI", Comment: "unique"}},
			Unknown:   []byte{1, 2, 3},
			Construct: "pTest",
			Topology:  1,
		},
	}
}
