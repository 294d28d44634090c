// Header and block-length decoding.
//
// The header is exactly 32 bytes. Only its last four bytes are understood:
// the sequence length. The sequence follows immediately as one byte per
// base. After the sequence each block starts with a big-endian int32 giving
// the byte length of the rest of the block, so the region and feature
// block lengths can be collected up front by hopping from one length field
// to the next.
package gck

import "fmt"

// Layout constants.
const (
	HeaderSize = 0x20 // header size in bytes

	// RegionRecordSize is the fixed size of one region record.
	RegionRecordSize = 0x2C

	// FeatureRecordSize is the most common feature record size. Files
	// with 0x5E byte records also exist, so the decoder always derives
	// the size from the block length and count.
	FeatureRecordSize = 0x5C

	// blockPrefix covers the block length and the repeated sequence
	// length that open every counted block.
	blockPrefix = 8

	// countedPrefix is the part of a block length that is not records:
	// the repeated sequence length (int32) and the record count (int16).
	countedPrefix = 6
)

// header holds what the first pass learns about the block layout.
type header struct {
	sequenceLength     int
	regionBlockLength  int
	featureBlockLength int
}

// readHeader reads the sequence length from the header, then hops over the
// sequence and the region block to collect both block lengths.
func readHeader(c *Cursor) (header, error) {
	var h header
	if err := c.SeekTo(0); err != nil {
		return h, err
	}
	buf, err := c.Read(HeaderSize)
	if err != nil {
		return h, fmt.Errorf("header: %w", err)
	}
	n := record(buf).int32At(HeaderSize - 4)
	if n < 0 {
		return h, fmt.Errorf("header: %w: sequence length %d", ErrNegativeLength, n)
	}
	h.sequenceLength = int(n)

	c.Skip(int64(h.sequenceLength))
	regions, err := c.Int32()
	if err != nil {
		return h, fmt.Errorf("region block length: %w", err)
	}
	h.regionBlockLength = int(regions)

	c.Skip(int64(h.regionBlockLength))
	features, err := c.Int32()
	if err != nil {
		return h, fmt.Errorf("feature block length: %w", err)
	}
	h.featureBlockLength = int(features)
	return h, nil
}

// readSequence reads the raw sequence that follows the header.
func readSequence(c *Cursor, n int) (string, error) {
	if err := c.SeekTo(HeaderSize); err != nil {
		return "", err
	}
	seq, err := c.String(n)
	if err != nil {
		return "", fmt.Errorf("sequence: %w", err)
	}
	return seq, nil
}

// regionBlockStart is the absolute offset of the region block length field.
func (h header) regionBlockStart() int64 {
	return HeaderSize + int64(h.sequenceLength)
}

// featureBlockStart is the absolute offset of the feature block length field.
func (h header) featureBlockStart() int64 {
	return h.regionBlockStart() + 4 + int64(h.regionBlockLength)
}

// namesStart is the absolute offset of the feature names section.
func (h header) namesStart() int64 {
	return h.featureBlockStart() + 4 + int64(h.featureBlockLength)
}
