// Region, feature and name decoding, and the Decode entry point.
//
// Phases run in a fixed order (header, sequence, regions, features, names,
// circularity) and each one seeks to an absolute offset computed from the
// lengths collected by the header pass. Any read past the end of the
// source in the first five phases aborts the decode. The circularity phase
// is a heuristic and falls back instead of failing; see circular.go.
package gck

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Offsets of the fields understood inside a region record.
const (
	regionStartOff = 0
	regionEndOff   = 4
	regionFontOff  = 12
	regionRedOff   = 16
	regionGreenOff = 18
	regionBlueOff  = 20
)

// Offsets of the fields understood inside a feature record.
const (
	featureStartOff     = 0
	featureEndOff       = 4
	featureTypeOff      = 14 // nonzero for CDS, zero for gene
	featureStrandOff    = 30
	featureRedOff       = 42
	featureGreenOff     = 44
	featureBlueOff      = 46
	featureNameOff      = 48
	featureCommentOff   = 52
	featureAutomaticOff = 56

	// featureMinRecord is the shortest record holding every field above.
	featureMinRecord = featureAutomaticOff + 2
)

// automaticMarker is the int16 found at featureAutomaticOff in every
// editor-generated feature seen so far. It is an observation across sample
// files, not a documented flag.
const automaticMarker = 0x0115

// unnamed is the name given to features with no name entry.
const unnamed = "NONE"

// DecodeOptions configures Decode and Open.
type DecodeOptions struct {
	Logger *zap.Logger
	Digest int // fingerprint algorithm used by Open; 0 selects AlgXXHash3
}

func (o DecodeOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Decode reads a container of the given subtype from src.
func Decode(src io.ReaderAt, size int64, typ FileType, opts DecodeOptions) (*File, error) {
	log := opts.logger()
	f := &File{Type: typ, Size: size}
	c := NewCursor(src, size)

	h, err := readHeader(c)
	if err != nil {
		return nil, err
	}
	f.SequenceLength = h.sequenceLength
	f.RegionBlockLength = h.regionBlockLength
	f.FeatureBlockLength = h.featureBlockLength
	log.Debug("header read",
		zap.Int("sequence_length", h.sequenceLength),
		zap.Int("region_block_length", h.regionBlockLength),
		zap.Int("feature_block_length", h.featureBlockLength))

	if f.Sequence, err = readSequence(c, h.sequenceLength); err != nil {
		return nil, err
	}
	if err := readRegions(c, h, f); err != nil {
		return nil, err
	}
	log.Debug("regions read", zap.Int("count", f.RegionCount))

	if err := readFeatures(c, h, f); err != nil {
		return nil, err
	}
	log.Debug("features read", zap.Int("count", f.FeatureCount))

	if err := readFeatureNames(c, h, f); err != nil {
		return nil, err
	}
	findCircularity(c, h, f, log)
	return f, nil
}

// readRegions decodes the region block.
func readRegions(c *Cursor, h header, f *File) error {
	if err := c.SeekTo(h.regionBlockStart()); err != nil {
		return fmt.Errorf("regions: %w", err)
	}
	c.Skip(blockPrefix)
	n, err := c.Int16()
	if err != nil {
		return fmt.Errorf("region count: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("regions: %w: count %d", ErrNegativeLength, n)
	}
	f.RegionCount = int(n)
	f.Regions = make([]Region, n)
	for i := range f.Regions {
		buf, err := c.Read(RegionRecordSize)
		if err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
		f.Regions[i] = decodeRegion(record(buf))
		f.Regions[i].Position = i
	}
	return nil
}

func decodeRegion(rec record) Region {
	r := Region{
		Start:    int(rec.int32At(regionStartOff)) + 1,
		End:      int(rec.int32At(regionEndOff)),
		FontType: rec.byteAt(regionFontOff),
		Colour: Colour{
			R: rec.byteAt(regionRedOff),
			G: rec.byteAt(regionGreenOff),
			B: rec.byteAt(regionBlueOff),
		},
		// Grouping has no known offset in the record; 1 is the
		// editor's default for ungrouped regions.
		Grouping: 1,
	}
	r.Display = !r.Colour.Black()
	return r
}

// readFeatures decodes the feature block. Records do not have a fixed
// size, so the size is the block length less its prefix, divided by the
// count.
func readFeatures(c *Cursor, h header, f *File) error {
	if err := c.SeekTo(h.featureBlockStart()); err != nil {
		return fmt.Errorf("features: %w", err)
	}
	c.Skip(blockPrefix)
	n, err := c.Int16()
	if err != nil {
		return fmt.Errorf("feature count: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("features: %w: count %d", ErrNegativeLength, n)
	}
	f.FeatureCount = int(n)
	if n == 0 {
		return nil
	}

	size := (h.featureBlockLength - countedPrefix) / int(n)
	if size < featureMinRecord {
		return fmt.Errorf("features: %w: record size %d", ErrTruncated, size)
	}
	f.Features = make([]Feature, n)
	for i := range f.Features {
		buf, err := c.Read(size)
		if err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
		f.Features[i] = decodeFeature(record(buf))
		f.Features[i].Position = i
	}
	return nil
}

func decodeFeature(rec record) Feature {
	ft := Feature{
		Region: Region{
			Site: Site{
				HasName:    rec.int32At(featureNameOff) != 0,
				HasComment: rec.int32At(featureCommentOff) != 0,
			},
			Start: int(rec.int32At(featureStartOff)) + 1,
			End:   int(rec.int32At(featureEndOff)),
			Colour: Colour{
				R: rec.byteAt(featureRedOff),
				G: rec.byteAt(featureGreenOff),
				B: rec.byteAt(featureBlueOff),
			},
			Grouping: 1,
			Display:  true,
		},
		Strand:    strandFromCode(rec.byteAt(featureStrandOff)),
		Type:      Gene,
		Automatic: rec.int16At(featureAutomaticOff) == automaticMarker,
	}
	if rec.int16At(featureTypeOff) != 0 {
		ft.Type = CDS
	}
	return ft
}

// readFeatureNames decodes the names section that follows the feature
// block. Entries exist only for features whose flags say so, in feature
// order: a one-byte length and name, then a four-byte length and comment.
func readFeatureNames(c *Cursor, h header, f *File) error {
	if err := c.SeekTo(h.namesStart()); err != nil {
		return fmt.Errorf("names: %w", err)
	}
	for i := range f.Features {
		ft := &f.Features[i]
		if ft.HasName {
			n, err := c.Uint8()
			if err != nil {
				return fmt.Errorf("feature %d name length: %w", i, err)
			}
			if ft.Name, err = c.String(int(n)); err != nil {
				return fmt.Errorf("feature %d name: %w", i, err)
			}
		} else {
			ft.Name = unnamed
		}
		if ft.HasComment {
			n, err := c.Int32()
			if err != nil {
				return fmt.Errorf("feature %d comment length: %w", i, err)
			}
			if ft.Comment, err = c.String(int(n)); err != nil {
				return fmt.Errorf("feature %d comment: %w", i, err)
			}
		}
	}
	return nil
}
