// Circularity and construct-name recovery.
//
// The topology flag and the construct name sit near the end of the file,
// after several sections whose contents are not understood. Their lengths
// were worked out by comparing sample files, so the walk below is a
// heuristic: if any step reads out of bounds, the remaining steps are
// abandoned and the construct is reported as circular.
//
// Layout after the feature names, as observed:
//
//	int32 site block length, int32 sequence length, int16 site count
//	site records, then a names section shaped like the feature one
//	int32 length + an unidentified block
//	int16 generation count, 260 bytes per generation
//	.gcs only, when generations exist: int32 length + block (see gcsExtra)
//	706 bytes of unidentified content
//	uint8 length + construct name
//	16 bytes of unidentified content
//	topology byte: 0 linear, 1 circular
package gck

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// GenerationRecordSize is the size of one generation (edit history)
	// entry.
	GenerationRecordSize = 260

	// ConstructNameOffset is the distance from the end of the generations
	// to the construct name length byte. Content unknown.
	ConstructNameOffset = 706

	// topologyGap is the distance from the end of the construct name to
	// the topology byte. Content unknown, probably display flags.
	topologyGap = 16

	// Offsets of the presence flags inside a site record.
	siteNameOff    = 32
	siteCommentOff = 36
	siteMinRecord  = siteCommentOff + 4
)

// findCircularity walks the trailing sections to the construct name and
// topology byte. It never fails: out-of-bounds reads set Circular and
// record a warning.
func findCircularity(c *Cursor, h header, f *File, log *zap.Logger) {
	if err := walkTrailer(c, h, f, log); err != nil {
		f.Circular = true
		f.warn("circularity: %v; assuming circular", err)
		log.Warn("failed to determine circularity, assuming circular",
			zap.Error(err), zap.Int64("offset", c.Offset()))
		return
	}
	log.Debug("circularity read",
		zap.Bool("circular", f.Circular),
		zap.String("construct", f.ConstructName))
}

func walkTrailer(c *Cursor, h header, f *File, log *zap.Logger) error {
	if err := c.SeekTo(h.namesStart()); err != nil {
		return err
	}
	sites := make([]Site, len(f.Features))
	for i := range f.Features {
		sites[i] = f.Features[i].Site
	}
	n, err := namesLength(*c, sites)
	if err != nil {
		return fmt.Errorf("feature names: %w", err)
	}
	c.Skip(n)

	sites, err = readSites(c, f)
	if err != nil {
		return err
	}
	n, err = namesLength(*c, sites)
	if err != nil {
		return fmt.Errorf("site names: %w", err)
	}
	c.Skip(n)

	unknown, err := c.Int32()
	if err != nil {
		return fmt.Errorf("unknown block: %w", err)
	}
	c.Skip(int64(unknown))

	generations, err := c.Int16()
	if err != nil {
		return fmt.Errorf("generation count: %w", err)
	}
	c.Skip(GenerationRecordSize * int64(generations))
	log.Debug("generations skipped", zap.Int16("count", generations))

	if f.Type == TypeGCS && generations > 0 {
		if err := gcsExtra(c); err != nil {
			return err
		}
	}

	c.Skip(ConstructNameOffset)
	nameLen, err := c.Uint8()
	if err != nil {
		return fmt.Errorf("construct name length: %w", err)
	}
	if f.ConstructName, err = c.String(int(nameLen)); err != nil {
		return fmt.Errorf("construct name: %w", err)
	}

	c.Skip(topologyGap)
	topology, err := c.Uint8()
	if err != nil {
		return fmt.Errorf("topology: %w", err)
	}
	switch topology {
	case 0x00:
		f.Circular = false
	case 0x01:
		f.Circular = true
	}
	return nil
}

// gcsExtra skips a length-prefixed block that .gcs files with generations
// carry. When the length reads as zero the field was not there at all and
// the four bytes belong to the next section, so the cursor steps back.
// This was found by trial on sample files.
func gcsExtra(c *Cursor) error {
	n, err := c.Int32()
	if err != nil {
		return fmt.Errorf("gcs block: %w", err)
	}
	c.Skip(int64(n))
	if n == 0 {
		return c.SeekTo(c.Offset() - 4)
	}
	return nil
}

// readSites reads the site block header and records. Only the presence
// flags are kept; they are needed to size the names section that follows.
func readSites(c *Cursor, f *File) ([]Site, error) {
	length, err := c.Int32()
	if err != nil {
		return nil, fmt.Errorf("site block length: %w", err)
	}
	// Repeated sequence length, unused.
	if _, err := c.Int32(); err != nil {
		return nil, fmt.Errorf("site block: %w", err)
	}
	count, err := c.Int16()
	if err != nil {
		return nil, fmt.Errorf("site count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("sites: %w: count %d", ErrNegativeLength, count)
	}
	f.SiteBlockLength = int(length)
	f.SiteCount = int(count)
	if count == 0 {
		return nil, nil
	}

	size := (int(length) - countedPrefix) / int(count)
	if size < siteMinRecord {
		return nil, fmt.Errorf("sites: %w: record size %d", ErrTruncated, size)
	}
	sites := make([]Site, count)
	for i := range sites {
		buf, err := c.Read(size)
		if err != nil {
			return nil, fmt.Errorf("site %d: %w", i, err)
		}
		rec := record(buf)
		sites[i] = Site{
			HasName:    rec.int32At(siteNameOff) > 0,
			HasComment: rec.int32At(siteCommentOff) > 0,
			Position:   i,
		}
	}
	return sites, nil
}

// namesLength measures the names section for sites starting at c without
// moving the caller's cursor: c is a copy.
func namesLength(c Cursor, sites []Site) (int64, error) {
	start := c.Offset()
	for i, s := range sites {
		if s.HasName {
			n, err := c.Uint8()
			if err != nil {
				return 0, fmt.Errorf("entry %d: %w", i, err)
			}
			c.Skip(int64(n))
		}
		if s.HasComment {
			n, err := c.Int32()
			if err != nil {
				return 0, fmt.Errorf("entry %d: %w", i, err)
			}
			if n < 0 {
				return 0, fmt.Errorf("entry %d: %w: comment length %d", i, ErrNegativeLength, n)
			}
			c.Skip(int64(n))
		}
	}
	if c.Offset() > c.Size() {
		return 0, fmt.Errorf("%w: names end at %d (size %d)", ErrTruncated, c.Offset(), c.Size())
	}
	return c.Offset() - start, nil
}
