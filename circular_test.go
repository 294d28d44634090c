// Trailing section heuristic tests.
//
// The walk to the topology byte crosses sections whose layout was inferred
// from sample files. These tests pin down each inferred rule (site record
// sizing, the generation records, the .gcs-only block and its rewind) and
// the fallback when the walk runs off the end.
package gck

import (
	"testing"

	"github.com/jpl-au/gck/internal/gcktest"
)

func trailerFixture(t gcktest.Trailer, gcs bool) gcktest.Container {
	return gcktest.Container{
		Sequence: "ACGT",
		Features: []gcktest.Feature{{Start: 0, End: 4, Name: "f", Comment: "note"}},
		GCS:      gcs,
		Trailer:  &t,
	}
}

func TestCircularityTopology(t *testing.T) {
	tests := []struct {
		name     string
		topology byte
		want     bool
	}{
		{"linear", 0x00, false},
		{"circular", 0x01, true},
		{"unknown value leaves default", 0x02, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := trailerFixture(gcktest.Trailer{Construct: "pX", Topology: tt.topology}, false)
			f := decodeBytes(t, fx.Bytes(), TypeGCC)
			if f.Circular != tt.want {
				t.Errorf("Circular = %v, want %v", f.Circular, tt.want)
			}
			if f.ConstructName != "pX" {
				t.Errorf("ConstructName = %q, want pX", f.ConstructName)
			}
			if len(f.Warnings) != 0 {
				t.Errorf("Warnings = %v", f.Warnings)
			}
		})
	}
}

func TestCircularitySites(t *testing.T) {
	fx := trailerFixture(gcktest.Trailer{
		Sites: []gcktest.Site{
			{Name: "EcoRI"},
			{Comment: "no name"},
			{Name: "XhoI", Comment: "both"},
			{},
		},
		Unknown:   make([]byte, 37),
		Construct: "pSites",
	}, false)
	f := decodeBytes(t, fx.Bytes(), TypeGCC)
	if f.SiteCount != 4 {
		t.Errorf("SiteCount = %d, want 4", f.SiteCount)
	}
	if f.SiteBlockLength != 6+4*88 {
		t.Errorf("SiteBlockLength = %d, want %d", f.SiteBlockLength, 6+4*88)
	}
	if f.ConstructName != "pSites" || f.Circular {
		t.Errorf("construct = %q circular = %v, want pSites linear", f.ConstructName, f.Circular)
	}
}

func TestCircularityGenerations(t *testing.T) {
	tests := []struct {
		name  string
		gcs   bool
		block []byte
	}{
		{"gcc", false, nil},
		{"gcs with block", true, []byte("generation notes")},
		// A zero length means the field is absent: the decoder reads
		// four zero bytes from the next section and steps back.
		{"gcs without block", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := trailerFixture(gcktest.Trailer{
				Generations: 3,
				GCSBlock:    tt.block,
				Construct:   "pGen",
				Topology:    1,
			}, tt.gcs)
			typ := TypeGCC
			if tt.gcs {
				typ = TypeGCS
			}
			f := decodeBytes(t, fx.Bytes(), typ)
			if f.ConstructName != "pGen" || !f.Circular {
				t.Errorf("construct = %q circular = %v, want pGen circular", f.ConstructName, f.Circular)
			}
			if len(f.Warnings) != 0 {
				t.Errorf("Warnings = %v", f.Warnings)
			}
		})
	}
}

// The .gcs block is only looked for in .gcs files; reading a .gcs layout
// as .gcc lands in the unknown gap and finds no name.
func TestCircularityWrongSubtype(t *testing.T) {
	fx := trailerFixture(gcktest.Trailer{
		Generations: 1,
		GCSBlock:    []byte{9, 9, 9, 9, 9},
		Construct:   "pG",
	}, true)
	f := decodeBytes(t, fx.Bytes(), TypeGCC)
	if f.ConstructName != "" {
		t.Errorf("ConstructName = %q, want empty", f.ConstructName)
	}
}

// When generations are zero the .gcs block is not read at all.
func TestCircularityGCSNoGenerations(t *testing.T) {
	fx := trailerFixture(gcktest.Trailer{Construct: "pZero", Topology: 1}, true)
	f := decodeBytes(t, fx.Bytes(), TypeGCS)
	if f.ConstructName != "pZero" || !f.Circular {
		t.Errorf("construct = %q circular = %v", f.ConstructName, f.Circular)
	}
}

func TestCircularityFallback(t *testing.T) {
	full := trailerFixture(gcktest.Trailer{Construct: "pCut", Topology: 0}, false).Bytes()

	tests := []struct {
		name      string
		cut       int // bytes removed from the end
		construct string
	}{
		{"topology byte missing", 1, "pCut"},
		{"inside gap after name", 10, "pCut"},
		{"inside construct name", 18, ""},
		{"inside unknown gap", 400, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := decodeBytes(t, full[:len(full)-tt.cut], TypeGCC)
			if !f.Circular {
				t.Error("Circular = false, want fallback true")
			}
			if f.ConstructName != tt.construct {
				t.Errorf("ConstructName = %q, want %q", f.ConstructName, tt.construct)
			}
			if len(f.Warnings) != 1 {
				t.Errorf("Warnings = %v, want one", f.Warnings)
			}
			// Everything decoded before the trailer is intact.
			if len(f.Features) != 1 || f.Features[0].Comment != "note" {
				t.Errorf("features = %+v", f.Features)
			}
		})
	}
}

// A site count that does not divide into usable records is a bounds
// failure of the heuristic, not of the decode.
func TestCircularityBadSiteBlock(t *testing.T) {
	data := trailerFixture(gcktest.Trailer{
		Sites:     []gcktest.Site{{Name: "a"}},
		Construct: "p",
	}, false).Bytes()
	// Site block length sits right after the feature names.
	off := HeaderSize + 4 + (4 + 6) + (4 + 6 + FeatureRecordSize) + (1 + 1) + (4 + 4)
	data[off], data[off+1], data[off+2], data[off+3] = 0, 0, 0, 20

	f := decodeBytes(t, data, TypeGCC)
	if !f.Circular || len(f.Warnings) != 1 {
		t.Errorf("circular = %v warnings = %v, want fallback", f.Circular, f.Warnings)
	}
}
