// Reconciliation of regions and features into an export list.
//
// Decode leaves two loosely related lists: coloured display regions and
// typed features. A feature usually has a region drawn over it that is a
// few bases longer or shorter (the feature covers the protein, the region
// the whole arrow), so regions within pairTolerance of a feature are taken
// to be that feature's colour and hidden. Features are then classified by
// the rule list, names are made safe for export, and the selected Level's
// pruning steps run. Reconcile mutates the File in place.
package gck

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// pairTolerance is how far, in bases, both ends of a region and a
	// feature (or two features) may differ and still describe the same
	// thing. Chosen by hand.
	pairTolerance = 5

	// smallRegion is the largest End-Start span pruned at LevelMedium.
	smallRegion = 10
)

// Options configures Reconcile.
type Options struct {
	Level          Level
	Rules          Rules
	IncludeUnnamed bool // export visible regions as misc_feature
	IncludePrimers bool // keep primer_bind features
	Logger         *zap.Logger
}

// pruneStep is one pruning operation and the lowest level that runs it.
type pruneStep struct {
	name  string
	level Level
	run   func(f *File)
}

// pruneSteps is ordered from the most aggressive level down. A level runs
// the suffix of the list that starts at its first step, so LevelHigh runs
// its own steps, then LevelMedium's, then LevelLow's.
var pruneSteps = []pruneStep{
	{"features in features", LevelHighest, removeFeaturesInFeatures},
	{"excluded features", LevelHigh, hideExcluded},
	{"regions in features", LevelHigh, removeRegionsInFeatures},
	{"small regions", LevelMedium, removeSmallRegions},
	{"duplicate features", LevelLow, removeDuplicates},
}

// stepsFor returns the pruning steps run at level l.
func stepsFor(l Level) []pruneStep {
	if l == LevelNone {
		return nil
	}
	for i, s := range pruneSteps {
		if s.level <= l {
			return pruneSteps[i:]
		}
	}
	return nil
}

// Reconcile pairs, classifies and prunes f's annotations and returns the
// features to export: surviving decoded features in decode order, then
// one synthesised feature per visible region when IncludeUnnamed is set.
// Returned decoded features point into f.Features.
func Reconcile(f *File, opts Options) []*Feature {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	pairRegions(f)
	for i := range f.Features {
		opts.Rules.apply(&f.Features[i])
	}
	sanitiseNames(f)
	for _, s := range stepsFor(opts.Level) {
		s.run(f)
		log.Debug("pruned", zap.String("step", s.name), zap.Stringer("level", opts.Level))
	}

	var out []*Feature
	for i := range f.Features {
		ft := &f.Features[i]
		if !ft.Display {
			continue
		}
		// Classified again here as well as above; with last-match-wins
		// the second pass cannot change the result.
		opts.Rules.apply(ft)
		if ft.Type == Exclude || ft.Automatic {
			continue
		}
		if ft.Type == PrimerBind && !opts.IncludePrimers {
			continue
		}
		out = append(out, ft)
	}

	if opts.IncludeUnnamed {
		for i := range f.Regions {
			r := f.Regions[i]
			if !r.Display {
				continue
			}
			r.Site = Site{HasName: true, Position: i}
			out = append(out, &Feature{
				Region: r,
				Name:   "region" + strconv.Itoa(i),
				Strand: StrandBoth,
				Type:   MiscFeature,
			})
		}
	}
	log.Debug("reconciled",
		zap.Int("features", f.FeatureCount),
		zap.Int("regions", f.RegionCount),
		zap.Int("exported", len(out)))
	return out
}

// pairRegions gives each feature the colour of every region drawn over
// it and hides those regions. A region may pair with several features.
func pairRegions(f *File) {
	for i := range f.Regions {
		r := &f.Regions[i]
		for j := range f.Features {
			ft := &f.Features[j]
			if r.Near(&ft.Region, pairTolerance) {
				ft.Colour = r.Colour
				r.Display = false
			}
		}
	}
}

// sanitiseNames replaces '=', which GenBank qualifiers reserve.
func sanitiseNames(f *File) {
	for i := range f.Features {
		f.Features[i].Name = strings.ReplaceAll(f.Features[i].Name, "=", "_")
	}
}

// removeFeaturesInFeatures hides every feature lying within another.
// Features with identical spans contain each other and are both hidden.
func removeFeaturesInFeatures(f *File) {
	fs := f.Features
	for i := 0; i < len(fs)-1; i++ {
		for j := i + 1; j < len(fs); j++ {
			if fs[i].Contains(&fs[j].Region) {
				fs[j].Display = false
			}
			if fs[j].Contains(&fs[i].Region) {
				fs[i].Display = false
			}
		}
	}
}

func hideExcluded(f *File) {
	for i := range f.Features {
		if f.Features[i].Type == Exclude {
			f.Features[i].Display = false
		}
	}
}

// removeRegionsInFeatures hides regions lying within a displayed feature.
func removeRegionsInFeatures(f *File) {
	for i := range f.Features {
		ft := &f.Features[i]
		if !ft.Display {
			continue
		}
		for j := range f.Regions {
			if ft.Contains(&f.Regions[j]) {
				f.Regions[j].Display = false
			}
		}
	}
}

func removeSmallRegions(f *File) {
	for i := range f.Regions {
		if f.Regions[i].Span() <= smallRegion {
			f.Regions[i].Display = false
		}
	}
}

// removeDuplicates collapses features on the same strand whose ends are
// both within pairTolerance. The CDS of the two is kept; otherwise the
// later one is hidden.
func removeDuplicates(f *File) {
	fs := f.Features
	for i := 0; i < len(fs)-1; i++ {
		for j := i + 1; j < len(fs); j++ {
			a, b := &fs[i], &fs[j]
			if a.Strand != b.Strand || !a.Near(&b.Region, pairTolerance) {
				continue
			}
			if b.Type == CDS && a.Type != CDS {
				a.Display = false
			} else {
				b.Display = false
			}
		}
	}
}
