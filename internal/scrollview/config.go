package scrollview

// Strategy selects how virtual line counts and lookup tables are computed.
// Both strategies return identical results; they differ only in cost.
// StrategyAuto picks per call from the cost model below.
type Strategy int

const (
	StrategyAuto Strategy = iota
	StrategySpanwise
	StrategyLinewise
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategySpanwise:
		return "spanwise"
	case StrategyLinewise:
		return "linewise"
	default:
		return "unknown"
	}
}

// Mode controls how the thumb's effective line count is derived.
type Mode int

const (
	// ModeVirtual counts closed folds as single rows. The default.
	ModeVirtual Mode = iota
	// ModeSimple uses the raw document line count, ignoring folds. Cheaper
	// for very large documents.
	ModeSimple
)

func (m Mode) String() string {
	if m == ModeSimple {
		return "simple"
	}
	return "virtual"
}

// Cost model defaults. A spanwise pass costs roughly proportional to the
// view's fold count F, a linewise pass to the range length L; spanwise wins
// when F < ratio*L. The ratios come from measured per-unit costs and are
// workload dependent, so they are exposed as configuration rather than
// derived. Lookup construction tolerates a higher ratio because fold
// queries dominate its spanwise cost more than they do counting.
const (
	DefaultCountFoldRatio  = 0.5
	DefaultLookupFoldRatio = 0.1
)

// DefaultSimpleThreshold is the line count above which ModeVirtual falls
// back to simple geometry to keep refresh cycles cheap.
const DefaultSimpleThreshold = 1000000

// Config carries the engine's tunables. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	// Mode selects virtual or simple effective line counting.
	Mode Mode

	// SimpleThreshold is the document size at which ModeVirtual degrades
	// to simple geometry. <= 0 disables the fallback.
	SimpleThreshold int

	// IncludeEnd lets the thumb reach past the last full page so the final
	// line can become the topline.
	IncludeEnd bool

	// CountStrategy and LookupStrategy force a computation strategy.
	// StrategyAuto applies the cost model. Tests force a strategy to keep
	// results independent of timing-derived constants.
	CountStrategy  Strategy
	LookupStrategy Strategy

	// CountFoldRatio and LookupFoldRatio are the cost-model constants: the
	// spanwise strategy is chosen when foldCount < ratio*rangeLength.
	CountFoldRatio  float64
	LookupFoldRatio float64

	// MaxMarkersPerRow bounds how many marker glyphs may share one track
	// row after priority resolution.
	MaxMarkersPerRow int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeVirtual,
		SimpleThreshold:  DefaultSimpleThreshold,
		IncludeEnd:       false,
		CountStrategy:    StrategyAuto,
		LookupStrategy:   StrategyAuto,
		CountFoldRatio:   DefaultCountFoldRatio,
		LookupFoldRatio:  DefaultLookupFoldRatio,
		MaxMarkersPerRow: 1,
	}
}
