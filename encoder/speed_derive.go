package encoder

// SubpelRoutine names the fractional-pel refinement routine the motion
// estimator should invoke, the Go rendering of C libaom's
// cpi->find_fractional_mv_step function pointer.
type SubpelRoutine int

const (
	SubpelRoutineTree SubpelRoutine = iota
	SubpelRoutineTreePruned
	SubpelRoutineTreePrunedMore
	SubpelRoutineTreePrunedEvenmore
)

func (r SubpelRoutine) String() string {
	switch r {
	case SubpelRoutineTree:
		return "tree"
	case SubpelRoutineTreePruned:
		return "tree-pruned"
	case SubpelRoutineTreePrunedMore:
		return "tree-pruned-more"
	case SubpelRoutineTreePrunedEvenmore:
		return "tree-pruned-evenmore"
	}
	return "invalid"
}

// SearchPrimitive names a full-pel motion search primitive, the Go
// rendering of C libaom's cpi->full_search_sad / cpi->diamond_search_sad
// function pointers.
type SearchPrimitive int

const (
	FullSearchSAD SearchPrimitive = iota
	DiamondSearchSAD
)

func (p SearchPrimitive) String() string {
	if p == FullSearchSAD {
		return "full-search-sad"
	}
	return "diamond-search-sad"
}

// Derived is the result of the frame-size-independent derivation: the
// fully populated feature record, the two auxiliary routine selections,
// and the scalar fields consumed by the block-partition sizing logic.
type Derived struct {
	SF SpeedFeatures

	// SubpelRoutine is selected from SF.Motion.SubpelSearchMethod.
	SubpelRoutine SubpelRoutine
	// FullSearch and DiamondSearch are the motion search primitives bound
	// for the session.
	FullSearch    SearchPrimitive
	DiamondSearch SearchPrimitive

	// MinPartitionPixels and MaxPartitionPixels are the default partition
	// size bounds in pixels.
	MinPartitionPixels int
	MaxPartitionPixels int

	// Trellis is the effective per-block trellis quantization enable
	// (coefficient optimization, except never on a first pass).
	Trellis bool
}

// DeriveFramesizeIndependent computes the speed feature configuration that
// does not depend on frame resolution: baseline, then the mode cascade,
// then the consistency normalizer and mesh pattern selection. It is a pure
// function of ctx; rd receives the threshold saturation for any split
// cases the cascade masked out. Call it once per encode configuration
// change. Matches C libaom's av1_set_speed_features_framesize_independent.
func DeriveFramesizeIndependent(ctx *EncodeContext, rd *RDThresholds) *Derived {
	sf := baselineFeatures(ctx)

	switch ctx.Mode {
	case ModeRealtime:
		rtBase(ctx, &sf)
		applyTiers(rtTiers, ctx, &sf)
	case ModeGood:
		applyTiers(goodTiers, ctx, &sf)
	case ModeBest:
		// Best quality keeps the baseline; only the normalizer applies.
	}

	normalize(ctx, &sf, rd)

	d := &Derived{
		SF:            sf,
		FullSearch:    FullSearchSAD,
		DiamondSearch: DiamondSearchSAD,
	}

	switch sf.Motion.SubpelSearchMethod {
	case SubpelTree:
		d.SubpelRoutine = SubpelRoutineTree
	case SubpelTreePruned:
		d.SubpelRoutine = SubpelRoutineTreePruned
	case SubpelTreePrunedMore:
		d.SubpelRoutine = SubpelRoutineTreePrunedMore
	case SubpelTreePrunedEvenmore:
		d.SubpelRoutine = SubpelRoutineTreePrunedEvenmore
	}

	d.MinPartitionPixels = sf.Partition.DefaultMinPartitionSize.WidthPixels()
	d.MaxPartitionPixels = sf.Partition.DefaultMaxPartitionSize.WidthPixels()
	d.Trellis = sf.OptimizeCoefficients && ctx.Pass != 1

	return d
}

// DeriveFramesizeDependent re-derives the resolution-conditional subset of
// an already-initialized configuration (split-disable mask, partition
// breakout thresholds, schedule-mode flag, max intra block size, auto
// partition min limit), then re-applies the split-mask consistency rules.
// Call it once per active resolution/superblock configuration. Matches C
// libaom's av1_set_speed_features_framesize_dependent.
func DeriveFramesizeDependent(ctx *EncodeContext, sf *SpeedFeatures, rd *RDThresholds) {
	// Limit memory usage for high resolutions.
	if ctx.minDimension() > 1080 {
		sf.UseUpsampledReferences = false
	}

	switch ctx.Mode {
	case ModeRealtime:
		applyTiers(rtFramesizeTiers, ctx, sf)
	case ModeGood:
		applyTiers(goodFramesizeTiers, ctx, sf)
	case ModeBest:
		// No resolution tiers in best-quality mode.
	}

	enforceSplitMask(sf, rd)
}

// enforceSplitMask resolves the two split-mask-dependent invariants: a
// fully masked split search cannot feed the adaptive prediction filter,
// and every masked split case must be priced out of the search rather than
// merely deprioritized.
func enforceSplitMask(sf *SpeedFeatures, rd *RDThresholds) {
	if sf.Partition.DisableSplitMask == DisableAllSplit {
		sf.ModeSearch.AdaptivePredInterpFilter = 0
	}
	rd.maskSplitThresholds(sf.Partition.DisableSplitMask)
}

// normalize is the post-cascade consistency pass. Its steps run in a fixed
// order; none of them can fail.
func normalize(ctx *EncodeContext, sf *SpeedFeatures, rd *RDThresholds) {
	// Split-mask invariants (also re-run by the frame-size-dependent path).
	enforceSplitMask(sf, rd)

	// Mesh pattern selection; the speed used for table lookup is clamped
	// to the table's maximum supported speed.
	meshSpeed := ctx.Speed
	if meshSpeed > MaxMeshSpeed {
		meshSpeed = MaxMeshSpeed
	}
	sf.Motion.AllowExhaustiveSearches = true
	if ctx.Mode == ModeBest {
		if ctx.Content == ContentGraphicsAnimation {
			sf.Motion.ExhaustiveSearchesThresh = 1 << 20
		} else {
			sf.Motion.ExhaustiveSearchesThresh = 1 << 21
		}
		sf.Motion.MaxExhaustivePct = bestQualityMeshTier.maxPct
		sf.Motion.MeshPatterns = bestQualityMeshTier.patterns
	} else {
		if ctx.Content == ContentGraphicsAnimation {
			sf.Motion.ExhaustiveSearchesThresh = 1 << 22
		} else {
			sf.Motion.ExhaustiveSearchesThresh = 1 << 23
		}
		if ctx.Speed > 0 {
			sf.Motion.ExhaustiveSearchesThresh <<= 1
		}
		sf.Motion.MaxExhaustivePct = goodQualityMeshTiers[meshSpeed].maxPct
		sf.Motion.MeshPatterns = goodQualityMeshTiers[meshSpeed].patterns
	}

	// SearchBreakoutDistThr is tuned assuming 64x64 superblocks; normalise
	// it if the blocks are bigger.
	if ctx.SuperblockLog2 > 6 {
		sf.Partition.SearchBreakoutDistThr <<= 2 * (ctx.SuperblockLog2 - 6)
	}

	// Slow quant, dct and trellis are not worthwhile for a first pass, so
	// make sure they are always turned off.
	if ctx.Pass == 1 {
		sf.OptimizeCoefficients = false
	}
	// No recode for single-pass encodes.
	if ctx.Pass == 0 {
		sf.RecodeLoop = DisallowRecode
		sf.OptimizeCoefficients = false
	}

	if !ctx.FramePeriodicBoost {
		sf.MaxDeltaQIndex = 0
	}
}
