package encoder

import "math"

// SearchMethod selects the full-pel motion search pattern, matching C
// libaom's SEARCH_METHODS.
type SearchMethod int

const (
	SearchDiamond SearchMethod = iota
	SearchNStep
	SearchHex
	SearchBigDiamond
	SearchSquare
	SearchFastHex
	SearchFastDiamond
)

// SubpelSearchMethod selects the fractional-pel refinement strategy,
// matching C libaom's SUBPEL_SEARCH_METHODS. The pruned variants skip
// progressively more candidate positions around the integer-pel best.
type SubpelSearchMethod int

const (
	SubpelTree SubpelSearchMethod = iota
	SubpelTreePruned
	SubpelTreePrunedMore
	SubpelTreePrunedEvenmore
)

// TxSizeSearchMethod controls how the transform-size search is performed,
// matching C libaom's TX_SIZE_SEARCH_METHOD.
type TxSizeSearchMethod int

const (
	// UseFullRD searches all transform sizes with full rate-distortion cost.
	UseFullRD TxSizeSearchMethod = iota
	// UseLargestAll always uses the largest transform size for the block.
	UseLargestAll
	// UseTx8x8 always uses the 8x8 transform.
	UseTx8x8
)

// TxTypePruneMode controls transform-type search pruning, matching C
// libaom's TX_TYPE_PRUNE_MODE.
type TxTypePruneMode int

const (
	NoPrune TxTypePruneMode = iota
	PruneOne
	PruneTwo
)

// RecodePolicy decides when a frame may be re-encoded after missing its
// rate target, matching C libaom's RECODE_LOOP_TYPE.
type RecodePolicy int

const (
	// DisallowRecode never re-encodes.
	DisallowRecode RecodePolicy = iota
	// AllowRecodeKFMaxBW re-encodes key frames and frames that exceed the
	// maximum bandwidth.
	AllowRecodeKFMaxBW
	// AllowRecodeKFARFGF re-encodes key, alt-ref and golden frames.
	AllowRecodeKFARFGF
	// AllowRecode re-encodes any frame.
	AllowRecode
)

// AutoMinMaxMode controls how the partition search derives its per-block
// min/max partition size from neighboring blocks, matching C libaom's
// AUTO_MIN_MAX_MODE.
type AutoMinMaxMode int

const (
	NotInUse AutoMinMaxMode = iota
	RelaxedNeighboringMinMax
	StrictNeighboringMinMax
)

// LPFPickMethod selects the loop-filter level search strategy, matching C
// libaom's LPF_PICK_METHOD.
type LPFPickMethod int

const (
	// LPFPickFromFullImage searches filter levels over the whole frame.
	LPFPickFromFullImage LPFPickMethod = iota
	// LPFPickFromSubimage searches over a portion of the frame.
	LPFPickFromSubimage
	// LPFPickFromQ estimates the level directly from the quantizer.
	LPFPickFromQ
	// LPFPickMinimal applies the minimal amount of loop filtering.
	LPFPickMinimal
)

// PartitionSearchType selects the block partitioning strategy, matching C
// libaom's PARTITION_SEARCH_TYPE.
type PartitionSearchType int

const (
	// SearchPartition is the full recursive partition search.
	SearchPartition PartitionSearchType = iota
	// FixedPartition uses Partition.AlwaysThisBlockSize everywhere.
	FixedPartition
	// ReferencePartition starts from the last frame's partitioning.
	ReferencePartition
	// VarBasedPartition derives the partitioning from source variance.
	VarBasedPartition
)

// FastCoeffUpdates controls the coefficient probability update strategy,
// matching C libaom's FAST_COEFF_UPDATE.
type FastCoeffUpdates int

const (
	// TwoLoop uses the full two-loop update.
	TwoLoop FastCoeffUpdates = iota
	// OneLoop collapses the update into a single loop.
	OneLoop
	// OneLoopReduced additionally uses an approximate update step.
	OneLoopReduced
)

// MotionThreshold gates loop-filter decisions on frame motion magnitude.
type MotionThreshold int

const (
	NoMotionThreshold  MotionThreshold = 0
	LowMotionThreshold MotionThreshold = 240
)

// InterpFilter identifies an interpolation filter choice; InterpSwitchable
// lets each block signal its own filter.
type InterpFilter int

const (
	InterpEightTap InterpFilter = iota
	InterpEightTapSmooth
	InterpEightTapSharp
	InterpBilinear
	InterpSwitchable
)

// Intra prediction mode indices used to build IntraModeMask values.
const (
	predDC = iota
	predV
	predH
	predD45
	predD135
	predD117
	predD153
	predD207
	predD63
	predTM
	numIntraModes
)

// IntraModeMask restricts which intra prediction modes the mode search
// evaluates; a set bit allows the mode.
type IntraModeMask int

const (
	IntraAll  IntraModeMask = 1<<numIntraModes - 1
	IntraDC   IntraModeMask = 1 << predDC
	IntraDCTM IntraModeMask = IntraDC | 1<<predTM
	IntraDCHV IntraModeMask = IntraDC | 1<<predV | 1<<predH
	// IntraDCTMHV keeps DC, true-motion, horizontal and vertical prediction.
	IntraDCTMHV IntraModeMask = IntraDCTM | 1<<predV | 1<<predH
)

// Inter prediction mode offsets used to build InterModeMask values.
const (
	interNearest = iota
	interNear
	interZero
	interNew
)

// InterModeMask restricts which inter prediction modes are evaluated for a
// given block size; a set bit allows the mode.
type InterModeMask int

const (
	InterAll            InterModeMask = 1<<interNearest | 1<<interNear | 1<<interZero | 1<<interNew
	InterNearest        InterModeMask = 1 << interNearest
	InterNearestNearNew InterModeMask = InterNearest | 1<<interNear | 1<<interNew
	InterNearestNewZero InterModeMask = InterNearest | 1<<interZero | 1<<interNew
)

// Mode search skip flags, matching C libaom's mode_search_skip_flags bits.
const (
	// FlagEarlyTerminate stops the mode search once the RD cost stops
	// improving.
	FlagEarlyTerminate = 1 << 0
	// FlagSkipCompBestIntra skips compound prediction when the best mode so
	// far is intra.
	FlagSkipCompBestIntra = 1 << 1
	// FlagSkipIntraBestInter skips intra modes when an inter mode is already
	// clearly best.
	FlagSkipIntraBestInter = 1 << 3
	// FlagSkipIntraDirMismatch skips directional intra modes that disagree
	// with the best so far.
	FlagSkipIntraDirMismatch = 1 << 4
	// FlagSkipIntraLowVar skips intra modes on low-variance inter blocks.
	FlagSkipIntraLowVar = 1 << 5
)

// maxModes is the number of entries in the mode search order; used as the
// "never skip" sentinel for ModeSearch.SkipStart.
const maxModes = 30

// MeshPattern is one coarse-to-fine exhaustive motion search step: every
// position within +/-Range of the center is visited at the given Interval.
type MeshPattern struct {
	Range    int
	Interval int
}

// maxMeshStep is the number of refinement steps in a mesh pattern array.
const maxMeshStep = 4

// MaxMeshSpeed is the highest speed setting with its own mesh tier; faster
// speeds reuse the last row.
const MaxMeshSpeed = 5

// meshTier couples a mesh pattern array with the percentage cap on how
// many blocks in a frame may take the exhaustive search.
type meshTier struct {
	patterns [maxMeshStep]MeshPattern
	maxPct   int
}

// bestQualityMeshTier is the always-exhaustive pattern used in ModeBest.
var bestQualityMeshTier = meshTier{
	patterns: [maxMeshStep]MeshPattern{{64, 4}, {28, 2}, {15, 1}, {7, 1}},
	maxPct:   100,
}

// goodQualityMeshTiers holds the per-speed mesh tiers for ModeGood and
// ModeRealtime, indexed by the speed value clamped to MaxMeshSpeed.
var goodQualityMeshTiers = [MaxMeshSpeed + 1]meshTier{
	{patterns: [maxMeshStep]MeshPattern{{64, 8}, {28, 4}, {15, 1}, {7, 1}}, maxPct: 50},
	{patterns: [maxMeshStep]MeshPattern{{64, 8}, {28, 4}, {15, 1}, {7, 1}}, maxPct: 25},
	{patterns: [maxMeshStep]MeshPattern{{64, 8}, {14, 2}, {7, 1}, {7, 1}}, maxPct: 15},
	{patterns: [maxMeshStep]MeshPattern{{64, 16}, {24, 8}, {12, 4}, {7, 1}}, maxPct: 5},
	{patterns: [maxMeshStep]MeshPattern{{64, 16}, {24, 8}, {12, 4}, {7, 1}}, maxPct: 1},
	{patterns: [maxMeshStep]MeshPattern{{64, 16}, {24, 8}, {12, 4}, {7, 1}}, maxPct: 1},
}

// PartitionFeatures groups the block-partition search controls.
type PartitionFeatures struct {
	SearchType PartitionSearchType

	// UseSquarePartitionOnly skips the rectangular partition candidates.
	UseSquarePartitionOnly bool
	// LessRectangularCheck prunes rectangular checks under a square winner.
	LessRectangularCheck bool

	// DisableSplitMask excludes sub-8x8 split cases per reference; bits are
	// the Thr* indices. A set bit also forces the matching RD threshold
	// multiplier to MaxInt32 (see RDThresholds).
	DisableSplitMask int

	// SearchBreakoutDistThr and SearchBreakoutRateThr terminate the
	// partition search early once a candidate is good enough. The distance
	// threshold is tuned for 64x64 superblocks and renormalized for larger
	// ones.
	SearchBreakoutDistThr int64
	SearchBreakoutRateThr int

	AutoMinMaxPartitionSize AutoMinMaxMode
	// RDAutoPartitionMinLimit is the size down to which the auto partition
	// code always searches, derived from the frame area.
	RDAutoPartitionMinLimit BlockSize
	DefaultMinPartitionSize BlockSize
	DefaultMaxPartitionSize BlockSize

	// AdjustPartitioningFromLastFrame reuses the previous frame's
	// partitioning, redone every LastPartitioningRedoFrequency frames.
	AdjustPartitioningFromLastFrame bool
	LastPartitioningRedoFrequency   int

	// AllowSearchSkip lets the encoder skip the partition search entirely
	// when prior information makes the outcome predictable.
	AllowSearchSkip bool

	// MaxIntraBlockSize caps the block size of intra predictions in inter
	// frames.
	MaxIntraBlockSize BlockSize

	// CBPartitionSearch searches the partition from a center block outward.
	CBPartitionSearch bool

	// AlwaysThisBlockSize is the block size used when SearchType is
	// FixedPartition.
	AlwaysThisBlockSize BlockSize
	// SearchTypeCheckFrequency is how often (in frames) an adaptive
	// partition search type is re-evaluated.
	SearchTypeCheckFrequency int

	// ReuseInterPredSBY reuses the inter prediction of the whole superblock
	// luma; only effective when the partition search is disabled.
	ReuseInterPredSBY bool
}

// MotionFeatures groups the motion search controls.
type MotionFeatures struct {
	SearchMethod       SearchMethod
	SubpelSearchMethod SubpelSearchMethod
	// SubpelItersPerStep is the max iterations per refinement step.
	SubpelItersPerStep int
	// SubpelForceStop terminates refinement early: 0 = quarter/eighth pel,
	// 1 = half pel, 2 = full pel.
	SubpelForceStop int

	// AutoMVStepSize reduces the search step based on the prior frame's
	// largest motion vector.
	AutoMVStepSize bool
	// ReduceFirstStepSize shrinks the initial full-pel search step.
	ReduceFirstStepSize bool
	// FullpelSearchStepParam is the starting step parameter of the full-pel
	// search.
	FullpelSearchStepParam int

	// AdaptiveMotionSearch bounds the search range using the levels above
	// the current block in the partition tree.
	AdaptiveMotionSearch bool

	// AllowExhaustiveSearches enables the mesh (exhaustive) search when the
	// best distortion stays above ExhaustiveSearchesThresh; at most
	// MaxExhaustivePct percent of a frame's blocks may take it.
	AllowExhaustiveSearches  bool
	ExhaustiveSearchesThresh int64
	MaxExhaustivePct         int
	MeshPatterns             [maxMeshStep]MeshPattern
}

// TxFeatures groups the transform search controls.
type TxFeatures struct {
	SizeSearchMethod TxSizeSearchMethod
	// SizeSearchBreakout ends the size search early on a zero-coefficient
	// or skippable result.
	SizeSearchBreakout bool

	TypePruneMode       TxTypePruneMode
	FastIntraTypeSearch bool
	FastInterTypeSearch bool

	// IntraYModeMask and IntraUVModeMask restrict the intra modes evaluated
	// per transform size for luma and chroma.
	IntraYModeMask  [NumTxSizes]IntraModeMask
	IntraUVModeMask [NumTxSizes]IntraModeMask

	// UseTransformDomainDistortion computes distortion on transform
	// coefficients instead of reconstructed pixels.
	UseTransformDomainDistortion bool
}

// ModeSearchFeatures groups the prediction mode selection controls.
type ModeSearchFeatures struct {
	// SearchSkipFlags is a bitset of Flag* values.
	SearchSkipFlags int
	// SkipStart is the mode list index from which the skip mask applies;
	// maxModes disables skipping.
	SkipStart int

	// AdaptiveRDThresh scales mode RD thresholds by how often each mode has
	// recently won; higher values prune harder. Deliberately reassigned by
	// several tiers as a ratchet.
	AdaptiveRDThresh int

	// AdaptiveModeSearch skips modes based on the RD cost of the sizes
	// already searched.
	AdaptiveModeSearch bool
	// ScheduleModeSearch reorders the mode search from prior statistics.
	ScheduleModeSearch bool

	// UseRDBreakout ends a block's RD evaluation early when the best cost
	// so far cannot be beaten.
	UseRDBreakout bool

	// InterModeMask restricts the inter modes evaluated per block size.
	InterModeMask [NumBlockSizes]InterModeMask
	// IntraYModeBlockMask restricts intra luma modes per block size; only
	// read when the non-RD pick path is active.
	IntraYModeBlockMask [NumBlockSizes]IntraModeMask

	// CompInterJointSearchThresh is the block size below which compound
	// inter modes run a joint motion search; NumBlockSizes disables it.
	CompInterJointSearchThresh BlockSize

	// AltRefSearchFP restricts alt-ref motion search to full pel.
	AltRefSearchFP bool

	// AdaptivePredInterpFilter reuses interpolation filter decisions from
	// above/left blocks: 0 = off, 1 = lower-size reuse, 2 = direct reuse.
	AdaptivePredInterpFilter int
	// AdaptiveInterpFilterSearch skips filters based on prior frame usage.
	AdaptiveInterpFilterSearch bool
	// CBPredFilterSearch decides the filter at 8x8 granularity and reuses
	// it for the sub-blocks.
	CBPredFilterSearch bool
	// DisableFilterSearchVarThresh skips the filter search below this
	// block variance.
	DisableFilterSearchVarThresh int

	DefaultInterpFilter InterpFilter
}

// SpeedFeatures is the full derived configuration read by the search and
// optimization stages. Every field is populated by the baseline before any
// speed tier runs; tiers only override, never leave fields undefined.
type SpeedFeatures struct {
	Partition  PartitionFeatures
	Motion     MotionFeatures
	Tx         TxFeatures
	ModeSearch ModeSearchFeatures

	RecodeLoop RecodePolicy
	// RecodeTolerance is the rate mismatch percentage that triggers a
	// recode when the policy allows one.
	RecodeTolerance int

	LPFPick           LPFPickMethod
	LFMotionThreshold MotionThreshold

	// OptimizeCoefficients enables trellis quantization of coefficients.
	OptimizeCoefficients bool
	UseFastCoefUpdates   FastCoeffUpdates
	UseFastCoefCosting   bool
	// CoeffProbApproxStep coarsens coefficient probability updates.
	CoeffProbApproxStep int

	// SimpleModelRDFromVar estimates RD cost from source variance instead
	// of running the transform.
	SimpleModelRDFromVar bool

	// FrameParameterUpdate controls whether per-frame parameters (filter
	// levels, probabilities) are refreshed every frame.
	FrameParameterUpdate bool
	// StaticSegmentation enables the static-region segmentation feature.
	StaticSegmentation bool
	// UseUpsampledReferences predicts from pre-upsampled reference frames;
	// disabled at high resolutions to bound memory.
	UseUpsampledReferences bool

	// ForceFrameBoost codes the current frame at a reduced quantizer, at
	// most MaxDeltaQIndex steps below the ambient one.
	ForceFrameBoost bool
	MaxDeltaQIndex  int
}

// baselineFeatures returns the configuration at its most thorough
// settings: full search methods, no pruning, no masking, no skip flags,
// maximum sub-pixel refinement, mesh disabled until the pattern selector
// runs. This is the tier-0 state every cascade builds on. Matches C
// libaom's best-quality defaults in av1_set_speed_features_framesize_independent.
func baselineFeatures(ctx *EncodeContext) SpeedFeatures {
	var sf SpeedFeatures

	sf.FrameParameterUpdate = true
	sf.Motion.SearchMethod = SearchNStep
	sf.RecodeLoop = AllowRecode
	sf.Motion.SubpelSearchMethod = SubpelTree
	sf.Motion.SubpelItersPerStep = 2
	sf.Motion.SubpelForceStop = 0
	sf.OptimizeCoefficients = !ctx.Lossless
	sf.Motion.ReduceFirstStepSize = false
	sf.CoeffProbApproxStep = 1
	sf.Motion.AutoMVStepSize = false
	sf.Motion.FullpelSearchStepParam = 6
	sf.ModeSearch.CompInterJointSearchThresh = Block4x4
	sf.ModeSearch.AdaptiveRDThresh = 0
	sf.Tx.SizeSearchMethod = UseFullRD
	sf.Motion.AdaptiveMotionSearch = false
	sf.ModeSearch.AdaptivePredInterpFilter = 0
	sf.ModeSearch.AdaptiveModeSearch = false
	sf.ModeSearch.CBPredFilterSearch = false
	sf.Partition.CBPartitionSearch = false
	sf.ModeSearch.AltRefSearchFP = false
	sf.Partition.SearchType = SearchPartition
	sf.Tx.TypePruneMode = NoPrune
	sf.Tx.FastIntraTypeSearch = false
	sf.Tx.FastInterTypeSearch = false
	sf.Partition.LessRectangularCheck = false
	sf.Partition.UseSquarePartitionOnly = false
	sf.Partition.AutoMinMaxPartitionSize = NotInUse
	sf.Partition.RDAutoPartitionMinLimit = Block4x4
	sf.Partition.DefaultMaxPartitionSize = BlockLargest
	sf.Partition.DefaultMinPartitionSize = Block4x4
	sf.Partition.AdjustPartitioningFromLastFrame = false
	sf.Partition.LastPartitioningRedoFrequency = 4
	sf.Partition.DisableSplitMask = 0
	sf.ModeSearch.SearchSkipFlags = 0
	sf.ForceFrameBoost = false
	sf.MaxDeltaQIndex = 0
	sf.ModeSearch.DisableFilterSearchVarThresh = 0
	sf.ModeSearch.AdaptiveInterpFilterSearch = false
	sf.Partition.AllowSearchSkip = false
	sf.UseUpsampledReferences = true
	sf.StaticSegmentation = false

	for i := TxSize(0); i < NumTxSizes; i++ {
		sf.Tx.IntraYModeMask[i] = IntraAll
		sf.Tx.IntraUVModeMask[i] = IntraAll
	}
	sf.ModeSearch.UseRDBreakout = false
	sf.LPFPick = LPFPickFromFullImage
	sf.LFMotionThreshold = NoMotionThreshold
	sf.UseFastCoefUpdates = TwoLoop
	sf.UseFastCoefCosting = false
	sf.ModeSearch.SkipStart = maxModes
	sf.ModeSearch.ScheduleModeSearch = false
	for i := BlockSize(0); i < NumBlockSizes; i++ {
		sf.ModeSearch.InterModeMask[i] = InterAll
		sf.ModeSearch.IntraYModeBlockMask[i] = IntraAll
	}
	sf.Partition.MaxIntraBlockSize = BlockLargest
	sf.Partition.ReuseInterPredSBY = false
	// Only takes effect when Partition.SearchType is FixedPartition.
	sf.Partition.AlwaysThisBlockSize = Block16x16
	sf.Partition.SearchTypeCheckFrequency = 50
	// Recode loop tolerance %.
	sf.RecodeTolerance = 25
	sf.ModeSearch.DefaultInterpFilter = InterpSwitchable
	sf.Tx.SizeSearchBreakout = false
	sf.Partition.SearchBreakoutDistThr = 0
	sf.Partition.SearchBreakoutRateThr = 0
	sf.SimpleModelRDFromVar = false
	sf.Tx.UseTransformDomainDistortion = false

	// Mesh search stays off until the pattern selector runs.
	sf.Motion.AllowExhaustiveSearches = false
	sf.Motion.ExhaustiveSearchesThresh = math.MaxInt64
	sf.Motion.MaxExhaustivePct = 0

	return sf
}
