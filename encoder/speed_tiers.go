package encoder

import "math"

// tierStage is one step of a speed cascade. Stages are applied in slice
// order to every context whose speed is at or above the stage's level, so
// later stages layer on top of earlier ones: a field written by tier N
// keeps its value at speed N+1 unless tier N+1 writes it again.
type tierStage struct {
	speed int
	apply func(ctx *EncodeContext, sf *SpeedFeatures)
}

func applyTiers(tiers []tierStage, ctx *EncodeContext, sf *SpeedFeatures) {
	for _, t := range tiers {
		if ctx.Speed >= t.speed {
			t.apply(ctx, sf)
		}
	}
}

// --- good (two-pass) cascade, framesize independent ---

var goodTiers = []tierStage{
	{1, goodTier1},
	{2, goodTier2},
	{3, goodTier3},
	{4, goodTier4},
	{5, goodTier5},
	{6, goodTier6},
}

func goodTier1(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.Tx.FastIntraTypeSearch = true
	sf.Tx.FastInterTypeSearch = true
}

func goodTier2(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.Content == ContentGraphicsAnimation || ctx.InternalImageEdge {
		sf.Partition.UseSquarePartitionOnly = !ctx.FrameIsBoosted
	} else {
		sf.Partition.UseSquarePartitionOnly = !ctx.frameIsIntraOnly()
	}

	sf.Partition.LessRectangularCheck = true

	sf.ModeSearch.UseRDBreakout = true
	sf.Motion.AdaptiveMotionSearch = true
	sf.Motion.AutoMVStepSize = true
	sf.ModeSearch.AdaptiveRDThresh = 1
	sf.Motion.SubpelItersPerStep = 1
	sf.ModeSearch.SkipStart = 10
	sf.ModeSearch.AdaptivePredInterpFilter = 1

	sf.RecodeLoop = AllowRecodeKFARFGF
	sf.Tx.IntraYModeMask[Tx32x32] = IntraDCHV
	sf.Tx.IntraUVModeMask[Tx32x32] = IntraDCHV
	sf.Tx.IntraYModeMask[Tx16x16] = IntraDCHV
	sf.Tx.IntraUVModeMask[Tx16x16] = IntraDCHV

	sf.Tx.SizeSearchBreakout = true
	sf.Partition.SearchBreakoutRateThr = 80
	sf.Tx.TypePruneMode = PruneOne
	// Use transform domain distortion.
	sf.Tx.UseTransformDomainDistortion = true
}

func goodTier3(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.FrameIsBoosted {
		sf.Tx.SizeSearchMethod = UseFullRD
	} else {
		sf.Tx.SizeSearchMethod = UseLargestAll
	}
	if ctx.FrameType == FrameKey {
		sf.ModeSearch.SearchSkipFlags = 0
	} else {
		sf.ModeSearch.SearchSkipFlags = FlagSkipIntraDirMismatch |
			FlagSkipIntraBestInter | FlagSkipCompBestIntra | FlagSkipIntraLowVar
	}
	sf.ModeSearch.DisableFilterSearchVarThresh = 100
	sf.ModeSearch.CompInterJointSearchThresh = NumBlockSizes
	sf.Partition.AutoMinMaxPartitionSize = RelaxedNeighboringMinMax
	sf.Partition.AllowSearchSkip = true
	sf.UseUpsampledReferences = false
	sf.ModeSearch.AdaptiveRDThresh = 2
}

func goodTier4(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.Partition.UseSquarePartitionOnly = !ctx.frameIsIntraOnly()
	if ctx.frameIsIntraOnly() {
		sf.Tx.SizeSearchMethod = UseFullRD
	} else {
		sf.Tx.SizeSearchMethod = UseLargestAll
	}
	sf.Motion.SubpelSearchMethod = SubpelTreePruned
	sf.ModeSearch.AdaptivePredInterpFilter = 0
	sf.ModeSearch.AdaptiveModeSearch = true
	sf.Partition.CBPartitionSearch = !ctx.FrameIsBoosted
	sf.ModeSearch.CBPredFilterSearch = true
	sf.ModeSearch.AltRefSearchFP = true
	sf.RecodeLoop = AllowRecodeKFMaxBW
	sf.ModeSearch.AdaptiveRDThresh = 3
	sf.ModeSearch.SkipStart = 6
	sf.Tx.IntraYModeMask[Tx32x32] = IntraDC
	sf.Tx.IntraUVModeMask[Tx32x32] = IntraDC
	sf.ModeSearch.AdaptiveInterpFilterSearch = true
}

func goodTier5(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.Partition.UseSquarePartitionOnly = true
	sf.Tx.SizeSearchMethod = UseLargestAll
	sf.Motion.SearchMethod = SearchBigDiamond
	sf.Motion.SubpelSearchMethod = SubpelTreePrunedMore
	sf.ModeSearch.AdaptiveRDThresh = 4
	if ctx.FrameType != FrameKey {
		sf.ModeSearch.SearchSkipFlags |= FlagEarlyTerminate
	}
	sf.ModeSearch.DisableFilterSearchVarThresh = 200
	sf.UseFastCoefUpdates = OneLoopReduced
	sf.UseFastCoefCosting = true
	sf.Partition.SearchBreakoutRateThr = 300
}

func goodTier6(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.OptimizeCoefficients = false
	sf.Motion.SearchMethod = SearchHex
	sf.ModeSearch.DisableFilterSearchVarThresh = 500
	for i := TxSize(0); i < NumTxSizes; i++ {
		sf.Tx.IntraYModeMask[i] = IntraDC
		sf.Tx.IntraUVModeMask[i] = IntraDC
	}
	sf.Partition.SearchBreakoutRateThr = 500
	sf.Motion.ReduceFirstStepSize = true
	sf.SimpleModelRDFromVar = true
}

// --- realtime cascade, framesize independent ---

// rtBase holds the unconditional realtime assignments applied before any
// speed tier.
func rtBase(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.StaticSegmentation = false
	sf.ModeSearch.AdaptiveRDThresh = 1
	sf.UseFastCoefCosting = true
	sf.Motion.AllowExhaustiveSearches = false
	sf.Motion.ExhaustiveSearchesThresh = math.MaxInt64
	sf.UseUpsampledReferences = false
	// Use transform domain distortion computation.
	sf.Tx.UseTransformDomainDistortion = true
}

var rtTiers = []tierStage{
	{1, rtTier1},
	{2, rtTier2},
	{3, rtTier3},
	{4, rtTier4},
	{5, rtTier5},
	{6, rtTier6},
	{7, rtTier7},
	{8, rtTier8},
}

func rtTier1(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.Partition.UseSquarePartitionOnly = !ctx.frameIsIntraOnly()
	sf.Partition.LessRectangularCheck = true
	if ctx.frameIsIntraOnly() {
		sf.Tx.SizeSearchMethod = UseFullRD
	} else {
		sf.Tx.SizeSearchMethod = UseLargestAll
	}

	sf.ModeSearch.UseRDBreakout = true

	sf.Motion.AdaptiveMotionSearch = true
	sf.ModeSearch.AdaptivePredInterpFilter = 1
	sf.Motion.AutoMVStepSize = true
	sf.ModeSearch.AdaptiveRDThresh = 2
	sf.Tx.IntraYModeMask[Tx32x32] = IntraDCHV
	sf.Tx.IntraUVModeMask[Tx32x32] = IntraDCHV
	sf.Tx.IntraUVModeMask[Tx16x16] = IntraDCHV
}

func rtTier2(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.FrameType == FrameKey {
		sf.ModeSearch.SearchSkipFlags = 0
	} else {
		sf.ModeSearch.SearchSkipFlags = FlagSkipIntraDirMismatch |
			FlagSkipIntraBestInter | FlagSkipCompBestIntra | FlagSkipIntraLowVar
	}
	sf.ModeSearch.AdaptivePredInterpFilter = 2
	sf.ModeSearch.DisableFilterSearchVarThresh = 50
	sf.ModeSearch.CompInterJointSearchThresh = NumBlockSizes
	sf.Partition.AutoMinMaxPartitionSize = RelaxedNeighboringMinMax
	sf.LFMotionThreshold = LowMotionThreshold
	sf.Partition.AdjustPartitioningFromLastFrame = true
	sf.Partition.LastPartitioningRedoFrequency = 3
	sf.ModeSearch.SkipStart = 11
	sf.Tx.IntraYModeMask[Tx16x16] = IntraDCHV
}

func rtTier3(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.Partition.UseSquarePartitionOnly = true
	sf.ModeSearch.DisableFilterSearchVarThresh = 100
	sf.Motion.SubpelItersPerStep = 1
	sf.ModeSearch.AdaptiveRDThresh = 4
	sf.ModeSearch.SkipStart = 6
	sf.OptimizeCoefficients = false
	sf.Partition.DisableSplitMask = DisableAllSplit
	sf.LPFPick = LPFPickFromQ
}

func rtTier4(ctx *EncodeContext, sf *SpeedFeatures) {
	framesSinceKey := 0
	if ctx.FrameType != FrameKey {
		framesSinceKey = ctx.FramesSinceKey
	}
	sf.Partition.LastPartitioningRedoFrequency = 4
	sf.ModeSearch.AdaptiveRDThresh = 5
	sf.UseFastCoefCosting = false
	sf.Partition.AutoMinMaxPartitionSize = StrictNeighboringMinMax
	sf.Partition.AdjustPartitioningFromLastFrame =
		ctx.LastFrameType != ctx.FrameType ||
			(framesSinceKey+1)%sf.Partition.LastPartitioningRedoFrequency == 0
	sf.Motion.SubpelForceStop = 1
	for i := TxSize(0); i < NumTxSizes; i++ {
		sf.Tx.IntraYModeMask[i] = IntraDCHV
		sf.Tx.IntraUVModeMask[i] = IntraDC
	}
	sf.Tx.IntraYModeMask[Tx32x32] = IntraDC
	sf.FrameParameterUpdate = false
	sf.Motion.SearchMethod = SearchFastHex

	sf.ModeSearch.InterModeMask[Block32x32] = InterNearestNearNew
	sf.ModeSearch.InterModeMask[Block32x64] = InterNearest
	sf.ModeSearch.InterModeMask[Block64x32] = InterNearest
	sf.ModeSearch.InterModeMask[Block64x64] = InterNearest
	sf.Partition.MaxIntraBlockSize = Block32x32
}

func rtTier5(ctx *EncodeContext, sf *SpeedFeatures) {
	isKey := ctx.FrameType == FrameKey
	framesSinceKey := 0
	if !isKey {
		framesSinceKey = ctx.FramesSinceKey
	}
	if isKey {
		sf.Partition.AutoMinMaxPartitionSize = RelaxedNeighboringMinMax
	} else {
		sf.Partition.AutoMinMaxPartitionSize = StrictNeighboringMinMax
	}
	sf.Partition.DefaultMaxPartitionSize = Block32x32
	sf.Partition.DefaultMinPartitionSize = Block8x8
	sf.ForceFrameBoost = isKey ||
		framesSinceKey%(sf.Partition.LastPartitioningRedoFrequency<<1) == 1
	if isKey {
		sf.MaxDeltaQIndex = 20
	} else {
		sf.MaxDeltaQIndex = 15
	}
	sf.Partition.SearchType = ReferencePartition
	sf.ModeSearch.InterModeMask[Block32x32] = InterNearestNewZero
	sf.ModeSearch.InterModeMask[Block32x64] = InterNearestNewZero
	sf.ModeSearch.InterModeMask[Block64x32] = InterNearestNewZero
	sf.ModeSearch.InterModeMask[Block64x64] = InterNearestNewZero
	sf.ModeSearch.AdaptiveRDThresh = 2
	// Only effective while the partition search is disabled.
	sf.Partition.ReuseInterPredSBY = true
	sf.Partition.SearchBreakoutRateThr = 200
	sf.CoeffProbApproxStep = 4
	if isKey {
		sf.UseFastCoefUpdates = TwoLoop
	} else {
		sf.UseFastCoefUpdates = OneLoopReduced
	}
	sf.ModeSearch.SearchSkipFlags = FlagSkipIntraDirMismatch
	if isKey {
		sf.Tx.SizeSearchMethod = UseLargestAll
	} else {
		sf.Tx.SizeSearchMethod = UseTx8x8
	}
	sf.SimpleModelRDFromVar = true

	if !isKey {
		if ctx.Content == ContentScreen {
			for i := BlockSize(0); i < NumBlockSizes; i++ {
				sf.ModeSearch.IntraYModeBlockMask[i] = IntraDCTMHV
			}
		} else {
			for i := BlockSize(0); i < NumBlockSizes; i++ {
				if i >= Block16x16 {
					sf.ModeSearch.IntraYModeBlockMask[i] = IntraDC
				} else {
					// H and V intra modes stay available below 16x16.
					sf.ModeSearch.IntraYModeBlockMask[i] = IntraDCHV
				}
			}
		}
	}
}

func rtTier6(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.Partition.SearchType = VarBasedPartition
	sf.Motion.SearchMethod = SearchNStep
	sf.Motion.ReduceFirstStepSize = true
}

func rtTier7(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.ModeSearch.AdaptiveRDThresh = 3
	sf.Motion.SearchMethod = SearchFastDiamond
	sf.Motion.FullpelSearchStepParam = 10
}

func rtTier8(ctx *EncodeContext, sf *SpeedFeatures) {
	sf.ModeSearch.AdaptiveRDThresh = 4
	sf.Motion.SubpelForceStop = 2
	sf.LPFPick = LPFPickMinimal
}

// --- frame-size dependent tiers ---

// partitionMinLimit picks the partition size down to which the auto
// partition code always searches, from the frame area. Ringing artefacts
// are more offensive when a small format is stretched over a large screen,
// so smaller formats keep searching smaller blocks.
func partitionMinLimit(width, height int) BlockSize {
	screenArea := width * height
	switch {
	case screenArea < 1280*720:
		return Block4x4
	case screenArea < 1920*1080:
		return Block8x8
	default:
		return Block16x16
	}
}

var goodFramesizeTiers = []tierStage{
	{1, goodFramesizeTier1},
	{2, goodFramesizeTier2},
	{3, goodFramesizeTier3},
	{4, goodFramesizeTier4},
	// The content override runs last so it wins over every
	// resolution-tiered mask assignment whenever it applies.
	{1, goodFramesizeContentOverride},
}

func goodFramesizeTier1(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.minDimension() >= 720 {
		if ctx.ShowFrame {
			sf.Partition.DisableSplitMask = DisableAllSplit
		} else {
			sf.Partition.DisableSplitMask = DisableAllInterSplit
		}
		sf.Partition.SearchBreakoutDistThr = 1 << 23
	} else {
		sf.Partition.DisableSplitMask = DisableCompoundSplit
		sf.Partition.SearchBreakoutDistThr = 1 << 21
	}
}

func goodFramesizeTier2(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.minDimension() >= 720 {
		if ctx.ShowFrame {
			sf.Partition.DisableSplitMask = DisableAllSplit
		} else {
			sf.Partition.DisableSplitMask = DisableAllInterSplit
		}
		sf.ModeSearch.AdaptivePredInterpFilter = 0
		sf.Partition.SearchBreakoutDistThr = 1 << 24
		sf.Partition.SearchBreakoutRateThr = 120
	} else {
		sf.Partition.DisableSplitMask = LastAndIntraSplitOnly
		sf.Partition.SearchBreakoutDistThr = 1 << 22
		sf.Partition.SearchBreakoutRateThr = 100
	}
	sf.Partition.RDAutoPartitionMinLimit = partitionMinLimit(ctx.Width, ctx.Height)
}

func goodFramesizeTier3(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.minDimension() >= 720 {
		sf.Partition.DisableSplitMask = DisableAllSplit
		sf.ModeSearch.ScheduleModeSearch = ctx.BaseQIndex < 220
		sf.Partition.SearchBreakoutDistThr = 1 << 25
		sf.Partition.SearchBreakoutRateThr = 200
	} else {
		sf.Partition.MaxIntraBlockSize = Block32x32
		sf.Partition.DisableSplitMask = DisableAllInterSplit
		sf.ModeSearch.ScheduleModeSearch = ctx.BaseQIndex < 175
		sf.Partition.SearchBreakoutDistThr = 1 << 23
		sf.Partition.SearchBreakoutRateThr = 120
	}
}

// goodFramesizeContentOverride resets the split mask for two-pass clips
// classified as animated/graphics content, or when the image edge is
// internal to the coded area. It runs after every resolution-tiered
// assignment so the content decision always wins when it applies.
func goodFramesizeContentOverride(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.Pass == 2 &&
		(ctx.Content == ContentGraphicsAnimation || ctx.InternalImageEdge) {
		sf.Partition.DisableSplitMask = DisableCompoundSplit
	}
}

func goodFramesizeTier4(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.minDimension() >= 720 {
		sf.Partition.SearchBreakoutDistThr = 1 << 26
	} else {
		sf.Partition.SearchBreakoutDistThr = 1 << 24
	}
	sf.Partition.DisableSplitMask = DisableAllSplit
}

var rtFramesizeTiers = []tierStage{
	{1, rtFramesizeTier1},
	{2, rtFramesizeTier2},
	{5, rtFramesizeTier5},
}

func rtFramesizeTier1(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.minDimension() >= 720 {
		if ctx.ShowFrame {
			sf.Partition.DisableSplitMask = DisableAllSplit
		} else {
			sf.Partition.DisableSplitMask = DisableAllInterSplit
		}
	} else {
		sf.Partition.DisableSplitMask = DisableCompoundSplit
	}
}

func rtFramesizeTier2(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.minDimension() >= 720 {
		if ctx.ShowFrame {
			sf.Partition.DisableSplitMask = DisableAllSplit
		} else {
			sf.Partition.DisableSplitMask = DisableAllInterSplit
		}
	} else {
		sf.Partition.DisableSplitMask = LastAndIntraSplitOnly
	}
}

func rtFramesizeTier5(ctx *EncodeContext, sf *SpeedFeatures) {
	if ctx.minDimension() >= 720 {
		sf.Partition.SearchBreakoutDistThr = 1 << 25
	} else {
		sf.Partition.SearchBreakoutDistThr = 1 << 23
	}
}
