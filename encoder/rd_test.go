package encoder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMaskComposition(t *testing.T) {
	require.Equal(t, DisableAllSplit, DisableAllInterSplit|1<<ThrIntra,
		"all-split must be all-inter-split plus intra")
	assert.Zero(t, DisableAllInterSplit&(1<<ThrIntra),
		"all-inter-split must not mask intra")
	assert.Equal(t, DisableCompoundSplit, DisableCompoundSplit&DisableAllInterSplit,
		"compound splits are a subset of inter splits")
	assert.Zero(t, LastAndIntraSplitOnly&(1<<ThrLast|1<<ThrIntra),
		"last-and-intra-only must keep LAST and intra searchable")
}

func TestMaskSplitThresholds(t *testing.T) {
	var rd RDThresholds
	for i := range rd.ThreshMultSub8x8 {
		rd.ThreshMultSub8x8[i] = int32(100 * (i + 1))
	}

	rd.maskSplitThresholds(DisableCompoundSplit)

	assert.EqualValues(t, math.MaxInt32, rd.ThreshMultSub8x8[ThrCompLastAlt])
	assert.EqualValues(t, math.MaxInt32, rd.ThreshMultSub8x8[ThrCompGoldAlt])
	for _, i := range []int{ThrLast, ThrGolden, ThrAltRef, ThrIntra} {
		assert.EqualValues(t, 100*(i+1), rd.ThreshMultSub8x8[i],
			"unmasked entry %d must keep its multiplier", i)
	}

	// Masking is cumulative across calls.
	rd.maskSplitThresholds(1 << ThrLast)
	assert.EqualValues(t, math.MaxInt32, rd.ThreshMultSub8x8[ThrLast])
	assert.EqualValues(t, math.MaxInt32, rd.ThreshMultSub8x8[ThrCompLastAlt])
}

func TestMaskSplitThresholdsZeroMask(t *testing.T) {
	var rd, zero RDThresholds
	rd.maskSplitThresholds(0)
	require.Equal(t, zero, rd)
}

func TestEnforceSplitMask(t *testing.T) {
	var sf SpeedFeatures
	var rd RDThresholds
	sf.ModeSearch.AdaptivePredInterpFilter = 2

	sf.Partition.DisableSplitMask = DisableAllInterSplit
	enforceSplitMask(&sf, &rd)
	assert.Equal(t, 2, sf.ModeSearch.AdaptivePredInterpFilter,
		"partial mask must not disable the adaptive filter")

	sf.Partition.DisableSplitMask = DisableAllSplit
	enforceSplitMask(&sf, &rd)
	assert.Zero(t, sf.ModeSearch.AdaptivePredInterpFilter,
		"full mask must disable the adaptive filter")
	for i := 0; i < MaxRefThresholds; i++ {
		assert.EqualValues(t, math.MaxInt32, rd.ThreshMultSub8x8[i])
	}
}
