package encoder

import "math"

// Reference-frame threshold indices for the sub-8x8 split cases, matching
// C libaom's THR_LAST..THR_INTRA ordering of the rd->thresh_mult_sub8x8
// table. The split-disable mask is a bitset over these indices.
const (
	ThrLast = iota
	ThrGolden
	ThrAltRef
	ThrCompLastAlt
	ThrCompGoldAlt
	ThrIntra

	// MaxRefThresholds is the number of sub-8x8 split threshold entries.
	MaxRefThresholds
)

// Split-disable mask values. Each set bit excludes that reference case's
// sub-8x8 split from the partition search entirely: the normalizer forces
// the matching threshold multiplier to MaxInt32 so downstream search skips
// it rather than merely deprioritizing it.
const (
	// DisableAllInterSplit masks out every inter split case.
	DisableAllInterSplit = 1<<ThrCompGoldAlt | 1<<ThrCompLastAlt |
		1<<ThrAltRef | 1<<ThrGolden | 1<<ThrLast

	// DisableAllSplit masks out every split case, intra included.
	DisableAllSplit = 1<<ThrIntra | DisableAllInterSplit

	// DisableCompoundSplit masks out only the compound-prediction splits.
	DisableCompoundSplit = 1<<ThrCompGoldAlt | 1<<ThrCompLastAlt

	// LastAndIntraSplitOnly keeps only the LAST-frame and intra splits.
	LastAndIntraSplitOnly = 1<<ThrCompGoldAlt | 1<<ThrCompLastAlt |
		1<<ThrAltRef | 1<<ThrGolden
)

// RDThresholds holds the rate-distortion threshold multipliers consumed by
// the partition search. The baseline values are derived elsewhere from the
// quantizer; the speed feature normalizer only saturates masked-out
// entries to MaxInt32.
type RDThresholds struct {
	ThreshMultSub8x8 [MaxRefThresholds]int32
}

// maskSplitThresholds forces the threshold multiplier of every split case
// set in mask to the maximum representable value, effectively removing it
// from the search.
func (rd *RDThresholds) maskSplitThresholds(mask int) {
	for i := 0; i < MaxRefThresholds; i++ {
		if mask&(1<<i) != 0 {
			rd.ThreshMultSub8x8[i] = math.MaxInt32
		}
	}
}
