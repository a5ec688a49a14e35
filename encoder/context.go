package encoder

// Mode selects the encoder's overall deadline/quality category, matching
// C libaom's MODE enum in the encoder configuration.
type Mode int

const (
	// ModeRealtime favors low latency: single-pass, cheapest searches.
	ModeRealtime Mode = iota
	// ModeGood is the two-pass good-quality trade-off (the default).
	ModeGood
	// ModeBest keeps every search at its most thorough setting; no speed
	// cascade is applied on top of the baseline.
	ModeBest
)

func (m Mode) String() string {
	switch m {
	case ModeRealtime:
		return "realtime"
	case ModeGood:
		return "good"
	case ModeBest:
		return "best"
	}
	return "invalid"
}

// FrameType distinguishes intra-only key frames from inter frames,
// matching C libaom's FRAME_TYPE.
type FrameType int

const (
	FrameKey FrameType = iota
	FrameInter
)

func (f FrameType) String() string {
	if f == FrameKey {
		return "key"
	}
	return "inter"
}

// ContentType classifies the source material. ContentGraphicsAnimation is
// produced by the two-pass first-pass statistics (C's FC_GRAPHICS_ANIMATION);
// ContentScreen is a caller-supplied tuning hint (C's AOM_CONTENT_SCREEN).
type ContentType int

const (
	ContentDefault ContentType = iota
	ContentScreen
	ContentGraphicsAnimation
)

func (c ContentType) String() string {
	switch c {
	case ContentDefault:
		return "default"
	case ContentScreen:
		return "screen"
	case ContentGraphicsAnimation:
		return "graphics-animation"
	}
	return "invalid"
}

// EncodeContext carries every session- and frame-level input the speed
// feature derivation reads. It replaces the C code's implicit reach into
// the whole AV1_COMP encoder state with an explicit, read-only parameter;
// both derivation entry points are pure functions of it.
//
// All fields are assumed pre-validated by the caller (enum values in
// range, dimensions positive). Speed is unbounded above and only clamped
// internally for mesh-table indexing.
type EncodeContext struct {
	Mode  Mode
	Speed int
	Pass  int // 0 = single pass without recode, 1 = first pass, 2 = second pass

	Content            ContentType
	Lossless           bool
	FramePeriodicBoost bool

	Width, Height int
	// SuperblockLog2 is the log2 of the superblock size; 6 (64x64) is the
	// baseline the partition breakout thresholds are tuned for.
	SuperblockLog2 int

	FrameType FrameType
	// FrameIsBoosted reports whether the current frame is a key, golden or
	// alt-ref frame, which are conventionally coded at higher than ambient
	// quality (C's frame_is_kf_gf_arf).
	FrameIsBoosted bool
	ShowFrame      bool

	BaseQIndex     int
	FramesSinceKey int
	LastFrameType  FrameType

	// InternalImageEdge reports that the coded area extends past the active
	// image (C's av1_internal_image_edge), which triggers the same partition
	// overrides as graphics/animation content.
	InternalImageEdge bool
}

// frameIsIntraOnly reports whether the current frame codes no inter
// predictions (C's frame_is_intra_only).
func (ctx *EncodeContext) frameIsIntraOnly() bool {
	return ctx.FrameType == FrameKey
}

// minDimension returns min(Width, Height), the value compared against the
// 720-line threshold in the frame-size-dependent tiers.
func (ctx *EncodeContext) minDimension() int {
	if ctx.Width < ctx.Height {
		return ctx.Width
	}
	return ctx.Height
}
