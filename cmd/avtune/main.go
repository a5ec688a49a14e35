// Command avtune derives and prints the encoder speed feature
// configuration for a given deadline mode, speed setting and frame
// context.
//
// Usage:
//
//	avtune [options]             Print the derived configuration
//	avtune -mode rt -speed 7     Realtime speed 7
//	avtune -json ...             Machine-readable output
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/deepteams/av1/encoder"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "avtune: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("avtune", flag.ContinueOnError)
	mode := fs.String("mode", "good", "deadline mode: rt/realtime, good, best")
	speed := fs.Int("speed", 0, "speed setting (0 = slowest)")
	pass := fs.Int("pass", 2, "encode pass: 0 single pass, 1 first pass, 2 second pass")
	content := fs.String("content", "default", "content type: default, screen, graphics")
	lossless := fs.Bool("lossless", false, "lossless coding requested")
	width := fs.Int("w", 1920, "frame width in pixels")
	height := fs.Int("h", 1080, "frame height in pixels")
	sbLog2 := fs.Int("sb", 6, "log2 of the superblock size (6 = 64x64)")
	keyframe := fs.Bool("keyframe", false, "derive for a key frame")
	noshow := fs.Bool("noshow", false, "derive for a frame that is not shown")
	qindex := fs.Int("q", 100, "base quantizer index")
	boost := fs.Bool("boost", false, "enable periodic frame boosting")
	jsonOut := fs.Bool("json", false, "emit the configuration as JSON")
	noColor := fs.Bool("no-color", false, "disable colored output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	m, err := parseMode(*mode)
	if err != nil {
		return err
	}
	c, err := parseContent(*content)
	if err != nil {
		return err
	}
	if *speed < 0 {
		return fmt.Errorf("speed must be >= 0, got %d", *speed)
	}
	if *pass < 0 || *pass > 2 {
		return fmt.Errorf("pass must be 0, 1 or 2, got %d", *pass)
	}
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("frame dimensions must be positive, got %dx%d", *width, *height)
	}

	ctx := &encoder.EncodeContext{
		Mode:               m,
		Speed:              *speed,
		Pass:               *pass,
		Content:            c,
		Lossless:           *lossless,
		FramePeriodicBoost: *boost,
		Width:              *width,
		Height:             *height,
		SuperblockLog2:     *sbLog2,
		FrameType:          encoder.FrameInter,
		ShowFrame:          !*noshow,
		BaseQIndex:         *qindex,
		LastFrameType:      encoder.FrameInter,
	}
	if *keyframe {
		ctx.FrameType = encoder.FrameKey
		ctx.FrameIsBoosted = true
	}

	rd := &encoder.RDThresholds{}
	d := encoder.DeriveFramesizeIndependent(ctx, rd)
	encoder.DeriveFramesizeDependent(ctx, &d.SF, rd)

	if *jsonOut {
		return writeJSON(w, ctx, d, rd)
	}
	return writeText(w, ctx, d, rd, *noColor)
}

func parseMode(s string) (encoder.Mode, error) {
	switch strings.ToLower(s) {
	case "rt", "realtime":
		return encoder.ModeRealtime, nil
	case "good":
		return encoder.ModeGood, nil
	case "best":
		return encoder.ModeBest, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (use rt, good or best)", s)
	}
}

func parseContent(s string) (encoder.ContentType, error) {
	switch strings.ToLower(s) {
	case "default", "":
		return encoder.ContentDefault, nil
	case "screen":
		return encoder.ContentScreen, nil
	case "graphics", "animation":
		return encoder.ContentGraphicsAnimation, nil
	default:
		return 0, fmt.Errorf("unknown content type %q (use default, screen or graphics)", s)
	}
}

// report is the JSON shape of one derivation; it flattens the pieces a
// scripted consumer actually wants to diff across speed settings.
type report struct {
	Mode    string `json:"mode"`
	Speed   int    `json:"speed"`
	Pass    int    `json:"pass"`
	Content string `json:"content"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`

	Features encoder.SpeedFeatures `json:"features"`

	SubpelRoutine      string `json:"subpel_routine"`
	MinPartitionPixels int    `json:"min_partition_pixels"`
	MaxPartitionPixels int    `json:"max_partition_pixels"`
	Trellis            bool   `json:"trellis"`

	SplitThresholds [encoder.MaxRefThresholds]int32 `json:"split_thresholds"`
}

func writeJSON(w io.Writer, ctx *encoder.EncodeContext, d *encoder.Derived, rd *encoder.RDThresholds) error {
	r := report{
		Mode:               ctx.Mode.String(),
		Speed:              ctx.Speed,
		Pass:               ctx.Pass,
		Content:            ctx.Content.String(),
		Width:              ctx.Width,
		Height:             ctx.Height,
		Features:           d.SF,
		SubpelRoutine:      d.SubpelRoutine.String(),
		MinPartitionPixels: d.MinPartitionPixels,
		MaxPartitionPixels: d.MaxPartitionPixels,
		Trellis:            d.Trellis,
		SplitThresholds:    rd.ThreshMultSub8x8,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeText(w io.Writer, ctx *encoder.EncodeContext, d *encoder.Derived, rd *encoder.RDThresholds, noColor bool) error {
	heading := color.New(color.Bold, color.FgCyan)
	label := color.New(color.FgYellow)
	if noColor {
		heading.DisableColor()
		label.DisableColor()
	}

	sf := &d.SF

	heading.Fprintf(w, "%s speed %d", ctx.Mode, ctx.Speed)
	fmt.Fprintf(w, "  (%dx%d pass %d %s %s)\n",
		ctx.Width, ctx.Height, ctx.Pass, ctx.FrameType, ctx.Content)

	label.Fprintln(w, "partition")
	fmt.Fprintf(w, "  search type          %s\n", partitionSearchName(sf.Partition.SearchType))
	fmt.Fprintf(w, "  square only          %v  (less rect check %v)\n",
		sf.Partition.UseSquarePartitionOnly, sf.Partition.LessRectangularCheck)
	fmt.Fprintf(w, "  split disable mask   %s\n", splitMaskName(sf.Partition.DisableSplitMask))
	fmt.Fprintf(w, "  breakout dist/rate   %s / %d\n",
		pow2(sf.Partition.SearchBreakoutDistThr), sf.Partition.SearchBreakoutRateThr)
	fmt.Fprintf(w, "  size bounds          %s .. %s  (%d..%d px)\n",
		sf.Partition.DefaultMinPartitionSize, sf.Partition.DefaultMaxPartitionSize,
		d.MinPartitionPixels, d.MaxPartitionPixels)

	label.Fprintln(w, "motion")
	fmt.Fprintf(w, "  full-pel search      %s (step param %d)\n",
		searchMethodName(sf.Motion.SearchMethod), sf.Motion.FullpelSearchStepParam)
	fmt.Fprintf(w, "  subpel               %s, %d iters/step, force stop %d\n",
		d.SubpelRoutine, sf.Motion.SubpelItersPerStep, sf.Motion.SubpelForceStop)
	fmt.Fprintf(w, "  mesh                 %v, thresh %s, max %d%%\n",
		sf.Motion.AllowExhaustiveSearches, pow2(sf.Motion.ExhaustiveSearchesThresh),
		sf.Motion.MaxExhaustivePct)
	fmt.Fprintf(w, "  mesh patterns        %v\n", sf.Motion.MeshPatterns)

	label.Fprintln(w, "transform")
	fmt.Fprintf(w, "  size search          %s (breakout %v)\n",
		txSizeMethodName(sf.Tx.SizeSearchMethod), sf.Tx.SizeSearchBreakout)
	fmt.Fprintf(w, "  type prune           %d, fast intra/inter %v/%v\n",
		sf.Tx.TypePruneMode, sf.Tx.FastIntraTypeSearch, sf.Tx.FastInterTypeSearch)

	label.Fprintln(w, "mode search")
	fmt.Fprintf(w, "  skip flags           %#x (from index %d)\n",
		sf.ModeSearch.SearchSkipFlags, sf.ModeSearch.SkipStart)
	fmt.Fprintf(w, "  adaptive rd thresh   %d\n", sf.ModeSearch.AdaptiveRDThresh)
	fmt.Fprintf(w, "  adaptive interp      pred %d, search %v\n",
		sf.ModeSearch.AdaptivePredInterpFilter, sf.ModeSearch.AdaptiveInterpFilterSearch)

	label.Fprintln(w, "rate control")
	fmt.Fprintf(w, "  recode               %s (tolerance %d%%)\n",
		recodeName(sf.RecodeLoop), sf.RecodeTolerance)
	fmt.Fprintf(w, "  trellis              %v\n", d.Trellis)
	fmt.Fprintf(w, "  frame boost          %v (max delta q %d)\n",
		sf.ForceFrameBoost, sf.MaxDeltaQIndex)

	masked := 0
	for _, thr := range rd.ThreshMultSub8x8 {
		if thr == math.MaxInt32 {
			masked++
		}
	}
	fmt.Fprintf(w, "%d of %d sub-8x8 split cases priced out\n", masked, encoder.MaxRefThresholds)
	return nil
}

// pow2 renders a threshold as 2^n when it is an exact power of two, which
// all the tuned breakout values are.
func pow2(v int64) string {
	if v > 0 && v&(v-1) == 0 {
		n := 0
		for v > 1 {
			v >>= 1
			n++
		}
		return fmt.Sprintf("2^%d", n)
	}
	return fmt.Sprintf("%d", v)
}

func splitMaskName(mask int) string {
	switch mask {
	case 0:
		return "none"
	case encoder.DisableAllSplit:
		return "all"
	case encoder.DisableAllInterSplit:
		return "all-inter"
	case encoder.DisableCompoundSplit:
		return "compound"
	case encoder.LastAndIntraSplitOnly:
		return "all-but-last-and-intra"
	}
	return fmt.Sprintf("%#x", mask)
}

func partitionSearchName(t encoder.PartitionSearchType) string {
	switch t {
	case encoder.SearchPartition:
		return "full"
	case encoder.FixedPartition:
		return "fixed"
	case encoder.ReferencePartition:
		return "reference"
	case encoder.VarBasedPartition:
		return "variance"
	}
	return "unknown"
}

func searchMethodName(m encoder.SearchMethod) string {
	switch m {
	case encoder.SearchDiamond:
		return "diamond"
	case encoder.SearchNStep:
		return "nstep"
	case encoder.SearchHex:
		return "hex"
	case encoder.SearchBigDiamond:
		return "big diamond"
	case encoder.SearchSquare:
		return "square"
	case encoder.SearchFastHex:
		return "fast hex"
	case encoder.SearchFastDiamond:
		return "fast diamond"
	}
	return "unknown"
}

func txSizeMethodName(m encoder.TxSizeSearchMethod) string {
	switch m {
	case encoder.UseFullRD:
		return "full rd"
	case encoder.UseLargestAll:
		return "largest"
	case encoder.UseTx8x8:
		return "8x8"
	}
	return "unknown"
}

func recodeName(p encoder.RecodePolicy) string {
	switch p {
	case encoder.DisallowRecode:
		return "off"
	case encoder.AllowRecodeKFMaxBW:
		return "kf+maxbw"
	case encoder.AllowRecodeKFARFGF:
		return "kf/arf/gf"
	case encoder.AllowRecode:
		return "all frames"
	}
	return "unknown"
}
