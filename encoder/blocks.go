package encoder

// BlockSize identifies one of the square or rectangular prediction block
// sizes the partition search can choose from, matching C libaom's
// BLOCK_SIZE enum (non-experimental configuration, 4x4 through 64x64).
type BlockSize int

const (
	Block4x4 BlockSize = iota
	Block4x8
	Block8x4
	Block8x8
	Block8x16
	Block16x8
	Block16x16
	Block16x32
	Block32x16
	Block32x32
	Block32x64
	Block64x32
	Block64x64

	// NumBlockSizes is the number of valid block sizes. It doubles as the
	// "no threshold / all sizes" sentinel for fields such as
	// CompInterJointSearchThresh, matching C's use of BLOCK_SIZES.
	NumBlockSizes

	// BlockLargest is the largest coding block size.
	BlockLargest = Block64x64
)

// blockWidths holds the width in pixels of each block size.
var blockWidths = [NumBlockSizes]int{4, 4, 8, 8, 8, 16, 16, 16, 32, 32, 32, 64, 64}

// blockHeights holds the height in pixels of each block size.
var blockHeights = [NumBlockSizes]int{4, 8, 4, 8, 16, 8, 16, 32, 16, 32, 64, 32, 64}

// WidthPixels returns the block width in pixels.
func (b BlockSize) WidthPixels() int { return blockWidths[b] }

// HeightPixels returns the block height in pixels.
func (b BlockSize) HeightPixels() int { return blockHeights[b] }

var blockSizeNames = [NumBlockSizes]string{
	"4x4", "4x8", "8x4", "8x8", "8x16", "16x8", "16x16",
	"16x32", "32x16", "32x32", "32x64", "64x32", "64x64",
}

func (b BlockSize) String() string {
	if b < 0 || b >= NumBlockSizes {
		return "invalid"
	}
	return blockSizeNames[b]
}

// TxSize identifies a square transform size, matching C libaom's TX_SIZE.
type TxSize int

const (
	Tx4x4 TxSize = iota
	Tx8x8
	Tx16x16
	Tx32x32

	// NumTxSizes is the number of valid transform sizes.
	NumTxSizes
)

var txSizeNames = [NumTxSizes]string{"4x4", "8x8", "16x16", "32x32"}

func (t TxSize) String() string {
	if t < 0 || t >= NumTxSizes {
		return "invalid"
	}
	return txSizeNames[t]
}
