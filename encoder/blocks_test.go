package encoder

import "testing"

func TestBlockSizePixels(t *testing.T) {
	tests := []struct {
		b    BlockSize
		w, h int
	}{
		{Block4x4, 4, 4},
		{Block8x4, 8, 4},
		{Block4x8, 4, 8},
		{Block8x8, 8, 8},
		{Block16x8, 16, 8},
		{Block16x32, 16, 32},
		{Block32x16, 32, 16},
		{Block32x64, 32, 64},
		{Block64x32, 64, 32},
		{Block64x64, 64, 64},
	}
	for _, tt := range tests {
		if got := tt.b.WidthPixels(); got != tt.w {
			t.Errorf("%v: WidthPixels() = %d, want %d", tt.b, got, tt.w)
		}
		if got := tt.b.HeightPixels(); got != tt.h {
			t.Errorf("%v: HeightPixels() = %d, want %d", tt.b, got, tt.h)
		}
	}
}

func TestBlockSizeString(t *testing.T) {
	if got := Block16x32.String(); got != "16x32" {
		t.Errorf("Block16x32.String() = %q, want 16x32", got)
	}
	if got := NumBlockSizes.String(); got != "invalid" {
		t.Errorf("NumBlockSizes.String() = %q, want invalid", got)
	}
	if got := BlockSize(-1).String(); got != "invalid" {
		t.Errorf("BlockSize(-1).String() = %q, want invalid", got)
	}
}

func TestTxSizeString(t *testing.T) {
	want := []string{"4x4", "8x8", "16x16", "32x32"}
	for i, w := range want {
		if got := TxSize(i).String(); got != w {
			t.Errorf("TxSize(%d).String() = %q, want %q", i, got, w)
		}
	}
	if got := NumTxSizes.String(); got != "invalid" {
		t.Errorf("NumTxSizes.String() = %q, want invalid", got)
	}
}
