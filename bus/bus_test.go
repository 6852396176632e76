package bus

import "testing"

func TestWidth(t *testing.T) {
	tests := []struct {
		w         Width
		wantBytes int
		wantMask  uint16
		wantValid bool
		wantStr   string
	}{
		{Width8, 1, 0x00FF, true, "x8"},
		{Width16, 2, 0xFFFF, true, "x16"},
		{Width(4), 1, 0x00FF, false, "x4"},
	}

	for _, tt := range tests {
		t.Run(tt.wantStr, func(t *testing.T) {
			if got := tt.w.Bytes(); got != tt.wantBytes {
				t.Errorf("Width.Bytes() = %v, want %v", got, tt.wantBytes)
			}
			if got := tt.w.Mask(); got != tt.wantMask {
				t.Errorf("Width.Mask() = %#x, want %#x", got, tt.wantMask)
			}
			if got := tt.w.Valid(); got != tt.wantValid {
				t.Errorf("Width.Valid() = %v, want %v", got, tt.wantValid)
			}
			if got := tt.w.String(); got != tt.wantStr {
				t.Errorf("Width.String() = %v, want %v", got, tt.wantStr)
			}
		})
	}
}

func TestLatch_String(t *testing.T) {
	tests := []struct {
		l    Latch
		want string
	}{
		{LatchNeutral, "neutral"},
		{LatchCommand, "command"},
		{LatchAddress, "address"},
		{Latch(9), "Unknown Latch (9)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.l.String(); got != tt.want {
				t.Errorf("Latch.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
