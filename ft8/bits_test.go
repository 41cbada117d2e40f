package ft8

import "testing"

func TestAppendUint(t *testing.T) {
	tests := []struct {
		name  string
		v     uint64
		width int
		want  Bits
	}{
		{"zero", 0, 4, Bits{false, false, false, false}},
		{"one", 1, 4, Bits{false, false, false, true}},
		{"full", 0xF, 4, Bits{true, true, true, true}},
		{"truncates high bits", 0x1F, 4, Bits{true, true, true, true}},
		{"single bit set", 2, 3, Bits{false, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendUint(nil, tt.v, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("bit %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAppendUint_Concatenates(t *testing.T) {
	var b Bits
	b = AppendUint(b, 3, 2)
	b = AppendUint(b, 5, 3)
	if len(b) != 5 {
		t.Fatalf("length = %d, want 5", len(b))
	}
	if got := b.Uint(0, 2); got != 3 {
		t.Errorf("first field = %d, want 3", got)
	}
	if got := b.Uint(2, 3); got != 5 {
		t.Errorf("second field = %d, want 5", got)
	}
}

func TestUint_RoundTrip(t *testing.T) {
	var b Bits
	b = AppendUint(b, 0x3FFF, 14)
	got := b.Uint(0, 14)
	if got != 0x3FFF {
		t.Errorf("Uint() = %d, want %d", got, 0x3FFF)
	}
}

func TestBit(t *testing.T) {
	b := Bits{true, false, true}
	if !b.Bit(0) {
		t.Error("Bit(0) = false, want true")
	}
	if b.Bit(1) {
		t.Error("Bit(1) = true, want false")
	}
	if !b.Bit(2) {
		t.Error("Bit(2) = false, want true")
	}
}
