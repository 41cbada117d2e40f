package ft8

import (
	"errors"
	"testing"
)

func mustMessage(t *testing.T, text string) Message {
	t.Helper()
	m, err := NewMessage(text)
	if err != nil {
		t.Fatalf("NewMessage(%q) returned error: %v", text, err)
	}
	return m
}

func TestPack_Length(t *testing.T) {
	bits, err := Pack(mustMessage(t, "CQ K1ABC FN42"))
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if len(bits) != 77 {
		t.Fatalf("len(bits) = %d, want 77", len(bits))
	}
}

func TestPack_CQForm(t *testing.T) {
	bits, err := Pack(mustMessage(t, "CQ K1ABC FN42"))
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}

	if got := bits.Uint(0, 28); got != 2 {
		t.Errorf("c28a = %d, want 2 (bare CQ)", got)
	}
	if bits.Bit(28) {
		t.Error("rA = true, want false")
	}

	wantC28b, err := StdCallTo28("K1ABC")
	if err != nil {
		t.Fatalf("StdCallTo28 returned error: %v", err)
	}
	if got := bits.Uint(29, 28); got != uint64(wantC28b) {
		t.Errorf("c28b = %d, want %d", got, wantC28b)
	}
	if bits.Bit(57) {
		t.Error("rB = true, want false")
	}
	if bits.Bit(58) {
		t.Error("standalone R = true, want false")
	}

	wantGrid, err := Grid4To15("FN42")
	if err != nil {
		t.Fatalf("Grid4To15 returned error: %v", err)
	}
	if got := bits.Uint(59, 15); got != uint64(wantGrid) {
		t.Errorf("grid = %d, want %d", got, wantGrid)
	}
	if got := bits.Uint(74, 3); got != uint64(SubtypeStandard.I3()) {
		t.Errorf("i3 = %d, want %d", got, SubtypeStandard.I3())
	}
}

func TestPack_RoverFlags(t *testing.T) {
	bits, err := Pack(mustMessage(t, "K1ABC/R W9XYZ/R R EN37"))
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}

	wantC28a, _ := StdCallTo28("K1ABC")
	wantC28b, _ := StdCallTo28("W9XYZ")
	wantGrid, _ := Grid4To15("EN37")

	if got := bits.Uint(0, 28); got != uint64(wantC28a) {
		t.Errorf("c28a = %d, want %d", got, wantC28a)
	}
	if !bits.Bit(28) {
		t.Error("rA = false, want true (K1ABC/R)")
	}
	if got := bits.Uint(29, 28); got != uint64(wantC28b) {
		t.Errorf("c28b = %d, want %d", got, wantC28b)
	}
	if !bits.Bit(57) {
		t.Error("rB = false, want true (W9XYZ/R)")
	}
	if !bits.Bit(58) {
		t.Error("standalone R = false, want true")
	}
	if got := bits.Uint(59, 15); got != uint64(wantGrid) {
		t.Errorf("grid = %d, want %d", got, wantGrid)
	}
}

func TestPack_TwoPlainCallsigns(t *testing.T) {
	bits, err := Pack(mustMessage(t, "K1ABC W9XYZ EN37"))
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if bits.Bit(28) {
		t.Error("rA = true, want false (no /R suffix)")
	}
	if bits.Bit(57) {
		t.Error("rB = true, want false (no /R suffix)")
	}
	if bits.Bit(58) {
		t.Error("standalone R = true, want false")
	}
}

func TestPack_UnsupportedSubtype(t *testing.T) {
	_, err := Pack(mustMessage(t, "HELLO WORLD"))
	if !errors.Is(err, ErrUnsupportedSubtype) {
		t.Errorf("expected ErrUnsupportedSubtype, got %v", err)
	}
}

func TestPack_DEForm(t *testing.T) {
	bits, err := Pack(mustMessage(t, "DE K1ABC FN42"))
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if got := bits.Uint(0, 28); got != 0 {
		t.Errorf("c28a = %d, want 0 (DE)", got)
	}
}

func TestPack_QRZForm(t *testing.T) {
	bits, err := Pack(mustMessage(t, "QRZ K1ABC FN42"))
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if got := bits.Uint(0, 28); got != 1 {
		t.Errorf("c28a = %d, want 1 (QRZ)", got)
	}
}

func TestPack_CQNumericSuffix(t *testing.T) {
	bits, err := Pack(mustMessage(t, "CQ 123 K1ABC FN42"))
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if got := bits.Uint(0, 28); got != 3+123 {
		t.Errorf("c28a = %d, want %d (CQ 123)", got, 3+123)
	}
}

func TestBareCallsign(t *testing.T) {
	tests := []struct {
		token string
		wantB string
		wantR bool
		wantP bool
	}{
		{"K1ABC/R", "K1ABC", true, false},
		{"K1ABC/P", "K1ABC", false, true},
		{"K1ABC", "K1ABC", false, false},
	}
	for _, tt := range tests {
		b, r, p := bareCallsign(tt.token)
		if b != tt.wantB || r != tt.wantR || p != tt.wantP {
			t.Errorf("bareCallsign(%q) = (%q, %v, %v), want (%q, %v, %v)",
				tt.token, b, r, p, tt.wantB, tt.wantR, tt.wantP)
		}
	}
}
