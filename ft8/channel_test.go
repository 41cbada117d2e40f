package ft8

import "testing"

func TestBitsToFSK8_Length(t *testing.T) {
	symbols, err := BitsToFSK8(make(Bits, 174))
	if err != nil {
		t.Fatalf("BitsToFSK8 returned error: %v", err)
	}
	if len(symbols) != TotalSymbols {
		t.Fatalf("len(symbols) = %d, want %d", len(symbols), TotalSymbols)
	}
	if TotalSymbols != 79 {
		t.Fatalf("TotalSymbols = %d, want 79", TotalSymbols)
	}
}

func TestBitsToFSK8_WrongLength(t *testing.T) {
	if _, err := BitsToFSK8(make(Bits, 170)); err == nil {
		t.Error("expected error for wrong-length codeword, got nil")
	}
}

func TestBitsToFSK8_CostasPositions(t *testing.T) {
	symbols, err := BitsToFSK8(make(Bits, 174))
	if err != nil {
		t.Fatalf("BitsToFSK8 returned error: %v", err)
	}

	checkCostas := func(start int) {
		for i, want := range costas7 {
			if symbols[start+i] != want {
				t.Errorf("symbols[%d] = %d, want %d (costas)", start+i, symbols[start+i], want)
			}
		}
	}
	checkCostas(0)
	checkCostas(36)
	checkCostas(72)

	// The all-zero codeword's data symbols must all be grayMap[0].
	for i := 7; i < 36; i++ {
		if symbols[i] != grayMap[0] {
			t.Errorf("symbols[%d] = %d, want %d (grayMap[0])", i, symbols[i], grayMap[0])
		}
	}
	for i := 43; i < 72; i++ {
		if symbols[i] != grayMap[0] {
			t.Errorf("symbols[%d] = %d, want %d (grayMap[0])", i, symbols[i], grayMap[0])
		}
	}
}

func TestBitsToFSK8_ToneRange(t *testing.T) {
	codeword := make(Bits, 174)
	for i := range codeword {
		codeword[i] = i%2 == 0
	}
	symbols, err := BitsToFSK8(codeword)
	if err != nil {
		t.Fatalf("BitsToFSK8 returned error: %v", err)
	}
	for i, s := range symbols {
		if s > 7 {
			t.Errorf("symbols[%d] = %d, exceeds max tone index 7", i, s)
		}
	}
}

func TestGrayMap_IsPermutationOf0To7(t *testing.T) {
	seen := make(map[uint8]bool)
	for _, v := range grayMap {
		if v > 7 {
			t.Fatalf("grayMap contains out-of-range value %d", v)
		}
		if seen[v] {
			t.Fatalf("grayMap value %d repeated", v)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Fatalf("grayMap has %d distinct values, want 8", len(seen))
	}
}
