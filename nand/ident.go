package nand

// CheckDDR reports whether b looks like double-data-rate output, where
// every byte arrives twice in succession. A trailing unpaired byte is
// ignored. An empty sequence is not DDR.
func CheckDDR(b []byte) bool {
	if len(b) < 1 {
		return false
	}
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] != b[i+1] {
			return false
		}
	}
	return true
}

// FoldDDR keeps every even-indexed byte of b, packed at the front, and
// fills the rest of b with filler. A trailing odd byte is kept. Returns the
// folded length.
func FoldDDR(b []byte, filler byte) int {
	n := len(b) / 2
	for i := 0; i < n; i++ {
		b[i] = b[2*i]
	}
	if 2*n+1 == len(b) {
		b[n] = b[2*n]
		n++
	}
	for i := n; i < len(b); i++ {
		b[i] = filler
	}
	return n
}

// ExtractIDSize returns the shortest period, starting from minPeriod, whose
// repetition reproduces all of b. A trailing partial repetition must match
// its prefix. If nothing shorter tiles b the full length is returned.
func ExtractIDSize(b []byte, minPeriod int) int {
	if len(b) < 1 {
		return 0
	}
	period := max(1, min(minPeriod, len(b)))
	for period < len(b) && !tiles(b, period) {
		period++
	}
	return period
}

func tiles(b []byte, period int) bool {
	for i := period; i < len(b); i++ {
		if b[i] != b[i%period] {
			return false
		}
	}
	return true
}

// ExtractID folds DDR output, finds the identifier length by repetition
// and zero-fills everything in b beyond it. Returns the identifier length.
func ExtractID(b []byte) int {
	folded := len(b)
	if CheckDDR(b) {
		folded = FoldDDR(b, 0x00)
	}
	size := ExtractIDSize(b[:folded], MinIDSize)
	for i := size; i < len(b); i++ {
		b[i] = 0x00
	}
	return size
}
