package display

// NumSegments is the number of segment lines (a-g, no decimal point).
const NumSegments = 7

// Segments is a segment pattern, bit 0 = a ... bit 6 = g.
type Segments uint8

// Segment bits.
const (
	SegA Segments = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
)

// Lit reports whether segment i (0 = a) is on.
func (s Segments) Lit(i int) bool {
	return s&(1<<i) != 0
}

// Font maps a BCD digit to its segment pattern.
type Font func(digit uint8) Segments

var sevenSegment = [10]Segments{
	SegA | SegB | SegC | SegD | SegE | SegF,        // 0
	SegB | SegC,                                    // 1
	SegA | SegB | SegD | SegE | SegG,               // 2
	SegA | SegB | SegC | SegD | SegG,               // 3
	SegB | SegC | SegF | SegG,                      // 4
	SegA | SegC | SegD | SegF | SegG,               // 5
	SegA | SegC | SegD | SegE | SegF | SegG,        // 6
	SegA | SegB | SegC,                             // 7
	SegA | SegB | SegC | SegD | SegE | SegF | SegG, // 8
	SegA | SegB | SegC | SegD | SegF | SegG,        // 9
}

// SevenSegment is the standard decimal font. Non-decimal nibbles render blank.
func SevenSegment(digit uint8) Segments {
	if int(digit) >= len(sevenSegment) {
		return 0
	}
	return sevenSegment[digit]
}
