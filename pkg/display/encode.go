// Package display drives the two-digit multiplexed seven-segment display.
package display

// MaxValue is the largest value two digits can show.
const MaxValue = 99

// Digits is a pair of BCD digits. Position 0 is tens, position 1 is units.
type Digits struct {
	Tens  uint8
	Units uint8
}

// At returns the BCD value shown at position pos.
func (d Digits) At(pos int) uint8 {
	if pos == 0 {
		return d.Tens
	}
	return d.Units
}

// Value returns the decimal value of d.
func (d Digits) Value() uint8 {
	return d.Tens*10 + d.Units
}

// Encode converts v to BCD with the shift-and-add-3 (double dabble) method.
// Values above MaxValue saturate.
func Encode(v uint8) Digits {
	if v > MaxValue {
		v = MaxValue
	}

	var bcd uint16
	for i := 7; i >= 0; i-- {
		if bcd&0x000f >= 0x0005 {
			bcd += 0x0003
		}
		if bcd&0x00f0 >= 0x0050 {
			bcd += 0x0030
		}
		bcd = bcd<<1 | uint16(v>>i)&1
	}

	return Digits{
		Tens:  uint8(bcd>>4) & 0x0f,
		Units: uint8(bcd) & 0x0f,
	}
}
