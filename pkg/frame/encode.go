package frame

const (
	// frame length field: 13 data words plus the checksum
	lengthField = 2*13 + 2

	offsetCF1    = 4
	offsetLength = 2
)

// Encode builds a valid sensor frame carrying r in both the CF=1 and the
// atmospheric fields. Every reading appears twice, so the checksum is
// always odd and the trailing byte never reads as "not complete".
func Encode(r Readings) [Length]byte {
	var buf [Length]byte
	buf[0] = StartMarker
	buf[1] = SecondMarker
	putBE16(buf[offsetLength:], lengthField)

	for ch := range NumChannels {
		putBE16(buf[offsetCF1+2*ch:], r[ch])
		putBE16(buf[offsetPM1_0+2*ch:], r[ch])
	}

	putBE16(buf[checksumHigh:], Checksum(buf[:payloadLength]))
	return buf
}

func putBE16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}
