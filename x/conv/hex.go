package conv

const hexd = "0123456789abcdef"

// ByteHex writes two lowercase hex digits without 0x.
func ByteHex(buf []byte, b byte) []byte {
	if len(buf) < 2 {
		return buf[:0]
	}
	buf[0] = hexd[b>>4]
	buf[1] = hexd[b&0xF]
	return buf[:2]
}
