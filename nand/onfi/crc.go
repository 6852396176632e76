package onfi

// CRC-16 parameters of the parameter page integrity check.
const (
	crcPolynomial = 0x8005
	crcInit       = 0x4F4E
)

// CRC16 returns the parameter page CRC of b.
func CRC16(b []byte) uint16 {
	crc := uint16(crcInit)
	for _, v := range b {
		crc ^= uint16(v) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
