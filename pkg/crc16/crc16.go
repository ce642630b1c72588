// Package crc16 implements the non-reflected, bit-serial CRC-16 family used
// by CC1100-class transceivers (MSB-first division, no final XOR).
package crc16

// Checksum computes the CRC-16 of data for the given polynomial and initial
// remainder.  Bits are fed MSB first with no input or output reflection.
// Checksum(nil, poly, init) is init.
func Checksum(data []byte, poly, init uint16) uint16 {
	rem := init
	for _, b := range data {
		rem ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if rem&0x8000 != 0 {
				rem = rem<<1 ^ poly
			} else {
				rem <<= 1
			}
		}
	}
	return rem
}
