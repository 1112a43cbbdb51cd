package encoding

// Split32 uint32 to two uint16, high half first.
func Split32(in uint32) (uint16, uint16) {
	return uint16(in >> 16), uint16(in)
}

// Merge16 two uint16 to uint32
func Merge16(a, b uint16) uint32 {
	return (uint32(a) << 16) + uint32(b)
}

// Bits returns `width` bits of `in` starting at bit `shift` (counting from
// the least significant bit).
func Bits(in uint32, shift, width uint) uint32 {
	return (in >> shift) & ((1 << width) - 1)
}
