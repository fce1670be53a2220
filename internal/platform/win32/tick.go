package win32

import "math/bits"

// tickCount joins the two result registers of GetTickCount64. On 32-bit
// targets the high half comes back in the second register.
func tickCount(lo, hi uintptr) uint64 {
	if bits.UintSize == 32 {
		return uint64(hi)<<32 | uint64(lo)
	}
	return uint64(lo)
}
