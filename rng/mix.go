package rng

import "math/bits"

const (
	// goldenGamma is the 64-bit golden ratio, the default odd step.
	goldenGamma = 0x9e3779b97f4a7c15

	// doubleGoldenGamma is 2*goldenGamma mod 2^64, the per-caller stride of the
	// default seeder's counter.
	doubleGoldenGamma = 0x3c6ef372fe94f82a

	// Gammas with fewer bit transitions than this are repaired by xoring with
	// gammaRepairMask. Both values are fixed for sequence compatibility.
	minGammaTransitions = 24
	gammaRepairMask     = 0xaaaaaaaaaaaaaaaa
)

// mix64 is the 64-bit output finalizer (Stafford variant 13).
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// mix32 returns the high half of a variant-4 finalizer as a signed value.
func mix32(z uint64) int32 {
	z = (z ^ (z >> 33)) * 0x62a9d9ed799705f5
	return int32(((z ^ (z >> 28)) * 0xcb24d0a5c88c35b3) >> 32)
}

// mixGamma derives an odd gamma from z using the MurmurHash3 finalizer.
// Results with too few 01/10 transitions are repaired so successive
// outputs of the derived generator stay decorrelated.
func mixGamma(z uint64) uint64 {
	z = (z ^ (z >> 33)) * 0xff51afd7ed558ccd
	z = (z ^ (z >> 33)) * 0xc4ceb9fe1a85ec53
	z = (z ^ (z >> 33)) | 1
	if bits.OnesCount64(z^(z>>1)) < minGammaTransitions {
		return z ^ gammaRepairMask
	}
	return z
}
