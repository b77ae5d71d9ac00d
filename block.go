package sha256

import "math/bits"

// blockGeneric compresses every whole 64-byte block of p into acc.
// Trailing bytes beyond the last whole block are ignored.
func blockGeneric(acc *[8]uint32, p []byte) {
	var w [64]uint32
	h0, h1, h2, h3, h4, h5, h6, h7 := acc[0], acc[1], acc[2], acc[3], acc[4], acc[5], acc[6], acc[7]

	for len(p) >= BlockSize {
		// Message schedule.
		for i := 0; i < 16; i++ {
			w[i] = be32(p[4*i:])
		}
		for i := 16; i < 64; i++ {
			w[i] = sigma1(w[i-2]) + w[i-7] + sigma0(w[i-15]) + w[i-16]
		}

		a, b, c, d, e, f, g, h := h0, h1, h2, h3, h4, h5, h6, h7

		for i := 0; i < 64; i++ {
			t1 := h + bigSigma1(e) + ch(e, f, g) + _K[i] + w[i]
			t2 := bigSigma0(a) + maj(a, b, c)

			h = g
			g = f
			f = e
			e = d + t1
			d = c
			c = b
			b = a
			a = t1 + t2
		}

		// Feed-forward.
		h0 += a
		h1 += b
		h2 += c
		h3 += d
		h4 += e
		h5 += f
		h6 += g
		h7 += h

		p = p[BlockSize:]
	}

	acc[0], acc[1], acc[2], acc[3], acc[4], acc[5], acc[6], acc[7] = h0, h1, h2, h3, h4, h5, h6, h7
}

func rotr(x uint32, n int) uint32 { return bits.RotateLeft32(x, -n) }

func sigma0(x uint32) uint32 { return rotr(x, 7) ^ rotr(x, 18) ^ x>>3 }

func sigma1(x uint32) uint32 { return rotr(x, 17) ^ rotr(x, 19) ^ x>>10 }

func bigSigma0(x uint32) uint32 { return rotr(x, 2) ^ rotr(x, 13) ^ rotr(x, 22) }

func bigSigma1(x uint32) uint32 { return rotr(x, 6) ^ rotr(x, 11) ^ rotr(x, 25) }

func ch(x, y, z uint32) uint32 { return (x & y) ^ (^x & z) }

func maj(x, y, z uint32) uint32 { return (x & y) ^ (x & z) ^ (y & z) }

// be32 reads a big-endian uint32 from at least 4 bytes.
func be32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// putBe32 writes v big-endian into at least 4 bytes.
func putBe32(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
