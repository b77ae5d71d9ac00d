// Package sha256 implements the SHA-256 hash algorithm as defined in FIPS 180-4.
//
// Input may be supplied all at once with Sum256 or incrementally through a
// Hasher, which buffers partial input and compresses it in 64-byte blocks so
// the caller never needs to hold the whole message in memory. A Hasher is
// single-use: once Sum256 has produced a digest it rejects further input with
// ErrFinalized until Reset starts a new message.
//
// The implementation is portable Go with no assembly and no CPU feature
// dispatch.
package sha256

import "errors"

const (
	// Size is the size of a SHA-256 digest in bytes.
	Size = 32

	// BlockSize is the block size of SHA-256 in bytes.
	BlockSize = 64
)

// ErrFinalized is returned when a Hasher is written to or summed after it
// has already produced its digest.
var ErrFinalized = errors.New("sha256: hasher already finalized")

// Sum256 computes the SHA-256 digest of data. Zero heap allocations.
func Sum256(data []byte) [Size]byte {
	var h Hasher
	h.Write(data)
	digest, _ := h.Sum256()
	return digest
}

// Hasher is a streaming SHA-256 hasher. Designed for stack allocation: the
// zero value is ready to use.
//
// A Hasher is not safe for concurrent use. Independent hashers share only
// read-only tables and may run on separate goroutines.
type Hasher struct {
	h         [8]uint32
	buf       [BlockSize]byte
	nx        int    // pending bytes in buf, always < BlockSize between calls
	bits      uint64 // message bits compressed so far
	ready     bool
	finalized bool
}

// New returns a Hasher with the initial hash values loaded.
func New() *Hasher {
	h := new(Hasher)
	h.Reset()
	return h
}

// Reset discards any absorbed input and returns the hasher to its initial
// state. A finalized hasher may be reused after Reset.
func (h *Hasher) Reset() {
	h.h = iv
	h.buf = [BlockSize]byte{}
	h.nx = 0
	h.bits = 0
	h.ready = true
	h.finalized = false
}

// Len returns the number of message bytes absorbed so far.
func (h *Hasher) Len() uint64 {
	return h.bits>>3 + uint64(h.nx)
}

// Write absorbs p into the hasher. It always consumes all of p and only
// fails with ErrFinalized once Sum256 has been called.
func (h *Hasher) Write(p []byte) (int, error) {
	if h.finalized {
		return 0, ErrFinalized
	}
	if !h.ready {
		h.Reset()
	}
	n := len(p)

	if h.nx > 0 {
		c := copy(h.buf[h.nx:], p)
		h.nx += c
		p = p[c:]
		if h.nx == BlockSize {
			blockGeneric(&h.h, h.buf[:])
			h.bits += BlockSize * 8
			h.nx = 0
		}
	}

	if len(p) >= BlockSize {
		m := len(p) &^ (BlockSize - 1)
		blockGeneric(&h.h, p[:m])
		h.bits += uint64(m) << 3
		p = p[m:]
	}

	if len(p) > 0 {
		h.nx = copy(h.buf[:], p)
	}
	return n, nil
}

// Sum256 pads the message, compresses the final block or blocks and returns
// the digest. It may be called once; later calls, and later writes, return
// ErrFinalized.
func (h *Hasher) Sum256() ([Size]byte, error) {
	if h.finalized {
		return [Size]byte{}, ErrFinalized
	}
	if !h.ready {
		h.Reset()
	}
	h.finalized = true
	return h.checkSum(), nil
}

func (h *Hasher) checkSum() [Size]byte {
	// 0x80 marker, zero fill to 56 mod 64, then the 64-bit message length.
	// A tail of 56 or more pending bytes spills into a second block.
	var tail [2 * BlockSize]byte
	pending := copy(tail[:], h.buf[:h.nx])
	tail[pending] = 0x80

	end := BlockSize - 8
	if pending >= BlockSize-8 {
		end = 2*BlockSize - 8
	}

	h.bits += uint64(pending) << 3
	putBe64(tail[end:], h.bits)
	blockGeneric(&h.h, tail[:end+8])
	h.nx = 0

	var digest [Size]byte
	for i, s := range h.h {
		putBe32(digest[4*i:], s)
	}
	return digest
}

// putBe64 writes v big-endian into at least 8 bytes.
func putBe64(b []byte, v uint64) {
	_ = b[7]
	putBe32(b, uint32(v>>32))
	putBe32(b[4:], uint32(v))
}
