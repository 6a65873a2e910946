// Package hashutil turns a streaming block hash (init/update/final plus
// block and digest length) into the two derived operations the signing
// pipeline actually needs: one-shot hash-and-hex-encode, and RFC 2104
// HMAC. It builds these on crypto/hmac, generalized over BlockHash
// instead of hard-coding SHA-256, since the
// signing core consumes a hash algorithm rather than choosing one.
package hashutil

import (
	"crypto/hmac"
	"encoding/hex"
	"errors"
	"hash"
)

// ErrHashError names a failure reported by the underlying hash. No
// function in this package returns it: hash.Hash's Write never errors in
// the standard library, and HashAndHexEncode, HMAC and HMACBuilder do not
// check Write's error result.
var ErrHashError = errors.New("hashutil: hash operation failed")

// BlockHash is a streaming hash that also exposes its block size, matching
// hash.Hash plus BlockSize(). crypto/sha256.New's concrete return type
// already satisfies this with no adapter code.
type BlockHash interface {
	hash.Hash
	BlockSize() int
}

// HashAndHexEncode computes new_hash().Sum over input and writes its
// lower-case hex encoding into out, returning the number of bytes
// written (2 * digest length). out must have room for at least
// hex.EncodedLen(newHash().Size()) bytes.
func HashAndHexEncode(newHash func() BlockHash, input []byte, out []byte) int {
	h := newHash()
	h.Write(input)
	digest := h.Sum(nil)
	return hex.Encode(out, digest)
}

// HMAC computes the RFC 2104 message authentication code of data under
// key, using newHash as the underlying block hash. This is the
// common-case, key-available-up-front entry point, and delegates to
// crypto/hmac directly; HMACBuilder below exists only for callers that
// must supply the key in chunks.
func HMAC(newHash func() BlockHash, key, data []byte) []byte {
	mac := hmac.New(func() hash.Hash { return newHash() }, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// hmacState names the stages of RFC 2104 key accumulation: a growing key
// is buffered until data begins, at which point it's either zero-padded
// (if short) or hashed down (if long) and the inner/outer passes run.
type hmacState int

const (
	stateEmpty hmacState = iota
	stateKeyPartial
	stateKeyReady
	stateDataPartial
	stateDone
)

// HMACBuilder implements RFC 2104 HMAC from scratch as an explicit state
// machine (Empty -> KeyPartial -> KeyReady -> DataPartial -> Done), for
// callers that must supply the key in chunks before any data is
// available — crypto/hmac.New requires the whole key up front, which the
// plain HMAC function above uses for every other caller.
type HMACBuilder struct {
	newHash  func() BlockHash
	state    hmacState
	blockLen int
	keyBuf   []byte
	longKey  hash.Hash // accumulates key bytes once length exceeds blockLen
	inner    hash.Hash
}

func newHMACBuilder(newHash func() BlockHash) *HMACBuilder {
	probe := newHash()
	return &HMACBuilder{
		newHash:  newHash,
		state:    stateEmpty,
		blockLen: probe.BlockSize(),
	}
}

// NewHMACBuilder starts a fresh HMAC computation for the given block hash.
func NewHMACBuilder(newHash func() BlockHash) *HMACBuilder {
	return newHMACBuilder(newHash)
}

// WriteKey accumulates one more chunk of the HMAC key. It may be called
// multiple times before WriteData; once total key length would exceed the
// hash's block size, the key is transparently hashed down to digest
// length as RFC 2104 requires.
func (b *HMACBuilder) WriteKey(chunk []byte) {
	if b.state == stateKeyReady || b.state == stateDataPartial || b.state == stateDone {
		return
	}
	if b.longKey != nil {
		b.longKey.Write(chunk)
		return
	}
	if len(b.keyBuf)+len(chunk) > b.blockLen {
		b.longKey = b.newHash()
		b.longKey.Write(b.keyBuf)
		b.longKey.Write(chunk)
		b.keyBuf = nil
		b.state = stateKeyPartial
		return
	}
	b.keyBuf = append(b.keyBuf, chunk...)
	b.state = stateKeyPartial
}

// resolvedKey finalizes key accumulation: a long key is hashed down, a
// short key is used as-is, and either way the result is zero-padded to
// the block length.
func (b *HMACBuilder) resolvedKey() []byte {
	var key []byte
	if b.longKey != nil {
		key = b.longKey.Sum(nil)
	} else {
		key = b.keyBuf
	}
	padded := make([]byte, b.blockLen)
	copy(padded, key)
	return padded
}

// WriteData streams message data once the key is complete. The first
// call finalizes the key and starts the inner HMAC pass.
func (b *HMACBuilder) WriteData(chunk []byte) {
	if b.state != stateDataPartial {
		key := b.resolvedKey()
		innerPad := make([]byte, len(key))
		for i := range key {
			innerPad[i] = key[i] ^ 0x36
		}
		b.inner = b.newHash()
		b.inner.Write(innerPad)
		b.keyBuf = key // stash the zero-padded key for the outer pass
		b.state = stateDataPartial
	}
	b.inner.Write(chunk)
}

// Sum finalizes the HMAC computation, running the outer pass over the
// inner digest, and returns the raw (non-hex) MAC bytes.
func (b *HMACBuilder) Sum() []byte {
	if b.state != stateDataPartial {
		// No data was ever written; treat as HMAC over an empty message.
		b.WriteData(nil)
	}
	innerDigest := b.inner.Sum(nil)
	key := b.keyBuf
	outerPad := make([]byte, len(key))
	for i := range key {
		outerPad[i] = key[i] ^ 0x5C
	}
	outer := b.newHash()
	outer.Write(outerPad)
	outer.Write(innerDigest)
	b.state = stateDone
	return outer.Sum(nil)
}
