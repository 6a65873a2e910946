package hashutil

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newSHA256() BlockHash {
	return sha256.New()
}

func TestHashAndHexEncode(t *testing.T) {
	out := make([]byte, hex.EncodedLen(sha256.Size))
	n := HashAndHexEncode(newSHA256, []byte(""), out)
	assert.Equal(t, len(out), n)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", string(out))
}

// TestHMACRFC4231Vector checks against RFC 4231 test case 1 (SHA-256 HMAC),
// the standard successor vector set to RFC 2104.
func TestHMACRFC4231Vector(t *testing.T) {
	key := make([]byte, 20)
	for i := range key {
		key[i] = 0x0b
	}
	data := []byte("Hi There")
	want := "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7"

	got := HMAC(newSHA256, key, data)
	assert.Equal(t, want, hex.EncodeToString(got))
}

func TestHMACLongKey(t *testing.T) {
	// A key longer than SHA-256's 64-byte block size must be hashed down
	// first, per RFC 2104.
	key := make([]byte, 131)
	for i := range key {
		key[i] = byte(i)
	}
	data := []byte("Test Using Larger Than Block-Size Key - Hash Key First")

	got := HMAC(newSHA256, key, data)
	assert.Len(t, got, sha256.Size)

	// Matches crypto/hmac computing the same thing.
	ref := hmac.New(sha256.New, key)
	ref.Write(data)
	assert.Equal(t, ref.Sum(nil), got)
}

func TestHMACBuilderMatchesOneShot(t *testing.T) {
	key := []byte("key")
	data := []byte("The quick brown fox jumps over the lazy dog")

	oneShot := HMAC(newSHA256, key, data)

	b := NewHMACBuilder(newSHA256)
	b.WriteKey(key[:1])
	b.WriteKey(key[1:])
	b.WriteData(data[:10])
	b.WriteData(data[10:])
	streamed := b.Sum()

	assert.Equal(t, oneShot, streamed)
}

func TestHMACBuilderNoData(t *testing.T) {
	b := NewHMACBuilder(newSHA256)
	b.WriteKey([]byte("key"))
	got := b.Sum()
	want := HMAC(newSHA256, []byte("key"), nil)
	assert.Equal(t, want, got)
}
