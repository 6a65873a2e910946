// Package arena implements the single linear scratch buffer threaded
// through the canonicalization and signing stages. Every intermediate
// artifact — the canonical request, the string-to-sign, the signing-key
// chain windows — is written into one Arena rather
// than allocated ad hoc, so the whole pipeline's scratch usage is visible
// and boundable at one place.
package arena

import "errors"

// ErrInsufficientMemory is returned when a reservation or overwrite would
// write past the end of the arena's backing buffer.
var ErrInsufficientMemory = errors.New("arena: insufficient memory")

// DefaultSize is the default backing size for a signing pipeline's arena.
const DefaultSize = 4096

// Arena is a contiguous byte region with a monotonically advancing cursor.
// It is not safe for concurrent use; callers must use disjoint Arenas for
// concurrent signing calls.
type Arena struct {
	buf    []byte
	cursor int
}

// New allocates an Arena with the given backing size.
func New(size int) *Arena {
	return &Arena{buf: make([]byte, size)}
}

// Len returns the total capacity of the arena.
func (a *Arena) Len() int {
	return len(a.buf)
}

// Cursor returns the current write offset.
func (a *Arena) Cursor() int {
	return a.cursor
}

// Remaining returns the number of unused bytes after the cursor.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.cursor
}

// Reset rewinds the cursor to the start without zeroing the buffer,
// letting a single Arena be reused across independent signing calls.
func (a *Arena) Reset() {
	a.cursor = 0
}

// Reserve advances the cursor by n bytes and returns that window, or
// ErrInsufficientMemory if fewer than n bytes remain. The returned slice
// aliases the arena's backing array and is valid until the next call that
// advances the cursor past it.
func (a *Arena) Reserve(n int) ([]byte, error) {
	if n < 0 || n > a.Remaining() {
		return nil, ErrInsufficientMemory
	}
	start := a.cursor
	a.cursor += n
	return a.buf[start:a.cursor], nil
}

// Overwrite copies src into the arena starting at offset prefixLen, in
// place. The cursor never moves back; if the write ends past the cursor,
// the cursor advances to the end of the write. The signing pipeline uses
// it to relocate the canonical-request hash from scratch into its final
// position inside the string-to-sign, and then to write the
// string-to-sign's prefix in front of it. It fails with
// ErrInsufficientMemory rather than silently truncating if
// prefixLen+len(src) would run past the arena's capacity.
func (a *Arena) Overwrite(prefixLen int, src []byte) error {
	if prefixLen < 0 || prefixLen+len(src) > len(a.buf) {
		return ErrInsufficientMemory
	}
	copy(a.buf[prefixLen:prefixLen+len(src)], src)
	if prefixLen+len(src) > a.cursor {
		a.cursor = prefixLen + len(src)
	}
	return nil
}

// Bytes returns the written portion of the arena, buf[0:cursor].
func (a *Arena) Bytes() []byte {
	return a.buf[:a.cursor]
}

// Window returns a read/write view of buf[start:end] without touching the
// cursor, used to read the assembled string-to-sign back out of the
// arena.
func (a *Arena) Window(start, end int) ([]byte, error) {
	if start < 0 || end > len(a.buf) || start > end {
		return nil, ErrInsufficientMemory
	}
	return a.buf[start:end], nil
}
