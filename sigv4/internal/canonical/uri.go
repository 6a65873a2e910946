// Package canonical implements the three AWS SigV4 canonicalization rules:
// the URI encoder, the query-string encoder, and the header-block
// encoder. This package keeps the policy (S3 vs. everything else,
// double-encode-equals) explicit and parametric instead of hard-coded to
// one service.
package canonical

import (
	"strings"

	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/byteutil"
)

// EncodeURI percent-encodes uri per RFC 3986, copying unreserved bytes and
// (when encodeSlash is false) '/' verbatim, and emitting "%253D" for '='
// when doubleEncodeEquals is set (used only by the query-value encoder,
// never by path encoding, but kept as a shared primitive since both rules
// reduce to the same byte-encoding loop).
func EncodeURI(uri string, encodeSlash, doubleEncodeEquals bool) string {
	var b strings.Builder
	b.Grow(len(uri))
	var tmp [3]byte
	for i := 0; i < len(uri); i++ {
		c := uri[i]
		switch {
		case byteutil.IsUnreserved(c):
			b.WriteByte(c)
		case c == '/' && !encodeSlash:
			b.WriteByte(c)
		case c == '=' && doubleEncodeEquals:
			b.WriteString("%253D")
		default:
			n := byteutil.PercentEncodeByte(c, tmp[:])
			b.Write(tmp[:n])
		}
	}
	return b.String()
}

// CanonicalPath applies AWS's single- vs. double-pass URI policy: the
// single canonical pass always runs with (encodeSlash=false,
// doubleEncodeEquals=false); services other than "s3" (exact match) are
// then re-encoded a second time over that output.
func CanonicalPath(path, service string) string {
	once := EncodeURI(path, false, false)
	if service == "s3" {
		return once
	}
	return EncodeURI(once, false, false)
}
