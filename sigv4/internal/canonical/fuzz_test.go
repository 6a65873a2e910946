package canonical

import (
	"testing"

	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/byteutil"
)

// FuzzEncodeQuery checks the "encoding invariant" property against
// arbitrary input: EncodeQuery must never panic, and every byte of its
// output must be either RFC 3986 unreserved, a '&'/'=' separator, or the
// first byte of a well-formed upper-case "%XY" escape triple. Output is
// deliberately not checked for idempotency under re-encoding: an escape's
// literal '%' is itself not unreserved, so feeding canonical output back
// in re-escapes it — exactly why sigv4.Request carries a QueryIsCanonical
// flag instead of relying on EncodeQuery being its own inverse.
func FuzzEncodeQuery(f *testing.F) {
	f.Add("a=1&b=2")
	f.Add("")
	f.Add("=x")
	f.Add("filter=a=b")
	f.Add("flag")
	f.Add("key=a b/c&key=a%20b%2Fc")

	f.Fuzz(func(t *testing.T, query string) {
		out, err := EncodeQuery(query, 256)
		if err != nil {
			return
		}
		assertWellFormedEncoding(t, out)
	})
}

func assertWellFormedEncoding(t *testing.T, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case byteutil.IsUnreserved(c), c == '&', c == '=':
			continue
		case c == '%':
			if i+2 >= len(s) || !isUpperHex(s[i+1]) || !isUpperHex(s[i+2]) {
				t.Fatalf("malformed percent-escape in %q at offset %d", s, i)
			}
			i += 2
		default:
			t.Fatalf("unexpected raw byte %q in encoded output %q at offset %d", c, s, i)
		}
	}
}

func isUpperHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
}

// FuzzEncodeHeaders checks that EncodeHeaders never panics on arbitrary
// input and that its canonical block, fed back in, reproduces the same
// signed-headers list (every header name is already lower-cased and
// sorted, so re-parsing it changes nothing).
func FuzzEncodeHeaders(f *testing.F) {
	f.Add("Host:example.com\nX-Amz-Date:20150830T123600Z\n")
	f.Add("")
	f.Add("a:1\n\nb:2\n")
	f.Add(`X-Custom:say   "quoted   text"` + "\n")

	f.Fuzz(func(t *testing.T, headers string) {
		block, signed, err := EncodeHeaders(headers, 256)
		if err != nil {
			return
		}
		block2, signed2, err := EncodeHeaders(block, 256)
		if err != nil {
			t.Fatalf("re-encoding canonical header block failed: %v", err)
		}
		if block != block2 {
			t.Fatalf("EncodeHeaders block not idempotent: %q != %q", block, block2)
		}
		if signed != signed2 {
			t.Fatalf("EncodeHeaders signed-headers not idempotent: %q != %q", signed, signed2)
		}
	})
}

// FuzzEncodeURI checks EncodeURI never panics and never produces output
// shorter than its input (every byte is copied or expanded into an
// escape).
func FuzzEncodeURI(f *testing.F) {
	f.Add("/a/b c/d", true)
	f.Add("", false)
	f.Add("%2F", true)

	f.Fuzz(func(t *testing.T, uri string, encodeSlash bool) {
		out := EncodeURI(uri, encodeSlash, false)
		if len(out) < len(uri) {
			t.Fatalf("encoded output shorter than input: %q -> %q", uri, out)
		}
	})
}
