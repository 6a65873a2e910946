package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeURIUnreservedPassthrough(t *testing.T) {
	assert.Equal(t, "abcXYZ019-_.~", EncodeURI("abcXYZ019-_.~", true, false))
}

func TestEncodeURIPercentEncodesReserved(t *testing.T) {
	assert.Equal(t, "%20", EncodeURI(" ", true, false))
	assert.Equal(t, "a%2Fb", EncodeURI("a/b", true, false))
}

func TestEncodeURISlashVerbatimWhenNotEncoded(t *testing.T) {
	assert.Equal(t, "a/b", EncodeURI("a/b", false, false))
}

func TestEncodeURIDoubleEncodesEquals(t *testing.T) {
	assert.Equal(t, "a%253Db", EncodeURI("a=b", true, true))
	// Without doubleEncodeEquals, '=' still isn't unreserved, so it's
	// single percent-encoded rather than copied verbatim.
	assert.Equal(t, "a%3Db", EncodeURI("a=b", true, false))
}

func TestCanonicalPathS3SinglePass(t *testing.T) {
	got := CanonicalPath("/test file.txt", "s3")
	assert.Equal(t, "/test%20file.txt", got)
}

func TestCanonicalPathNonS3DoublePass(t *testing.T) {
	// The space becomes %20 on the first pass, then the '%' of that
	// escape is itself re-escaped to %25 on the second pass.
	got := CanonicalPath("/test file.txt", "iam")
	assert.Equal(t, "/test%2520file.txt", got)
}

func TestCanonicalPathRoot(t *testing.T) {
	assert.Equal(t, "/", CanonicalPath("/", "iam"))
	assert.Equal(t, "/", CanonicalPath("/", "s3"))
}
