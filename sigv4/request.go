package sigv4

import "time"

// RequestFlags marks which parts of a Request are already canonical.
type RequestFlags uint8

const (
	// PathIsCanonical means Request.Path is already URI-canonicalized;
	// Sign uses it verbatim instead of running EncodeURI/CanonicalPath.
	PathIsCanonical RequestFlags = 1 << iota
	// QueryIsCanonical means Request.Query is already split, sorted and
	// percent-encoded; Sign uses it verbatim.
	QueryIsCanonical
	// HeadersAreCanonical means Request.Headers already holds the
	// canonical "name:value\n" block (sorted, trimmed, downcased); Sign
	// derives the signed-headers list from it instead of re-parsing raw
	// "name:value\r\n" lines.
	HeadersAreCanonical
	// PayloadIsHash means Request.Payload already holds the ASCII hex
	// digest of the body and must not be re-hashed.
	PayloadIsHash
)

// Has reports whether flag is set.
func (f RequestFlags) Has(flag RequestFlags) bool {
	return f&flag != 0
}

// Request is the request material to canonicalize and sign.
type Request struct {
	Method  string
	Path    string
	Query   string
	Headers string
	Payload []byte
	Flags   RequestFlags
}

// Credential is immutable for the duration of one signing call.
type Credential struct {
	AccessKeyID     string
	SecretAccessKey string
	SecurityToken   string
	// Expiration is consumer-layer metadata only; the core never reads
	// or manages credential storage or refresh.
	Expiration time.Time
}

// Result holds the signing pipeline's output artifacts. Authorization is
// the full header value; the other fields are exposed for callers
// building a presigned URL or inspecting intermediate stages (e.g. in
// tests against the published AWS vectors).
type Result struct {
	Authorization    string
	Signature        string
	SignedHeaders    string
	CredentialScope  string
	CanonicalRequest string
	StringToSign     string
}
