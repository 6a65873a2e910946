// Package sigv4 implements the AWS Signature Version 4 canonicalization
// and signing pipeline: given a Request, a Credential, a region/service
// pair and a timestamp, it produces the canonical request, the
// string-to-sign, the derived signing key, and the final Authorization
// header — byte-compatible with the AWS reference.
package sigv4

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/arena"
	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/canonical"
	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/dateutil"
	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/hashutil"
)

// DefaultAlgorithm is the default signing algorithm name.
const DefaultAlgorithm = "AWS4-HMAC-SHA256"

// emptyPayloadHash is the SHA-256 hex digest of the empty string, the
// value AWS signing falls back to for bodyless requests.
const emptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// SigningParameters is everything Sign needs to canonicalize and sign
// one request.
type SigningParameters struct {
	Credential Credential
	// DateISO8601 must be exactly 16 bytes: YYYYMMDDTHHMMSSZ.
	DateISO8601 string
	Region      string
	Service     string
	// Algorithm defaults to DefaultAlgorithm when empty.
	Algorithm string
	// NewHash constructs the block hash the signing pipeline runs on.
	// Defaults to sha256.New when nil — the core consumes a hash
	// algorithm rather than choosing one.
	NewHash func() hashutil.BlockHash
	Request Request
	// Config defaults to DefaultConfig() when its fields are zero.
	Config Config
}

func (p SigningParameters) validate() error {
	if p.Credential.AccessKeyID == "" || p.Credential.SecretAccessKey == "" {
		return fmt.Errorf("%w: credential is incomplete", ErrInvalidParameter)
	}
	if len(p.DateISO8601) != len(dateutil.BasicFormat) {
		return fmt.Errorf("%w: date must be 16 bytes (YYYYMMDDTHHMMSSZ)", ErrInvalidParameter)
	}
	if p.Region == "" || p.Service == "" {
		return fmt.Errorf("%w: region and service are required", ErrInvalidParameter)
	}
	if p.Request.Method == "" {
		return fmt.Errorf("%w: method is required", ErrInvalidParameter)
	}
	return nil
}

func defaultNewHash() hashutil.BlockHash {
	return sha256.New()
}

// Sign runs the full canonicalization and signing pipeline and returns
// the Authorization header value plus the intermediate artifacts. It
// never writes a partial Result: every stage must succeed before any
// field is populated.
func Sign(params SigningParameters) (Result, error) {
	if err := params.validate(); err != nil {
		return Result{}, err
	}
	cfg := params.Config.withDefaults()
	newHash := params.NewHash
	if newHash == nil {
		newHash = defaultNewHash
	}
	algorithm := params.Algorithm
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}

	probe := newHash()
	digestLen := probe.Size()

	canonicalRequest, signedHeaders, err := buildCanonicalRequest(params.Request, params.Service, cfg, newHash)
	if err != nil {
		return Result{}, err
	}

	a := arena.New(cfg.ProcessingLen)

	dateStamp := params.DateISO8601[:8]
	credentialScope := dateStamp + "/" + params.Region + "/" + params.Service + "/aws4_request"

	stringToSign, err := computeStringToSign(a, algorithm, params.DateISO8601, credentialScope, canonicalRequest, newHash, digestLen)
	if err != nil {
		return Result{}, err
	}

	signingKey, err := deriveSigningKey(a, newHash, digestLen, params.Credential.SecretAccessKey, dateStamp, params.Region, params.Service)
	if err != nil {
		return Result{}, err
	}

	signature := hex.EncodeToString(hashutil.HMAC(newHash, signingKey, []byte(stringToSign)))

	authorization := fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		algorithm, params.Credential.AccessKeyID, credentialScope, signedHeaders, signature)

	return Result{
		Authorization:    authorization,
		Signature:        signature,
		SignedHeaders:    signedHeaders,
		CredentialScope:  credentialScope,
		CanonicalRequest: canonicalRequest,
		StringToSign:     stringToSign,
	}, nil
}

// buildCanonicalRequest assembles method, canonical URI, canonical query,
// canonical headers block, signed-headers list and hashed payload into
// the five-\n-joined canonical request.
func buildCanonicalRequest(req Request, service string, cfg Config, newHash func() hashutil.BlockHash) (canonicalRequest, signedHeaders string, err error) {
	uri := req.Path
	if uri == "" {
		uri = "/"
	}
	if !req.Flags.Has(PathIsCanonical) {
		uri = canonical.CanonicalPath(uri, service)
	}

	query := req.Query
	if !req.Flags.Has(QueryIsCanonical) {
		query, err = canonical.EncodeQuery(req.Query, cfg.MaxQueryPairs)
		if err != nil {
			return "", "", wrapCanonicalError(err)
		}
	}

	var headersBlock string
	if req.Flags.Has(HeadersAreCanonical) {
		headersBlock = req.Headers
		signedHeaders = signedHeaderNamesFromBlock(headersBlock)
	} else {
		headersBlock, signedHeaders, err = canonical.EncodeHeaders(req.Headers, cfg.MaxHeaderPairs)
		if err != nil {
			return "", "", wrapCanonicalError(err)
		}
	}

	payloadHash := emptyPayloadHash
	if req.Flags.Has(PayloadIsHash) {
		payloadHash = string(req.Payload)
	} else if len(req.Payload) > 0 {
		out := make([]byte, hex.EncodedLen(newHash().Size()))
		hashutil.HashAndHexEncode(newHash, req.Payload, out)
		payloadHash = string(out)
	}

	canonicalRequest = req.Method + "\n" +
		uri + "\n" +
		query + "\n" +
		headersBlock + "\n" +
		signedHeaders + "\n" +
		payloadHash
	return canonicalRequest, signedHeaders, nil
}

// signedHeaderNamesFromBlock extracts the header names from an
// already-canonical "name:value\n" block, preserving its order (the block
// is, by definition of HeadersAreCanonical, already sorted).
func signedHeaderNamesFromBlock(block string) string {
	var names []string
	start := 0
	for i := 0; i < len(block); i++ {
		if block[i] != '\n' {
			continue
		}
		line := block[start:i]
		start = i + 1
		if line == "" {
			continue
		}
		if idx := indexByte(line, ':'); idx >= 0 {
			names = append(names, line[:idx])
		}
	}
	joined := ""
	for i, n := range names {
		if i > 0 {
			joined += ";"
		}
		joined += n
	}
	return joined
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func wrapCanonicalError(err error) error {
	switch {
	case err == canonical.ErrMaxQueryPairCountExceeded:
		return fmt.Errorf("%w", ErrMaxQueryPairCountExceeded)
	case err == canonical.ErrMaxHeaderPairCountExceeded:
		return fmt.Errorf("%w", ErrMaxHeaderPairCountExceeded)
	default:
		return err
	}
}

// computeStringToSign hashes the canonical request into arena scratch,
// then relocates it into its final position inside the string-to-sign
// buffer instead of allocating a fresh string for each stage.
func computeStringToSign(a *arena.Arena, algorithm, date, credentialScope, canonicalRequest string, newHash func() hashutil.BlockHash, digestLen int) (string, error) {
	crWindow, err := a.Reserve(len(canonicalRequest))
	if err != nil {
		return "", fmt.Errorf("%w", ErrInsufficientMemory)
	}
	copy(crWindow, canonicalRequest)

	digest := newHash()
	digest.Write(crWindow)
	sum := digest.Sum(nil)

	hexLen := hex.EncodedLen(digestLen)
	hexScratch, err := a.Reserve(hexLen)
	if err != nil {
		return "", fmt.Errorf("%w", ErrInsufficientMemory)
	}
	hex.Encode(hexScratch, sum)

	prefix := algorithm + "\n" + date + "\n" + credentialScope + "\n"
	prefixLen := len(prefix)

	// Step 3: relocate the hex digest from scratch into its final
	// position at arena+prefixLen. Step 4: write the prefix at arena+0.
	// The digest must be relocated first: when the prefix is longer than
	// the canonical request, writing the prefix first would overwrite the
	// digest's scratch copy. Overwrite bounds-checks each write.
	if err := a.Overwrite(prefixLen, hexScratch); err != nil {
		return "", fmt.Errorf("%w", ErrInsufficientMemory)
	}
	if err := a.Overwrite(0, []byte(prefix)); err != nil {
		return "", fmt.Errorf("%w", ErrInsufficientMemory)
	}

	final, err := a.Window(0, prefixLen+hexLen)
	if err != nil {
		return "", fmt.Errorf("%w", ErrInsufficientMemory)
	}
	return string(final), nil
}

// deriveSigningKey runs the four chained HMACs AWS's signing-key
// derivation specifies, alternating between two digest-sized arena
// windows so that no stage overwrites its own input.
func deriveSigningKey(a *arena.Arena, newHash func() hashutil.BlockHash, digestLen int, secret, dateStamp, region, service string) ([]byte, error) {
	a.Reset()
	winA, err := a.Reserve(digestLen)
	if err != nil {
		return nil, fmt.Errorf("%w", ErrInsufficientMemory)
	}
	winB, err := a.Reserve(digestLen)
	if err != nil {
		return nil, fmt.Errorf("%w", ErrInsufficientMemory)
	}

	copy(winA, hashutil.HMAC(newHash, []byte("AWS4"+secret), []byte(dateStamp)))
	copy(winB, hashutil.HMAC(newHash, winA, []byte(region)))
	copy(winA, hashutil.HMAC(newHash, winB, []byte(service)))
	copy(winB, hashutil.HMAC(newHash, winA, []byte("aws4_request")))

	signingKey := make([]byte, digestLen)
	copy(signingKey, winB)
	return signingKey, nil
}
