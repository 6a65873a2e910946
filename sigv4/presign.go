package sigv4

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/canonical"
)

// unsignedPayload is the sentinel AWS uses for presigned-URL payload
// hashes — the body isn't available to hash ahead of time, so the
// signature covers everything except the body.
const unsignedPayload = "UNSIGNED-PAYLOAD"

// SignQuery implements AWS's query-string (presigned URL) signing
// process: the same canonical-request/string-to-sign/signing-key pipeline
// as Sign, but the signature lands as an appended "X-Amz-Signature" query
// parameter instead of an Authorization header, and the X-Amz-* signing
// metadata is folded into the query string itself before canonicalization
// runs. expires is rendered in whole seconds per AWS's X-Amz-Expires.
//
// SignQuery returns the fully signed query string (including the original
// parameters, the X-Amz-* signing parameters, and the trailing
// X-Amz-Signature) in Result.Authorization, for symmetry with Sign's use
// of Authorization as "the thing you attach to the request".
func SignQuery(params SigningParameters, expires time.Duration) (Result, error) {
	if err := params.validate(); err != nil {
		return Result{}, err
	}
	if params.Request.Flags.Has(QueryIsCanonical) {
		return Result{}, fmt.Errorf("%w: SignQuery computes its own query string", ErrInvalidParameter)
	}
	cfg := params.Config.withDefaults()

	algorithm := params.Algorithm
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	dateStamp := params.DateISO8601[:8]
	credentialScope := dateStamp + "/" + params.Region + "/" + params.Service + "/aws4_request"
	credential := params.Credential.AccessKeyID + "/" + credentialScope

	var signedHeaders string
	if params.Request.Flags.Has(HeadersAreCanonical) {
		signedHeaders = signedHeaderNamesFromBlock(params.Request.Headers)
	} else {
		var err error
		_, signedHeaders, err = canonical.EncodeHeaders(params.Request.Headers, cfg.MaxHeaderPairs)
		if err != nil {
			return Result{}, wrapCanonicalError(err)
		}
	}

	rawQuery := params.Request.Query
	if rawQuery != "" {
		rawQuery += "&"
	}
	rawQuery += "X-Amz-Algorithm=" + algorithm +
		"&X-Amz-Credential=" + credential +
		"&X-Amz-Date=" + params.DateISO8601 +
		"&X-Amz-Expires=" + strconv.FormatInt(int64(expires/time.Second), 10) +
		"&X-Amz-SignedHeaders=" + signedHeaders
	if params.Credential.SecurityToken != "" {
		rawQuery += "&X-Amz-Security-Token=" + params.Credential.SecurityToken
	}

	canonicalQuery, err := canonical.EncodeQuery(rawQuery, cfg.MaxQueryPairs)
	if err != nil {
		return Result{}, wrapCanonicalError(err)
	}

	presignParams := params
	presignParams.Config = cfg
	presignParams.Request.Query = canonicalQuery
	presignParams.Request.Flags = params.Request.Flags | QueryIsCanonical | PayloadIsHash
	presignParams.Request.Payload = []byte(unsignedPayload)

	result, err := Sign(presignParams)
	if err != nil {
		return Result{}, err
	}

	result.Authorization = canonicalQuery + "&X-Amz-Signature=" + result.Signature
	return result, nil
}
