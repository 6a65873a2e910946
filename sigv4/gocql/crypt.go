/*
 *  Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License").
 *  You may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 *   Unless required by applicable law or agreed to in writing, software
 *   distributed under the License is distributed on an "AS IS" BASIS,
 *   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *   See the License for the specific language governing permissions and
 *   limitations under the License.
 */

package gocql

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/canonical"
	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/hashutil"
)

// keyspacesDateLayout is the timestamp format Amazon Keyspaces' nonce
// challenge protocol requires in both X-Amz-Date and the string-to-sign's
// date line — RFC 3339 with millisecond precision, not the ISO-8601 basic
// form (YYYYMMDDTHHMMSSZ) the rest of this module's Sign/SignQuery use.
// That mismatch is why this file builds its own string-to-sign instead of
// calling sigv4.Sign directly: Sign's 16-byte DateISO8601 contract doesn't
// fit a 24-byte dotted timestamp, and the credential-scope date segment
// (YYYYMMDD) can't be recovered by truncating it the way Sign does.
const keyspacesDateLayout = "2006-01-02T15:04:05.000Z"

// maxChallengeQueryPairs bounds the nonce-challenge query string, which
// always carries exactly four X-Amz-* parameters.
const maxChallengeQueryPairs = 8

func newBlockHash() hashutil.BlockHash {
	return sha256.New()
}

// ExtractNonce pulls the nonce out of the challenge payload Amazon
// Keyspaces sends in response to the SigV4 mechanism name.
func ExtractNonce(req []byte) (string, error) {
	text := string(req)
	if !strings.HasPrefix(text, "nonce=") {
		return "", errors.New("request does not contain nonce property")
	}
	return strings.Split(text, "nonce=")[1], nil
}

// credDateStamp renders t as the YYYYMMDD date segment credential scopes
// use, e.g. 2020-06-09T22:41:51.000Z -> "20200609".
func credDateStamp(t time.Time) string {
	return fmt.Sprintf("%d%02d%02d", t.Year(), t.Month(), t.Day())
}

func signingScope(t time.Time, region string) string {
	return strings.Join([]string{credDateStamp(t), region, "cassandra", "aws4_request"}, "/")
}

func hexSHA256(data []byte) string {
	out := make([]byte, hex.EncodedLen(sha256.Size))
	hashutil.HashAndHexEncode(newBlockHash, data, out)
	return string(out)
}

// buildCanonicalRequest assembles Amazon Keyspaces' fixed-shape canonical
// request: a PUT to /authenticate, one signed header (a literal "cassandra"
// host placeholder, not the network address), and a query string of four
// X-Amz-* parameters. The five-part method/uri/query/headers/payload shape
// is the same one sigv4.Sign builds for a general request; EncodeQuery is
// the same sort-and-percent-encode pass Sign uses, reused here directly
// since there's no header, path, or body variability left to generalize
// over.
func buildCanonicalRequest(accessKeyID, scope string, t time.Time, nonce string) (string, error) {
	rawQuery := "X-Amz-Algorithm=AWS4-HMAC-SHA256" +
		"&X-Amz-Credential=" + accessKeyID + "/" + scope +
		"&X-Amz-Date=" + t.Format(keyspacesDateLayout) +
		"&X-Amz-Expires=900"

	query, err := canonical.EncodeQuery(rawQuery, maxChallengeQueryPairs)
	if err != nil {
		return "", err
	}

	const headersBlock = "host:cassandra\n"
	const signedHeaders = "host"

	return "PUT\n/authenticate\n" + query + "\n" + headersBlock + "\n" + signedHeaders + "\n" + hexSHA256([]byte(nonce)), nil
}

func deriveSigningKey(secret string, t time.Time, region string) []byte {
	key := hashutil.HMAC(newBlockHash, []byte("AWS4"+secret), []byte(credDateStamp(t)))
	key = hashutil.HMAC(newBlockHash, key, []byte(region))
	key = hashutil.HMAC(newBlockHash, key, []byte("cassandra"))
	key = hashutil.HMAC(newBlockHash, key, []byte("aws4_request"))
	return key
}

func createSignature(canonicalRequest string, t time.Time, scope string, signingKey []byte) []byte {
	stringToSign := "AWS4-HMAC-SHA256\n" + t.Format(keyspacesDateLayout) + "\n" + scope + "\n" + hexSHA256([]byte(canonicalRequest))
	return hashutil.HMAC(newBlockHash, signingKey, []byte(stringToSign))
}

// BuildSignedResponse computes the signature and formats the
// "signature=...,access_key=...,amzdate=..." response Amazon Keyspaces
// expects back from a SigV4 nonce challenge.
func BuildSignedResponse(region, nonce, accessKeyID, secret, sessionToken string, t time.Time) (string, error) {
	scope := signingScope(t, region)
	canonicalRequest, err := buildCanonicalRequest(accessKeyID, scope, t, nonce)
	if err != nil {
		return "", err
	}

	signingKey := deriveSigningKey(secret, t, region)
	signature := createSignature(canonicalRequest, t, scope, signingKey)

	result := fmt.Sprintf("signature=%s,access_key=%s,amzdate=%s",
		hex.EncodeToString(signature), accessKeyID, t.Format(keyspacesDateLayout))
	if sessionToken != "" {
		result += ",session_token=" + sessionToken
	}
	return result, nil
}
