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

// Package gocql wires this module's canonicalization and signing core into
// gocql.Authenticator, reproducing Amazon Keyspaces' SigV4 nonce-challenge
// protocol so a gocql Session can authenticate without static credentials.
package gocql

import (
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gocql/gocql"
)

// Credentials is one shot of AWS credentials, returned from a
// CredentialsCallback. Session tokens are optional.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// CredentialsCallback retrieves credentials at challenge time, letting a
// caller plug in refreshable or assumed-role credentials instead of a
// static pair.
type CredentialsCallback func() (Credentials, error)

// Authenticator implements gocql.Authenticator using AWS SigV4. Its fields
// are exported so callers can build one with a struct literal or mutate it
// after construction.
type Authenticator struct {
	Region              string
	AccessKeyID         string
	SecretAccessKey     string
	SessionToken        string
	CredentialsCallback CredentialsCallback
	currentTime         time.Time // overridden by tests only
}

// NewAuthenticator builds an Authenticator from AWS SDK v1's default
// credential provider chain. The region comes from AWS_DEFAULT_REGION,
// falling back to AWS_REGION and then to the SDK session's region.
func NewAuthenticator() (Authenticator, error) {
	sess, err := session.NewSession()
	if err != nil {
		return Authenticator{}, fmt.Errorf("sigv4/gocql: creating AWS session: %w", err)
	}
	creds, err := sess.Config.Credentials.Get()
	if err != nil {
		return Authenticator{}, fmt.Errorf("sigv4/gocql: resolving AWS credentials: %w", err)
	}
	region := os.Getenv("AWS_DEFAULT_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" && sess.Config.Region != nil {
		region = *sess.Config.Region
	}
	return Authenticator{
		Region:          region,
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
	}, nil
}

// NewAuthenticatorWithRegion is NewAuthenticator with an explicit region,
// for accounts where the SDK can't infer one from the environment.
func NewAuthenticatorWithRegion(region string) (Authenticator, error) {
	sess, err := session.NewSession()
	if err != nil {
		return Authenticator{}, fmt.Errorf("sigv4/gocql: creating AWS session: %w", err)
	}
	creds, err := sess.Config.Credentials.Get()
	if err != nil {
		return Authenticator{}, fmt.Errorf("sigv4/gocql: resolving AWS credentials: %w", err)
	}
	return Authenticator{
		Region:          region,
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
	}, nil
}

// NewAuthenticatorWithCredentialCallback defers credential resolution to
// callback, invoked fresh on every challenge.
func NewAuthenticatorWithCredentialCallback(region string, callback CredentialsCallback) Authenticator {
	return Authenticator{Region: region, CredentialsCallback: callback}
}

// Challenge implements gocql.Authenticator. gocql opens a fresh connection
// per host, so the returned challengeAuthenticator is a copy rather than a
// shared reference.
func (a Authenticator) Challenge(req []byte) ([]byte, gocql.Authenticator, error) {
	resp := []byte("SigV4\000\000")
	inner := challengeAuthenticator{
		region:              a.Region,
		accessKeyID:         a.AccessKeyID,
		secretAccessKey:     a.SecretAccessKey,
		sessionToken:        a.SessionToken,
		credentialsCallback: a.CredentialsCallback,
		currentTime:         a.currentTime,
	}
	return resp, inner, nil
}

func (a Authenticator) Success(data []byte) error {
	return nil
}

// challengeAuthenticator answers the actual nonce challenge Amazon
// Keyspaces sends back; it's unexported because the handshake only makes
// sense as the gocql.Authenticator Challenge above returns.
type challengeAuthenticator struct {
	region              string
	accessKeyID         string
	secretAccessKey     string
	sessionToken        string
	credentialsCallback CredentialsCallback
	currentTime         time.Time
}

func (c challengeAuthenticator) Challenge(req []byte) ([]byte, gocql.Authenticator, error) {
	nonce, err := ExtractNonce(req)
	if err != nil {
		return nil, nil, err
	}

	t := c.currentTime
	if t.IsZero() {
		t = time.Now().UTC()
	}

	accessKeyID := c.accessKeyID
	secretAccessKey := c.secretAccessKey
	sessionToken := c.sessionToken
	if c.credentialsCallback != nil {
		creds, err := c.credentialsCallback()
		if err != nil {
			return nil, nil, fmt.Errorf("sigv4/gocql: retrieving AWS credentials: %w", err)
		}
		accessKeyID = creds.AccessKeyID
		secretAccessKey = creds.SecretAccessKey
		sessionToken = creds.SessionToken
	}

	signedResponse, err := BuildSignedResponse(c.region, nonce, accessKeyID, secretAccessKey, sessionToken, t)
	if err != nil {
		return nil, nil, fmt.Errorf("sigv4/gocql: signing challenge: %w", err)
	}

	// Copied into a fresh slice; gocql's framer reuses the buffer backing
	// req after this call returns.
	resp := make([]byte, len(signedResponse))
	copy(resp, signedResponse)
	return resp, nil, nil
}

func (c challengeAuthenticator) Success(data []byte) error {
	return nil
}
