package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aws/aws-sigv4-signing-core/sigv4"
	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/dateutil"
)

var cmdSign = &cobra.Command{
	Use:   "sign",
	Short: "Sign a request and print its Authorization header",
	Long: `
The "sign" command canonicalizes the request described by its flags (or,
with --request-file, a JSON file) and prints the resulting
AWS4-HMAC-SHA256 Authorization header.
`,
	DisableAutoGenTag: true,
	RunE:              runSign,
}

type requestOptions struct {
	AccessKeyID     string `json:"accessKey,omitempty"`
	SecretAccessKey string `json:"secretKey,omitempty"`
	SessionToken    string `json:"sessionToken,omitempty"`
	Region          string `json:"region,omitempty"`
	Service         string `json:"service,omitempty"`
	Date            string `json:"date,omitempty"`
	Method          string `json:"method,omitempty"`
	Path            string `json:"path,omitempty"`
	Query           string `json:"query,omitempty"`
	Headers         string `json:"headers,omitempty"`
	Payload         string `json:"payload,omitempty"`
	RequestFile     string `json:"-"`
}

var signOpts requestOptions

func init() {
	cmdRoot.AddCommand(cmdSign)
	bindRequestFlags(cmdSign, &signOpts)
}

func bindRequestFlags(cmd *cobra.Command, opts *requestOptions) {
	fs := cmd.Flags()
	fs.StringVar(&opts.AccessKeyID, "access-key", "", "AWS access key `id`")
	fs.StringVar(&opts.SecretAccessKey, "secret-key", "", "AWS secret access `key`")
	fs.StringVar(&opts.SessionToken, "session-token", "", "AWS session `token`, for temporary credentials")
	fs.StringVar(&opts.Region, "region", "", "AWS `region`, e.g. us-east-1")
	fs.StringVar(&opts.Service, "service", "", "AWS service `name`, e.g. s3")
	fs.StringVar(&opts.Date, "date", "", "request timestamp, RFC 3339 (2006-01-02T15:04:05Z), RFC 5322 (Mon, 02 Jan 2006 15:04:05 GMT), or the signing basic form YYYYMMDDTHHMMSSZ; defaults to now")
	fs.StringVar(&opts.Method, "method", "GET", "HTTP `method`")
	fs.StringVar(&opts.Path, "path", "/", "request `path`")
	fs.StringVar(&opts.Query, "query", "", "raw query `string`, e.g. a=1&b=2")
	fs.StringVar(&opts.Headers, "headers", "", "raw \"name:value\\n\" `headers` block, must include host")
	fs.StringVar(&opts.Payload, "payload", "", "request `body`, hashed into the canonical request; omit for a bodyless request")
	fs.StringVar(&opts.RequestFile, "request-file", "", "read the request description from a JSON `file` instead of flags")
}

// loadRequestFile reads a JSON request description and overlays it onto
// opts, so a file can omit fields (like headers) that are easier to leave
// to a flag. Empty-string JSON fields don't clear an already-set flag.
func (opts *requestOptions) loadRequestFile() error {
	if opts.RequestFile == "" {
		return nil
	}
	data, err := os.ReadFile(opts.RequestFile)
	if err != nil {
		return fmt.Errorf("reading request file: %w", err)
	}
	var fromFile requestOptions
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("parsing request file: %w", err)
	}
	overlayRequestOptions(opts, fromFile)
	return nil
}

func overlayRequestOptions(dst *requestOptions, src requestOptions) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&dst.AccessKeyID, src.AccessKeyID},
		{&dst.SecretAccessKey, src.SecretAccessKey},
		{&dst.SessionToken, src.SessionToken},
		{&dst.Region, src.Region},
		{&dst.Service, src.Service},
		{&dst.Date, src.Date},
		{&dst.Method, src.Method},
		{&dst.Path, src.Path},
		{&dst.Query, src.Query},
		{&dst.Headers, src.Headers},
		{&dst.Payload, src.Payload},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}

func (opts requestOptions) signingParameters() (sigv4.SigningParameters, error) {
	date, err := resolveDate(opts.Date)
	if err != nil {
		return sigv4.SigningParameters{}, err
	}
	return sigv4.SigningParameters{
		Credential: sigv4.Credential{
			AccessKeyID:     opts.AccessKeyID,
			SecretAccessKey: opts.SecretAccessKey,
			SecurityToken:   opts.SessionToken,
		},
		DateISO8601: date,
		Region:      opts.Region,
		Service:     opts.Service,
		Request: sigv4.Request{
			Method:  opts.Method,
			Path:    opts.Path,
			Query:   opts.Query,
			Headers: opts.Headers,
			Payload: []byte(opts.Payload),
		},
	}, nil
}

// resolveDate accepts the empty string (meaning "now"), an RFC 3339 or
// RFC 5322 timestamp, or an already-basic-form YYYYMMDDTHHMMSSZ
// timestamp, and returns the basic form sigv4.Sign requires.
func resolveDate(date string) (string, error) {
	if date == "" {
		return dateutil.Now(), nil
	}
	basic, err := dateutil.ParseAndFormat(date)
	if err == nil {
		return basic, nil
	}
	if len(date) == len(dateutil.BasicFormat) {
		return date, nil
	}
	return "", fmt.Errorf("parsing --date: %w", err)
}

func runSign(cmd *cobra.Command, args []string) error {
	if err := signOpts.loadRequestFile(); err != nil {
		return err
	}
	params, err := signOpts.signingParameters()
	if err != nil {
		return err
	}

	result, err := sigv4.Sign(params)
	if err != nil {
		return err
	}

	fmt.Println(result.Authorization)
	return nil
}
