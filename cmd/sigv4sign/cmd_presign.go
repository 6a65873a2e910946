package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aws/aws-sigv4-signing-core/sigv4"
)

var cmdPresign = &cobra.Command{
	Use:   "presign",
	Short: "Sign a request and print its presigned query string",
	Long: `
The "presign" command runs the same canonicalization and signing pipeline
as "sign", but emits the request's query string with the X-Amz-* signing
parameters and a trailing X-Amz-Signature appended, for use as a
presigned URL.
`,
	DisableAutoGenTag: true,
	RunE:              runPresign,
}

var presignOpts requestOptions
var presignExpires time.Duration

func init() {
	cmdRoot.AddCommand(cmdPresign)
	bindRequestFlags(cmdPresign, &presignOpts)
	cmdPresign.Flags().DurationVar(&presignExpires, "expires", 15*time.Minute, "how long the presigned URL remains valid")
}

func runPresign(cmd *cobra.Command, args []string) error {
	if err := presignOpts.loadRequestFile(); err != nil {
		return err
	}
	params, err := presignOpts.signingParameters()
	if err != nil {
		return err
	}

	result, err := sigv4.SignQuery(params, presignExpires)
	if err != nil {
		return err
	}

	fmt.Println(result.Authorization)
	return nil
}
