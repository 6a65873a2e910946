package sigv4

import "github.com/aws/aws-sigv4-signing-core/sigv4/internal/arena"

// Config holds the pipeline's tunable limits as a plain struct — no config
// library fits a handful of scalar limits with no nesting, so this is one
// of this module's few concerns left on the standard library rather than
// a third-party config loader.
type Config struct {
	// ProcessingLen is the arena's backing size.
	ProcessingLen int
	// MaxQueryPairs caps the number of query parameters.
	MaxQueryPairs int
	// MaxHeaderPairs caps the number of headers.
	MaxHeaderPairs int
}

// DefaultConfig returns a 4096-byte arena and caps generous enough for any
// real AWS request.
func DefaultConfig() Config {
	return Config{
		ProcessingLen:  arena.DefaultSize,
		MaxQueryPairs:  256,
		MaxHeaderPairs: 256,
	}
}

func (c Config) withDefaults() Config {
	if c.ProcessingLen <= 0 {
		c.ProcessingLen = arena.DefaultSize
	}
	if c.MaxQueryPairs <= 0 {
		c.MaxQueryPairs = 256
	}
	if c.MaxHeaderPairs <= 0 {
		c.MaxHeaderPairs = 256
	}
	return c
}
