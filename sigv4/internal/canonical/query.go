package canonical

import (
	"errors"
	"strings"

	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/recordsort"
)

// ErrMaxQueryPairCountExceeded is returned when a query string carries
// more parameters than maxPairs.
var ErrMaxQueryPairCountExceeded = errors.New("canonical: too many query parameters")

// Record is a single key/value pair.
type Record struct {
	Key   string
	Value string
}

// splitQuery walks "k=v&..." splitting on the first '=' within a
// parameter and on '&'/end-of-input. Empty values are legal; empty keys
// are dropped silently.
func splitQuery(query string, maxPairs int) ([]Record, error) {
	if query == "" {
		return nil, nil
	}
	var records []Record
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		key := part
		value := ""
		if idx := strings.IndexByte(part, '='); idx >= 0 {
			key = part[:idx]
			value = part[idx+1:]
		}
		if key == "" {
			continue
		}
		if len(records) >= maxPairs {
			return nil, ErrMaxQueryPairCountExceeded
		}
		records = append(records, Record{Key: key, Value: value})
	}
	return records, nil
}

// compareRecords defines a total order: compare keys byte-for-byte over
// the shorter length, shorter key wins ties; if keys are equal, compare
// values the same way. No two distinct records tie under this order.
func compareRecords(a, b Record) int {
	if c := compareBytes(a.Key, b.Key); c != 0 {
		return c
	}
	return compareBytes(a.Value, b.Value)
}

func compareBytes(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// EncodeQuery splits, sorts, and emits the canonical query string
// (without the trailing '\n' — callers append the separators assembled
// between canonical-request sections). maxPairs caps the number of query
// parameters accepted.
func EncodeQuery(query string, maxPairs int) (string, error) {
	records, err := splitQuery(query, maxPairs)
	if err != nil {
		return "", err
	}
	recordsort.Sort(records, compareRecords)

	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EncodeURI(r.Key, true, false))
		if r.Value != "" {
			b.WriteByte('=')
			b.WriteString(EncodeURI(r.Value, true, true))
		}
	}
	return b.String(), nil
}
