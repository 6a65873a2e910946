package canonical

import (
	"errors"
	"strings"

	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/recordsort"
)

// ErrMaxHeaderPairCountExceeded is returned when a header block carries
// more entries than maxPairs.
var ErrMaxHeaderPairCountExceeded = errors.New("canonical: too many headers")

type headerRecord struct {
	name  string
	value string
	index int // original order, used as the header-sort tiebreak
}

// parseHeaders splits "name:value\r\n" lines, stopping at the first empty
// line or end of input, downcasing and trimming names and collapsing
// internal whitespace runs in values (quoted substrings preserved
// verbatim, the AWS SigV4 rule).
func parseHeaders(headers string, maxPairs int) ([]headerRecord, error) {
	var records []headerRecord
	// Accept both "\r\n" and plain "\n" line endings: http.Header builds
	// newline-joined text with no \r, so tolerating bare \n keeps this
	// usable with Go's native header representation as well as the raw
	// wire format.
	normalized := strings.ReplaceAll(headers, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	for _, line := range lines {
		if line == "" {
			break
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := collapseWhitespace(strings.TrimSpace(line[idx+1:]))
		if name == "" {
			continue
		}
		if len(records) >= maxPairs {
			return nil, ErrMaxHeaderPairCountExceeded
		}
		records = append(records, headerRecord{name: name, value: value, index: len(records)})
	}
	return records, nil
}

// collapseWhitespace collapses runs of ASCII whitespace outside of
// double-quoted substrings into a single space, leaving quoted text
// verbatim per the AWS SigV4 TrimAll rule.
func collapseWhitespace(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	inQuotes := false
	lastWasSpace := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '"' {
			inQuotes = !inQuotes
			b.WriteByte(c)
			lastWasSpace = false
			continue
		}
		if inQuotes {
			b.WriteByte(c)
			continue
		}
		if isSpace(c) {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		b.WriteByte(c)
		lastWasSpace = false
	}
	return b.String()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func compareHeaderRecords(a, b headerRecord) int {
	if c := compareBytes(a.name, b.name); c != 0 {
		return c
	}
	// Equal names: preserve input order as the tiebreak rather than
	// leaving it to sort stability.
	switch {
	case a.index < b.index:
		return -1
	case a.index > b.index:
		return 1
	}
	return 0
}

// EncodeHeaders parses, sorts, and emits both artifacts — the canonical
// headers block ("name:value\n" per header, sorted, no extra trailing
// blank line here; callers append the blank line the canonical request
// format calls for) and the semicolon-joined signed-headers list.
// maxPairs caps the number of header entries accepted.
func EncodeHeaders(headers string, maxPairs int) (block string, signedHeaders string, err error) {
	records, err := parseHeaders(headers, maxPairs)
	if err != nil {
		return "", "", err
	}
	recordsort.Sort(records, compareHeaderRecords)

	var blockBuilder strings.Builder
	names := make([]string, len(records))
	for i, r := range records {
		blockBuilder.WriteString(r.name)
		blockBuilder.WriteByte(':')
		blockBuilder.WriteString(r.value)
		blockBuilder.WriteByte('\n')
		names[i] = r.name
	}
	return blockBuilder.String(), strings.Join(names, ";"), nil
}
