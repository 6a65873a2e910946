// Package dateutil parses the two timestamp shapes AWS request signing
// accepts (RFC 3339 and RFC 5322) and emits the compact ISO-8601 basic form
// SigV4 uses everywhere else: "20060102T150405Z".
//
// Parsing is directive-driven rather than a single call to time.Parse so
// that a malformed numeric field and an out-of-range calendar value
// surface as the same ErrISOFormatting the rest of the pipeline expects —
// both collapse to one sentinel error, but for a different underlying
// reason worth documenting at the call site.
package dateutil

import (
	"errors"
	"time"

	"github.com/aws/aws-sigv4-signing-core/sigv4/internal/byteutil"
)

// ErrISOFormatting is returned for any parse or calendar-validation
// failure: malformed input, an out-of-range field, or a February 29 on a
// non-leap year.
var ErrISOFormatting = errors.New("dateutil: invalid or out-of-range date")

// BasicFormat is the 16-byte compact ISO-8601 form SigV4 signs with.
const BasicFormat = "20060102T150405Z"

var monthNames = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// directive is one parsed "%NC" format token, or a literal byte to match.
type directive struct {
	literal byte
	isField bool
	width   int
	class   byte // 'Y','M','D','h','m','s','*'
}

// rfc3339Directives describes "YYYY-MM-DDTHH:MM:SSZ" (20 bytes).
var rfc3339Directives = compileFormat("%4Y-%2M-%2DT%2h:%2m:%2sZ")

// rfc5322Directives describes "Day, DD Mon YYYY HH:MM:SS GMT" (29 bytes),
// where "Day, " is 3 skipped letters, ", " literal, and "Mon" is matched
// separately by name rather than by numeric width.
var rfc5322Directives = compileFormat("%3*, %2D %3* %4Y %2h:%2m:%2s GMT")

// compileFormat parses a "%NC" format string into directives. N is a
// decimal width (1..9) and C selects the field: Y,M,D,h,m,s consume N
// digits into that field; * skips N bytes without interpretation (used for
// the weekday name and, via a dedicated month-name step, the month token).
func compileFormat(format string) []directive {
	var out []directive
	for i := 0; i < len(format); {
		if format[i] != '%' {
			out = append(out, directive{literal: format[i]})
			i++
			continue
		}
		i++
		width := int(format[i] - '0')
		i++
		class := format[i]
		i++
		out = append(out, directive{isField: true, width: width, class: class})
	}
	return out
}

type fields struct {
	year, month, day, hour, minute, second int
	haveMonthName                          bool
}

// parseWithDirectives walks input against directives, filling in fields.
// When monthIsName is set, the month-name directive (the second '*' of
// width 3, after the day field in the RFC 5322 form) is special-cased
// here, since a name isn't a fixed-width digit field.
func parseWithDirectives(input string, directives []directive, monthIsName bool) (fields, error) {
	var f fields
	pos := 0
	monthDirectiveIndex := -1
	if monthIsName {
		// In rfc5322Directives ("%3*, %2D %3* %4Y ..."), directives are:
		// 0:%3* 1:',' 2:' ' 3:%2D 4:' ' 5:%3* 6:' ' 7:%4Y ...
		// so the month-name field is directive index 5.
		monthDirectiveIndex = 5
	}

	for di, d := range directives {
		if !d.isField {
			if pos >= len(input) || input[pos] != d.literal {
				return fields{}, ErrISOFormatting
			}
			pos++
			continue
		}
		if pos+d.width > len(input) {
			return fields{}, ErrISOFormatting
		}
		chunk := input[pos : pos+d.width]
		pos += d.width

		if d.class == '*' && monthIsName && di == monthDirectiveIndex {
			month, ok := matchMonthName(chunk)
			if !ok {
				return fields{}, ErrISOFormatting
			}
			f.month = month
			f.haveMonthName = true
			continue
		}
		if d.class == '*' {
			continue
		}

		value, err := parseDigits(chunk)
		if err != nil {
			return fields{}, err
		}
		switch d.class {
		case 'Y':
			f.year = value
		case 'M':
			f.month = value
		case 'D':
			f.day = value
		case 'h':
			f.hour = value
		case 'm':
			f.minute = value
		case 's':
			f.second = value
		default:
			return fields{}, ErrISOFormatting
		}
	}
	if pos != len(input) {
		return fields{}, ErrISOFormatting
	}
	return f, nil
}

func parseDigits(s string) (int, error) {
	value := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, ErrISOFormatting
		}
		value = value*10 + int(c-'0')
	}
	return value, nil
}

// matchMonthName does a case-sensitive linear scan against {Jan..Dec},
// returning the 1-based month number.
func matchMonthName(name string) (int, bool) {
	for i, m := range monthNames {
		if m == name {
			return i + 1, true
		}
	}
	return 0, false
}

// isLeapYear implements the Gregorian leap-year rule.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func (f fields) validate() error {
	if f.year < 1900 {
		return ErrISOFormatting
	}
	if f.month < 1 || f.month > 12 {
		return ErrISOFormatting
	}
	maxDay := daysInMonth[f.month-1]
	if f.month == 2 && isLeapYear(f.year) {
		maxDay = 29
	}
	if f.day < 1 || f.day > maxDay {
		return ErrISOFormatting
	}
	if f.hour < 0 || f.hour > 23 {
		return ErrISOFormatting
	}
	if f.minute < 0 || f.minute > 59 {
		return ErrISOFormatting
	}
	if f.second < 0 || f.second > 60 { // 60 admits a leap second
		return ErrISOFormatting
	}
	return nil
}

// basicForm renders f as the compact ISO-8601 basic form, zero-padding
// each field into place with byteutil.IntToASCII instead of fmt.Sprintf,
// so formatting a validated timestamp allocates no more than the one
// output buffer.
func (f fields) basicForm() string {
	out := make([]byte, len(BasicFormat))
	byteutil.IntToASCII(f.year, 4, out[0:4])
	byteutil.IntToASCII(f.month, 2, out[4:6])
	byteutil.IntToASCII(f.day, 2, out[6:8])
	out[8] = 'T'
	byteutil.IntToASCII(f.hour, 2, out[9:11])
	byteutil.IntToASCII(f.minute, 2, out[11:13])
	byteutil.IntToASCII(f.second, 2, out[13:15])
	out[15] = 'Z'
	return string(out)
}

// ParseAndFormat accepts an RFC 3339 ("2006-01-02T15:04:05Z", 20 bytes) or
// RFC 5322 ("Mon, 02 Jan 2006 15:04:05 GMT", 29 bytes) timestamp and
// returns its compact ISO-8601 basic form, or ErrISOFormatting if the
// input doesn't match either shape or fails calendar validation.
func ParseAndFormat(input string) (string, error) {
	var f fields
	var err error
	switch len(input) {
	case 20:
		f, err = parseWithDirectives(input, rfc3339Directives, false)
	case 29:
		f, err = parseWithDirectives(input, rfc5322Directives, true)
	default:
		return "", ErrISOFormatting
	}
	if err != nil {
		return "", err
	}
	if err := f.validate(); err != nil {
		return "", err
	}
	return f.basicForm(), nil
}

// Now returns the current instant in the compact ISO-8601 basic form,
// ambient convenience for callers that don't supply an explicit
// timestamp.
func Now() string {
	return time.Now().UTC().Format(BasicFormat)
}
