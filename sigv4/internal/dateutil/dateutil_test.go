package dateutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFormatRFC3339(t *testing.T) {
	got, err := ParseAndFormat("2015-08-30T12:36:00Z")
	require.NoError(t, err)
	assert.Equal(t, "20150830T123600Z", got)
}

func TestParseAndFormatRFC5322(t *testing.T) {
	got, err := ParseAndFormat("Sun, 30 Aug 2015 12:36:00 GMT")
	require.NoError(t, err)
	assert.Equal(t, "20150830T123600Z", got)
}

func TestParseAndFormatRFC5322AllMonths(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Thu, 01 Jan 2015 00:00:00 GMT", "20150101T000000Z"},
		{"Sat, 28 Feb 2015 00:00:00 GMT", "20150228T000000Z"},
		{"Sun, 01 Mar 2015 00:00:00 GMT", "20150301T000000Z"},
		{"Wed, 01 Apr 2015 00:00:00 GMT", "20150401T000000Z"},
		{"Fri, 01 May 2015 00:00:00 GMT", "20150501T000000Z"},
		{"Mon, 01 Jun 2015 00:00:00 GMT", "20150601T000000Z"},
		{"Wed, 01 Jul 2015 00:00:00 GMT", "20150701T000000Z"},
		{"Sat, 01 Aug 2015 00:00:00 GMT", "20150801T000000Z"},
		{"Tue, 01 Sep 2015 00:00:00 GMT", "20150901T000000Z"},
		{"Thu, 01 Oct 2015 00:00:00 GMT", "20151001T000000Z"},
		{"Sun, 01 Nov 2015 00:00:00 GMT", "20151101T000000Z"},
		{"Thu, 31 Dec 2015 23:59:59 GMT", "20151231T235959Z"},
	}
	for _, c := range cases {
		got, err := ParseAndFormat(c.input)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

// TestLeapDay checks that Feb 29 is valid only in a leap year.
func TestLeapDay(t *testing.T) {
	got, err := ParseAndFormat("2020-02-29T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "20200229T000000Z", got)

	_, err = ParseAndFormat("2019-02-29T00:00:00Z")
	assert.ErrorIs(t, err, ErrISOFormatting)
}

func TestParseAndFormatInvalidLength(t *testing.T) {
	_, err := ParseAndFormat("not a date")
	assert.ErrorIs(t, err, ErrISOFormatting)
}

func TestParseAndFormatInvalidLiteral(t *testing.T) {
	_, err := ParseAndFormat("2015-08-30X12:36:00Z")
	assert.ErrorIs(t, err, ErrISOFormatting)
}

func TestParseAndFormatInvalidDigits(t *testing.T) {
	_, err := ParseAndFormat("2015-08-30T12:36:0aZ")
	assert.ErrorIs(t, err, ErrISOFormatting)
}

func TestParseAndFormatOutOfRangeMonth(t *testing.T) {
	_, err := ParseAndFormat("2015-13-01T00:00:00Z")
	assert.ErrorIs(t, err, ErrISOFormatting)
}

func TestParseAndFormatUnknownMonthName(t *testing.T) {
	_, err := ParseAndFormat("Sun, 30 Xxx 2015 12:36:00 GMT")
	assert.ErrorIs(t, err, ErrISOFormatting)
}

func TestParseAndFormatLeapSecond(t *testing.T) {
	got, err := ParseAndFormat("2015-06-30T23:59:60Z")
	require.NoError(t, err)
	assert.Equal(t, "20150630T235960Z", got)
}

func TestNow(t *testing.T) {
	got := Now()
	assert.Len(t, got, 16)
	assert.Equal(t, byte('T'), got[8])
	assert.Equal(t, byte('Z'), got[15])
}
