// Package receipt locates and normalizes the timestamp embedded in the OCR
// text of a ride-receipt screenshot, and derives the pixel window to crop from
// the source image based on where that timestamp (and a fixed terminator
// phrase) land in the text stream.
package receipt

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	// ErrNoTimestamp reports that the OCR text contains no date/time pattern
	// at all. The image cannot be placed on the timeline.
	ErrNoTimestamp = errors.New("no timestamp in text")
	// ErrBadTimestamp reports that a date/time substring was found but none of
	// the known formats could parse it.
	ErrBadTimestamp = errors.New("timestamp matches no known format")
	// ErrNoTerminator reports that the terminator phrase bounding the crop
	// window is absent from the text.
	ErrNoTerminator = errors.New("no terminator phrase in text")
)

var (
	timestampPattern  = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2}(?:\d{2})?, \d{1,2}:\d{2}(?::\d{2})?(?: AM| PM)?\b`)
	terminatorPattern = regexp.MustCompile(`Your ride|You rated|Yourated`)
)

// layouts are tried in strict order. The OCR text is ambiguous between
// month-first and day-first locales; disambiguation is structural (a meridiem
// marker implies the 12-hour forms are tried first, month-first before
// day-first). Reordering changes how ambiguous inputs like "03/04/22, 1:00 PM"
// are read.
var layouts = []string{
	"1/2/06, 3:04 PM",
	"2/1/06, 3:04 PM",
	"2/1/06, 15:04",
}

// Match is a raw timestamp substring and its character offset within the
// source OCR text.
type Match struct {
	Value  string
	Offset int
}

// FindTimestamp returns the first timestamp pattern match in text.
func FindTimestamp(text string) (Match, error) {
	loc := timestampPattern.FindStringIndex(text)
	if loc == nil {
		return Match{}, ErrNoTimestamp
	}
	return Match{Value: text[loc[0]:loc[1]], Offset: loc[0]}, nil
}

// ParseTimestamp normalizes a matched substring, trying each known layout in
// order and returning the first successful parse.
func ParseTimestamp(raw string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, raw)
}

// ExtractTimestamp finds and parses the timestamp in one step.
func ExtractTimestamp(text string) (time.Time, error) {
	m, err := FindTimestamp(text)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTimestamp(m.Value)
}

// FindTerminator returns the character offset of the terminator phrase
// ("Your ride" / "You rated" or its common OCR garbling).
func FindTerminator(text string) (int, error) {
	loc := terminatorPattern.FindStringIndex(text)
	if loc == nil {
		return 0, ErrNoTerminator
	}
	return loc[0], nil
}
