package handler

import (
	"regexp"
	"strconv"

	"super-app-media/store"
)

// rangePattern explicit grammar for the supported Range header subset.
// Anything else (multiple ranges, suffix ranges, other units) is rejected
// as unsatisfiable rather than silently served in full.
var rangePattern = regexp.MustCompile(`^bytes=(\d+)-(\d+)?$`)

// parseRange resolve a Range header value against the object length.
//
// Returns (nil, true) when the header is empty (serve the whole body),
// (rng, true) for a satisfiable range, and (nil, false) when the header is
// present but malformed or lies outside the object bounds.
func parseRange(header string, totalLength int64) (*store.ByteRange, bool) {
	if header == "" {
		return nil, true
	}

	m := rangePattern.FindStringSubmatch(header)
	if m == nil {
		return nil, false
	}

	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		// Digits that overflow int64 cannot address any real offset;
		// normalize instead of rejecting
		start = 0
	}

	end := totalLength - 1
	if m[2] != "" {
		if parsed, err := strconv.ParseInt(m[2], 10, 64); err == nil {
			end = parsed
		}
	}
	if end > totalLength-1 {
		end = totalLength - 1
	}

	if start > end || start >= totalLength {
		return nil, false
	}

	return &store.ByteRange{Start: start, End: end}, true
}
