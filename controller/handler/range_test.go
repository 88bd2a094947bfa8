package handler

import "testing"

func TestParseRange(t *testing.T) {
	const totalLength = 1000

	cases := []struct {
		name   string
		header string
		ok     bool
		start  int64
		end    int64
		full   bool // nil range: stream the whole body
	}{
		{"no header", "", true, 0, 0, true},
		{"open ended from zero", "bytes=0-", true, 0, 999, false},
		{"open ended from middle", "bytes=500-", true, 500, 999, false},
		{"explicit range", "bytes=200-299", true, 200, 299, false},
		{"single byte", "bytes=0-0", true, 0, 0, false},
		{"end clamped to length", "bytes=900-5000", true, 900, 999, false},
		{"whole body explicit", "bytes=0-999", true, 0, 999, false},
		{"start beyond length", "bytes=2000-3000", false, 0, 0, false},
		{"start at length", "bytes=1000-", false, 0, 0, false},
		{"inverted", "bytes=300-200", false, 0, 0, false},
		{"missing unit", "0-999", false, 0, 0, false},
		{"wrong unit", "items=0-10", false, 0, 0, false},
		{"suffix range", "bytes=-500", false, 0, 0, false},
		{"multiple ranges", "bytes=0-10,20-30", false, 0, 0, false},
		{"negative start", "bytes=-1-10", false, 0, 0, false},
		{"garbage", "bytes=abc-def", false, 0, 0, false},
	}

	for _, tc := range cases {
		rng, ok := parseRange(tc.header, totalLength)
		if ok != tc.ok {
			t.Errorf("%s: expected ok=%v, got %v", tc.name, tc.ok, ok)
			continue
		}
		if !ok {
			continue
		}
		if tc.full {
			if rng != nil {
				t.Errorf("%s: expected full-body stream, got range %d-%d", tc.name, rng.Start, rng.End)
			}
			continue
		}
		if rng == nil {
			t.Errorf("%s: expected range %d-%d, got full-body stream", tc.name, tc.start, tc.end)
			continue
		}
		if rng.Start != tc.start || rng.End != tc.end {
			t.Errorf("%s: expected %d-%d, got %d-%d", tc.name, tc.start, tc.end, rng.Start, rng.End)
		}
	}
}

func TestParseRange_OverflowingStartNormalized(t *testing.T) {
	// Digits beyond int64 cannot address a real offset; normalized to 0
	rng, ok := parseRange("bytes=99999999999999999999-", 1000)
	if !ok {
		t.Fatal("Expected defensive normalization, got rejection")
	}
	if rng.Start != 0 || rng.End != 999 {
		t.Errorf("Expected 0-999, got %d-%d", rng.Start, rng.End)
	}
}
