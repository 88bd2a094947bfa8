package upload_service

import (
	"bytes"
	"encoding/binary"
)

// mvhdMarker movie header box type in an MP4/QuickTime container
var mvhdMarker = []byte("mvhd")

// ProbeMP4Duration extract the media duration in seconds from raw MP4 bytes
// using only the movie header box, without decoding any track.
//
// The mvhd box is located by a forward byte scan rather than a structured box
// walk: the marker is distinctive and may sit nested inside moov/trak
// wrappers. Immediately after the marker:
//
//	version 0: version(1) flags(3) creation(4) modification(4) timescale(4) duration(4)
//	version 1: version(1) flags(3) creation(8) modification(8) timescale(4) duration(8, high word then low word)
//
// Any version byte other than 1 is read with the version-0 layout. All
// integers are big-endian. Returns ok=false when the marker is absent, the
// timescale is zero, or any field would run past the buffer end.
func ProbeMP4Duration(buf []byte) (seconds float64, ok bool) {
	idx := bytes.Index(buf, mvhdMarker)
	if idx < 0 {
		return 0, false
	}

	body := buf[idx+len(mvhdMarker):]
	if len(body) < 1 {
		return 0, false
	}
	version := body[0]

	var timescaleOff, durationOff int
	if version == 1 {
		timescaleOff = 1 + 3 + 8 + 8
		durationOff = timescaleOff + 4
		if len(body) < durationOff+8 {
			return 0, false
		}
	} else {
		timescaleOff = 1 + 3 + 4 + 4
		durationOff = timescaleOff + 4
		if len(body) < durationOff+4 {
			return 0, false
		}
	}

	timescale := binary.BigEndian.Uint32(body[timescaleOff:])
	if timescale == 0 {
		return 0, false
	}

	var duration uint64
	if version == 1 {
		high := uint64(binary.BigEndian.Uint32(body[durationOff:]))
		low := uint64(binary.BigEndian.Uint32(body[durationOff+4:]))
		duration = high<<32 | low
	} else {
		duration = uint64(binary.BigEndian.Uint32(body[durationOff:]))
	}

	return float64(duration) / float64(timescale), true
}
