package upload_service

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildMvhdV0 build a minimal buffer containing a version-0 mvhd box body
func buildMvhdV0(timescale, duration uint32) []byte {
	buf := []byte("ftypisom....moov....")
	buf = append(buf, []byte("mvhd")...)
	buf = append(buf, 0)          // version
	buf = append(buf, 0, 0, 0)    // flags
	buf = append(buf, make([]byte, 8)...) // creation + modification
	buf = binary.BigEndian.AppendUint32(buf, timescale)
	buf = binary.BigEndian.AppendUint32(buf, duration)
	return buf
}

// buildMvhdV1 build a minimal buffer containing a version-1 mvhd box body
func buildMvhdV1(timescale uint32, duration uint64) []byte {
	buf := []byte("ftypisom....moov....")
	buf = append(buf, []byte("mvhd")...)
	buf = append(buf, 1)           // version
	buf = append(buf, 0, 0, 0)     // flags
	buf = append(buf, make([]byte, 16)...) // creation + modification, 64-bit
	buf = binary.BigEndian.AppendUint32(buf, timescale)
	buf = binary.BigEndian.AppendUint32(buf, uint32(duration>>32))
	buf = binary.BigEndian.AppendUint32(buf, uint32(duration))
	return buf
}

func TestProbeMP4Duration_Version0(t *testing.T) {
	// timescale 1000, duration 15000 ticks -> 15 seconds
	buf := buildMvhdV0(1000, 15000)

	seconds, ok := ProbeMP4Duration(buf)
	if !ok {
		t.Fatal("Expected duration to be readable")
	}
	if seconds != 15.0 {
		t.Errorf("Expected 15.0 seconds, got %f", seconds)
	}
}

func TestProbeMP4Duration_Version0Fractional(t *testing.T) {
	buf := buildMvhdV0(600, 900)

	seconds, ok := ProbeMP4Duration(buf)
	if !ok {
		t.Fatal("Expected duration to be readable")
	}
	if seconds != 1.5 {
		t.Errorf("Expected 1.5 seconds, got %f", seconds)
	}
}

func TestProbeMP4Duration_Version1(t *testing.T) {
	// 64-bit duration spanning both words: (5 << 32) + 500 ticks at timescale 1
	duration := uint64(5)<<32 + 500
	buf := buildMvhdV1(1, duration)

	seconds, ok := ProbeMP4Duration(buf)
	if !ok {
		t.Fatal("Expected duration to be readable")
	}
	expected := float64(duration)
	if seconds != expected {
		t.Errorf("Expected %f seconds, got %f", expected, seconds)
	}
}

func TestProbeMP4Duration_NonstandardVersionReadAsVersion0(t *testing.T) {
	buf := buildMvhdV0(1000, 20000)
	// Flip the version byte to a value no real muxer emits
	versionOff := bytes.Index(buf, []byte("mvhd")) + 4
	buf[versionOff] = 7

	seconds, ok := ProbeMP4Duration(buf)
	if !ok {
		t.Fatal("Expected nonstandard version to be read with the version-0 layout")
	}
	if seconds != 20.0 {
		t.Errorf("Expected 20.0 seconds, got %f", seconds)
	}
}

func TestProbeMP4Duration_ZeroTimescale(t *testing.T) {
	buf := buildMvhdV0(0, 15000)

	if _, ok := ProbeMP4Duration(buf); ok {
		t.Error("Expected unknown duration for zero timescale")
	}
}

func TestProbeMP4Duration_MissingMarker(t *testing.T) {
	buf := []byte("ftypisom....moov....trak....no header here")

	if _, ok := ProbeMP4Duration(buf); ok {
		t.Error("Expected unknown duration when mvhd is absent")
	}
}

func TestProbeMP4Duration_TruncatedBox(t *testing.T) {
	full := buildMvhdV0(1000, 15000)

	// Cut the buffer anywhere inside the mvhd fields
	for cut := len(full) - 1; cut > len(full)-12; cut-- {
		if _, ok := ProbeMP4Duration(full[:cut]); ok {
			t.Errorf("Expected unknown duration for buffer truncated at %d", cut)
		}
	}
}

func TestProbeMP4Duration_EmptyBuffer(t *testing.T) {
	if _, ok := ProbeMP4Duration(nil); ok {
		t.Error("Expected unknown duration for empty buffer")
	}
}
