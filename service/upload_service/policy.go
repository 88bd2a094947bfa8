package upload_service

import "fmt"

// Limits configurable per-file acceptance rules
type Limits struct {
	AllowedTypes     []string // MIME type allow-list
	MaxFileSize      int64    // Max byte size per file
	MaxVideoDuration float64  // Max duration in seconds, video/mp4 only
}

// Verdict rejection classification
type Verdict int

const (
	VerdictAccepted Verdict = iota
	VerdictRejectedType
	VerdictRejectedSize
	VerdictRejectedDuration
)

// Candidate one file as submitted, before acceptance. DeclaredSize lets the
// transport layer reject oversized parts without buffering their bytes; Data
// may be nil for such candidates.
type Candidate struct {
	OriginalName string
	ContentType  string
	DeclaredSize int64
	Data         []byte
}

// Size the candidate's byte size: the declared part size when known,
// otherwise the buffered length
func (c *Candidate) Size() int64 {
	if c.DeclaredSize > 0 {
		return c.DeclaredSize
	}
	return int64(len(c.Data))
}

// Decision outcome of evaluating one candidate. Returned by value; rejection
// is an expected outcome, not an error.
type Decision struct {
	Verdict  Verdict
	Mime     string  // set for type rejections
	Size     int64   // set for size rejections
	Duration float64 // set for duration rejections
	Limit    float64 // the limit that was exceeded (bytes or seconds)
}

// Accepted report whether the candidate may be stored
func (d Decision) Accepted() bool {
	return d.Verdict == VerdictAccepted
}

// Reason human-readable rejection reason naming the concrete rule
func (d Decision) Reason() string {
	switch d.Verdict {
	case VerdictRejectedType:
		return fmt.Sprintf("type %s not allowed", d.Mime)
	case VerdictRejectedSize:
		return fmt.Sprintf("size %d bytes > %d bytes", d.Size, int64(d.Limit))
	case VerdictRejectedDuration:
		return fmt.Sprintf("duration %.1fs > %.0fs", d.Duration, d.Limit)
	default:
		return ""
	}
}

// EvaluateCandidate apply the acceptance rules in fixed order: type, then
// size, then duration. The first failing rule wins. Duration applies only to
// video/mp4 and only rejects on a positive over-limit probe; an unreadable
// container is accepted (fail-open).
func EvaluateCandidate(c *Candidate, limits *Limits) Decision {
	if !containsType(limits.AllowedTypes, c.ContentType) {
		return Decision{Verdict: VerdictRejectedType, Mime: c.ContentType}
	}

	size := c.Size()
	if size > limits.MaxFileSize {
		return Decision{Verdict: VerdictRejectedSize, Size: size, Limit: float64(limits.MaxFileSize)}
	}

	if c.ContentType == "video/mp4" {
		if seconds, ok := ProbeMP4Duration(c.Data); ok && seconds > limits.MaxVideoDuration {
			return Decision{Verdict: VerdictRejectedDuration, Duration: seconds, Limit: limits.MaxVideoDuration}
		}
	}

	return Decision{Verdict: VerdictAccepted}
}

func containsType(allowed []string, mime string) bool {
	for _, t := range allowed {
		if t == mime {
			return true
		}
	}
	return false
}
