package upload_service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"super-app-media/model"
	"super-app-media/store"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoFiles the request carried zero files
	ErrNoFiles = errors.New("no files uploaded")

	// ErrStorageUnavailable the backing store connection is down; detected
	// once per batch before any write is attempted
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// TooManyFilesError batch size above the configured maximum
type TooManyFilesError struct {
	Count int
	Max   int
}

func (e *TooManyFilesError) Error() string {
	return fmt.Sprintf("too many files: %d submitted, maximum is %d", e.Count, e.Max)
}

// AllRejectedError every candidate in the batch failed policy evaluation
type AllRejectedError struct {
	Rejected []RejectedFile
}

func (e *AllRejectedError) Error() string {
	return "all files rejected: " + joinRejections(e.Rejected)
}

// RejectedFile one candidate turned away by policy, with the concrete reason
type RejectedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

func joinRejections(rejected []RejectedFile) string {
	s := ""
	for i, r := range rejected {
		if i > 0 {
			s += "; "
		}
		s += r.Filename + ": " + r.Reason
	}
	return s
}

// BatchResult outcome of one upload batch. Files holds the stored objects in
// submission order; Rejected lists candidates turned away by policy.
type BatchResult struct {
	Files    []*model.StoredFile
	Rejected []RejectedFile
}

// UploadService coordinates policy evaluation and concurrent storage for
// multi-file upload batches
type UploadService struct {
	bucket   *store.Bucket
	limits   *Limits
	maxFiles int
}

// NewUploadService create upload service instance
func NewUploadService(bucket *store.Bucket, limits *Limits, maxFiles int) *UploadService {
	return &UploadService{
		bucket:   bucket,
		limits:   limits,
		maxFiles: maxFiles,
	}
}

// BatchInput one multipart upload request
type BatchInput struct {
	Candidates []*Candidate
	UploadedBy string
	Categoria  string
	Descricao  string
}

// ProcessBatch evaluate and store one batch of candidates.
//
// The batch-count rule is checked first, then each candidate runs through
// policy. If nothing survives, the whole request fails without touching the
// store. Accepted candidates are written concurrently; any single write
// failure fails the batch (already-written siblings are not rolled back).
func (s *UploadService) ProcessBatch(ctx context.Context, in *BatchInput) (*BatchResult, error) {
	if len(in.Candidates) == 0 {
		return nil, ErrNoFiles
	}
	if len(in.Candidates) > s.maxFiles {
		return nil, &TooManyFilesError{Count: len(in.Candidates), Max: s.maxFiles}
	}

	var accepted []*Candidate
	var rejected []RejectedFile
	for _, c := range in.Candidates {
		if d := EvaluateCandidate(c, s.limits); d.Accepted() {
			accepted = append(accepted, c)
		} else {
			rejected = append(rejected, RejectedFile{Filename: c.OriginalName, Reason: d.Reason()})
		}
	}

	if len(accepted) == 0 {
		return nil, &AllRejectedError{Rejected: rejected}
	}

	// One reachability check per batch, never per file
	if err := s.bucket.Ping(); err != nil {
		log.Printf("Storage ping failed: %v", err)
		return nil, ErrStorageUnavailable
	}

	// Concurrent writes, results slotted by submission index so the response
	// order is independent of completion order
	files := make([]*model.StoredFile, len(accepted))
	g, _ := errgroup.WithContext(ctx)
	for i, c := range accepted {
		g.Go(func() error {
			file, err := s.bucket.Put(&store.PutInput{
				OriginalName: c.OriginalName,
				ContentType:  c.ContentType,
				Data:         c.Data,
				UploadedBy:   in.UploadedBy,
				Categoria:    in.Categoria,
				Descricao:    in.Descricao,
			})
			if err != nil {
				return fmt.Errorf("failed to store %s: %w", c.OriginalName, err)
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BatchResult{Files: files, Rejected: rejected}, nil
}

// RejectionNote human-readable note naming rejected files, empty when the
// whole batch was accepted
func (r *BatchResult) RejectionNote() string {
	if len(r.Rejected) == 0 {
		return ""
	}
	return "some files were not stored: " + joinRejections(r.Rejected)
}
