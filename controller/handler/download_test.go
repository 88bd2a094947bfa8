package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"super-app-media/database"
	"super-app-media/model"
	"super-app-media/store"

	"github.com/gin-gonic/gin"
)

func newDownloadTestServer(t *testing.T) (*gin.Engine, *store.Bucket) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(database.DBTypePebble, &database.PebbleConfig{
		DataDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	bucket := store.NewBucket(db, nil, "test_uploads", 64)
	h := NewDownloadHandler(bucket)

	r := gin.New()
	r.GET("/api/upload/file/:id", h.DownloadFile)
	return r, bucket
}

func downloadBody(n int) []byte {
	body := make([]byte, n)
	for i := range body {
		body[i] = byte(i % 251)
	}
	return body
}

func doDownload(r *gin.Engine, id, rangeHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/upload/file/"+id, nil)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDownload_FullContent(t *testing.T) {
	r, bucket := newDownloadTestServer(t)
	body := downloadBody(1000)
	file, err := bucket.Put(&store.PutInput{
		OriginalName: "video.mp4",
		ContentType:  "video/mp4",
		Data:         body,
		UploadedBy:   "user-a",
	})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	w := doDownload(r, file.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), body) {
		t.Errorf("Expected full 1000-byte body, got %d bytes", w.Body.Len())
	}
	if cr := w.Header().Get("Content-Range"); cr != "" {
		t.Errorf("Expected no Content-Range on 200, got %q", cr)
	}
	if ct := w.Header().Get("Content-Type"); ct != "video/mp4" {
		t.Errorf("Expected Content-Type video/mp4, got %q", ct)
	}
	if ar := w.Header().Get("Accept-Ranges"); ar != "bytes" {
		t.Errorf("Expected Accept-Ranges bytes, got %q", ar)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=31536000" {
		t.Errorf("Expected long-lived Cache-Control, got %q", cc)
	}
	if cl := w.Header().Get("Content-Length"); cl != "1000" {
		t.Errorf("Expected Content-Length 1000, got %q", cl)
	}
}

func TestDownload_OpenEndedRangeIs206(t *testing.T) {
	r, bucket := newDownloadTestServer(t)
	body := downloadBody(1000)
	file, _ := bucket.Put(&store.PutInput{
		OriginalName: "video.mp4",
		ContentType:  "video/mp4",
		Data:         body,
		UploadedBy:   "user-a",
	})

	// bytes=0- covers the whole object but must still answer 206
	w := doDownload(r, file.ID, "bytes=0-")
	if w.Code != http.StatusPartialContent {
		t.Fatalf("Expected 206, got %d", w.Code)
	}
	if cr := w.Header().Get("Content-Range"); cr != "bytes 0-999/1000" {
		t.Errorf("Expected Content-Range bytes 0-999/1000, got %q", cr)
	}
	if !bytes.Equal(w.Body.Bytes(), body) {
		t.Errorf("Expected full body on 0-, got %d bytes", w.Body.Len())
	}
}

func TestDownload_MidRange(t *testing.T) {
	r, bucket := newDownloadTestServer(t)
	body := downloadBody(1000)
	file, _ := bucket.Put(&store.PutInput{
		OriginalName: "video.mp4",
		ContentType:  "video/mp4",
		Data:         body,
		UploadedBy:   "user-a",
	})

	w := doDownload(r, file.ID, "bytes=500-")
	if w.Code != http.StatusPartialContent {
		t.Fatalf("Expected 206, got %d", w.Code)
	}
	if cr := w.Header().Get("Content-Range"); cr != "bytes 500-999/1000" {
		t.Errorf("Expected Content-Range bytes 500-999/1000, got %q", cr)
	}
	if cl := w.Header().Get("Content-Length"); cl != "500" {
		t.Errorf("Expected Content-Length 500, got %q", cl)
	}
	if !bytes.Equal(w.Body.Bytes(), body[500:]) {
		t.Errorf("Expected bytes 500-999, got %d bytes", w.Body.Len())
	}
}

func TestDownload_UnsatisfiableRange(t *testing.T) {
	r, bucket := newDownloadTestServer(t)
	file, _ := bucket.Put(&store.PutInput{
		OriginalName: "video.mp4",
		ContentType:  "video/mp4",
		Data:         downloadBody(1000),
		UploadedBy:   "user-a",
	})

	w := doDownload(r, file.ID, "bytes=2000-3000")
	if w.Code != http.StatusRequestedRangeNotSatisfiable {
		t.Fatalf("Expected 416, got %d", w.Code)
	}
	if cr := w.Header().Get("Content-Range"); cr != "bytes */1000" {
		t.Errorf("Expected Content-Range bytes */1000, got %q", cr)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body on 416, got %d bytes", w.Body.Len())
	}
}

func TestDownload_NotFoundBeforeRangeParsing(t *testing.T) {
	r, _ := newDownloadTestServer(t)

	// Well-formed id, absent object, nonsense Range: 404 wins over 416
	w := doDownload(r, "2b3f8c6a-9d4e-4f1a-b5c7-d8e9f0a1b2c3", "bytes=abc")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for absent object, got %d", w.Code)
	}
}

// brokenChunkDB resolves file metadata but fails every chunk read
type brokenChunkDB struct {
	file *model.StoredFile
}

func (d *brokenChunkDB) CreateStoredFile(file *model.StoredFile, chunks []*model.FileChunk) error {
	return nil
}

func (d *brokenChunkDB) GetStoredFileByID(id string) (*model.StoredFile, error) {
	if id == d.file.ID {
		return d.file, nil
	}
	return nil, database.ErrNotFound
}

func (d *brokenChunkDB) ListStoredFilesByUploader(uploadedBy string, page, pageSize int) ([]*model.StoredFile, int64, error) {
	return nil, 0, nil
}

func (d *brokenChunkDB) DeleteStoredFile(id string) error { return nil }

func (d *brokenChunkDB) GetFileChunk(fileID string, n int) (*model.FileChunk, error) {
	return nil, errors.New("chunk read failed")
}

func (d *brokenChunkDB) Ping() error  { return nil }
func (d *brokenChunkDB) Close() error { return nil }

func TestDownload_ChunkFailureBeforeBodyIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	file := &model.StoredFile{
		ID:          "2b3f8c6a-9d4e-4f1a-b5c7-d8e9f0a1b2c3",
		Filename:    "1699999999_video.mp4",
		Length:      1000,
		ChunkSize:   64,
		ContentType: "video/mp4",
		UploadDate:  time.Now(),
	}
	bucket := store.NewBucket(&brokenChunkDB{file: file}, nil, "test_uploads", 64)
	h := NewDownloadHandler(bucket)

	r := gin.New()
	r.GET("/api/upload/file/:id", h.DownloadFile)

	// The first chunk read fails before any body byte is written: the client
	// must get a structured 500, not a truncated 200 with a Content-Length
	for _, rangeHeader := range []string{"", "bytes=0-"} {
		w := doDownload(r, file.ID, rangeHeader)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Range %q: expected 500 when the stream fails before headers, got %d", rangeHeader, w.Code)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte(`"success":false`)) {
			t.Errorf("Range %q: expected structured error body, got %s", rangeHeader, w.Body.String())
		}
	}
}

func TestDownload_MalformedID(t *testing.T) {
	r, _ := newDownloadTestServer(t)

	w := doDownload(r, "not-a-uuid", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for malformed id, got %d", w.Code)
	}
}
