package store

import (
	"bytes"
	"io"
	"testing"

	"super-app-media/database"
)

func newTestBucket(t *testing.T) *Bucket {
	t.Helper()

	db, err := database.NewDatabase(database.DBTypePebble, &database.PebbleConfig{
		DataDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Small chunk size so multi-chunk paths are exercised with small bodies
	return NewBucket(db, nil, "test_uploads", 16)
}

func testBody(n int) []byte {
	body := make([]byte, n)
	for i := range body {
		body[i] = byte(i % 251)
	}
	return body
}

func putFile(t *testing.T, b *Bucket, name, uploader string, data []byte) string {
	t.Helper()
	file, err := b.Put(&PutInput{
		OriginalName: name,
		ContentType:  "image/jpeg",
		Data:         data,
		UploadedBy:   uploader,
	})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	return file.ID
}

func TestBucket_PutGetRoundTrip(t *testing.T) {
	b := newTestBucket(t)
	body := testBody(100) // spans 7 chunks at size 16

	id := putFile(t, b, "photo.jpg", "user-a", body)

	file, err := b.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if file.Length != 100 {
		t.Errorf("Expected length 100, got %d", file.Length)
	}
	if file.OriginalName != "photo.jpg" {
		t.Errorf("Expected original name photo.jpg, got %s", file.OriginalName)
	}
	if file.ChunkSize != 16 {
		t.Errorf("Expected recorded chunk size 16, got %d", file.ChunkSize)
	}
	if file.UploadedBy != "user-a" {
		t.Errorf("Expected uploader user-a, got %s", file.UploadedBy)
	}

	stream := b.OpenReadStream(file, nil)
	defer stream.Close()
	got, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("Stream read failed: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("Streamed body does not match written body")
	}
}

func TestBucket_RangeReads(t *testing.T) {
	b := newTestBucket(t)
	body := testBody(100)
	id := putFile(t, b, "photo.jpg", "user-a", body)

	file, err := b.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	cases := []struct {
		name       string
		start, end int64
	}{
		{"within one chunk", 3, 10},
		{"across chunk boundary", 10, 40},
		{"aligned to chunk start", 16, 31},
		{"tail", 90, 99},
		{"single byte", 50, 50},
		{"whole body", 0, 99},
	}
	for _, tc := range cases {
		stream := b.OpenReadStream(file, &ByteRange{Start: tc.start, End: tc.end})
		got, err := io.ReadAll(stream)
		stream.Close()
		if err != nil {
			t.Errorf("%s: read failed: %v", tc.name, err)
			continue
		}
		if !bytes.Equal(got, body[tc.start:tc.end+1]) {
			t.Errorf("%s: got %d bytes, want bytes %d-%d", tc.name, len(got), tc.start, tc.end)
		}
	}
}

func TestBucket_StoredFilenamesNeverCollide(t *testing.T) {
	b := newTestBucket(t)

	id1 := putFile(t, b, "same.jpg", "user-a", testBody(10))
	id2 := putFile(t, b, "same.jpg", "user-a", testBody(10))

	f1, _ := b.Get(id1)
	f2, _ := b.Get(id2)
	if f1.Filename == f2.Filename {
		t.Errorf("Expected distinct stored names for identical uploads, both got %s", f1.Filename)
	}
}

func TestBucket_DeleteRemovesFileAndChunks(t *testing.T) {
	b := newTestBucket(t)
	id := putFile(t, b, "photo.jpg", "user-a", testBody(50))

	if err := b.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := b.Get(id); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := b.Delete(id); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestBucket_GetUnknownID(t *testing.T) {
	b := newTestBucket(t)

	if _, err := b.Get("2b3f8c6a-9d4e-4f1a-b5c7-d8e9f0a1b2c3"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestBucket_ListByUploaderNewestFirstPaginated(t *testing.T) {
	b := newTestBucket(t)

	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, putFile(t, b, "photo.jpg", "user-a", testBody(10)))
	}
	putFile(t, b, "other.jpg", "user-b", testBody(10))

	page1, total, err := b.ListByUploader("user-a", 1, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}
	if len(page1) != 2 {
		t.Fatalf("Expected 2 items on page 1, got %d", len(page1))
	}
	// Newest first: the last uploaded id leads
	if page1[0].ID != ids[4] {
		t.Errorf("Expected newest file %s first, got %s", ids[4], page1[0].ID)
	}

	page3, _, err := b.ListByUploader("user-a", 3, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("Expected 1 item on page 3, got %d", len(page3))
	}
	if len(page3) == 1 && page3[0].ID != ids[0] {
		t.Errorf("Expected oldest file %s last, got %s", ids[0], page3[0].ID)
	}

	none, total, err := b.ListByUploader("user-c", 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(none) != 0 || total != 0 {
		t.Errorf("Expected empty listing for unknown uploader, got %d items total %d", len(none), total)
	}
}

func TestBucket_EmptyBody(t *testing.T) {
	b := newTestBucket(t)
	id := putFile(t, b, "empty.jpg", "user-a", nil)

	file, err := b.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if file.Length != 0 {
		t.Errorf("Expected length 0, got %d", file.Length)
	}

	stream := b.OpenReadStream(file, nil)
	defer stream.Close()
	got, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("Stream read failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty stream, got %d bytes", len(got))
	}
}
