package store

import (
	"errors"
	"fmt"
	"io"
	"time"

	"super-app-media/database"
	"super-app-media/model"

	"github.com/google/uuid"
)

var (
	// ErrNotFound object does not exist in the bucket
	ErrNotFound = errors.New("file not found")
)

// PutInput one object to be written, body held in memory
type PutInput struct {
	OriginalName string
	ContentType  string
	Data         []byte
	UploadedBy   string
	Categoria    string
	Descricao    string
}

// ByteRange half-open byte window resolved against the object length.
// End is inclusive, matching Content-Range semantics.
type ByteRange struct {
	Start int64
	End   int64
}

// Bucket chunked object store over a Database. Bodies are split into
// fixed-size chunks; the chunk size in effect at write time is recorded on
// each object so reads stay correct if the configured size later changes.
type Bucket struct {
	db        database.Database
	cache     *database.Cache
	name      string
	chunkSize int64
}

// NewBucket create a bucket over the given database
func NewBucket(db database.Database, cache *database.Cache, name string, chunkSize int64) *Bucket {
	return &Bucket{
		db:        db,
		cache:     cache,
		name:      name,
		chunkSize: chunkSize,
	}
}

func cacheKey(id string) string {
	return "file_info:" + id
}

// Put write one complete object. The stored filename is the original name
// prefixed with the upload timestamp, so concurrent uploads of files with
// identical names never collide.
func (b *Bucket) Put(in *PutInput) (*model.StoredFile, error) {
	now := time.Now()
	file := &model.StoredFile{
		ID:           uuid.NewString(),
		Filename:     fmt.Sprintf("%d_%s", now.UnixNano(), in.OriginalName),
		Length:       int64(len(in.Data)),
		ChunkSize:    b.chunkSize,
		Bucket:       b.name,
		UploadDate:   now,
		OriginalName: in.OriginalName,
		ContentType:  in.ContentType,
		DeclaredSize: int64(len(in.Data)),
		UploadedBy:   in.UploadedBy,
		Categoria:    in.Categoria,
		Descricao:    in.Descricao,
	}

	chunks := splitChunks(file.ID, in.Data, b.chunkSize)
	if err := b.db.CreateStoredFile(file, chunks); err != nil {
		return nil, err
	}

	return file, nil
}

// splitChunks slice a body into zero-based chunks of at most chunkSize bytes.
// An empty body yields no chunks.
func splitChunks(fileID string, data []byte, chunkSize int64) []*model.FileChunk {
	var chunks []*model.FileChunk
	for n, off := 0, int64(0); off < int64(len(data)); n, off = n+1, off+chunkSize {
		end := off + chunkSize
		if end > int64(len(data)) {
			end = int64(len(data))
		}
		chunks = append(chunks, &model.FileChunk{
			FileID: fileID,
			N:      n,
			Data:   data[off:end],
		})
	}
	return chunks
}

// Get fetch object metadata by id, cache first
func (b *Bucket) Get(id string) (*model.StoredFile, error) {
	var cached model.StoredFile
	if err := b.cache.Get(cacheKey(id), &cached); err == nil {
		return &cached, nil
	}

	file, err := b.db.GetStoredFileByID(id)
	if err == database.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	b.cache.Set(cacheKey(id), file)
	return file, nil
}

// OpenReadStream open a reader over the object body. A nil rng streams the
// whole body; otherwise only bytes [rng.Start, rng.End] are produced. The
// caller must have validated the range against file.Length.
func (b *Bucket) OpenReadStream(file *model.StoredFile, rng *ByteRange) io.ReadCloser {
	start, end := int64(0), file.Length-1
	if rng != nil {
		start, end = rng.Start, rng.End
	}
	return &chunkReader{
		db:     b.db,
		fileID: file.ID,
		size:   file.ChunkSize,
		pos:    start,
		end:    end,
	}
}

// Delete remove an object and all of its chunks
func (b *Bucket) Delete(id string) error {
	err := b.db.DeleteStoredFile(id)
	if err == database.ErrNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	b.cache.Delete(cacheKey(id))
	return nil
}

// ListByUploader page through an uploader's objects, newest first
func (b *Bucket) ListByUploader(uploadedBy string, page, pageSize int) ([]*model.StoredFile, int64, error) {
	return b.db.ListStoredFilesByUploader(uploadedBy, page, pageSize)
}

// Ping check the backing database is reachable
func (b *Bucket) Ping() error {
	return b.db.Ping()
}

// chunkReader streams an object body chunk by chunk. Chunks are fetched
// lazily on Read, so an aborted download never loads the tail of the file.
type chunkReader struct {
	db     database.Database
	fileID string
	size   int64 // chunk size the object was written with

	pos int64 // next absolute byte offset to produce
	end int64 // last absolute byte offset to produce, inclusive

	cur      []byte // remainder of the current chunk
	closed   bool
	firstErr error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errors.New("read from closed stream")
	}
	if r.firstErr != nil {
		return 0, r.firstErr
	}
	if r.pos > r.end {
		return 0, io.EOF
	}

	if len(r.cur) == 0 {
		if err := r.load(); err != nil {
			r.firstErr = err
			return 0, err
		}
	}

	n := copy(p, r.cur)
	if remaining := r.end - r.pos + 1; int64(n) > remaining {
		n = int(remaining)
	}
	r.cur = r.cur[n:]
	r.pos += int64(n)
	return n, nil
}

// load fetch the chunk containing pos and trim it to the offset within
func (r *chunkReader) load() error {
	n := int(r.pos / r.size)
	chunk, err := r.db.GetFileChunk(r.fileID, n)
	if err == database.ErrNotFound {
		// Chunks are written before the metadata row, so a resolvable file
		// with a missing chunk means the stored object is corrupt.
		return fmt.Errorf("missing chunk %d of file %s", n, r.fileID)
	}
	if err != nil {
		return err
	}

	offset := r.pos - int64(n)*r.size
	if offset >= int64(len(chunk.Data)) {
		return fmt.Errorf("short chunk %d of file %s", n, r.fileID)
	}
	r.cur = chunk.Data[offset:]
	return nil
}

func (r *chunkReader) Close() error {
	r.closed = true
	r.cur = nil
	return nil
}
