package database

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"super-app-media/model"

	"github.com/cockroachdb/pebble"
)

// PebbleDatabase PebbleDB database implementation with multiple collections
type PebbleDatabase struct {
	collections map[string]*pebble.DB // Map of collection name to PebbleDB instance
}

// PebbleConfig PebbleDB configuration
type PebbleConfig struct {
	DataDir string
}

// Collection names and their key-value formats
const (
	collectionFileInfo     = "file_info"     // key: {id}, value: JSON(StoredFile)
	collectionFileUploader = "file_uploader" // key: {uploaded_by}:{inverted_nano}:{id}, value: {id} - newest first on forward iteration
	collectionFileChunk    = "file_chunk"    // key: {id}:{n:010d}, value: raw chunk bytes
)

// NewPebbleDatabase create PebbleDB database instance with multiple collections
func NewPebbleDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*PebbleConfig)
	if !ok {
		return nil, fmt.Errorf("invalid PebbleDB config type")
	}

	// Create data directory if not exists
	if err := os.MkdirAll(cfg.DataDir, 0777); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	collectionNames := []string{
		collectionFileInfo,
		collectionFileUploader,
		collectionFileChunk,
	}

	// Open PebbleDB for each collection
	collections := make(map[string]*pebble.DB)
	for _, name := range collectionNames {
		collectionPath := filepath.Join(cfg.DataDir, "media_db", name)

		db, err := pebble.Open(collectionPath, &pebble.Options{})
		if err != nil {
			// Close previously opened databases
			for _, openedDB := range collections {
				openedDB.Close()
			}
			return nil, fmt.Errorf("failed to open collection %s at %s: %w", name, collectionPath, err)
		}
		collections[name] = db
	}

	log.Printf("PebbleDB database connected successfully with %d collections", len(collections))
	return &PebbleDatabase{collections: collections}, nil
}

// uploaderKey builds the uploader index key. The timestamp component is
// inverted so a forward scan yields newest uploads first.
func uploaderKey(file *model.StoredFile) []byte {
	inverted := uint64(math.MaxInt64) - uint64(file.UploadDate.UnixNano())
	return []byte(fmt.Sprintf("%s:%020d:%s", file.UploadedBy, inverted, file.ID))
}

func chunkKey(fileID string, n int) []byte {
	return []byte(fmt.Sprintf("%s:%010d", fileID, n))
}

// StoredFile operations

func (p *PebbleDatabase) CreateStoredFile(file *model.StoredFile, chunks []*model.FileChunk) error {
	// Chunks and index first; the file_info record is written last and acts
	// as the commit point. Readers resolve through file_info, so a partial
	// write is never observable as a complete object.
	chunkDB := p.collections[collectionFileChunk]
	for _, chunk := range chunks {
		if err := chunkDB.Set(chunkKey(chunk.FileID, chunk.N), chunk.Data, pebble.Sync); err != nil {
			return err
		}
	}

	data, err := json.Marshal(file)
	if err != nil {
		return err
	}

	if err := p.collections[collectionFileUploader].Set(uploaderKey(file), []byte(file.ID), pebble.Sync); err != nil {
		return err
	}

	return p.collections[collectionFileInfo].Set([]byte(file.ID), data, pebble.Sync)
}

func (p *PebbleDatabase) GetStoredFileByID(id string) (*model.StoredFile, error) {
	data, closer, err := p.collections[collectionFileInfo].Get([]byte(id))
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var file model.StoredFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (p *PebbleDatabase) ListStoredFilesByUploader(uploadedBy string, page, pageSize int) ([]*model.StoredFile, int64, error) {
	prefix := uploadedBy + ":"
	iter, err := p.collections[collectionFileUploader].NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: []byte(prefix + "~"),
	})
	if err != nil {
		return nil, 0, err
	}
	defer iter.Close()

	var total int64
	var files []*model.StoredFile
	skip := int64((page - 1) * pageSize)

	for iter.First(); iter.Valid(); iter.Next() {
		if total >= skip && len(files) < pageSize {
			file, err := p.GetStoredFileByID(string(iter.Value()))
			if err == ErrNotFound {
				// Index entry without a committed file record: incomplete
				// write or concurrent delete, not a listable object.
				continue
			}
			if err != nil {
				return nil, 0, err
			}
			files = append(files, file)
		}
		total++
	}

	return files, total, nil
}

func (p *PebbleDatabase) DeleteStoredFile(id string) error {
	file, err := p.GetStoredFileByID(id)
	if err != nil {
		return err
	}

	// file_info first so the object stops resolving immediately
	if err := p.collections[collectionFileInfo].Delete([]byte(id), pebble.Sync); err != nil {
		return err
	}
	if err := p.collections[collectionFileUploader].Delete(uploaderKey(file), pebble.Sync); err != nil {
		return err
	}

	chunkDB := p.collections[collectionFileChunk]
	prefix := []byte(id + ":")
	return chunkDB.DeleteRange(prefix, append(prefix[:len(prefix):len(prefix)], 0xFF), pebble.Sync)
}

// FileChunk operations

func (p *PebbleDatabase) GetFileChunk(fileID string, n int) (*model.FileChunk, error) {
	data, closer, err := p.collections[collectionFileChunk].Get(chunkKey(fileID, n))
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	buf := make([]byte, len(data))
	copy(buf, data)

	return &model.FileChunk{FileID: fileID, N: n, Data: buf}, nil
}

// Ping embedded store, always reachable once opened
func (p *PebbleDatabase) Ping() error {
	return nil
}

// Close close all collections
func (p *PebbleDatabase) Close() error {
	var lastErr error
	for name, db := range p.collections {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close collection %s: %v", name, err)
			lastErr = err
		}
	}
	return lastErr
}
