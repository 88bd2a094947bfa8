package database

import (
	"super-app-media/model"
)

// Database interface for different database implementations.
//
// Instances are constructed at startup and passed explicitly into the store
// and services; there is deliberately no package-level instance, so tests can
// substitute their own implementation.
type Database interface {
	// StoredFile operations.
	// CreateStoredFile persists the metadata row together with all chunks.
	// The write is atomic: either the whole object becomes visible or none
	// of it does.
	CreateStoredFile(file *model.StoredFile, chunks []*model.FileChunk) error
	GetStoredFileByID(id string) (*model.StoredFile, error)
	// ListStoredFilesByUploader returns one page ordered by upload date
	// descending, plus the total match count.
	ListStoredFilesByUploader(uploadedBy string, page, pageSize int) ([]*model.StoredFile, int64, error)
	// DeleteStoredFile removes the metadata row and every chunk.
	// Returns ErrNotFound when the object does not exist.
	DeleteStoredFile(id string) error

	// FileChunk operations
	GetFileChunk(fileID string, n int) (*model.FileChunk, error)

	// General operations
	Ping() error
	Close() error
}

// DBType database type
type DBType string

const (
	DBTypeMySQL  DBType = "mysql"
	DBTypePebble DBType = "pebble"
)

// NewDatabase create a database instance of the specified type
func NewDatabase(dbType DBType, config interface{}) (Database, error) {
	switch dbType {
	case DBTypeMySQL:
		return NewMySQLDatabase(config)
	case DBTypePebble:
		return NewPebbleDatabase(config)
	default:
		return nil, ErrUnsupportedDBType
	}
}
