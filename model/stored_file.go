package model

import "time"

// StoredFile stored object metadata model. One row per uploaded blob; the
// body lives in tb_file_chunk. A file row is only written after every chunk
// has been persisted, so its presence means the object is complete.
type StoredFile struct {
	// ID opaque object identifier generated by the store (UUID)
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	// Filename store-unique stored name (timestamp-prefixed original name)
	Filename string `gorm:"index;type:varchar(512);not null" json:"filename"`

	// Length total body length in bytes as written to the chunk table
	Length int64 `gorm:"not null" json:"length"`

	// ChunkSize chunk size in bytes used when this object was written
	ChunkSize int64 `gorm:"not null" json:"chunk_size"`

	// Bucket logical bucket name
	Bucket string `gorm:"index;type:varchar(100)" json:"bucket"`

	// UploadDate upload completion time
	UploadDate time.Time `gorm:"index" json:"upload_date"`

	// Metadata fields (flattened)
	OriginalName string `gorm:"type:varchar(255)" json:"original_name"` // Client-supplied filename
	ContentType  string `gorm:"type:varchar(100)" json:"content_type"`  // Declared MIME type
	DeclaredSize int64  `json:"declared_size"`                          // Client-declared byte size
	UploadedBy   string `gorm:"index;type:varchar(64)" json:"uploaded_by"`
	Categoria    string `gorm:"type:varchar(100)" json:"categoria"` // Free-form category
	Descricao    string `gorm:"type:varchar(500)" json:"descricao"` // Free-form description

	// Timestamps
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specify table name
func (StoredFile) TableName() string {
	return "tb_stored_file"
}

// Metadata assemble the metadata map view of the flattened columns
func (f *StoredFile) Metadata() map[string]interface{} {
	return map[string]interface{}{
		"originalName": f.OriginalName,
		"mimetype":     f.ContentType,
		"size":         f.DeclaredSize,
		"uploadedBy":   f.UploadedBy,
		"categoria":    f.Categoria,
		"descricao":    f.Descricao,
		"uploadedAt":   f.UploadDate,
	}
}

// FileChunk one fixed-size slice of a stored object's body
type FileChunk struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// FileID owning StoredFile ID
	FileID string `gorm:"uniqueIndex:idx_file_chunk,priority:1;type:varchar(36);not null" json:"file_id"`

	// N zero-based chunk index
	N int `gorm:"uniqueIndex:idx_file_chunk,priority:2;not null" json:"n"`

	// Data chunk payload, at most StoredFile.ChunkSize bytes
	Data []byte `gorm:"type:mediumblob;not null" json:"-"`
}

// TableName specify table name
func (FileChunk) TableName() string {
	return "tb_file_chunk"
}
