package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"super-app-media/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLDatabase MySQL database implementation
type MySQLDatabase struct {
	db *gorm.DB
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// NewMySQLDatabase create MySQL database instance
func NewMySQLDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*MySQLConfig)
	if !ok {
		return nil, fmt.Errorf("invalid MySQL config type")
	}

	// Connect database
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect MySQL: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Set connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&model.StoredFile{}, &model.FileChunk{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Println("MySQL database connected successfully")

	return &MySQLDatabase{db: db}, nil
}

// StoredFile operations

func (m *MySQLDatabase) CreateStoredFile(file *model.StoredFile, chunks []*model.FileChunk) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		if len(chunks) > 0 {
			if err := tx.CreateInBatches(chunks, 16).Error; err != nil {
				return err
			}
		}
		// Metadata row last: its presence is the commit point for the object
		return tx.Create(file).Error
	})
}

func (m *MySQLDatabase) GetStoredFileByID(id string) (*model.StoredFile, error) {
	var file model.StoredFile
	err := m.db.Where("id = ?", id).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (m *MySQLDatabase) ListStoredFilesByUploader(uploadedBy string, page, pageSize int) ([]*model.StoredFile, int64, error) {
	var total int64
	if err := m.db.Model(&model.StoredFile{}).
		Where("uploaded_by = ?", uploadedBy).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var files []*model.StoredFile
	err := m.db.Where("uploaded_by = ?", uploadedBy).
		Order("upload_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&files).Error
	if err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

func (m *MySQLDatabase) DeleteStoredFile(id string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.StoredFile{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("file_id = ?", id).Delete(&model.FileChunk{}).Error
	})
}

// FileChunk operations

func (m *MySQLDatabase) GetFileChunk(fileID string, n int) (*model.FileChunk, error) {
	var chunk model.FileChunk
	err := m.db.Where("file_id = ? AND n = ?", fileID, n).First(&chunk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// Ping report whether the underlying connection is usable
func (m *MySQLDatabase) Ping() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close close database connection
func (m *MySQLDatabase) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetGormDB get underlying GORM database instance
func (m *MySQLDatabase) GetGormDB() *gorm.DB {
	return m.db
}
