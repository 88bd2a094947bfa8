package conf

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config application configuration structure
type Config struct {
	// Network configuration
	Port string

	// Database configuration
	Database DatabaseConfig

	// Uploader configuration
	Uploader UploaderConfig

	// Auth configuration
	Auth AuthConfig

	// Redis configuration
	Redis RedisConfig
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	Type         string // Database type: mysql, pebble
	Dsn          string // MySQL DSN
	MaxOpenConns int    // MySQL max open connections
	MaxIdleConns int    // MySQL max idle connections
	DataDir      string // PebbleDB data directory
}

// UploaderConfig upload policy and chunked store configuration
type UploaderConfig struct {
	BucketName       string   // Logical bucket name for stored objects
	ChunkSize        int64    // Chunk size in bytes
	MaxFileSize      int64    // Max file size in bytes
	MaxFilesPerBatch int      // Max files per upload request
	AllowedTypes     []string // MIME type allow-list
	MaxVideoDuration float64  // Max video duration in seconds (video/mp4 only)
	SwaggerBaseUrl   string   // Swagger API base URL
}

// AuthConfig auth verification configuration (token issuance is external)
type AuthConfig struct {
	JwtSecret string
}

// RedisConfig redis configuration
type RedisConfig struct {
	Enabled  bool   // Enable Redis cache
	Host     string // Redis host
	Port     int    // Redis port
	Password string // Redis password (optional)
	DB       int    // Redis database number
	CacheTTL int    // Cache TTL in seconds (default: 300)
}

// Cfg global configuration instance
var Cfg *Config

// InitConfig initialize configuration
func InitConfig() error {
	viper.SetConfigFile(GetYaml())
	viper.SetEnvPrefix("SUPERAPP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("Fatal error config file: %s", err)
	}

	// Create configuration instance
	Cfg = &Config{
		Port: viper.GetString("port"),

		Database: DatabaseConfig{
			Type:         viper.GetString("database.type"),
			Dsn:          viper.GetString("database.dsn"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
			DataDir:      viper.GetString("database.data_dir"),
		},

		Uploader: UploaderConfig{
			BucketName:       viper.GetString("uploader.bucket_name"),
			ChunkSize:        viper.GetInt64("uploader.chunk_size"),
			MaxFileSize:      viper.GetInt64("uploader.max_file_size"),
			MaxFilesPerBatch: viper.GetInt("uploader.max_files_per_upload"),
			AllowedTypes:     splitTypes(viper.GetString("uploader.allowed_types")),
			MaxVideoDuration: viper.GetFloat64("uploader.max_video_duration"),
			SwaggerBaseUrl:   viper.GetString("uploader.swagger_base_url"),
		},

		Auth: AuthConfig{
			JwtSecret: viper.GetString("auth.jwt_secret"),
		},

		Redis: RedisConfig{
			Enabled:  viper.GetBool("redis.enabled"),
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			CacheTTL: viper.GetInt("redis.cache_ttl"),
		},
	}

	// Set default values
	if Cfg.Port == "" {
		Cfg.Port = "3000"
	}
	if Cfg.Database.Type == "" {
		Cfg.Database.Type = "mysql"
	}
	if Cfg.Database.MaxOpenConns == 0 {
		Cfg.Database.MaxOpenConns = 100
	}
	if Cfg.Database.MaxIdleConns == 0 {
		Cfg.Database.MaxIdleConns = 10
	}
	if Cfg.Database.DataDir == "" {
		Cfg.Database.DataDir = "./data/pebble"
	}
	if Cfg.Uploader.BucketName == "" {
		Cfg.Uploader.BucketName = "super_app_uploads"
	}
	if Cfg.Uploader.ChunkSize == 0 {
		Cfg.Uploader.ChunkSize = 255 * 1024
	}
	if Cfg.Uploader.MaxFileSize == 0 {
		Cfg.Uploader.MaxFileSize = 10 * 1024 * 1024
	}
	if Cfg.Uploader.MaxFilesPerBatch == 0 {
		Cfg.Uploader.MaxFilesPerBatch = 5
	}
	if len(Cfg.Uploader.AllowedTypes) == 0 {
		Cfg.Uploader.AllowedTypes = []string{"image/jpeg", "image/png", "video/mp4"}
	}
	if Cfg.Uploader.MaxVideoDuration == 0 {
		Cfg.Uploader.MaxVideoDuration = 15
	}
	if Cfg.Uploader.SwaggerBaseUrl == "" {
		Cfg.Uploader.SwaggerBaseUrl = "localhost:" + Cfg.Port
	}
	if Cfg.Redis.CacheTTL == 0 {
		Cfg.Redis.CacheTTL = 300
	}

	return nil
}

// splitTypes parse comma-separated MIME type list
func splitTypes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			types = append(types, t)
		}
	}
	return types
}
