package controller

import (
	"super-app-media/conf"
	"super-app-media/controller/handler"
	"super-app-media/controller/middleware"
	"super-app-media/controller/respond"
	"super-app-media/docs"
	"super-app-media/service/upload_service"
	"super-app-media/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter setup media service router
func SetupRouter(bucket *store.Bucket, uploadService *upload_service.UploadService) *gin.Engine {
	// Set Swagger host from config
	docs.SwaggerInfo.Host = conf.Cfg.Uploader.SwaggerBaseUrl

	// Create Gin engine
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Allow all origins, can be configured to specific domains
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "Accept", "Cache-Control", "X-Requested-With", "Range"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Range", "Accept-Ranges"},
		AllowCredentials: true,
		MaxAge:           12 * 3600, // 12 hours
	}))

	// Add timing middleware
	r.Use(respond.TimingMiddleware())

	// Create handlers
	uploadHandler := handler.NewUploadHandler(uploadService, bucket)
	downloadHandler := handler.NewDownloadHandler(bucket)

	auth := middleware.RequireAuth(conf.Cfg.Auth.JwtSecret)

	// Upload route group
	upload := r.Group("/api/upload")
	{
		// Store a batch of files
		upload.POST("/files", auth, uploadHandler.UploadFiles)

		// Legacy single-purpose aliases kept for older clients
		upload.POST("/image", auth, uploadHandler.UploadFiles)
		upload.POST("/video", auth, uploadHandler.UploadFiles)

		// Stream file content, public
		upload.GET("/file/:id", downloadHandler.DownloadFile)

		// Delete a file, uploader only
		upload.DELETE("/file/:id", auth, uploadHandler.DeleteFile)

		// List the caller's files
		upload.GET("/my-files", auth, uploadHandler.MyFiles)

		// File metadata, uploader only
		upload.GET("/info/:id", auth, uploadHandler.FileInfo)

		// Publicly visible upload limits
		upload.GET("/config", uploadHandler.GetConfig)
	}

	// Swagger documentation route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
