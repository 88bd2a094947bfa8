package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"super-app-media/conf"
	"super-app-media/controller/middleware"
	"super-app-media/controller/respond"
	"super-app-media/service/upload_service"
	"super-app-media/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler upload handler
type UploadHandler struct {
	uploadService *upload_service.UploadService
	bucket        *store.Bucket
}

// NewUploadHandler create upload handler instance
func NewUploadHandler(uploadService *upload_service.UploadService, bucket *store.Bucket) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		bucket:        bucket,
	}
}

// UploadFiles upload a batch of files
// @Summary      Upload files
// @Description  Store up to the configured maximum of files in one multipart request
// @Tags         File Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        files      formData  file    true   "Files to upload"
// @Param        categoria  formData  string  false  "Free-form category"
// @Param        descricao  formData  string  false  "Free-form description"
// @Success      201  {object}  respond.Response{data=respond.UploadBatchResponse}  "Files stored"
// @Failure      400  {object}  respond.Response  "No files, too many files, or all files rejected"
// @Failure      401  {object}  respond.Response  "Missing or invalid token"
// @Failure      503  {object}  respond.Response  "Storage unavailable"
// @Security     BearerAuth
// @Router       /api/upload/files [post]
func (h *UploadHandler) UploadFiles(c *gin.Context) {
	// Hard cap on the request body so an oversized post cannot exhaust memory
	// before form parsing even reports the parts
	maxBody := int64(conf.Cfg.Uploader.MaxFilesPerBatch)*conf.Cfg.Uploader.MaxFileSize + 1<<20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	form, err := c.MultipartForm()
	if err != nil {
		respond.InvalidParam(c, "invalid multipart form")
		return
	}

	headers := form.File["files"]
	candidates := make([]*upload_service.Candidate, 0, len(headers))
	for _, fh := range headers {
		candidate := &upload_service.Candidate{
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get("Content-Type"),
			DeclaredSize: fh.Size,
		}
		// Parts already over the size limit are never buffered; policy
		// rejects them from the declared size alone
		if fh.Size <= conf.Cfg.Uploader.MaxFileSize {
			f, err := fh.Open()
			if err != nil {
				respond.ServerError(c, "failed to read uploaded file")
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				respond.ServerError(c, "failed to read uploaded file")
				return
			}
			candidate.Data = data
		}
		candidates = append(candidates, candidate)
	}

	result, err := h.uploadService.ProcessBatch(context.Background(), &upload_service.BatchInput{
		Candidates: candidates,
		UploadedBy: middleware.AuthenticatedUser(c),
		Categoria:  c.PostForm("categoria"),
		Descricao:  c.PostForm("descricao"),
	})
	if err != nil {
		h.respondBatchError(c, err)
		return
	}

	baseUrl := requestBaseUrl(c)
	resp := &respond.UploadBatchResponse{
		Files:    make([]*respond.UploadedFile, 0, len(result.Files)),
		Rejected: result.Rejected,
	}
	for _, file := range result.Files {
		resp.Files = append(resp.Files, respond.ToUploadedFile(file, baseUrl))
	}

	respond.Created(c, result.RejectionNote(), resp)
}

func (h *UploadHandler) respondBatchError(c *gin.Context, err error) {
	var tooMany *upload_service.TooManyFilesError
	var allRejected *upload_service.AllRejectedError
	switch {
	case errors.Is(err, upload_service.ErrNoFiles):
		respond.InvalidParam(c, "no files uploaded")
	case errors.As(err, &tooMany):
		respond.InvalidParam(c, tooMany.Error())
	case errors.As(err, &allRejected):
		respond.InvalidParam(c, allRejected.Error())
	case errors.Is(err, upload_service.ErrStorageUnavailable):
		respond.ServiceUnavailable(c, "storage unavailable")
	default:
		log.Printf("Upload batch failed: %v", err)
		respond.ServerError(c, "upload failed")
	}
}

// MyFiles list the caller's own files
// @Summary      List my files
// @Description  Paginated listing of the authenticated uploader's files, newest first
// @Tags         File Upload
// @Produce      json
// @Param        page   query  int  false  "Page number"     default(1)
// @Param        limit  query  int  false  "Items per page"  default(10)
// @Success      200  {object}  respond.Response{data=respond.FileListResponse}
// @Failure      401  {object}  respond.Response  "Missing or invalid token"
// @Security     BearerAuth
// @Router       /api/upload/my-files [get]
func (h *UploadHandler) MyFiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	user := middleware.AuthenticatedUser(c)
	files, total, err := h.bucket.ListByUploader(user, page, limit)
	if err != nil {
		log.Printf("Failed to list files for %s: %v", user, err)
		respond.ServerError(c, "failed to list files")
		return
	}

	resp := &respond.FileListResponse{
		Files:      make([]*respond.FileInfoResponse, 0, len(files)),
		Pagination: respond.NewPagination(page, limit, total),
	}
	for _, file := range files {
		resp.Files = append(resp.Files, respond.ToFileInfo(file))
	}

	respond.Success(c, resp)
}

// FileInfo get file metadata
// @Summary      File info
// @Description  Object metadata without body bytes; only visible to its uploader
// @Tags         File Upload
// @Produce      json
// @Param        id  path  string  true  "File ID"
// @Success      200  {object}  respond.Response{data=respond.FileInfoResponse}
// @Failure      400  {object}  respond.Response  "Malformed file ID"
// @Failure      401  {object}  respond.Response  "Missing or invalid token"
// @Failure      404  {object}  respond.Response  "File not found"
// @Security     BearerAuth
// @Router       /api/upload/info/{id} [get]
func (h *UploadHandler) FileInfo(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respond.InvalidParam(c, "malformed file id")
		return
	}

	file, err := h.bucket.Get(id)
	if err == store.ErrNotFound {
		respond.NotFound(c, "file not found")
		return
	}
	if err != nil {
		respond.ServerError(c, "failed to load file")
		return
	}

	// Absent and not-owned answer identically so ids cannot be probed
	if file.UploadedBy != middleware.AuthenticatedUser(c) {
		respond.NotFound(c, "file not found")
		return
	}

	respond.Success(c, respond.ToFileInfo(file))
}

// DeleteFile delete a file
// @Summary      Delete file
// @Description  Remove a stored file and all of its chunks; only the uploader may delete
// @Tags         File Upload
// @Produce      json
// @Param        id  path  string  true  "File ID"
// @Success      200  {object}  respond.Response
// @Failure      400  {object}  respond.Response  "Malformed file ID"
// @Failure      401  {object}  respond.Response  "Missing or invalid token"
// @Failure      404  {object}  respond.Response  "File not found"
// @Security     BearerAuth
// @Router       /api/upload/file/{id} [delete]
func (h *UploadHandler) DeleteFile(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respond.InvalidParam(c, "malformed file id")
		return
	}

	file, err := h.bucket.Get(id)
	if err == store.ErrNotFound {
		respond.NotFound(c, "file not found")
		return
	}
	if err != nil {
		respond.ServerError(c, "failed to load file")
		return
	}
	if file.UploadedBy != middleware.AuthenticatedUser(c) {
		respond.NotFound(c, "file not found")
		return
	}

	if err := h.bucket.Delete(id); err != nil {
		if err == store.ErrNotFound {
			respond.NotFound(c, "file not found")
			return
		}
		log.Printf("Failed to delete file %s: %v", id, err)
		respond.ServerError(c, "failed to delete file")
		return
	}

	respond.SuccessWithMessage(c, "file deleted", nil)
}

// GetConfig get the publicly visible upload limits
// @Summary      Upload config
// @Description  Limits a client needs to pre-validate uploads
// @Tags         File Upload
// @Produce      json
// @Success      200  {object}  respond.Response{data=respond.UploadConfigResponse}
// @Router       /api/upload/config [get]
func (h *UploadHandler) GetConfig(c *gin.Context) {
	respond.Success(c, &respond.UploadConfigResponse{
		MaxFileSize:      conf.Cfg.Uploader.MaxFileSize,
		MaxFilesPerBatch: conf.Cfg.Uploader.MaxFilesPerBatch,
		AllowedTypes:     conf.Cfg.Uploader.AllowedTypes,
		MaxVideoDuration: conf.Cfg.Uploader.MaxVideoDuration,
	})
}

// requestBaseUrl scheme+host of the incoming request, for building download URLs
func requestBaseUrl(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
