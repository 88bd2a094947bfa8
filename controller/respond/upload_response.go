package respond

import (
	"fmt"
	"time"

	"super-app-media/model"
	"super-app-media/service/upload_service"
)

// UploadedFile public view of one stored file in an upload response
type UploadedFile struct {
	FileId   string `json:"fileId" example:"7f3e9a4c-1b2d-4e5f-8a9b-0c1d2e3f4a5b"`
	Filename string `json:"filename" example:"1699999999000000000_photo.jpg"`
	Url      string `json:"url" example:"https://host/api/upload/file/7f3e9a4c-..."`
	Mimetype string `json:"mimetype" example:"image/jpeg"`
	Size     int64  `json:"size" example:"102400"`
}

// UploadBatchResponse describes the outcome of one upload batch
type UploadBatchResponse struct {
	Files    []*UploadedFile               `json:"files"`
	Rejected []upload_service.RejectedFile `json:"rejected,omitempty"`
}

// FileInfoResponse object metadata without body bytes
type FileInfoResponse struct {
	FileId       string    `json:"fileId"`
	Filename     string    `json:"filename"`
	Length       int64     `json:"length"`
	Mimetype     string    `json:"mimetype"`
	OriginalName string    `json:"originalName"`
	UploadedBy   string    `json:"uploadedBy"`
	Categoria    string    `json:"categoria,omitempty"`
	Descricao    string    `json:"descricao,omitempty"`
	UploadDate   time.Time `json:"uploadDate"`
}

// Pagination page descriptor for listings
type Pagination struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"10"`
	Total      int64 `json:"total" example:"42"`
	TotalPages int64 `json:"totalPages" example:"5"`
}

// FileListResponse paginated per-uploader listing
type FileListResponse struct {
	Files      []*FileInfoResponse `json:"files"`
	Pagination Pagination          `json:"pagination"`
}

// UploadConfigResponse publicly visible upload limits
type UploadConfigResponse struct {
	MaxFileSize      int64    `json:"maxFileSize" example:"10485760"`
	MaxFilesPerBatch int      `json:"maxFilesPerBatch" example:"5"`
	AllowedTypes     []string `json:"allowedTypes"`
	MaxVideoDuration float64  `json:"maxVideoDuration" example:"15"`
}

// ToUploadedFile converts a stored file into its upload-response view.
// baseUrl is scheme+host of the serving request.
func ToUploadedFile(file *model.StoredFile, baseUrl string) *UploadedFile {
	return &UploadedFile{
		FileId:   file.ID,
		Filename: file.Filename,
		Url:      fmt.Sprintf("%s/api/upload/file/%s", baseUrl, file.ID),
		Mimetype: file.ContentType,
		Size:     file.Length,
	}
}

// ToFileInfo converts a stored file into its metadata view
func ToFileInfo(file *model.StoredFile) *FileInfoResponse {
	return &FileInfoResponse{
		FileId:       file.ID,
		Filename:     file.Filename,
		Length:       file.Length,
		Mimetype:     file.ContentType,
		OriginalName: file.OriginalName,
		UploadedBy:   file.UploadedBy,
		Categoria:    file.Categoria,
		Descricao:    file.Descricao,
		UploadDate:   file.UploadDate,
	}
}

// NewPagination build a page descriptor from totals
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
