package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"super-app-media/controller/respond"
	"super-app-media/model"
	"super-app-media/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DownloadHandler serves stored file bodies with byte-range support
type DownloadHandler struct {
	bucket *store.Bucket
}

// NewDownloadHandler create download handler instance
func NewDownloadHandler(bucket *store.Bucket) *DownloadHandler {
	return &DownloadHandler{bucket: bucket}
}

// DownloadFile download file content
// @Summary      Download file
// @Description  Stream a stored file, honoring a single bytes Range header
// @Tags         File Upload
// @Produce      application/octet-stream
// @Param        id     path    string  true   "File ID"
// @Param        Range  header  string  false  "Byte range, e.g. bytes=0-1023"
// @Success      200  "Full content"
// @Success      206  "Partial content"
// @Failure      404  {object}  respond.Response  "File not found"
// @Failure      416  "Range not satisfiable"
// @Failure      503  {object}  respond.Response  "Storage unavailable"
// @Router       /api/upload/file/{id} [get]
func (h *DownloadHandler) DownloadFile(c *gin.Context) {
	id := c.Param("id")
	// Object ids are store-generated UUIDs; anything else can never resolve
	if _, err := uuid.Parse(id); err != nil {
		respond.NotFound(c, "file not found")
		return
	}

	if err := h.bucket.Ping(); err != nil {
		log.Printf("Storage ping failed: %v", err)
		respond.ServiceUnavailable(c, "storage unavailable")
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

	rangeHeader := c.GetHeader("Range")
	rng, ok := parseRange(rangeHeader, file.Length)
	if !ok {
		c.Header("Content-Range", fmt.Sprintf("bytes */%d", file.Length))
		c.Status(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	status := http.StatusOK
	length := file.Length
	if rangeHeader != "" {
		// Any satisfiable Range yields 206, even when it covers the whole body
		status = http.StatusPartialContent
		length = rng.End - rng.Start + 1
		c.Header("Content-Range", fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End, file.Length))
	}

	stream := h.bucket.OpenReadStream(file, rng)
	defer stream.Close()

	// Prime the first read before any header goes out, so a store failure on
	// a resolvable file can still surface as a structured 500
	buf := make([]byte, 32*1024)
	n, err := stream.Read(buf)
	if err != nil && err != io.EOF {
		log.Printf("Stream error for file %s before headers: %v", id, err)
		respond.ServerError(c, "failed to stream file")
		return
	}

	setBodyHeaders(c, file, length)
	c.Status(status)

	if n > 0 {
		if _, err := c.Writer.Write(buf[:n]); err != nil {
			log.Printf("Stream error for file %s: %v", id, err)
			return
		}
	}
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Headers are already out; the short body makes the client drop the
		// connection via the Content-Length mismatch
		log.Printf("Stream error for file %s: %v", id, err)
	}
}

func setBodyHeaders(c *gin.Context, file *model.StoredFile, length int64) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Length", strconv.FormatInt(length, 10))
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.Filename))
	c.Header("Accept-Ranges", "bytes")
	c.Header("Cache-Control", "public, max-age=31536000")
}
