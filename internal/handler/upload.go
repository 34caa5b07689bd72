package handler

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Upload error messages shown to the admin form.
const (
	msgNoFile    = "No file uploaded"
	msgTooLarge  = "Upload error: File too large"
	msgWrongType = "Only .png, .jpg and .gif format allowed!"
)

var (
	allowedMIME = regexp.MustCompile(`jpeg|jpg|png|gif`)
	allowedExt  = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}
	sniffedType = map[string]bool{"image/jpeg": true, "image/png": true, "image/gif": true}
)

// UploadHandler stores flyer images under Dir.  Stored files are served
// from /uploads/.
type UploadHandler struct {
	Dir      string
	MaxBytes int64
	Log      *zap.Logger
	Now      func() time.Time
}

// NewUploadHandler returns an UploadHandler writing into dir.
func NewUploadHandler(dir string, maxBytes int64, log *zap.Logger) *UploadHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UploadHandler{Dir: dir, MaxBytes: maxBytes, Log: log, Now: time.Now}
}

// Upload: POST /api/upload (admin), multipart field "image".
func (h *UploadHandler) Upload(c echo.Context) error {
	req := c.Request()
	// Leave room for the multipart framing around the file itself.
	limit := h.MaxBytes + 64*1024
	if req.ContentLength > limit {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgTooLarge})
	}
	req.Body = http.MaxBytesReader(c.Response(), req.Body, limit)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msgTooLarge})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgNoFile})
	}
	if fh.Size > h.MaxBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgTooLarge})
	}

	ext := filepath.Ext(fh.Filename)
	if !allowedExt[strings.ToLower(ext)] || !allowedMIME.MatchString(strings.ToLower(fh.Header.Get(echo.HeaderContentType))) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgWrongType})
	}

	src, err := fh.Open()
	if err != nil {
		h.Log.Error("open upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgNoFile})
	}
	defer src.Close()

	if ok, err := isImage(src); err != nil || !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgWrongType})
	}

	name := fmt.Sprintf("%d-%d%s", h.Now().UnixMilli(), rand.Int63n(1e9), ext)
	if err := h.store(src, name); err != nil {
		h.Log.Error("store upload", zap.String("name", name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store file"})
	}
	return c.JSON(http.StatusOK, echo.Map{"imageUrl": "/uploads/" + name})
}

// isImage sniffs the leading bytes and rewinds src.
func isImage(src multipart.File) (bool, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	return sniffedType[http.DetectContentType(head[:n])], nil
}

func (h *UploadHandler) store(src io.Reader, name string) error {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return err
	}
	dst, err := os.OpenFile(filepath.Join(h.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
