package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/file"
	"github.com/cradoe/crm/internal/response"
)

const (
	maxUploadBytes = 10 << 20
	uploadTimeout  = 30 * time.Second
)

type FileUploader interface {
	UploadFile(ctx context.Context, file io.Reader) (string, error)
}

type FileHandler struct {
	FileUploader FileUploader
	ErrHandler   *errHandler.ErrorRepository
}

func NewFileHandler(handler *FileHandler) *FileHandler {
	return &FileHandler{
		FileUploader: handler.FileUploader,
		ErrHandler:   handler.ErrHandler,
	}
}

// HandleUploadFile stores the multipart field "file" and returns its URL,
// which can then be used as a ticket comment attachment.
func (h *FileHandler) HandleUploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, errors.New("invalid request data"))
		return
	}

	upload, _, err := r.FormFile("file")
	if err != nil {
		h.ErrHandler.BadRequest(w, r, errors.New("error retrieving the file"))
		return
	}
	defer upload.Close()

	ctx, cancel := context.WithTimeout(r.Context(), uploadTimeout)
	defer cancel()

	fileURL, err := h.FileUploader.UploadFile(ctx, upload)
	if errors.Is(err, file.ErrNotConfigured) {
		h.ErrHandler.ServiceUnavailable(w, r, err)
		return
	}
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "File uploaded successfully"
	err = response.JSONOkResponse(w, map[string]string{"url": fileURL}, message, nil)

	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
