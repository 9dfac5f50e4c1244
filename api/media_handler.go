package api

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 20 << 20

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     storage.Storage
}

func newMediaHandler(store storage.Storage) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

type uploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// uploadMedia stores one multipart file and returns the path to put in image or file fields
// @Summary Upload media
// @Tags Admin Media
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param folder formData string false "Target folder, e.g. projects or resumes"
// @Success 201 {object} uploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /api/v1/admin/media [post]
func (h mediaHandler) uploadMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadSize))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart form", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		folder := ""
		if raw := strings.TrimSpace(r.FormValue("folder")); raw != "" {
			if folder, err = storage.CleanPath(raw); err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("folder", "folder must be a relative path"))
				return
			}
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = mime.TypeByExtension(strings.ToLower(path.Ext(header.Filename)))
		}

		name := storage.ObjectName(folder, header.Filename)
		if err := h.store.Save(r.Context(), name, file, header.Size, contentType); err != nil {
			h.responder.WriteError(w, wrapStorageError("save", name, err))
			return
		}

		h.logger.Info().Str("path", name).Int64("size", header.Size).Msg("media uploaded")
		h.responder.WriteStatusJSON(w, http.StatusCreated, uploadResponse{
			Path: name,
			URL:  h.store.URL(name),
			Size: header.Size,
		})
	}
}

// deleteMedia
// @Summary Delete media
// @Tags Admin Media
// @Security BearerAuth
// @Produce json
// @Param path query string true "Stored path"
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/media [delete]
func (h mediaHandler) deleteMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("path")
		if raw == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("path"))
			return
		}
		name, err := storage.CleanPath(raw)
		if err != nil {
			h.responder.WriteError(w, wrapStorageError("delete", raw, err))
			return
		}
		if err := h.store.Delete(r.Context(), name); err != nil {
			h.responder.WriteError(w, wrapStorageError("delete", name, err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("file"))
	}
}
