package api

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/myfolio-api/errs"
	"github.com/rpupo63/myfolio-api/models"
	"github.com/rpupo63/myfolio-api/storage"
)

const (
	// multipartMemory is how much of a multipart body is buffered in memory before spilling to disk.
	multipartMemory = 8 << 20

	defaultDocumentType = "application/pdf"

	demoProjectNotFound = "Project not found"
)

type demoProjectHandler struct {
	responder       Responder
	logger          zerolog.Logger
	demoProjectRepo demoProjectStore
	bucket          storage.Bucket
	maxUploadBytes  int64
}

func newDemoProjectHandler(demoProjectRepo demoProjectStore, bucket storage.Bucket, maxUploadBytes int64) demoProjectHandler {
	logger := log.With().Str("handlerName", "demoProjectHandler").Logger()

	return demoProjectHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		demoProjectRepo: demoProjectRepo,
		bucket:          bucket,
		maxUploadBytes:  maxUploadBytes,
	}
}

// getAllDemoProjects retrieves all demo projects
// @Summary Get all demo projects
// @Tags Demo Projects
// @Produce json
// @Success 200 {array} models.DemoProject "List of demo projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching demo projects"
// @Router /demo-projects [get]
func (h demoProjectHandler) getAllDemoProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.demoProjectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find demo projects", "demo projects", err))
			return
		}

		if projects == nil {
			projects = []*models.DemoProject{}
		}
		h.responder.WriteJSON(w, projects)
	}
}

// getDemoProject retrieves a specific demo project by ID
// @Summary Get demo project
// @Tags Demo Projects
// @Produce json
// @Param demoProjectID path int true "Demo project ID"
// @Success 200 {object} models.DemoProject "Demo project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /demo-projects/{demoProjectID} [get]
func (h demoProjectHandler) getDemoProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseDemoProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.demoProjectRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find demo project", "demo project", err))
			return
		}

		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(demoProjectNotFound))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// uploadDemoProject stores a document in the bucket and records it
// @Summary Upload demo project
// @Description Uploads the file to uploads/<filename> and creates a demo project pointing at its public URL.
// @Tags Demo Projects
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param file formData file true "Document"
// @Success 200 {object} models.DemoProject "Created demo project"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing field"
// @Failure 413 {object} ErrorResponse "Request Entity Too Large"
// @Failure 500 {object} ErrorResponse "Upload failed"
// @Router /demo-projects/upload [post]
func (h demoProjectHandler) uploadDemoProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(h.maxUploadBytes))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		title := r.FormValue("title")
		if strings.TrimSpace(title) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		description := r.FormValue("description")
		if strings.TrimSpace(description) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		project, err := h.storeUpload(r.Context(), title, description, file, header)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("filename", header.Filename).
				Bool("storageFailure", errs.IsStorageError(err)).
				Str("stack", string(debug.Stack())).
				Msg("Upload failed")
			h.responder.WriteError(w, errs.NewUploadFailedError(err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// storeUpload puts the file in the bucket, then inserts the row. A failed insert
// leaves the uploaded object in place.
func (h demoProjectHandler) storeUpload(ctx context.Context, title, description string, file multipart.File, header *multipart.FileHeader) (*models.DemoProject, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	key := storage.UploadKey(header.Filename)
	if key == "" {
		key = storage.UploadPrefix + "/" + uuid.NewString() + ".pdf"
	}

	// Clear the slot first; a missing object is the normal case.
	if err := h.bucket.Remove(ctx, []string{key}); err != nil {
		h.logger.Debug().Err(err).Str("key", key).Msg("pre-upload delete failed")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultDocumentType
	}

	if err := h.bucket.Upload(ctx, key, content, contentType); err != nil {
		return nil, errs.NewStorageError("upload", key, err)
	}

	docURL := h.bucket.PublicURL(key)
	project := &models.DemoProject{
		Title:       title,
		Description: description,
		DocURL:      &docURL,
	}

	if err := h.demoProjectRepo.Add(ctx, project); err != nil {
		h.logger.Warn().Str("key", key).Msg("object stored but demo project not recorded")
		return nil, wrapDatabaseError("create demo project", "demo project", err)
	}

	h.logger.Info().Uint("id", project.ID).Str("key", key).Int("bytes", len(content)).Msg("demo project uploaded")
	return project, nil
}

// deleteDemoProject deletes a demo project and its stored document
// @Summary Delete demo project
// @Description Removes the stored document, then the row. A storage failure aborts the delete.
// @Tags Demo Projects
// @Produce json
// @Param demoProjectID path int true "Demo project ID"
// @Success 200 {object} MessageResponse "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Failed to delete file"
// @Router /demo-projects/{demoProjectID} [delete]
func (h demoProjectHandler) deleteDemoProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseDemoProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ctx := r.Context()
		project, err := h.demoProjectRepo.FindByID(ctx, id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find demo project", "demo project", err))
			return
		}

		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(demoProjectNotFound))
			return
		}

		if project.DocURL != nil && *project.DocURL != "" {
			if key := h.bucket.KeyFromURL(*project.DocURL); key != "" {
				if err := h.bucket.Remove(ctx, []string{key}); err != nil {
					h.logger.Error().Err(err).Uint("id", id).Str("key", key).Msg("Failed to delete file")
					h.responder.WriteError(w, errs.NewDeleteFailedError(err))
					return
				}
			}
		}

		if err := h.demoProjectRepo.Delete(ctx, id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete demo project", "demo project", err))
			return
		}

		h.responder.WriteJSON(w, MessageResponse{Detail: "Project deleted successfully"})
	}
}

func parseDemoProjectID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "demoProjectID")
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError("id")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errs.NewInvalidFieldError("id", "must be a positive integer")
	}
	return uint(id), nil
}
