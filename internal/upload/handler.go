package upload

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/umbra/uploader/internal/middleware"
	"github.com/umbra/uploader/internal/response"
)

// Handler holds HTTP handlers for the upload and deletion endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new upload Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type imageResponse struct {
	Image  string `json:"image"  example:"https://i.example.com/aB3xY9kQmW7rT2pLcVn0.png"`
	Delete string `json:"delete" example:"https://upload.example.com/delete/Zq8...?user_id=1"`
	Type   string `json:"type"   example:"image/png"`
	Size   int64  `json:"size"   example:"48213"`
}

type audioResponse struct {
	URL    string  `json:"url"    example:"https://audio.example.com/aB3xY9kQmW7rT2pLcVn0.m4a"`
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Delete string  `json:"delete"`
	Type   string  `json:"type"   example:"audio/mp4"`
	Size   int64   `json:"size"   example:"1048576"`
}

type fileResponse struct {
	URL    string `json:"url"`
	Delete string `json:"delete"`
	Type   string `json:"type"`
	Size   int64  `json:"size"`
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Accepts one multipart file field. Images and audio land in their own subdirectories; audio may carry optional title/author form fields. Returns the public URL and a one-time deletion URL.
//	@Tags			uploads
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"File to upload"
//	@Param			title	formData	string	false	"Audio title"
//	@Param			author	formData	string	false	"Audio author"
//	@Success		200	{object}	imageResponse
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		503	{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "missing file field")
		return
	}
	defer file.Close()

	if header.Size == 0 {
		response.BadRequest(w, "empty upload")
		return
	}

	in := Input{
		Reader:      file,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Title:       optionalForm(r, "title"),
		Author:      optionalForm(r, "author"),
	}

	res, err := h.svc.Upload(r.Context(), user, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUpload):
			response.BadRequest(w, "missing or unsupported content type")
		case errors.Is(err, ErrStorageUnavailable):
			response.ServiceUnavailable(w, "storage unavailable")
		default:
			response.InternalError(w)
		}
		return
	}

	switch res.Kind {
	case KindImage:
		response.OK(w, imageResponse{
			Image:  res.PublicURL,
			Delete: res.DeleteURL,
			Type:   res.ContentType,
			Size:   res.Size,
		})
	case KindAudio:
		response.OK(w, audioResponse{
			URL:    res.PublicURL,
			Title:  res.Title,
			Author: res.Author,
			Delete: res.DeleteURL,
			Type:   res.ContentType,
			Size:   res.Size,
		})
	default:
		response.OK(w, fileResponse{
			URL:    res.PublicURL,
			Delete: res.DeleteURL,
			Type:   res.ContentType,
			Size:   res.Size,
		})
	}
}

// Delete godoc
//
//	@Summary		Delete an uploaded file
//	@Description	Removes the upload matching the deletion ticket and owner id: the database row first (atomically), then the stored file.
//	@Tags			uploads
//	@Produce		json
//	@Param			deletionID	path	string	true	"Deletion ticket"
//	@Param			user_id		query	int		true	"Numeric owner id"
//	@Success		200
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		503	{object}	response.ErrorBody
//	@Router			/delete/{deletionID} [get]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ticket := chi.URLParam(r, "deletionID")
	ownerID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil {
		response.BadRequest(w, "user_id must be an integer")
		return
	}

	if err := h.svc.Delete(r.Context(), ticket, ownerID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "not found")
		case errors.Is(err, ErrStorageUnavailable):
			response.ServiceUnavailable(w, "storage unavailable")
		default:
			response.InternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// optionalForm returns the form value as a nullable string, nil when absent
// or empty.
func optionalForm(r *http.Request, key string) *string {
	v := r.FormValue(key)
	if v == "" {
		return nil
	}
	return &v
}
