package services

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/homedash/homedash-services/models"
	"github.com/rs/zerolog"
)

// Uploads are capped well above any sane wallpaper.
const maxUploadBytes = 32 << 20

// ListBackgroundsService lists the uploaded background image filenames.
func (svc *Service) ListBackgroundsService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	if _, ok := claimsFrom(r); !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	entries, err := os.ReadDir(svc.Config.Backgrounds.Dir)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read backgrounds directory")
		WriteMessage(w, http.StatusInternalServerError, "Error reading background images")
		return
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, e.Name())
		}
	}

	WriteResponse(w, http.StatusOK, files)
}

// UploadBackgroundService stores a PNG or JPEG from the multipart field
// "backgroundFile" under a server-generated filename. Client filenames are
// never used on disk, so concurrent uploads cannot overwrite each other.
func (svc *Service) UploadBackgroundService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	if _, ok := claimsFrom(r); !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("backgroundFile")
	if err != nil {
		logger.Warn().Err(err).Msg("Missing upload file")
		WriteMessage(w, http.StatusBadRequest, "No file uploaded or invalid file type.")
		return
	}
	defer file.Close()

	// Sniff the content type rather than trusting the client's header
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		logger.Error().Err(err).Msg("Failed to read upload")
		WriteMessage(w, http.StatusInternalServerError, "Error saving file")
		return
	}
	contentType := http.DetectContentType(head[:n])

	var ext string
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	default:
		logger.Warn().Str("content_type", contentType).Msg("Rejected upload type")
		WriteMessage(w, http.StatusBadRequest, "Only .png and .jpg formats are allowed!")
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		logger.Error().Err(err).Msg("Failed to rewind upload")
		WriteMessage(w, http.StatusInternalServerError, "Error saving file")
		return
	}

	if err := os.MkdirAll(svc.Config.Backgrounds.Dir, 0o755); err != nil {
		logger.Error().Err(err).Msg("Failed to create backgrounds directory")
		WriteMessage(w, http.StatusInternalServerError, "Error saving file")
		return
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(svc.Config.Backgrounds.Dir, filename))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create background file")
		WriteMessage(w, http.StatusInternalServerError, "Error saving file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Msg("Failed to write background file")
		WriteMessage(w, http.StatusInternalServerError, "Error saving file")
		return
	}

	logger.Info().
		Str("filename", filename).
		Str("original", header.Filename).
		Msg("Background uploaded")
	WriteResponse(w, http.StatusCreated, models.UploadResponse{Filename: filename})
}

// DeleteBackgroundService removes an uploaded background by filename. Path
// traversal attempts are rejected before touching the filesystem.
func (svc *Service) DeleteBackgroundService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	if _, ok := claimsFrom(r); !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	filename := mux.Vars(r)["filename"]
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) || filename == "" {
		logger.Warn().Str("filename", filename).Msg("Rejected background filename")
		WriteMessage(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	err := os.Remove(filepath.Join(svc.Config.Backgrounds.Dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			WriteMessage(w, http.StatusNotFound, "File not found")
			return
		}
		logger.Error().Err(err).Msg("Failed to delete background")
		WriteMessage(w, http.StatusInternalServerError, "Error deleting file")
		return
	}

	WriteMessage(w, http.StatusOK, "Background image deleted")
}
