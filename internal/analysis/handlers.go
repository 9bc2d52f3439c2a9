package analysis

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/finproof/finproof/internal/statement"
)

// maxUploadBytes bounds worst-case CPU and memory per request; enforced
// before either pipeline runs.
const maxUploadBytes = int64(10 << 20) // 10MB

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".heic": true,
	".heif": true,
}

var supportedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/gif":       true,
	"image/heic":      true,
	"image/heif":      true,
	// some browsers send this for anything
	"application/octet-stream": true,
}

func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	writeJSON(w, map[string]string{"status": "ok"})
}

// upload holds a validated multipart file.
type upload struct {
	filename    string
	data        []byte
	contentType string
}

// readUpload parses and validates the multipart upload. It writes the
// error response itself and returns ok=false when the request is bad.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		msg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			msg = "File is too large. Maximum size is 10MB."
		}
		jsonError(w, msg, http.StatusBadRequest)
		return upload{}, false
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		jsonError(w, "No file was provided. Please choose a file to upload.", http.StatusBadRequest)
		return upload{}, false
	}
	defer f.Close()

	filename := strings.TrimSpace(header.Filename)
	if filename == "" {
		jsonError(w, "Missing filename.", http.StatusBadRequest)
		return upload{}, false
	}

	if header.Size > maxUploadBytes {
		jsonError(w, "File is too large. Maximum size is 10MB.", http.StatusBadRequest)
		return upload{}, false
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && !supportedExtensions[ext] {
		jsonError(w, "Unsupported file extension '"+ext+"'. Supported: PDF, PNG, JPG/JPEG, GIF, HEIC/HEIF.", http.StatusBadRequest)
		return upload{}, false
	}

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if contentType != "" && !supportedContentTypes[contentType] {
		jsonError(w, "Unsupported content-type '"+contentType+"'. Supported: PDF or image files.", http.StatusBadRequest)
		return upload{}, false
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeForExtension(ext)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return upload{}, false
	}
	if len(data) == 0 {
		jsonError(w, "Empty file.", http.StatusBadRequest)
		return upload{}, false
	}

	return upload{filename: filename, data: data, contentType: contentType}, true
}

func contentTypeForExtension(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleAnalyzeExpense runs the expense extraction pipeline over the upload.
func (s *Server) handleAnalyzeExpense(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	result, err := s.service.AnalyzeExpense(up.filename, up.data, up.contentType)
	if err != nil {
		slog.Error("Error extracting expense", "filename", up.filename, "error", err)
		jsonError(w, "Extraction service error: "+err.Error(), http.StatusBadGateway)
		return
	}

	setCORSHeaders(w)
	writeJSON(w, result)
}

// handleCheckStatement runs the statement authenticity pipeline. Only PDFs
// carry the metadata and layout the checks work on.
func (s *Server) handleCheckStatement(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	if up.contentType != "application/pdf" {
		jsonError(w, "Statement checks require a PDF upload.", http.StatusBadRequest)
		return
	}

	result, err := s.service.CheckStatement(up.data)
	if err != nil {
		slog.Error("Error checking statement", "filename", up.filename, "error", err)
		if errors.Is(err, statement.ErrNoPages) {
			jsonError(w, "This PDF has no readable pages.", http.StatusBadRequest)
			return
		}
		jsonError(w, "Could not read this PDF: "+err.Error(), http.StatusBadRequest)
		return
	}

	setCORSHeaders(w)
	writeJSON(w, result)
}
