package http

import (
	"io"
	"net/http"
	"path"
	"path/filepath"

	"github.com/gorilla/mux"

	"calapan-rental-backend/internal/logger"
	"calapan-rental-backend/internal/storage"
)

// DocumentHandler serves stored rental documents. Government IDs and payment
// receipts are sensitive, so downloads are admin-only.
type DocumentHandler struct {
	documents storage.DocumentStore
}

func NewDocumentHandler(documents storage.DocumentStore) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	if !p.IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
		return
	}

	vars := mux.Vars(r)
	docPath := path.Join(vars["kind"], vars["name"])
	file, err := h.documents.Open(docPath)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(vars["name"]) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, file); err != nil {
		logger.Error("failed to stream document", "path", docPath, "error", err)
	}
}
