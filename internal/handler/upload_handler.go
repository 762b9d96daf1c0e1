// internal/handler/upload_handler.go
package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wishwell/wishwell-backend/internal/service"
)

const maxPhotoSize = 10 * 1024 * 1024 // 10 MB

// allowedImageTypes is the set of MIME types accepted for the birthday
// photo. net/http.DetectContentType covers JPEG, PNG, and GIF via magic-byte
// sniffing; WebP is checked separately because the stdlib sniffer has no
// WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

func sniffImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// UploadHandler stores the birthday person's photo under the public static
// directory and records its URL on the campaign.
type UploadHandler struct {
	CampaignService *service.CampaignService
	PublicDir       string
}

func (h *UploadHandler) UploadBirthdayPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to parse form"})
		return
	}

	campaignID := r.FormValue("campaignId")
	if campaignID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "campaignId required"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logrus.WithField("error", err).Error("failed to read upload")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error uploading file"})
		return
	}

	mime, ok := sniffImageMIME(data)
	if !ok {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported image format"})
		return
	}

	// Look up the campaign before touching the filesystem, so an unknown
	// or hostile campaignId never causes a write.
	if _, err := h.CampaignService.GetCampaign(campaignID); err != nil {
		respondError(w, err)
		return
	}

	uploadDir := filepath.Join(h.PublicDir, "uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logrus.WithField("error", err).Error("failed to create upload directory")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error uploading file"})
		return
	}

	filename := fmt.Sprintf("birthday-person-%s%s", campaignID, mimeToExt(mime))
	path, err := safeJoin(uploadDir, filename)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid campaignId"})
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logrus.WithField("error", err).Error("failed to write photo")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error uploading file"})
		return
	}

	photoURL := "/uploads/" + filename
	if _, err := h.CampaignService.SetPhotoURL(campaignID, photoURL); err != nil {
		os.Remove(path)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"photoUrl": photoURL,
	})
}

// safeJoin resolves name under base and rejects directory traversal, so the
// destination can never escape the uploads directory.
func safeJoin(base, name string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(base, name))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes upload directory")
	}
	return absPath, nil
}
