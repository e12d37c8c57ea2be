package services

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	quickchat_errors "quickchat/pkg/errors"
)

// Uploader turns an in-memory image buffer into a hosted URL. The S3
// client in internal/storage satisfies it; tests substitute fakes.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// MaxImageBytes caps uploaded images at 2 MiB.
const MaxImageBytes = 2 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateImage checks size and MIME type before any network call is
// made to the upload provider.
func ValidateImage(data []byte, contentType string) error {
	if len(data) == 0 {
		return quickchat_errors.ErrInvalidInput
	}
	if len(data) > MaxImageBytes {
		return quickchat_errors.ErrTooLarge
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return quickchat_errors.ErrInvalidInput
	}
	return nil
}

// DecodeImagePayload decodes a base64 image as sent by chat clients,
// tolerating a data-URI prefix ("data:image/png;base64,...."). The
// returned content type comes from the prefix when present, otherwise
// from content sniffing.
func DecodeImagePayload(payload string) ([]byte, string, error) {
	contentType := ""
	raw := payload

	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ";base64,")
		if idx < 0 {
			return nil, "", quickchat_errors.ErrInvalidInput
		}
		contentType = payload[len("data:"):idx]
		raw = payload[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", quickchat_errors.ErrInvalidInput
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
