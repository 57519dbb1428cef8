package media

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// MaxImageBytes is the upload ceiling enforced before any network call.
const MaxImageBytes = 5 << 20 // 5 MiB

var (
	ErrImageTooLarge        = errors.New("image exceeds the 5MB limit")
	ErrUnsupportedImageType = errors.New("only JPEG or PNG images are allowed")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ValidateImage sniffs the real content type from the bytes (the client
// header is not trusted) and checks the size cap. Returns the detected
// content type on success.
func ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrUnsupportedImageType
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	contentType := http.DetectContentType(data)
	if _, ok := imageExtensions[contentType]; !ok {
		return "", ErrUnsupportedImageType
	}
	return contentType, nil
}

// ObjectKey builds a collision-free storage key for an avatar.
func ObjectKey(contentType string) string {
	ext := imageExtensions[contentType]
	return "avatars/" + uuid.New().String() + ext
}

// PublicURL joins the configured public base with the object key.
func PublicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
