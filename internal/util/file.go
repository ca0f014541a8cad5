package util

import (
	"errors"
	"mime"
	"net/http"
	"strings"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DetectMimeType sniffs the content type of data.
func DetectMimeType(data []byte) string {
	n := len(data)
	if n > 512 {
		n = 512
	}
	return http.DetectContentType(data[:n])
}

// ValidateImage checks the declared content type against the sniffed one and
// returns the effective type. Only the formats in imageExtensions are accepted.
func ValidateImage(data []byte, declared string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty image")
	}

	sniffed := DetectMimeType(data)
	if _, ok := imageExtensions[sniffed]; !ok {
		return sniffed, errors.New("invalid file type: " + sniffed)
	}

	if declared != "" {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err != nil || !IsImage(mediaType) {
			return sniffed, errors.New("declared content type is not an image: " + declared)
		}
	}
	return sniffed, nil
}

// ImageExtension returns the file extension for an accepted image type.
func ImageExtension(mimeType string) string {
	if ext, ok := imageExtensions[mimeType]; ok {
		return ext
	}
	return ".bin"
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}
