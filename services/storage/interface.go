// Package storage uploads images to object storage and records them.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/RobbieBendick/curb-companion-backend/utils"
)

// ImageStore puts objects somewhere publicly readable.
type ImageStore interface {
	// Put stores body under key and returns the public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Remove deletes the object stored under key.
	Remove(ctx context.Context, key string) error
}

// Upload is one file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

var (
	ErrInvalidImageType = utils.NewAppError(400, "invalidImageType", "Image must be a jpg, jpeg or png file")
	ErrNoFile           = utils.NewAppError(400, "noFilesUploaded", "No files were uploaded")
	ErrImageTooLarge    = utils.NewAppError(413, "imageTooLarge", "Image must be 10MB or smaller")
)

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ImageExtension returns the lower-cased extension of filename when it is an
// accepted image type.
func ImageExtension(filename string) (string, string, error) {
	ext := strings.ToLower(path.Ext(filename))
	ct, ok := imageContentTypes[ext]
	if !ok {
		return "", "", ErrInvalidImageType
	}
	return ext, ct, nil
}
