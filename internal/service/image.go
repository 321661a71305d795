package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"pixelgram/internal/models"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// ImageUpload is a raw multipart image submission before validation.
type ImageUpload struct {
	ContentType string
	Data        []byte
}

// validateAndEncodeImage checks an uploaded image against the content-type,
// integrity, size and dimension rules shared by post creation and caption
// generation, and returns the image re-encoded as PNG for storage.
func validateAndEncodeImage(in ImageUpload, maxBytes int64, size int) ([]byte, error) {
	if !strings.HasPrefix(in.ContentType, "image/") {
		return nil, models.NewValidationError("Invalid content type. Only image files are allowed.")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Data))
	if err != nil {
		return nil, models.NewValidationError("Invalid or corrupted image file.")
	}

	if int64(len(in.Data)) > maxBytes {
		maxMB := maxBytes / (1024 * 1024)
		return nil, models.NewValidationError(fmt.Sprintf("Image exceeds %dMB size limit.", maxMB))
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != size || bounds.Dy() != size {
		return nil, models.NewValidationError(fmt.Sprintf("Image must be %dx%d pixels.", size, size))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return nil, models.NewValidationError("Invalid or corrupted image file.")
	}
	return buf.Bytes(), nil
}
