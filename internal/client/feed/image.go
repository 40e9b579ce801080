package feed

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrNotAnImage = errors.New("file is not an image")

// MaxImageSize caps attachments read from disk.
const MaxImageSize = 5 << 20

// ImageDataURI reads a picture from disk and encodes it as a data URI,
// the form posts carry images in.
func ImageDataURI(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("error reading image: %w", err)
	}
	if info.Size() > MaxImageSize {
		return "", fmt.Errorf("image is larger than %d bytes", MaxImageSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading image: %w", err)
	}
	return EncodeDataURI(data)
}

// EncodeDataURI sniffs the content type of data and accepts only images.
func EncodeDataURI(data []byte) (string, error) {
	mime := mimetype.Detect(data).String()
	if !strings.HasPrefix(mime, "image/") {
		return "", ErrNotAnImage
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
