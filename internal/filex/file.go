// Package filex contains small file helpers used by the CLI.
package filex

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageBytes caps the size of a profile photo upload.
const MaxImageBytes = 5 << 20

var (
	ErrNotAnImage  = errors.New("file is not an image")
	ErrImageTooBig = fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
)

// ReadImage loads the file at path and sniffs its content type. Only image
// payloads within MaxImageBytes are accepted. Returns the file's base name,
// the detected content type, and its bytes.
func ReadImage(path string) (name, contentType string, data []byte, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", "", nil, err
	}
	if fi.Size() > MaxImageBytes {
		return "", "", nil, ErrImageTooBig
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return "", "", nil, err
	}

	contentType = http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", nil, ErrNotAnImage
	}

	return filepath.Base(path), contentType, data, nil
}
