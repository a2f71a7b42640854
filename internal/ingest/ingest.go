package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muurk/vibetagger/internal/logging"
	"go.uber.org/zap"
)

// InvalidFileTypeMessage is shown when the declared type is not an image.
const InvalidFileTypeMessage = "Please upload a valid image file (JPG or PNG)."

// ErrInvalidFileType is returned synchronously for non-image files.
// Its message is the user-facing text.
var ErrInvalidFileType = errors.New(InvalidFileTypeMessage)

// DoneFunc receives the data URL of a completed read, or the read error.
type DoneFunc func(dataURL string, err error)

// Validate checks that the declared content type begins with "image/".
func Validate(f File) error {
	if f == nil || !strings.HasPrefix(f.ContentType(), "image/") {
		return ErrInvalidFileType
	}
	return nil
}

// Read validates f synchronously and then reads it in the background.
// done is called exactly once, from another goroutine, when the read
// completes. If validation fails, Read returns ErrInvalidFileType and done
// is never called.
func Read(f File, done DoneFunc) error {
	if err := Validate(f); err != nil {
		return err
	}

	go func() {
		dataURL, err := ReadAll(f)
		done(dataURL, err)
	}()

	return nil
}

// ReadAll validates f and reads its full content into a data URL. There is
// no size limit.
func ReadAll(f File) (string, error) {
	if err := Validate(f); err != nil {
		return "", err
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.Name(), err)
	}

	logging.Debug("Image ingested",
		zap.String("name", f.Name()),
		zap.String("content_type", f.ContentType()),
		zap.Int("bytes", len(data)),
	)

	return EncodeDataURL(f.ContentType(), data), nil
}
