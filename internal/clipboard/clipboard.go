// Package clipboard copies captions and hashtags to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/muurk/vibetagger/internal/logging"
	"github.com/muurk/vibetagger/internal/vibe"
)

// ErrUnsupported is returned when no clipboard utility is available
// (for example a headless Linux box without xclip, xsel or wl-copy).
var ErrUnsupported = errors.New("clipboard is not available on this system")

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

// WriteAll writes text to the system clipboard.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// CopyCaption writes the caption text, without its style label.
func CopyCaption(w Writer, c vibe.Caption) error {
	if err := w.WriteAll(c.Text); err != nil {
		return fmt.Errorf("failed to copy %s caption: %w", c.Style, err)
	}
	logging.Debug("Copied caption", zap.String("style", string(c.Style)))
	return nil
}

// CopyHashtags writes every hashtag of r joined by single spaces.
func CopyHashtags(w Writer, r *vibe.Result) error {
	if r == nil {
		return errors.New("no result to copy hashtags from")
	}
	if err := w.WriteAll(r.HashtagLine()); err != nil {
		return fmt.Errorf("failed to copy hashtags: %w", err)
	}
	logging.Debug("Copied hashtags", zap.Int("count", len(r.Hashtags)))
	return nil
}
