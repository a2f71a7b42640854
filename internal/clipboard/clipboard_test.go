package clipboard

import (
	"errors"
	"testing"

	"github.com/muurk/vibetagger/internal/vibe"
)

type recorder struct {
	text string
	err  error
}

func (r *recorder) WriteAll(text string) error {
	if r.err != nil {
		return r.err
	}
	r.text = text
	return nil
}

func TestCopyCaption(t *testing.T) {
	w := &recorder{}
	c := vibe.Caption{Style: vibe.StyleWitty, Text: "Sun's out, puns out ☀️"}

	if err := CopyCaption(w, c); err != nil {
		t.Fatalf("CopyCaption() error = %v", err)
	}
	if w.text != c.Text {
		t.Errorf("clipboard = %q, want %q", w.text, c.Text)
	}
}

func TestCopyHashtags(t *testing.T) {
	tests := []struct {
		name     string
		hashtags []string
		want     string
	}{
		{"three", []string{"#a", "#b", "#c"}, "#a #b #c"},
		{"one", []string{"#solo"}, "#solo"},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &recorder{}
			if err := CopyHashtags(w, &vibe.Result{Hashtags: tt.hashtags}); err != nil {
				t.Fatalf("CopyHashtags() error = %v", err)
			}
			if w.text != tt.want {
				t.Errorf("clipboard = %q, want %q", w.text, tt.want)
			}
		})
	}
}

func TestCopyHashtags_NilResult(t *testing.T) {
	if err := CopyHashtags(&recorder{}, nil); err == nil {
		t.Error("CopyHashtags(nil) error = nil")
	}
}

func TestCopy_WriterError(t *testing.T) {
	w := &recorder{err: ErrUnsupported}

	err := CopyCaption(w, vibe.Caption{Style: vibe.StyleShort, Text: "x"})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("CopyCaption() error = %v, want wrapped ErrUnsupported", err)
	}

	err = CopyHashtags(w, &vibe.Result{Hashtags: []string{"#x"}})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("CopyHashtags() error = %v, want wrapped ErrUnsupported", err)
	}
}
