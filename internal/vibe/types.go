package vibe

import "strings"

// CaptionStyle is one of the four caption categories the model writes.
type CaptionStyle string

const (
	StyleShort        CaptionStyle = "Short"
	StyleWitty        CaptionStyle = "Witty"
	StyleProfessional CaptionStyle = "Professional"
	StyleAesthetic    CaptionStyle = "Aesthetic"
)

// Styles lists the caption styles in the order they are requested.
var Styles = []CaptionStyle{StyleShort, StyleWitty, StyleProfessional, StyleAesthetic}

const (
	// CaptionCount is the number of captions requested, one per style.
	CaptionCount = 4

	// HashtagCount is the number of hashtags requested.
	HashtagCount = 15
)

// Caption is a single styled caption.
type Caption struct {
	Style CaptionStyle `json:"style"`
	Text  string       `json:"text"`
}

// Result is the structured output of one successful analysis.
// It is never partially populated.
type Result struct {
	Vibe     string    `json:"vibe"`
	Captions []Caption `json:"captions"`
	Hashtags []string  `json:"hashtags"`
}

// HashtagLine joins the hashtags with single spaces, ready to paste.
func (r *Result) HashtagLine() string {
	return strings.Join(r.Hashtags, " ")
}

// CaptionFor returns the first caption with the given style.
func (r *Result) CaptionFor(style CaptionStyle) (Caption, bool) {
	for _, c := range r.Captions {
		if c.Style == style {
			return c, true
		}
	}
	return Caption{}, false
}

// Complete reports whether the result carries the requested number of
// captions and hashtags. The remote schema does not enforce counts, so
// front-ends use this only for display hints.
func (r *Result) Complete() bool {
	return len(r.Captions) == CaptionCount && len(r.Hashtags) == HashtagCount
}
