package ingest

import (
	"encoding/base64"
	"strings"
)

// EncodeDataURL builds a base64 data URL with the given MIME type header.
func EncodeDataURL(mimeType string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mimeType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// Payload returns everything after the first comma of a data URL: the raw
// base64 content. It returns "" when there is no comma.
func Payload(dataURL string) string {
	_, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return ""
	}
	return payload
}

// MediaType returns the MIME type declared in a data URL header, or "" if
// the string is not a data URL.
func MediaType(dataURL string) string {
	header, _, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return ""
	}
	header = strings.TrimPrefix(header, "data:")
	mediaType, _, _ := strings.Cut(header, ";")
	return mediaType
}
