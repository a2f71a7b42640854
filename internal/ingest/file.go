package ingest

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// File is a user-supplied file with a declared content type.
type File interface {
	// Name is the file's display name.
	Name() string
	// ContentType is the declared MIME type, as a browser would report it.
	ContentType() string
	// Open returns a reader over the full file content.
	Open() (io.ReadCloser, error)
}

// LocalFile is a file on the local filesystem. Its declared type comes from
// the extension, which is how a browser file picker declares it too.
type LocalFile struct {
	Path string
}

// NewLocalFile returns a File for the given path.
func NewLocalFile(path string) *LocalFile {
	return &LocalFile{Path: path}
}

// Name returns the base name of the file.
func (f *LocalFile) Name() string {
	return filepath.Base(f.Path)
}

// ContentType returns the MIME type registered for the file extension, or
// application/octet-stream when the extension is unknown.
func (f *LocalFile) ContentType() string {
	ext := strings.ToLower(filepath.Ext(f.Path))
	if ext == "" {
		return "application/octet-stream"
	}
	t := mime.TypeByExtension(ext)
	if t == "" {
		return "application/octet-stream"
	}
	// Drop parameters such as "; charset=utf-8"
	if mediaType, _, err := mime.ParseMediaType(t); err == nil {
		return mediaType
	}
	return t
}

// Open opens the file for reading.
func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// UploadedFile is a single part of a multipart upload.
type UploadedFile struct {
	Header *multipart.FileHeader
}

// NewUploadedFile wraps a multipart file header.
func NewUploadedFile(fh *multipart.FileHeader) *UploadedFile {
	return &UploadedFile{Header: fh}
}

// Name returns the client-supplied file name.
func (f *UploadedFile) Name() string {
	return f.Header.Filename
}

// ContentType returns the part's declared Content-Type header.
func (f *UploadedFile) ContentType() string {
	return f.Header.Header.Get("Content-Type")
}

// Open opens the uploaded content.
func (f *UploadedFile) Open() (io.ReadCloser, error) {
	return f.Header.Open()
}
