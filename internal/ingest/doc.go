// Package ingest turns a user-supplied image file into a base64 data URL.
//
// A File declares its own content type (from the file extension for local
// files, from the part header for uploads). Anything not starting with
// "image/" is rejected synchronously with ErrInvalidFileType, whose message
// is shown to the user verbatim. Valid files are read in full with no size
// limit:
//
//	err := ingest.Read(ingest.NewLocalFile("photo.png"), func(dataURL string, err error) {
//	    // dataURL == "data:image/png;base64,iVBORw0..."
//	})
package ingest
