package uploads

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/ngohub/internal/app/system/limits"
)

// ErrNoFile is returned by SaveFormFile when the form has no file in field.
var ErrNoFile = errors.New("no file uploaded")

// SaveFormFile parses a multipart request, capped at the store limit plus
// form overhead, and saves the file in field to area. Other form values
// are available on r afterwards.
func (s *Store) SaveFormFile(ctx context.Context, w http.ResponseWriter, r *http.Request, field, area string) (Info, error) {
	if s.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes+limits.MultipartOverhead)
	}
	if err := r.ParseMultipartForm(limits.MaxMultipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return Info{}, ErrTooLarge
		}
		return Info{}, err
	}

	f, hdr, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return Info{}, ErrNoFile
		}
		return Info{}, err
	}
	defer f.Close()

	if hdr.Size == 0 {
		return Info{}, ErrEmpty
	}
	return s.Save(ctx, area, hdr.Filename, f)
}

// UserMessage maps an upload error to text suitable for a flash message.
// ok is false for errors that are not the user's fault.
func UserMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, ErrNoFile):
		return "Please choose an image to upload.", true
	case errors.Is(err, ErrUnsupportedType):
		return "Only JPG, JPEG and PNG images are allowed.", true
	case errors.Is(err, ErrTooLarge):
		return "The image is too large.", true
	case errors.Is(err, ErrEmpty):
		return "The uploaded file is empty.", true
	}
	return "", false
}
