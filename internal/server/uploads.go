package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Allowed image content types and the extension each is stored under.
var fileTypeExt = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/jpg":  "jpg",
}

var errInvalidImageType = errors.New("invalid image type")

const maxUploadMemory = 32 << 20

// saveUpload stores one uploaded file under a fresh uuid name and returns
// the stored filename.
func (s *Server) saveUpload(fh *multipart.FileHeader) (string, error) {
	ext, ok := fileTypeExt[fh.Header.Get("Content-Type")]
	if !ok {
		return "", errInvalidImageType
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + "." + ext
	dst, err := os.Create(filepath.Join(s.cfg.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// uploadURL rebuilds the public URL for a stored upload the way the client
// reached us.
func uploadURL(r *http.Request, filename string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/public/uploads/%s", scheme, r.Host, filename)
}
