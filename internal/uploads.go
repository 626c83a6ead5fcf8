package internal

import (
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadStore writes product images under Dir and addresses them by a
// relative URL. File operations are not transactional with the database; a
// failed record mutation triggers a compensating Remove.
type UploadStore struct {
	Dir string
}

// SaveProductImage stores the uploaded file and returns its public URL.
func (s *UploadStore) SaveProductImage(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dir := filepath.Join(s.Dir, "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return "/uploads/products/" + name, nil
}

// Remove unlinks the file behind a stored image URL. Best-effort: a failure
// is logged and never blocks the caller's response.
func (s *UploadStore) Remove(imageURL string) {
	if imageURL == "" {
		return
	}
	rel := strings.TrimPrefix(imageURL, "/uploads/")
	path := filepath.Join(s.Dir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove image %s: %v", imageURL, err)
	}
}
