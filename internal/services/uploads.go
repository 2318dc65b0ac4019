package services

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"
)

const customerImageMaxWidth = 1200

// UploadService stores customer personalization images under the
// uploads directory.
type UploadService struct {
	baseDir string
	maxSize int64
}

// NewUploadService creates the service rooted at baseDir.
func NewUploadService(baseDir string, maxSize int64) *UploadService {
	return &UploadService{baseDir: baseDir, maxSize: maxSize}
}

// SaveCustomerImage decodes, resizes and stores an uploaded image for
// one order line. The returned path is relative to the uploads
// directory and is what gets persisted on the order item.
func (us *UploadService) SaveCustomerImage(file multipart.File, header *multipart.FileHeader, orderID, productID uint) (string, error) {
	if header.Size > us.maxSize {
		return "", fmt.Errorf("file too large: %d bytes", header.Size)
	}

	var img image.Image
	var err error
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", fmt.Errorf("unsupported image format: %s", header.Filename)
	}
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	if img.Bounds().Dx() > customerImageMaxWidth {
		img = resize.Resize(customerImageMaxWidth, 0, img, resize.Lanczos3)
	}

	dir := filepath.Join(us.baseDir, "customer_images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("customer_%d_%d_%s.jpg", orderID, productID, timestamp)

	out, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", err
	}
	return filepath.Join("customer_images", filename), nil
}

// CustomerImagePath resolves a stored relative path back to the file
// on disk, refusing anything that escapes the uploads directory.
func (us *UploadService) CustomerImagePath(relative string) (string, error) {
	cleaned := filepath.Clean(relative)
	if strings.Contains(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid upload path: %s", relative)
	}
	return filepath.Join(us.baseDir, cleaned), nil
}
