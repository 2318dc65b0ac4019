package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func pngUpload(t *testing.T, width, height int) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	header := &multipart.FileHeader{Filename: "upload.png", Size: int64(buf.Len())}
	return memoryFile{bytes.NewReader(buf.Bytes())}, header
}

func TestSaveCustomerImage(t *testing.T) {
	dir := t.TempDir()
	us := NewUploadService(dir, 16<<20)
	file, header := pngUpload(t, 10, 10)

	rel, err := us.SaveCustomerImage(file, header, 7, 3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, filepath.Join("customer_images", "customer_7_3_")))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))

	_, err = os.Stat(filepath.Join(dir, rel))
	assert.NoError(t, err)
}

func TestSaveCustomerImageRejectsOversized(t *testing.T) {
	us := NewUploadService(t.TempDir(), 8)
	file, header := pngUpload(t, 10, 10)

	_, err := us.SaveCustomerImage(file, header, 1, 1)
	assert.Error(t, err)
}

func TestSaveCustomerImageRejectsUnknownFormat(t *testing.T) {
	us := NewUploadService(t.TempDir(), 16<<20)
	file := memoryFile{bytes.NewReader([]byte("GIF89a"))}
	header := &multipart.FileHeader{Filename: "upload.gif", Size: 6}

	_, err := us.SaveCustomerImage(file, header, 1, 1)
	assert.Error(t, err)
}

func TestCustomerImagePathRefusesTraversal(t *testing.T) {
	us := NewUploadService("/srv/uploads", 16<<20)

	path, err := us.CustomerImagePath(filepath.Join("customer_images", "customer_1_1_x.jpg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/uploads", "customer_images", "customer_1_1_x.jpg"), path)

	_, err = us.CustomerImagePath("../etc/passwd")
	assert.Error(t, err)

	_, err = us.CustomerImagePath("/etc/passwd")
	assert.Error(t, err)
}
