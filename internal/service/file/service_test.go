package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/pkg/storage"
)

func newTestService(t *testing.T, maxUpload int64) (FileService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)
	return NewFileService(store, maxUpload), dir
}

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestUploadSelfie(t *testing.T) {
	svc, dir := newTestService(t, 5<<20)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, testImage(64, 48)))
	date := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	url, err := svc.UploadSelfie(context.Background(), "uid-1", date, "in", dataURL)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/selfies/2024-03-01/uid-1-in-"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestUploadSelfie_Rejects(t *testing.T) {
	svc, _ := newTestService(t, 1024)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.UploadSelfie(ctx, "u", now, "in", "not a data url")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	_, err = svc.UploadSelfie(ctx, "u", now, "in", "data:image/gif;base64,R0lGODlh")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = svc.UploadSelfie(ctx, "u", now, "in", "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString([]byte("garbage")))
	assert.ErrorIs(t, err, ErrInvalidImage)

	// Size is checked on the decoded payload before any image decoding
	big := "data:image/png;base64," + base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x5a}, 4096))
	_, err = svc.UploadSelfie(ctx, "u", now, "in", big)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestUploadProfileImage_Resizes(t *testing.T) {
	svc, dir := newTestService(t, 5<<20)

	url, err := svc.UploadProfileImage(context.Background(), "emp-1", bytes.NewReader(pngBytes(t, testImage(512, 256))), "me.png")
	require.NoError(t, err)

	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	assert.True(t, strings.HasPrefix(key, "avatars/emp-1/"))

	f, err := os.Open(filepath.Join(dir, key))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, ProfileImageMaxSide, cfg.Width)
	assert.Equal(t, 128, cfg.Height)

	require.NoError(t, svc.DeleteByURL(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadProfileImage_Rejects(t *testing.T) {
	svc, _ := newTestService(t, 5<<20)

	_, err := svc.UploadProfileImage(context.Background(), "emp-1", strings.NewReader("x"), "cv.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = svc.UploadProfileImage(context.Background(), "emp-1", strings.NewReader("x"), "me.jpg")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestDecodeDataURL(t *testing.T) {
	ct, data, err := decodeDataURL("data:image/JPEG;base64," + base64.StdEncoding.EncodeToString([]byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)
	assert.Equal(t, []byte("abc"), data)

	_, _, err = decodeDataURL("data:image/png,abc")
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}
