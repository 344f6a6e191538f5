package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding support
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/presenz/presenz-backend-go/internal/pkg/storage"
)

var (
	ErrUnsupportedType = errors.New("only jpg, jpeg and png images are allowed")
	ErrTooLarge        = errors.New("image exceeds the maximum upload size")
	ErrInvalidImage    = errors.New("image could not be decoded")
	ErrInvalidDataURL  = errors.New("image must be a base64 data URL")
)

const (
	// ProfileImageMaxSide bounds the longest side of stored profile images.
	ProfileImageMaxSide = 256

	selfieMaxBytes = 150 * 1024
)

type FileService interface {
	// UploadSelfie stores a punch selfie sent as a data URL and returns its public URL
	UploadSelfie(ctx context.Context, employeeKey string, date time.Time, direction string, dataURL string) (string, error)

	// UploadProfileImage stores a resized profile image and returns its public URL
	UploadProfileImage(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// DeleteByURL removes a previously stored file given its public URL
	DeleteByURL(ctx context.Context, url string) error
}

type fileServiceImpl struct {
	storage       storage.FileStorage
	maxUploadSize int64
}

func NewFileService(storage storage.FileStorage, maxUploadSize int64) FileService {
	return &fileServiceImpl{
		storage:       storage,
		maxUploadSize: maxUploadSize,
	}
}

// UploadSelfie stores the selfie under selfies/{date}/{key}-{direction}-{unix}.jpg
func (s *fileServiceImpl) UploadSelfie(ctx context.Context, employeeKey string, date time.Time, direction string, dataURL string) (string, error) {
	contentType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	if contentType != "image/jpeg" && contentType != "image/jpg" && contentType != "image/png" {
		return "", ErrUnsupportedType
	}
	if s.maxUploadSize > 0 && int64(len(data)) > s.maxUploadSize {
		return "", ErrTooLarge
	}

	compressed, err := compressImage(data, selfieMaxBytes)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s-%d.jpg", employeeKey, direction, time.Now().Unix())
	key := path.Join("selfies", date.Format("2006-01-02"), name)

	stored, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload selfie: %w", err)
	}
	return s.storage.URL(stored), nil
}

// UploadProfileImage stores the image under avatars/{employeeID}/{uuid}.jpg
func (s *fileServiceImpl) UploadProfileImage(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrUnsupportedType
	}

	limit := s.maxUploadSize
	if limit <= 0 {
		limit = math.MaxInt32
	}
	buffer, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(buffer)) > limit {
		return "", ErrTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	img = fitWithin(img, ProfileImageMaxSide)

	out := new(bytes.Buffer)
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode profile image: %w", err)
	}

	key := path.Join("avatars", employeeID, uuid.NewString()+".jpg")
	stored, err := s.storage.Upload(ctx, out, key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload profile image: %w", err)
	}
	return s.storage.URL(stored), nil
}

func (s *fileServiceImpl) DeleteByURL(ctx context.Context, url string) error {
	base := strings.TrimSuffix(s.storage.URL(""), "/")
	key := strings.TrimPrefix(strings.TrimPrefix(url, base), "/")
	if key == "" || key == url {
		return storage.ErrInvalidPath
	}
	return s.storage.Delete(ctx, key)
}

// ==================== HELPER FUNCTIONS ====================

// decodeDataURL splits "data:<mime>;base64,<payload>" into its parts.
func decodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURL), "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return strings.ToLower(contentType), data, nil
}

// compressImage re-encodes an image as JPEG, lowering quality and then
// scaling down until it fits maxSize. Images already within maxSize are
// only validated.
func compressImage(buffer []byte, maxSize int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(buffer) <= maxSize && format == "jpeg" {
		return buffer, nil
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	// Still too large: scale by the square root of the overshoot.
	ratio := math.Sqrt(float64(maxSize) / float64(len(compressed)))
	bounds := img.Bounds()
	width := max(1, int(float64(bounds.Dx())*ratio))
	height := max(1, int(float64(bounds.Dy())*ratio))

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resizeImage(img, width, height), &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales img down so that its longest side is at most maxSide.
func fitWithin(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}
	if w >= h {
		return resizeImage(img, maxSide, max(1, h*maxSide/w))
	}
	return resizeImage(img, max(1, w*maxSide/h), maxSide)
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
