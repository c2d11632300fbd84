package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

type stubBlobStore struct {
	url       string
	err       error
	container string
	key       string
	data      []byte
}

func (s *stubBlobStore) Upload(container, key string, data []byte) (string, error) {
	s.container = container
	s.key = key
	s.data = data
	if s.err != nil {
		return "", s.err
	}
	return s.url + "/" + container + "/" + key, nil
}

func (s *stubBlobStore) PublicURL(container, key string) string {
	return s.url + "/" + container + "/" + key
}

// noisePNG 生成一张压缩不动的噪声图，保证字节数跨过压缩阈值
func noisePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode noise png: %v", err)
	}
	return buf.Bytes()
}

func TestPhotoServiceRejectsUnsupportedType(t *testing.T) {
	svc := NewPhotoService(&stubBlobStore{url: "https://cdn.example.com"})

	_, err := svc.Process("resume.pdf", "application/pdf", []byte("%PDF-1.4"))
	if !errors.Is(err, ErrPhotoUnsupportedType) {
		t.Fatalf("expected ErrPhotoUnsupportedType, got %v", err)
	}
}

func TestPhotoServiceRejectsOversizedFile(t *testing.T) {
	store := &stubBlobStore{url: "https://cdn.example.com"}
	svc := NewPhotoService(store)

	// 6 MB 的文件在压缩之前就会被拒绝
	_, err := svc.Process("huge.jpg", "image/jpeg", make([]byte, 6*1024*1024))
	if !errors.Is(err, ErrPhotoTooLarge) {
		t.Fatalf("expected ErrPhotoTooLarge, got %v", err)
	}
	if store.data != nil {
		t.Fatalf("rejected file must never reach the store")
	}
}

func TestPhotoServiceSmallFileSkipsCompression(t *testing.T) {
	store := &stubBlobStore{url: "https://cdn.example.com"}
	svc := NewPhotoService(store)

	payload := make([]byte, 400*1024)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	result, err := svc.Process("avatar.png", "image/png", payload)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if result.Inline {
		t.Fatalf("successful upload should not fall back to inline encoding")
	}
	if !bytes.Equal(store.data, payload) {
		t.Fatalf("file under threshold must be uploaded unchanged")
	}
	if store.container != PhotoContainer {
		t.Fatalf("expected container %q, got %q", PhotoContainer, store.container)
	}
	if !strings.HasSuffix(store.key, ".png") {
		t.Fatalf("object key should keep the original extension, got %q", store.key)
	}
	if !strings.HasPrefix(result.URL, "https://cdn.example.com/") {
		t.Fatalf("unexpected result url %q", result.URL)
	}
}

func TestPhotoServiceUploadFailureFallsBackInline(t *testing.T) {
	store := &stubBlobStore{url: "https://cdn.example.com", err: os.ErrPermission}
	svc := NewPhotoService(store)

	payload := []byte("tiny png bytes")
	result, err := svc.Process("avatar.png", "image/png", payload)
	if err != nil {
		t.Fatalf("upload failure must not surface as an error: %v", err)
	}

	if !result.Inline {
		t.Fatalf("expected inline fallback result")
	}
	if !strings.HasPrefix(result.URL, "data:image/png;base64,") {
		t.Fatalf("expected data URL fallback, got %q", result.URL)
	}
	if len(result.URL) <= len("data:image/png;base64,") {
		t.Fatalf("inline photo reference must not be empty")
	}
}

func TestPhotoServiceCompressesLargeImage(t *testing.T) {
	store := &stubBlobStore{url: "https://cdn.example.com"}
	svc := NewPhotoService(store)

	original := noisePNG(t, 1000, 600)
	if len(original) < compressThreshold {
		t.Fatalf("test image too small to exercise compression: %d bytes", len(original))
	}

	result, err := svc.Process("group.png", "image/png", original)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if result.ContentType != "image/jpeg" {
		t.Fatalf("compressed photo should be re-encoded as jpeg, got %q", result.ContentType)
	}
	if !strings.HasSuffix(store.key, ".jpg") {
		t.Fatalf("compressed object key should end in .jpg, got %q", store.key)
	}

	decoded, err := imaging.Decode(bytes.NewReader(store.data))
	if err != nil {
		t.Fatalf("failed to decode uploaded photo: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 480 {
		t.Fatalf("expected 800x480 after clamping longest side, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPhotoServiceUndecodableLargeFileIsHardError(t *testing.T) {
	store := &stubBlobStore{url: "https://cdn.example.com"}
	svc := NewPhotoService(store)

	garbage := make([]byte, compressThreshold+1)
	_, err := svc.Process("broken.jpg", "image/jpeg", garbage)
	if !errors.Is(err, ErrPhotoDecode) {
		t.Fatalf("expected ErrPhotoDecode, got %v", err)
	}
	if store.data != nil {
		t.Fatalf("undecodable file must never reach the store")
	}
}
