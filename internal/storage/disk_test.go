package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

func TestDiskStoreUploadAndServe(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, "/static/uploads")

	data := []byte("fake image bytes")
	url, err := store.Upload("contact-photos", "abc123_1.jpg", data)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if url != "/static/uploads/contact-photos/abc123_1.jpg" {
		t.Fatalf("unexpected public url: %q", url)
	}

	written, err := os.ReadFile(filepath.Join(dir, "contact-photos", "abc123_1.jpg"))
	if err != nil {
		t.Fatalf("object not written: %v", err)
	}
	if !bytes.Equal(written, data) {
		t.Fatalf("object content mismatch")
	}
}

func TestDiskStoreRejectsOversizedObject(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/static/uploads")

	_, err := store.Upload("contact-photos", "big.jpg", make([]byte, maxObjectBytes+1))
	if !errors.Is(err, ErrSizeLimitExceeded) {
		t.Fatalf("expected ErrSizeLimitExceeded, got %v", err)
	}
}

func TestDiskStoreRejectsPathTraversal(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/static/uploads")

	cases := []struct {
		container string
		key       string
	}{
		{container: "../etc", key: "passwd"},
		{container: "contact-photos", key: "../../escape.jpg"},
		{container: "", key: "a.jpg"},
		{container: "contact-photos", key: ""},
	}

	for _, tc := range cases {
		if _, err := store.Upload(tc.container, tc.key, []byte("x")); !errors.Is(err, ErrSchemaMismatch) {
			t.Fatalf("Upload(%q, %q) expected ErrSchemaMismatch, got %v", tc.container, tc.key, err)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		input error
		want  error
	}{
		{name: "record not found", input: gorm.ErrRecordNotFound, want: ErrNotFound},
		{name: "file missing", input: os.ErrNotExist, want: ErrNotFound},
		{name: "permission", input: os.ErrPermission, want: ErrPermissionDenied},
		{name: "invalid field", input: gorm.ErrInvalidField, want: ErrSchemaMismatch},
		{name: "already classified", input: ErrSizeLimitExceeded, want: ErrSizeLimitExceeded},
	}

	for _, tc := range cases {
		if got := Classify(tc.input); !errors.Is(got, tc.want) {
			t.Fatalf("%s: Classify(%v) = %v, want %v", tc.name, tc.input, got, tc.want)
		}
	}

	other := errors.New("something else")
	if got := Classify(other); !errors.Is(got, other) {
		t.Fatalf("unrecognized error should pass through, got %v", got)
	}

	if Classify(nil) != nil {
		t.Fatalf("Classify(nil) should be nil")
	}
}
