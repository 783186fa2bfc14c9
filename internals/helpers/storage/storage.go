// file: internals/helpers/storage/storage.go
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

/*
Storage adalah facade untuk blob lokal (disk) yang dipakai controller/service.

Semua path yang disimpan di DB berbentuk path publik relatif root, misal:
  /upload/20250901-<uuid>-foto.png            (staging)
  /profile/<user_id>/posts/20250901-...webp   (final)

File fisik ada di <Root><path>. Pemindahan staging -> final dilakukan
oleh Relocate (lihat relocate.go).
*/

const (
	// StagingDir adalah prefix path publik untuk file yang baru di-upload.
	StagingDir = "/upload"
)

type Storage struct {
	// Root direktori fisik, mis. "./public"
	Root string
}

// NewStorageFromEnv membaca STORAGE_ROOT (default "./public").
func NewStorageFromEnv() (*Storage, error) {
	root := strings.TrimSpace(os.Getenv("STORAGE_ROOT"))
	if root == "" {
		root = "./public"
	}
	return NewStorage(root)
}

func NewStorage(root string) (*Storage, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("storage: root kosong")
	}
	if err := os.MkdirAll(filepath.Join(root, strings.TrimPrefix(StagingDir, "/")), 0o755); err != nil {
		return nil, fmt.Errorf("storage: gagal membuat staging dir: %w", err)
	}
	return &Storage{Root: root}, nil
}

// abs mengubah path publik ("/upload/x.png") menjadi path fisik di disk.
func (s *Storage) abs(publicPath string) string {
	return filepath.Join(s.Root, filepath.FromSlash(strings.TrimPrefix(publicPath, "/")))
}

// =====================================================
// Canonical dirs (kontrak prefix final per jenis aset)
// =====================================================

func ProfileMainDir(userID string) string {
	return "/profile/" + userID + "/main"
}

func PostImagesDir(userID string) string {
	return "/profile/" + userID + "/posts"
}

func SubmissionImagesDir(userID string) string {
	return "/profile/" + userID + "/task-submission/images"
}

func SubmissionFilesDir(userID string) string {
	return "/profile/" + userID + "/task-submission/files"
}

// =====================================================
// Tipe referensi media yang disimpan di kolom JSON
// =====================================================

// ImagePair: satu gambar dengan varian asli + terkompresi (WebP).
type ImagePair struct {
	Original   string `json:"original"`
	Compressed string `json:"compressed"`
}

// FileRef: lampiran non-gambar.
type FileRef struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
}
