// file: internals/helpers/storage/upload.go
package storage

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// batas sisi terpanjang varian compressed
	compressedMaxSize = 1280
	compressedQuality = 80
)

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameRe.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename: tanggal + uuid + nama asli (disanitasi).
// Nama unik dibuat SEKALI saat upload; relokasi tidak pernah mengubahnya.
func GenerateUniqueFilename(originalFilename string) string {
	return fmt.Sprintf("%s-%s-%s",
		time.Now().Format("20060102"),
		uuid.New().String(),
		sanitizeFilename(originalFilename),
	)
}

// SaveImageStaged menyimpan gambar upload ke staging (/upload) dan membuat
// varian terkompresi WebP. Mengembalikan pasangan path publik.
func (s *Storage) SaveImageStaged(fh *multipart.FileHeader) (ImagePair, error) {
	if fh == nil {
		return ImagePair{}, fmt.Errorf("storage: file gambar kosong")
	}

	name := GenerateUniqueFilename(fh.Filename)
	originalPath := StagingDir + "/" + name
	if err := s.saveMultipart(fh, originalPath); err != nil {
		return ImagePair{}, err
	}

	compressedPath, err := s.writeCompressedVariant(originalPath, name)
	if err != nil {
		// varian compressed best-effort: original tetap dipakai
		log.Printf("[storage] gagal membuat varian compressed untuk %s: %v", name, err)
		return ImagePair{Original: originalPath, Compressed: originalPath}, nil
	}
	return ImagePair{Original: originalPath, Compressed: compressedPath}, nil
}

// SaveFileStaged menyimpan lampiran non-gambar apa adanya ke staging.
func (s *Storage) SaveFileStaged(fh *multipart.FileHeader) (FileRef, error) {
	if fh == nil {
		return FileRef{}, fmt.Errorf("storage: file kosong")
	}
	name := GenerateUniqueFilename(fh.Filename)
	p := StagingDir + "/" + name
	if err := s.saveMultipart(fh, p); err != nil {
		return FileRef{}, err
	}
	return FileRef{FilePath: p, FileName: fh.Filename}, nil
}

// Delete menghapus file fisik dari storage (best-effort untuk caller;
// error tetap dikembalikan supaya bisa dicatat).
func (s *Storage) Delete(publicPath string) error {
	p := strings.TrimSpace(publicPath)
	if p == "" {
		return nil
	}
	if err := os.Remove(s.abs(p)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: hapus %s: %w", p, err)
	}
	return nil
}

func (s *Storage) saveMultipart(fh *multipart.FileHeader, publicPath string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("storage: buka upload: %w", err)
	}
	defer src.Close()

	dst := s.abs(publicPath)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", publicPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("storage: tulis %s: %w", publicPath, err)
	}
	return nil
}

// writeCompressedVariant men-decode original yang sudah tersimpan, resize
// (fit, tanpa crop) lalu encode ulang sebagai WebP.
func (s *Storage) writeCompressedVariant(originalPath, uniqueName string) (string, error) {
	img, err := imaging.Open(s.abs(originalPath), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if img.Bounds().Dx() > compressedMaxSize || img.Bounds().Dy() > compressedMaxSize {
		img = imaging.Fit(img, compressedMaxSize, compressedMaxSize, imaging.Lanczos)
	}

	ext := filepath.Ext(uniqueName)
	compressedName := strings.TrimSuffix(uniqueName, ext) + "-compressed.webp"
	compressedPath := StagingDir + "/" + compressedName

	out, err := os.Create(s.abs(compressedPath))
	if err != nil {
		return "", fmt.Errorf("create: %w", err)
	}
	defer out.Close()

	if err := webp.Encode(out, img, &webp.Options{Quality: compressedQuality}); err != nil {
		return "", fmt.Errorf("webp encode: %w", err)
	}
	return compressedPath, nil
}
