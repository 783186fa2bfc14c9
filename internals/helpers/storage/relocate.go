// file: internals/helpers/storage/relocate.go
package storage

import (
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Outcome adalah hasil satu operasi relokasi file.
type Outcome int

const (
	// OutcomeUnchanged: path sudah berprefix final, tidak menyentuh filesystem.
	OutcomeUnchanged Outcome = iota
	// OutcomeMoved: file staging berhasil di-rename ke lokasi final.
	OutcomeMoved
	// OutcomeSkipped: file sumber tidak ada di disk; path lama dikembalikan apa adanya.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeMoved:
		return "moved"
	default:
		return "skipped"
	}
}

// RelocationSummary: counter agregat satu batch relokasi per pemilik.
type RelocationSummary struct {
	Moved   int `json:"moved"`
	Skipped int `json:"skipped"`
	// Updated = jumlah record yang benar-benar disimpan ulang (minimal satu path berubah).
	Updated int `json:"updated"`
}

func (r *RelocationSummary) Add(o Outcome) {
	switch o {
	case OutcomeMoved:
		r.Moved++
	case OutcomeSkipped:
		r.Skipped++
	}
}

// Relocate memindahkan satu file dari staging ke direktori final (canonicalDir,
// mis. "/profile/<user>/posts"). Idempotent: cek prefix dilakukan sebelum
// menyentuh filesystem, jadi pemanggilan ulang dengan path yang sudah final
// selalu jatuh ke OutcomeUnchanged. Nama file dipertahankan verbatim sehingga
// retry menghasilkan path tujuan yang sama.
//
// Relocate tidak pernah mengembalikan error: sumber yang hilang (sudah
// dipindah request lain, atau memang tidak pernah tersimpan) didegradasi ke
// OutcomeSkipped dan hanya dicatat di log. DB yang masih menunjuk path lama
// adalah kondisi degraded yang diterima, bukan fatal.
func (s *Storage) Relocate(storedPath, canonicalDir string) (string, Outcome) {
	p := strings.TrimSpace(storedPath)
	if p == "" {
		return storedPath, OutcomeSkipped
	}
	if strings.HasPrefix(p, canonicalDir+"/") {
		return p, OutcomeUnchanged
	}

	base := path.Base(p)
	src := s.abs(p)
	dstDir := s.abs(canonicalDir)
	dst := filepath.Join(dstDir, base)
	finalPath := canonicalDir + "/" + base

	if _, err := os.Stat(src); err != nil {
		// Sumber hilang tapi file dengan nama yang sama sudah ada di tujuan:
		// move sebelumnya berhasil namun record belum sempat tersimpan.
		// Kembalikan path final yang sama (nama file sama => tujuan sama)
		// supaya referensi DB bisa direkonsiliasi di retry ini.
		if _, derr := os.Stat(dst); derr == nil {
			return finalPath, OutcomeMoved
		}
		log.Printf("[storage] relocate skip: sumber tidak ada %s", p)
		return storedPath, OutcomeSkipped
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		log.Printf("[storage] relocate skip: mkdir %s: %v", dstDir, err)
		return storedPath, OutcomeSkipped
	}
	// rename atomic pada filesystem yang sama
	if err := os.Rename(src, dst); err != nil {
		log.Printf("[storage] relocate skip: rename %s -> %s: %v", p, finalPath, err)
		return storedPath, OutcomeSkipped
	}
	return finalPath, OutcomeMoved
}

// RelocatePair merelokasi varian original + compressed satu gambar.
// Setiap varian ditangani independen (kegagalan satu file tidak memblokir
// yang lain). changed = true bila minimal satu path berubah.
func (s *Storage) RelocatePair(img ImagePair, canonicalDir string, sum *RelocationSummary) (ImagePair, bool) {
	changed := false

	if img.Original != "" {
		np, out := s.Relocate(img.Original, canonicalDir)
		sum.Add(out)
		if out == OutcomeMoved {
			img.Original = np
			changed = true
		}
	}
	if img.Compressed != "" {
		np, out := s.Relocate(img.Compressed, canonicalDir)
		sum.Add(out)
		if out == OutcomeMoved {
			img.Compressed = np
			changed = true
		}
	}
	return img, changed
}

// RelocateFile merelokasi satu lampiran (FileRef).
func (s *Storage) RelocateFile(f FileRef, canonicalDir string, sum *RelocationSummary) (FileRef, bool) {
	if f.FilePath == "" {
		return f, false
	}
	np, out := s.Relocate(f.FilePath, canonicalDir)
	sum.Add(out)
	if out == OutcomeMoved {
		f.FilePath = np
		return f, true
	}
	return f, false
}
