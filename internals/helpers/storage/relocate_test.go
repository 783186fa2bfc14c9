package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	st, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	return st
}

func stageFile(t *testing.T, st *Storage, name string) string {
	t.Helper()
	publicPath := StagingDir + "/" + name
	require.NoError(t, os.WriteFile(st.abs(publicPath), []byte("isi"), 0o644))
	return publicPath
}

func TestRelocate_MovesStagedFile(t *testing.T) {
	st := newTestStorage(t)
	staged := stageFile(t, st, "foto.png")
	dir := SubmissionImagesDir("user-1")

	newPath, out := st.Relocate(staged, dir)

	assert.Equal(t, OutcomeMoved, out)
	assert.Equal(t, dir+"/foto.png", newPath)

	// file fisik ikut pindah
	_, err := os.Stat(st.abs(newPath))
	assert.NoError(t, err)
	_, err = os.Stat(st.abs(staged))
	assert.True(t, os.IsNotExist(err))
}

func TestRelocate_PreservesFilename(t *testing.T) {
	st := newTestStorage(t)
	staged := stageFile(t, st, "20250901-abc-laporan akhir.pdf")

	newPath, out := st.Relocate(staged, SubmissionFilesDir("user-1"))

	assert.Equal(t, OutcomeMoved, out)
	assert.Equal(t, "20250901-abc-laporan akhir.pdf", filepath.Base(newPath))
}

func TestRelocate_IdempotentOnFinalPath(t *testing.T) {
	st := newTestStorage(t)
	staged := stageFile(t, st, "foto.png")
	dir := PostImagesDir("user-2")

	moved, out := st.Relocate(staged, dir)
	require.Equal(t, OutcomeMoved, out)

	// pemanggilan kedua tidak menyentuh filesystem
	again, out := st.Relocate(moved, dir)
	assert.Equal(t, OutcomeUnchanged, out)
	assert.Equal(t, moved, again)
}

func TestRelocate_MissingSourceSkipped(t *testing.T) {
	st := newTestStorage(t)

	p, out := st.Relocate(StagingDir+"/hilang.png", ProfileMainDir("user-3"))

	assert.Equal(t, OutcomeSkipped, out)
	// path lama dikembalikan apa adanya
	assert.Equal(t, StagingDir+"/hilang.png", p)
}

func TestRelocate_RetryAfterUnsavedMove(t *testing.T) {
	st := newTestStorage(t)
	staged := stageFile(t, st, "bukti.png")
	dir := SubmissionImagesDir("user-1")

	moved, out := st.Relocate(staged, dir)
	require.Equal(t, OutcomeMoved, out)

	// record gagal tersimpan: retry datang dengan path staging lama.
	// Nama file sama => tujuan sama, jadi path final diturunkan ulang.
	retry, out := st.Relocate(staged, dir)
	assert.Equal(t, OutcomeMoved, out)
	assert.Equal(t, moved, retry)

	_, err := os.Stat(st.abs(moved))
	assert.NoError(t, err)
}

func TestRelocate_EmptyPathSkipped(t *testing.T) {
	st := newTestStorage(t)

	_, out := st.Relocate("", ProfileMainDir("user-3"))
	assert.Equal(t, OutcomeSkipped, out)
}

func TestRelocatePair_EachVariantIndependent(t *testing.T) {
	st := newTestStorage(t)
	original := stageFile(t, st, "a.png")
	dir := SubmissionImagesDir("user-4")

	var sum RelocationSummary
	pair, changed := st.RelocatePair(ImagePair{
		Original:   original,
		Compressed: StagingDir + "/a-compressed.webp", // tidak ada di disk
	}, dir, &sum)

	assert.True(t, changed)
	assert.Equal(t, dir+"/a.png", pair.Original)
	// varian yang hilang tetap menunjuk path lama
	assert.Equal(t, StagingDir+"/a-compressed.webp", pair.Compressed)
	assert.Equal(t, 1, sum.Moved)
	assert.Equal(t, 1, sum.Skipped)
}

func TestRelocatePair_SharedPathBothVariantsFinal(t *testing.T) {
	st := newTestStorage(t)
	// kompresi gagal => original dan compressed menunjuk satu file yang sama
	staged := stageFile(t, st, "foto.png")
	dir := SubmissionImagesDir("user-4")

	var sum RelocationSummary
	pair, changed := st.RelocatePair(ImagePair{
		Original:   staged,
		Compressed: staged,
	}, dir, &sum)

	assert.True(t, changed)
	assert.Equal(t, dir+"/foto.png", pair.Original)
	assert.Equal(t, dir+"/foto.png", pair.Compressed)
	assert.Equal(t, 0, sum.Skipped)

	// run kedua: dua-duanya sudah final
	sum = RelocationSummary{}
	_, changed = st.RelocatePair(pair, dir, &sum)
	assert.False(t, changed)
	assert.Equal(t, 0, sum.Moved)
	assert.Equal(t, 0, sum.Skipped)
}

func TestRelocateFile_NoChangeWhenAlreadyFinal(t *testing.T) {
	st := newTestStorage(t)
	dir := SubmissionFilesDir("user-5")

	var sum RelocationSummary
	ref, changed := st.RelocateFile(FileRef{
		FilePath: dir + "/tugas.pdf",
		FileName: "tugas.pdf",
	}, dir, &sum)

	assert.False(t, changed)
	assert.Equal(t, dir+"/tugas.pdf", ref.FilePath)
	assert.Equal(t, 0, sum.Moved)
}

func TestGenerateUniqueFilename_KeepsExtension(t *testing.T) {
	a := GenerateUniqueFilename("foto liburan.PNG")
	b := GenerateUniqueFilename("foto liburan.PNG")

	assert.NotEqual(t, a, b)
	assert.Equal(t, ".PNG", filepath.Ext(a))
}

func TestSummaryAdd(t *testing.T) {
	var sum RelocationSummary
	sum.Add(OutcomeMoved)
	sum.Add(OutcomeMoved)
	sum.Add(OutcomeSkipped)
	sum.Add(OutcomeUnchanged)

	assert.Equal(t, 2, sum.Moved)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 0, sum.Updated)
}
