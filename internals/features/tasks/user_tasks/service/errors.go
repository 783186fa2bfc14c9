package service

import "errors"

// Sentinel error supaya controller bisa memetakan ke status HTTP yang tepat
// (400 vs 404) tanpa membocorkan detail internal.
var (
	ErrTaskNotFound         = errors.New("task tidak ditemukan")
	ErrAssignmentNotFound   = errors.New("assignment tidak ditemukan")
	ErrSubmissionNotFound   = errors.New("submission tidak ditemukan")
	ErrInvalidStatus        = errors.New("status tidak valid")
	ErrRemarkRequired       = errors.New("remark wajib diisi")
	ErrGradeRequired        = errors.New("grade wajib diisi untuk status approved")
	ErrActiveSubmissionExists = errors.New("masih ada submission aktif untuk task ini")
	ErrEvidenceLimit        = errors.New("maksimal 5 file bukti per submission")
)
