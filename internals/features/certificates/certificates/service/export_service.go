package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"kursusku_backend/internals/features/certificates/certificates/model"
	helper "kursusku_backend/internals/helpers"
)

// ExportRow: satu baris export, field multi-bahasa sudah diratakan
// ke satu bahasa tampilan lewat helper.Translation.
type ExportRow struct {
	CertificateNumber string  `json:"certificate_number"`
	TraineeName       string  `json:"trainee_name"`
	CourseTitle       string  `json:"course_title"`
	Grade             string  `json:"grade"`
	Score             string  `json:"score"`
	IssuedAt          string  `json:"issued_at"`
	ExpiresAt         string  `json:"expires_at"`
	IsValid           bool    `json:"is_valid"`
	IsRevoked         bool    `json:"is_revoked"`
	VerifyURL         string  `json:"verify_url"`
}

// urutan kolom CSV tetap, tidak bergantung record pertama
var exportHeader = []string{
	"certificate_number", "trainee_name", "course_title", "grade", "score",
	"issued_at", "expires_at", "is_valid", "is_revoked", "verify_url",
}

func buildExportRow(cert model.CertificateModel, lang string) ExportRow {
	row := ExportRow{
		CertificateNumber: cert.CertificateNumber,
		TraineeName:       cert.CertificateTraineeName,
		CourseTitle:       helper.ResolveJSONMap(cert.CertificateCourseTitle, lang),
		Grade:             cert.CertificateGrade,
		IssuedAt:          cert.CertificateIssuedAt.Format(time.RFC3339),
		IsValid:           cert.CertificateIsValid,
		IsRevoked:         cert.CertificateIsRevoked,
		VerifyURL:         cert.CertificateVerifyURL,
	}
	if cert.CertificateScore != nil {
		row.Score = strconv.FormatFloat(*cert.CertificateScore, 'f', 2, 64)
	}
	if cert.CertificateExpiresAt != nil {
		row.ExpiresAt = cert.CertificateExpiresAt.Format(time.RFC3339)
	}
	return row
}

// ExportJSON meratakan hasil query jadi baris-baris export.
func ExportJSON(certs []model.CertificateModel, lang string) []ExportRow {
	rows := make([]ExportRow, 0, len(certs))
	for _, cert := range certs {
		rows = append(rows, buildExportRow(cert, lang))
	}
	return rows
}

// ExportCSV menulis baris export sebagai CSV. encoding/csv yang handle
// quoting, jadi koma/newline di nama atau judul tidak merusak output.
func ExportCSV(certs []model.CertificateModel, lang string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("gagal tulis header CSV: %w", err)
	}
	for _, cert := range certs {
		row := buildExportRow(cert, lang)
		record := []string{
			row.CertificateNumber,
			row.TraineeName,
			row.CourseTitle,
			row.Grade,
			row.Score,
			row.IssuedAt,
			row.ExpiresAt,
			strconv.FormatBool(row.IsValid),
			strconv.FormatBool(row.IsRevoked),
			row.VerifyURL,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("gagal tulis baris CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
