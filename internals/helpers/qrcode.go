// file: internals/helpers/qrcode.go
package helper

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// EncodeQRBase64 meng-encode isi (biasanya URL verifikasi) jadi PNG QR
// lalu dibungkus base64 supaya bisa disimpan langsung di kolom teks.
func EncodeQRBase64(content string, size int) (string, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("gagal encode QR: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
