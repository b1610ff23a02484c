// file: internals/helpers/token.go
package helper

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GenerateVerifyToken membuat token verifikasi opaque (32 hex char).
func GenerateVerifyToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("gagal generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateCertificateNumber membuat nomor sertifikat human-readable,
// contoh: CERT-20250131-A1B2C3.
func GenerateCertificateNumber(now time.Time) (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("gagal generate nomor sertifikat: %w", err)
	}
	return fmt.Sprintf("CERT-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(buf))), nil
}

// GetRawAccessToken mengembalikan access token dari:
// 1) cookie "access_token"
// 2) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}
