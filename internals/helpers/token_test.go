package helper

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyToken(t *testing.T) {
	tok, err := GenerateVerifyToken()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), tok)

	tok2, err := GenerateVerifyToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, tok2)
}

func TestGenerateCertificateNumber(t *testing.T) {
	now := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	num, err := GenerateCertificateNumber(now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^CERT-20260131-[0-9A-F]{6}$`), num)
}
