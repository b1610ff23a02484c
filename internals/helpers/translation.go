// file: internals/helpers/translation.go
package helper

import (
	"sort"
	"strings"

	"gorm.io/datatypes"
)

// FallbackLanguage dipakai saat bahasa yang diminta tidak tersedia.
const FallbackLanguage = "en"

// Translation membungkus map kode bahasa → teks (disimpan sebagai JSONB).
// Semua pemilihan bahasa lewat Resolve supaya urutan fallback-nya satu pintu:
// bahasa diminta → en → bahasa pertama yang tersedia (urut alfabet).
type Translation map[string]string

// TranslationFromJSONMap konversi kolom datatypes.JSONMap ke Translation.
// Nilai non-string di-skip.
func TranslationFromJSONMap(m datatypes.JSONMap) Translation {
	t := make(Translation, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			t[strings.ToLower(k)] = s
		}
	}
	return t
}

// ToJSONMap konversi balik untuk disimpan ke kolom JSONB.
func (t Translation) ToJSONMap() datatypes.JSONMap {
	m := make(datatypes.JSONMap, len(t))
	for k, v := range t {
		m[k] = v
	}
	return m
}

// Resolve memilih teks untuk bahasa yang diminta.
func (t Translation) Resolve(lang string) string {
	if len(t) == 0 {
		return ""
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang != "" {
		if v, ok := t[lang]; ok && v != "" {
			return v
		}
	}
	if v, ok := t[FallbackLanguage]; ok && v != "" {
		return v
	}
	// urut dulu biar deterministik
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t[k] != "" {
			return t[k]
		}
	}
	return ""
}

// ResolveJSONMap shortcut: langsung dari kolom JSONB.
func ResolveJSONMap(m datatypes.JSONMap, lang string) string {
	return TranslationFromJSONMap(m).Resolve(lang)
}
