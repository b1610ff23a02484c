package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestResolve_PrefersRequestedLanguage(t *testing.T) {
	tr := Translation{"en": "Hello", "id": "Halo"}
	assert.Equal(t, "Halo", tr.Resolve("id"))
	assert.Equal(t, "Halo", tr.Resolve(" ID "))
}

func TestResolve_FallsBackToEnglish(t *testing.T) {
	tr := Translation{"en": "Hello", "id": "Halo"}
	assert.Equal(t, "Hello", tr.Resolve("fr"))
}

func TestResolve_FallsBackToFirstAvailable(t *testing.T) {
	tr := Translation{"id": "Halo", "ar": "مرحبا"}
	// tanpa en: ambil yang pertama urut alfabet → ar
	assert.Equal(t, "مرحبا", tr.Resolve("fr"))
}

func TestResolve_SkipsEmptyValues(t *testing.T) {
	tr := Translation{"id": "", "en": "Hello"}
	assert.Equal(t, "Hello", tr.Resolve("id"))
}

func TestResolve_Empty(t *testing.T) {
	assert.Equal(t, "", Translation{}.Resolve("en"))
	var nilTr Translation
	assert.Equal(t, "", nilTr.Resolve("en"))
}

func TestTranslationFromJSONMap_SkipsNonString(t *testing.T) {
	m := datatypes.JSONMap{"EN": "Hello", "id": 42, "ar": "مرحبا"}
	tr := TranslationFromJSONMap(m)

	assert.Equal(t, "Hello", tr["en"], "kunci dinormalkan ke huruf kecil")
	assert.Equal(t, "مرحبا", tr["ar"])
	_, hasID := tr["id"]
	assert.False(t, hasID, "nilai non-string di-skip")
}

func TestResolveJSONMap(t *testing.T) {
	m := datatypes.JSONMap{"en": "Course", "id": "Kursus"}
	assert.Equal(t, "Kursus", ResolveJSONMap(m, "id"))
	assert.Equal(t, "Course", ResolveJSONMap(m, "ja"))
}
