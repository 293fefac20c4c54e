package helper

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "essay_final.pdf", sanitizeFilename("essay final.pdf"))
	assert.Equal(t, "bukti_transfer_1_.jpg", sanitizeFilename("bukti transfer (1).jpg"))
	// Path traversal jadi nama polos.
	assert.NotContains(t, sanitizeFilename("../../etc/passwd"), "/")
}

func TestGenerateUniqueFilename(t *testing.T) {
	a := GenerateUniqueFilename("essay.pdf")
	b := GenerateUniqueFilename("essay.pdf")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "essay.pdf"))
	assert.Regexp(t, regexp.MustCompile(`^\d+-[0-9a-f]{8}-`), a)
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(95, 2, 10)

	assert.Equal(t, int64(95), p.Total)
	assert.Equal(t, 10, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := BuildPaginationFromPage(95, 10, 10)
	assert.False(t, last.HasNext)
}
