package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParams(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{"no params", "/orders", nil},
		{"single param", "/orders/{orderId}", []string{"orderId"}},
		{"multiple params", "/stores/{storeId}/orders/{orderId}", []string{"storeId", "orderId"}},
		{"duplicate placeholder", "/a/{id}/b/{id}", []string{"id"}},
		{"empty braces ignored", "/a/{}/b/{x}", []string{"x"}},
		{"root path", "/", nil},
		{"empty string", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractParams(tt.path))
		})
	}
}

func TestSanitizeOutputPathNewFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.yaml")

	abs, err := SanitizeOutputPath(target)
	require.NoError(t, err)
	assert.Equal(t, target, abs)
}

func TestSanitizeOutputPathCleansDotDot(t *testing.T) {
	dir := t.TempDir()
	messy := filepath.Join(dir, "sub", "..", "out.yaml")

	abs, err := SanitizeOutputPath(messy)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.yaml"), abs)
}
