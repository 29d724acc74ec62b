package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractTextPlainText(t *testing.T) {
	svc := NewExtractService(zap.NewNop())
	path := writeTempFile(t, "notes.txt", "plain text content")

	text, err := svc.ExtractText(context.Background(), path, "text/plain")

	require.NoError(t, err)
	assert.Equal(t, "plain text content", text)
}

func TestExtractTextMarkdown(t *testing.T) {
	svc := NewExtractService(zap.NewNop())
	path := writeTempFile(t, "readme.md", "# Title\n\nbody")

	text, err := svc.ExtractText(context.Background(), path, "text/markdown")

	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody", text)
}

func TestExtractTextByExtensionWhenMimeGeneric(t *testing.T) {
	// Browsers often send application/octet-stream; the extension decides.
	svc := NewExtractService(zap.NewNop())
	path := writeTempFile(t, "notes.txt", "content")

	text, err := svc.ExtractText(context.Background(), path, "application/octet-stream")

	require.NoError(t, err)
	assert.Equal(t, "content", text)
}

func TestExtractTextTruncatesLongContent(t *testing.T) {
	svc := NewExtractService(zap.NewNop())
	long := strings.Repeat("a", MaxExtractedLength+1234)
	path := writeTempFile(t, "big.txt", long)

	text, err := svc.ExtractText(context.Background(), path, "text/plain")

	require.NoError(t, err)
	assert.Len(t, text, MaxExtractedLength)
	assert.Equal(t, long[:MaxExtractedLength], text)
}

func TestExtractTextUnsupportedType(t *testing.T) {
	svc := NewExtractService(zap.NewNop())
	path := writeTempFile(t, "image.png", "not text")

	text, err := svc.ExtractText(context.Background(), path, "image/png")

	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Empty(t, text)
}

func TestExtractTextMissingFile(t *testing.T) {
	svc := NewExtractService(zap.NewNop())

	text, err := svc.ExtractText(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), "text/plain")

	require.Error(t, err)
	assert.Empty(t, text)
	assert.Contains(t, err.Error(), "failed to read file")
}
