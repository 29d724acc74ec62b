package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnsupportedFileType is returned for files the extractor cannot handle.
var ErrUnsupportedFileType = errors.New("unsupported file type")

const (
	// MaxExtractedLength caps extracted text before chunking.
	MaxExtractedLength = 50000

	pdfExtractTimeout = 30 * time.Second
)

// ExtractService turns an uploaded file into plain UTF-8 text. Plain text
// and markdown are read directly; PDFs go through the pdftotext utility
// (poppler). Output longer than MaxExtractedLength is truncated.
type ExtractService struct {
	logger *zap.Logger
}

func NewExtractService(logger *zap.Logger) *ExtractService {
	return &ExtractService{
		logger: logger,
	}
}

func (s *ExtractService) ExtractText(ctx context.Context, filePath, mimeType string) (string, error) {
	var (
		text string
		err  error
	)
	lower := strings.ToLower(filePath)
	switch {
	case mimeType == "text/plain" || strings.HasSuffix(lower, ".txt"):
		text, err = readFileString(filePath)
	case mimeType == "text/markdown" || strings.HasSuffix(lower, ".md"):
		text, err = readFileString(filePath)
	case mimeType == "application/pdf" || strings.HasSuffix(lower, ".pdf"):
		text, err = s.extractPDF(ctx, filePath)
	default:
		return "", ErrUnsupportedFileType
	}
	if err != nil {
		return "", err
	}

	if len(text) > MaxExtractedLength {
		s.logger.Info("extracted text truncated",
			zap.Int("original", len(text)),
			zap.Int("truncated", MaxExtractedLength))
		text = text[:MaxExtractedLength]
	}
	return text, nil
}

func readFileString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// extractPDF runs pdftotext writing to a temp file so no large process
// output buffer is held in memory.
func (s *ExtractService) extractPDF(ctx context.Context, pdfPath string) (string, error) {
	outFile := filepath.Join(os.TempDir(), fmt.Sprintf("txt-%s.txt", uuid.NewString()))
	defer os.Remove(outFile)

	ctx, cancel := context.WithTimeout(ctx, pdfExtractTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", "-enc", "UTF-8", pdfPath, outFile)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return readFileString(outFile)
}
