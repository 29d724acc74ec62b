package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/baotran/docqa-be/types"
	"github.com/baotran/docqa-be/utils"
)

var ErrEmptyDocument = errors.New("file is empty or no text could be extracted")

// MaxUploadSize caps uploaded files at 1MB.
const MaxUploadSize = 1 << 20

// FileService handles one uploaded file end to end: save to disk, extract
// text, hand off to ingestion, and clean the file up again. The file is
// deleted as soon as the text is out — only the extracted text travels
// further down the pipeline.
type FileService struct {
	uploadDir string
	extract   *ExtractService
	ingest    *IngestService
	logger    *zap.Logger
}

func NewFileService(uploadDir string, extract *ExtractService, ingest *IngestService, logger *zap.Logger) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &FileService{
		uploadDir: uploadDir,
		extract:   extract,
		ingest:    ingest,
		logger:    logger,
	}
}

func (s *FileService) ProcessUpload(ctx context.Context, userID string, file *multipart.FileHeader) (*types.IngestResult, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".txt" && ext != ".md" && ext != ".pdf" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}
	if file.Size > MaxUploadSize {
		return nil, fmt.Errorf("file too large, max %d bytes allowed", MaxUploadSize)
	}

	savedPath, err := utils.SaveUploadedFile(file, s.uploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}
	defer os.Remove(savedPath)

	s.logger.Info("file uploaded",
		zap.String("name", file.Filename),
		zap.Int64("size", file.Size))

	text, err := s.extract.ExtractText(ctx, savedPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(text)) == 0 {
		return nil, ErrEmptyDocument
	}

	return s.ingest.IngestDocument(ctx, userID, file.Filename, text)
}
