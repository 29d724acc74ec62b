package service

import (
	"errors"
	"strings"

	"github.com/baotran/docqa-be/types"
)

// ErrChunkLimit is returned by ChunkIterator.Next when a document produces
// more chunks than the configured safety cap.
var ErrChunkLimit = errors.New("chunking safety limit reached, document too large")

var DefaultChunkingConfig = types.ChunkingConfig{
	ChunkSize: 800,
	Overlap:   100,
	MaxChunks: 2000,
}

// Chunker splits normalized document text into an ordered sequence of
// bounded, overlapping chunks. Splitting is lazy: Split returns an iterator
// and no chunk exists before Next is called, so a document's chunks are
// never materialized as one in-memory list.
type Chunker struct {
	chunkSize int
	overlap   int
	maxChunks int
}

func NewChunker(cfg types.ChunkingConfig) *Chunker {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkingConfig.ChunkSize
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = DefaultChunkingConfig.Overlap
	}
	if cfg.MaxChunks <= 0 {
		cfg.MaxChunks = DefaultChunkingConfig.MaxChunks
	}
	return &Chunker{
		chunkSize: cfg.ChunkSize,
		overlap:   cfg.Overlap,
		maxChunks: cfg.MaxChunks,
	}
}

// Split starts a fresh iteration over text. Iterators are independent, so the
// same text can be re-chunked from scratch at any time.
func (c *Chunker) Split(text string) *ChunkIterator {
	return &ChunkIterator{chunker: c, text: text}
}

// ChunkIterator yields one trimmed, non-empty chunk per call to Next.
type ChunkIterator struct {
	chunker *Chunker
	text    string
	start   int
	count   int
}

// Next returns the next chunk. The boolean is false once the text is
// exhausted. All-whitespace windows are skipped rather than yielded empty.
func (it *ChunkIterator) Next() (string, bool, error) {
	c := it.chunker
	for it.start < len(it.text) {
		it.count++
		if it.count > c.maxChunks {
			return "", false, ErrChunkLimit
		}

		end := it.start + c.chunkSize
		if end > len(it.text) {
			end = len(it.text)
		}

		// Prefer a sentence boundary, but never one so early that it would
		// leave a degenerate micro-chunk.
		if end < len(it.text) {
			if period := strings.LastIndex(it.text[:end+1], "."); period > it.start+c.chunkSize/2 {
				end = period + 1
			}
		}

		chunk := strings.TrimSpace(it.text[it.start:end])

		next := end - c.overlap
		if next <= it.start {
			// Guarantee forward progress
			next = end
		}
		it.start = next

		if chunk != "" {
			return chunk, true, nil
		}
	}
	return "", false, nil
}
