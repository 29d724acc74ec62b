package types

const (
	TypeWebsocketPing    = "ping"
	TypeWebsocketPong    = "pong"
	TypeWebsocketAsk     = "ask"
	TypeWebsocketAnswer  = "answer"
	TypeWebsocketSources = "sources"
	TypeWebsocketDone    = "done"
	TypeWebsocketError   = "error"
)

// StreamHandler receives incremental answer text as the model produces it.
type StreamHandler func(delta string)

// ChunkingConfig contains configuration options for document chunking.
type ChunkingConfig struct {
	ChunkSize int `mapstructure:"chunk_size"` // Target size for text chunks
	Overlap   int `mapstructure:"overlap"`    // Size of overlap between chunks
	MaxChunks int `mapstructure:"max_chunks"` // Safety cap on chunks per document
}

// IngestResult is returned after a document has been fully ingested.
type IngestResult struct {
	DocumentID    string `json:"documentId"`
	ChunksCreated int    `json:"chunksCreated"`
}

// Source is a citation attached to an answer.
type Source struct {
	DocumentName string `json:"documentName"`
	Snippet      string `json:"snippet"`
}

// AskResult is the outcome of one question against a user's corpus.
type AskResult struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}
