package model

// IngestEvent is published after a document and its chunks are stored.
type IngestEvent struct {
	DocumentID uint   `json:"document_id"`
	Name       string `json:"name"`
	Source     string `json:"source"`
	ChunkCount int    `json:"chunk_count"`
}
