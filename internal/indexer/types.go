package indexer

// LineRange is a 1-based, inclusive span of lines inside a source text.
type LineRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Location places a chunk inside its source text.
type Location struct {
	Lines LineRange `json:"lines"`
}

// Chunk represents a piece of a document produced by the splitter.
type Chunk struct {
	Index int    // Chunk index within the document (starts at 0)
	Text  string // Chunk text content
	Loc   Location
}

// BatchFailure describes an upsert batch that the vector store rejected.
type BatchFailure struct {
	Source     string
	BatchIndex int
	Size       int
	FirstID    string
	LastID     string
	Err        string
}

// IngestReport summarizes an ingestion run.
type IngestReport struct {
	Documents     int // Documents that produced at least one chunk
	Chunks        int
	Upserted      int // Records in batches the store accepted
	Batches       int
	FailedBatches []BatchFailure
}
