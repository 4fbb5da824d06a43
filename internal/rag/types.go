package rag

// Source identifies a passage that was placed in the prompt.
type Source struct {
	ID     string  `json:"id"`
	Path   string  `json:"path"`
	Score  float32 `json:"score"`
	Length int     `json:"length"` // Runes of page content contributed
}

// Answer is the result of answering a question.
type Answer struct {
	// Text is the model's answer. Empty when Found is false.
	Text string `json:"text"`
	// Found reports whether any passages matched the question.
	Found bool `json:"found"`
	// Sources lists the matched passages in retrieval order.
	Sources []Source `json:"sources,omitempty"`
}
