package models

// Context labels used when documents are passed to the model.
const (
	ContextCV        = "CV"
	ContextJobAdvert = "job advert"
)

// Document is the plain text extracted from one source document.
type Document struct {
	Source    string `json:"source"`
	Context   string `json:"context"`
	Text      string `json:"-"`
	PageCount int    `json:"page_count"`
}

// Summary is the result of summarizing a single document.
type Summary struct {
	Source string `json:"source"`
	Text   string `json:"summary"`
	Model  string `json:"model"`
}
