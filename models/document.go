package models

// SourceDocument is a chunk of retrieved text and where it came from.
type SourceDocument struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
	Text  string `json:"text"`
}
