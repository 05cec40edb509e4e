package port

import "context"

// ExtractInput carries a source document to the extraction service.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
	FormType    string
	Section     string
}

// ExtractOutput is the extraction service's field map for one section
// category: field label to value, values either strings or one-level
// nested maps.
type ExtractOutput struct {
	Fields map[string]any
}

// FieldExtractor abstracts the external extraction/AI service that turns
// a source document into structured field data.
type FieldExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
