package contracts

// IFormatAnalyzer extracts text and metadata from one family of document
// formats. Implementations never panic and never return Go errors: extraction
// trouble comes back as a readable message in the text, or under an "error"
// key in the metadata, so a single bad document cannot break a run.
type IFormatAnalyzer interface {
	ExtractText(path string) string
	ExtractMetadata(path string) map[string]interface{}
}
