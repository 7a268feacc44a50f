package models

// StreamResponse carries one chunk of a streamed chat completion. Done marks
// the final chunk; Err reports a failure mid-stream, after which no further
// chunks arrive.
type StreamResponse struct {
	Content string
	Done    bool
	Err     error
}
