package models

// AIError is the error envelope chat APIs return on non-200 responses.
type AIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
