package contracts

import "github.com/giarcheuli/docparser/document_scanner/models"

// IDocumentScanner walks a directory tree and reports the supported documents
// it contains. Each call produces a fresh result; nothing is carried between
// runs.
type IDocumentScanner interface {
	Scan(rootDir string) *models.ScanResult
}
