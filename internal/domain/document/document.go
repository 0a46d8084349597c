// Package document holds the read-only document projection consumed by search.
package document

import "fmt"

// Record is a read-only projection of a vault document (immutable value object).
// The vault backend owns the canonical records; search only reads them.
type Record struct {
	id            string
	name          string
	category      string
	extractedText string
	aiSummary     string
	tags          []string
	fileType      string
	fileSize      int64
	createdAt     int64 // unix millis
	vaultScope    string
}

// New validates and creates a Record.
func New(
	id, name, category, extractedText, aiSummary string,
	tags []string, fileType string, fileSize, createdAt int64, vaultScope string,
) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("document ID is required")
	}
	if name == "" {
		return Record{}, fmt.Errorf("document name is required")
	}
	if fileSize < 0 {
		return Record{}, fmt.Errorf("file size must be non-negative")
	}
	return Record{
		id:            id,
		name:          name,
		category:      category,
		extractedText: extractedText,
		aiSummary:     aiSummary,
		tags:          cloneTags(tags),
		fileType:      fileType,
		fileSize:      fileSize,
		createdAt:     createdAt,
		vaultScope:    vaultScope,
	}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(
	id, name, category, extractedText, aiSummary string,
	tags []string, fileType string, fileSize, createdAt int64, vaultScope string,
) Record {
	return Record{
		id: id, name: name, category: category,
		extractedText: extractedText, aiSummary: aiSummary,
		tags: tags, fileType: fileType, fileSize: fileSize,
		createdAt: createdAt, vaultScope: vaultScope,
	}
}

// ID returns the opaque document identifier.
func (r Record) ID() string { return r.id }

// Name returns the document display name.
func (r Record) Name() string { return r.name }

// Category returns the document category.
func (r Record) Category() string { return r.category }

// ExtractedText returns the OCR-extracted text.
func (r Record) ExtractedText() string { return r.extractedText }

// AISummary returns the AI-generated summary.
func (r Record) AISummary() string { return r.aiSummary }

// Tags returns the user and AI-generated tags.
func (r Record) Tags() []string { return r.tags }

// FileType returns the stored file type (e.g. "application/pdf").
func (r Record) FileType() string { return r.fileType }

// FileSize returns the stored file size in bytes.
func (r Record) FileSize() int64 { return r.fileSize }

// CreatedAt returns the creation time in unix millis.
func (r Record) CreatedAt() int64 { return r.createdAt }

// VaultScope returns the tenant/ownership boundary of the document.
func (r Record) VaultScope() string { return r.vaultScope }

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
