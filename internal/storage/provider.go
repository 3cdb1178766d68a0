// Package storage defines the docs-tree file-system abstraction.
package storage

import "github.com/halvard/docstamp/internal/models"

// Provider is the interface for documentation file operations.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to the
	// docs root), in walk order.
	List(dir string) ([]models.DocMetadata, error)
	// Read returns the raw bytes of the file at path (relative to the docs root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the docs root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to the docs root).
	Delete(path string) error
}
