// Package limiter narrows a document to a window of records chosen with
// --limit, --offset and --tail.
package limiter

import (
	"fmt"

	"github.com/oakwood-commons/jv/pkg/document"
)

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int // Show only this many records (0 = unlimited)
	Offset int // Skip the first N records (0 = no skip)
	Tail   int // Show only the last N records (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Bounds returns the half-open record range [start, end) kept out of length
// records.
func (c Config) Bounds(length int) (start, end int) {
	if c.Tail > 0 {
		start = length - c.Tail
		if start < 0 {
			start = 0
		}
		return start, length
	}

	start = c.Offset
	if start > length {
		start = length
	}
	end = length
	if c.Limit > 0 && start+c.Limit < length {
		end = start + c.Limit
	}
	return start, end
}

// Apply returns the records of doc inside Bounds. The result shares record
// values with doc; documents are immutable so this is safe.
func (c Config) Apply(doc document.Document) document.Document {
	if !c.IsActive() {
		return doc
	}
	start, end := c.Bounds(len(doc.Records))
	return document.Document{
		Source:  doc.Source,
		Records: doc.Records[start:end:end],
	}
}
