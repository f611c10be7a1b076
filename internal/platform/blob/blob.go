// Package blob is a thin object-storage layer used to archive generated
// receipts and exports. Keys map directly to object keys. Memory and S3
// offer the same Put, Get and List methods; callers declare the subset they
// need.
package blob

import "time"

// Info describes a stored object.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}
