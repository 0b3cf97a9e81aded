//go:build !cgo
// +build !cgo

package indexer

import "fmt"

// RealVectorStore is unavailable without CGO; the type exists so callers
// that request it by name get a clear error instead of a build failure.
type RealVectorStore struct{}

// NewRealVectorStore returns an error when CGO is not available. Callers
// should use NewMemoryVectorStore instead when the cgo tag is absent.
func NewRealVectorStore(dataDir string, dimension int) (*RealVectorStore, error) {
	return nil, fmt.Errorf("real vector store requires CGO support; build with CGO_ENABLED=1 and the cgo tag, or use MemoryVectorStore")
}
