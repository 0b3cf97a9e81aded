//go:build !onnx
// +build !onnx

package embedder

import "log"

// NewONNXEmbedder is the stand-in used when the module is built without the
// onnx tag: it logs and falls back to DeterministicEmbedder rather than
// linking ONNX Runtime.
func NewONNXEmbedder(config EmbedderConfig) (Embedder, error) {
	log.Printf("embedder: built without onnx tag, falling back to deterministic embedder")
	return NewDeterministicEmbedder(config), nil
}
