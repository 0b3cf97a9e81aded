//go:build onnx
// +build onnx

package embedder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/dillonfkhanna/multi-search/src/go/types"
)

const (
	modelOutputDimension = 384
	modelURL             = "https://huggingface.co/sentence-transformers/all-MiniLM-L6-v2/resolve/main/onnx/model.onnx"
	maxSequenceLength    = 256
)

// ONNXEmbedder runs the all-MiniLM-L6-v2 sentence-transformer through ONNX
// Runtime and mean-pools its token embeddings into a single unit-length
// vector. It is selected when the module is built with the onnx tag.
type ONNXEmbedder struct {
	mu        sync.Mutex
	session   *ort.AdvancedSession
	tokenizer *simpleTokenizer
	modelPath string
	cache     map[string]*cacheEntry
	maxCache  int
	warmedUp  bool
}

// NewONNXEmbedder downloads (if necessary) and loads the ONNX model,
// returning an Embedder backed by the real sentence-transformer.
func NewONNXEmbedder(config EmbedderConfig) (Embedder, error) {
	modelPath, err := ensureModelExists(config)
	if err != nil {
		return nil, types.NewError("embedder.NewONNXEmbedder", types.ResourceUnavailable, err)
	}

	e := &ONNXEmbedder{
		tokenizer: newSimpleTokenizer(),
		modelPath: modelPath,
		cache:     make(map[string]*cacheEntry),
		maxCache:  config.CacheSize,
	}
	return e, nil
}

func (e *ONNXEmbedder) Dimension() int { return modelOutputDimension }
func (e *ONNXEmbedder) Model() string  { return "sentence-transformers/all-MiniLM-L6-v2 (onnx)" }

func (e *ONNXEmbedder) Warmup(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.warmedUp {
		return nil
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return types.NewError("embedder.Warmup", types.ResourceUnavailable, err)
	}
	e.warmedUp = true
	return nil
}

func (e *ONNXEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.session.Destroy()
		e.session = nil
	}
	return ort.DestroyEnvironment()
}

func (e *ONNXEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, types.NewError("embedder.Embed", types.InputInvalid, fmt.Errorf("cannot embed empty text"))
	}

	if err := e.Warmup(ctx); err != nil {
		return nil, err
	}

	e.mu.Lock()
	if entry, ok := e.cache[trimmed]; ok {
		e.mu.Unlock()
		return entry.vector, nil
	}
	e.mu.Unlock()

	vector, err := e.generateEmbedding(trimmed)
	if err != nil {
		return nil, types.NewError("embedder.Embed", types.TaskFailure, err)
	}

	e.mu.Lock()
	if len(e.cache) >= e.maxCache && e.maxCache > 0 {
		for k := range e.cache {
			delete(e.cache, k)
			break
		}
	}
	e.cache[trimmed] = &cacheEntry{vector: vector, timestamp: time.Now()}
	e.mu.Unlock()

	return vector, nil
}

func (e *ONNXEmbedder) generateEmbedding(text string) ([]float32, error) {
	tokenIDs, attentionMask := e.tokenizer.tokenize(text, maxSequenceLength)

	inputIDs := make([]int64, len(tokenIDs))
	mask := make([]int64, len(attentionMask))
	for i, id := range tokenIDs {
		inputIDs[i] = int64(id)
	}
	for i, m := range attentionMask {
		mask[i] = int64(m)
	}

	inputShape := ort.NewShape(1, int64(len(inputIDs)))
	inputTensor, err := ort.NewTensor(inputShape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("build input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	maskTensor, err := ort.NewTensor(inputShape, mask)
	if err != nil {
		return nil, fmt.Errorf("build mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputShape := ort.NewShape(1, int64(len(inputIDs)), modelOutputDimension)
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		return nil, fmt.Errorf("build output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	e.mu.Lock()
	if e.session == nil {
		session, err := ort.NewAdvancedSession(e.modelPath,
			[]string{"input_ids", "attention_mask"},
			[]string{"last_hidden_state"},
			[]ort.ArbitraryTensor{inputTensor, maskTensor},
			[]ort.ArbitraryTensor{outputTensor},
			nil)
		if err != nil {
			e.mu.Unlock()
			return nil, fmt.Errorf("create session: %w", err)
		}
		e.session = session
	}
	session := e.session
	e.mu.Unlock()

	if err := session.Run(); err != nil {
		return nil, fmt.Errorf("run inference: %w", err)
	}

	pooled := meanPooling(outputTensor.GetData(), mask, len(inputIDs), modelOutputDimension)
	return normalizeVector(pooled), nil
}

// meanPooling averages per-token embeddings weighted by the attention mask,
// matching the sentence-transformers pooling strategy.
func meanPooling(hidden []float32, mask []int64, seqLen, dim int) []float32 {
	pooled := make([]float32, dim)
	var total float32
	for t := 0; t < seqLen; t++ {
		if mask[t] == 0 {
			continue
		}
		total++
		base := t * dim
		for d := 0; d < dim; d++ {
			pooled[d] += hidden[base+d]
		}
	}
	if total == 0 {
		total = 1
	}
	for d := range pooled {
		pooled[d] /= total
	}
	return pooled
}

// simpleTokenizer is a minimal WordPiece-style tokenizer sufficient to feed
// the MiniLM ONNX graph; it is not a full HuggingFace tokenizer.
type simpleTokenizer struct {
	vocab  map[string]int
	clsID  int
	sepID  int
	unkID  int
	padID  int
	wordRe *regexp.Regexp
}

func newSimpleTokenizer() *simpleTokenizer {
	return &simpleTokenizer{
		vocab:  make(map[string]int),
		clsID:  101,
		sepID:  102,
		unkID:  100,
		padID:  0,
		wordRe: regexp.MustCompile(`[a-zA-Z0-9]+|[^a-zA-Z0-9\s]`),
	}
}

func (t *simpleTokenizer) tokenize(text string, maxLen int) ([]int, []int) {
	words := t.wordRe.FindAllString(strings.ToLower(text), -1)

	ids := []int{t.clsID}
	for _, w := range words {
		if len(ids) >= maxLen-1 {
			break
		}
		id, ok := t.vocab[w]
		if !ok {
			id = t.unkID
		}
		ids = append(ids, id)
	}
	ids = append(ids, t.sepID)

	mask := make([]int, len(ids))
	for i := range mask {
		mask[i] = 1
	}
	return ids, mask
}

// ensureModelExists downloads the ONNX model into the user's cache
// directory if it is not already present, returning the local path.
func ensureModelExists(config EmbedderConfig) (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	modelDir := filepath.Join(cacheDir, "multi-search", "models")
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return "", fmt.Errorf("create model dir: %w", err)
	}
	modelPath := filepath.Join(modelDir, "all-MiniLM-L6-v2.onnx")

	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(modelURL)
	if err != nil {
		return "", fmt.Errorf("download model: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download model: unexpected status %s", resp.Status)
	}

	tmpPath := modelPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create model file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return "", fmt.Errorf("write model file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close model file: %w", err)
	}
	if err := os.Rename(tmpPath, modelPath); err != nil {
		return "", fmt.Errorf("finalize model file: %w", err)
	}
	return modelPath, nil
}
