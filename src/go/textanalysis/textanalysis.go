// Package textanalysis implements extractive summarization and
// sentence-aware chunking over raw document bodies.
package textanalysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sentencizer/sentencizer"
)

// segmenter performs Unicode sentence-boundary segmentation. It is stateless
// after construction and safe for concurrent use.
var segmenter = sentencizer.NewSegmenter("en")

const targetChunkSize = 1000

// Summarize extracts 3-5 sentences from body by stop-word-weighted sentence
// scoring. If body has 3 or fewer sentences it is returned unchanged. The
// output is deterministic: byte-identical input yields byte-identical
// output.
func Summarize(body string) string {
	sentences := segmenter.Segment(body)
	if len(sentences) <= 3 {
		return body
	}

	freq := make(map[string]int)
	for _, sentence := range sentences {
		for _, word := range strings.Fields(sentence) {
			if cw := cleanWord(word); len(cw) > 2 && !isStopWord(cw) {
				freq[cw]++
			}
		}
	}

	type scoredSentence struct {
		index int
		score float64
	}
	scored := make([]scoredSentence, len(sentences))
	for i, sentence := range sentences {
		words := strings.Fields(sentence)
		var sum float64
		var count int
		for _, word := range words {
			if cw := cleanWord(word); len(cw) > 2 && !isStopWord(cw) {
				sum += float64(freq[cw])
				count++
			}
		}
		score := 0.0
		if count > 0 {
			score = sum / float64(count)
		}
		scored[i] = scoredSentence{index: i, score: score}
	}

	// Stable sort: ties keep their original, first-appearance order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	k := len(sentences) / 3
	if k < 3 {
		k = 3
	}
	if k > 5 {
		k = 5
	}
	if k > len(sentences) {
		k = len(sentences)
	}

	selected := make([]int, k)
	for i := 0; i < k; i++ {
		selected[i] = scored[i].index
	}
	sort.Ints(selected)

	parts := make([]string, len(selected))
	for i, idx := range selected {
		parts[i] = strings.TrimSpace(sentences[idx])
	}
	return strings.Join(parts, " ")
}

// Chunk splits body into an ordered list of non-empty, sentence-bounded
// chunks targeting targetChunkSize characters. A sentence longer than the
// target forms its own oversize chunk rather than being split.
func Chunk(body string) []string {
	sentences := segmenter.Segment(body)

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, sentence := range sentences {
		sentenceLen := utf8.RuneCountInString(sentence)
		if currentLen > 0 && currentLen+sentenceLen+1 > targetChunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(sentence)
		currentLen += sentenceLen
	}

	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// cleanWord lowercases word and trims leading/trailing non-alphanumeric
// characters, matching the content-word definition used by Summarize.
func cleanWord(word string) string {
	trimmed := strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(trimmed)
}
