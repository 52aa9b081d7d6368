package encoding

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// DefaultMaxFeatures caps the TF-IDF vocabulary at the most frequent terms.
const DefaultMaxFeatures = 1000

// TFIDFEncoder is a local, deterministic encoder: term-frequency counts
// weighted by smoothed inverse document frequency, L2-normalized. Fitting
// builds the term vocabulary from the corpus; encoding afterwards is pure
// arithmetic with no shared mutable state, so concurrent Encode calls are
// safe.
type TFIDFEncoder struct {
	maxFeatures int
	vocab       map[string]int
	idf         []float64
}

// NewTFIDFEncoder creates an unfitted TF-IDF encoder. maxFeatures <= 0 uses
// DefaultMaxFeatures.
func NewTFIDFEncoder(maxFeatures int) *TFIDFEncoder {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &TFIDFEncoder{maxFeatures: maxFeatures}
}

// Name identifies the encoder variant.
func (e *TFIDFEncoder) Name() string { return "tfidf" }

// DefaultThreshold returns the cutoff tuned for sparse TF-IDF scores.
func (e *TFIDFEncoder) DefaultThreshold() float64 { return 0.1 }

// Dims returns the fitted vocabulary size, or 0 before Fit.
func (e *TFIDFEncoder) Dims() int { return len(e.vocab) }

// Fit builds the term vocabulary and IDF weights from the corpus. The
// vocabulary keeps the maxFeatures terms with the highest total count
// (alphabetical tie-break) and assigns indices in alphabetical order, so
// fitting the same corpus twice yields byte-identical vectors.
func (e *TFIDFEncoder) Fit(_ context.Context, corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("cannot fit TF-IDF encoder on an empty corpus")
	}

	totalCounts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		tokens := Tokenize(doc)
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			totalCounts[tok]++
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	terms := make([]string, 0, len(totalCounts))
	for term := range totalCounts {
		terms = append(terms, term)
	}

	if len(terms) > e.maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if totalCounts[terms[i]] != totalCounts[terms[j]] {
				return totalCounts[terms[i]] > totalCounts[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:e.maxFeatures]
	}
	sort.Strings(terms)

	e.vocab = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocab[term] = i
		// Smoothed IDF; keeps every fitted term's weight positive.
		e.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return nil
}

// Encode transforms text into its TF-IDF vector. Text containing no
// vocabulary terms (including empty text) yields the zero vector, which the
// similarity layer scores as 0 against everything.
func (e *TFIDFEncoder) Encode(_ context.Context, text string) ([]float64, error) {
	if e.vocab == nil {
		return nil, fmt.Errorf("TF-IDF encoder is not fitted")
	}

	vec := make([]float64, len(e.vocab))
	for _, tok := range Tokenize(text) {
		if idx, ok := e.vocab[tok]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= e.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// EncodeBatch transforms each text in order.
func (e *TFIDFEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vecs := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := e.Encode(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}

// Tokenize lowercases text and splits it on non-alphanumeric runes, dropping
// single-character tokens and English stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// stopWords are high-frequency English terms that carry no matching signal
// in course titles and descriptions.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "am": true, "an": true, "and": true,
	"any": true, "are": true, "as": true, "at": true, "be": true,
	"because": true, "been": true, "before": true, "being": true, "below": true,
	"between": true, "both": true, "but": true, "by": true, "can": true,
	"could": true, "did": true, "do": true, "does": true,
	"doing": true, "down": true, "during": true, "each": true, "few": true,
	"for": true, "from": true, "further": true, "had": true, "has": true,
	"have": true, "having": true, "he": true, "her": true, "here": true,
	"hers": true, "him": true, "his": true, "how": true, "if": true,
	"in": true, "into": true, "is": true, "it": true, "its": true,
	"just": true, "more": true, "most": true, "my": true, "no": true,
	"nor": true, "not": true, "now": true, "of": true, "off": true,
	"on": true, "once": true, "only": true, "or": true, "other": true,
	"our": true, "out": true, "over": true, "own": true, "same": true,
	"she": true, "should": true, "so": true, "some": true, "such": true,
	"than": true, "that": true, "the": true, "their": true, "them": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"those": true, "through": true, "to": true, "too": true, "under": true,
	"until": true, "up": true, "very": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "where": true, "which": true,
	"while": true, "who": true, "whom": true, "why": true, "will": true,
	"with": true, "would": true, "you": true, "your": true, "yours": true,
}
