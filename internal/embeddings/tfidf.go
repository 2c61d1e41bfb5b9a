package embeddings

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// DefaultTFIDFDimensions is the target dimensionality of the fallback
// embedding space.
const DefaultTFIDFDimensions = 512

// maxVocabulary bounds the TF-IDF feature space.
const maxVocabulary = 1000

// TFIDFEmbedder is the offline fallback strategy: a bounded-vocabulary TF-IDF
// vectorizer followed by a truncated SVD projection into a dense space. It
// requires no network access but must be fitted on the corpus before use,
// and queries are projected into the same reduced space learned at fit time.
type TFIDFEmbedder struct {
	targetDim  int
	dim        int
	vocabulary map[string]int
	idf        []float64
	projection *mat.Dense // features x dim
	fitted     bool

	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewTFIDFEmbedder creates an unfitted TF-IDF embedder targeting the given
// dimensionality. A dim of 0 selects DefaultTFIDFDimensions.
func NewTFIDFEmbedder(dim int) *TFIDFEmbedder {
	if dim <= 0 {
		dim = DefaultTFIDFDimensions
	}
	return &TFIDFEmbedder{
		targetDim:    dim,
		dim:          dim,
		tokenPattern: regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]+`),
		stopwords:    defaultStopwords(),
	}
}

func (e *TFIDFEmbedder) Name() string { return "tfidf-svd" }

// Dimensions returns the effective dimensionality. It may be lower than the
// requested target when the corpus yields fewer features or samples; once
// lowered at fit time it stays lowered, because queries must be projected
// into the space the index was built in.
func (e *TFIDFEmbedder) Dimensions() int { return e.dim }

// Fit builds the vocabulary, IDF weights, and SVD projection from the corpus.
func (e *TFIDFEmbedder) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("tfidf: empty corpus")
	}

	// Document frequencies and total term counts over the corpus.
	df := make(map[string]int)
	totals := make(map[string]int)
	tokenized := make([][]string, len(corpus))
	for i, text := range corpus {
		tokens := e.tokenize(text)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			totals[tok]++
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return fmt.Errorf("tfidf: no usable tokens in corpus")
	}

	// Bound the vocabulary: keep the most frequent terms, alphabetical
	// within equal counts so the ordering is stable across runs.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}
	sort.Strings(terms)

	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	nFeatures := len(terms)
	nSamples := len(corpus)

	// The achievable rank caps the dimensionality. Lower our own target
	// permanently so query-time projection matches the index.
	k := e.targetDim
	if nFeatures < k {
		k = nFeatures
	}
	if nSamples < k {
		k = nSamples
	}
	e.dim = k

	// Dense TF-IDF matrix of the corpus, rows L2-normalized.
	x := mat.NewDense(nSamples, nFeatures, nil)
	for i, tokens := range tokenized {
		row := e.tfidfRow(tokens)
		x.SetRow(i, row)
	}

	// Truncated SVD: project onto the top-k right singular vectors.
	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return fmt.Errorf("tfidf: svd factorization failed")
	}
	var v mat.Dense
	svd.VTo(&v)

	proj := mat.NewDense(nFeatures, k, nil)
	for i := 0; i < nFeatures; i++ {
		for j := 0; j < k; j++ {
			proj.Set(i, j, v.At(i, j))
		}
	}
	e.projection = proj
	e.fitted = true
	return nil
}

func (e *TFIDFEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if !e.fitted {
		return nil, fmt.Errorf("tfidf: embedder not fitted")
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		row := e.tfidfRow(e.tokenize(text))
		vec := mat.NewVecDense(len(row), row)

		projected := mat.NewVecDense(e.dim, nil)
		projected.MulVec(e.projection.T(), vec)

		emb := make([]float32, e.dim)
		for j := 0; j < e.dim; j++ {
			emb[j] = float32(projected.AtVec(j))
		}
		out[i] = emb
	}
	return out, nil
}

// tfidfRow computes the L2-normalized TF-IDF weights of the tokens against
// the fitted vocabulary. Unknown terms are ignored.
func (e *TFIDFEmbedder) tfidfRow(tokens []string) []float64 {
	row := make([]float64, len(e.vocabulary))
	tf := make(map[int]int)
	total := 0
	for _, tok := range tokens {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return row
	}
	for idx, count := range tf {
		row[idx] = (float64(count) / float64(total)) * e.idf[idx]
	}
	norm := 0.0
	for _, v := range row {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range row {
			row[i] /= norm
		}
	}
	return row
}

func (e *TFIDFEmbedder) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "again", "than", "so", "such",
		"into", "about", "between", "through", "during", "before", "after",
		"out", "off", "own", "same", "too", "very", "can", "will", "just",
		"not", "no", "nor", "only", "do", "does", "did", "have", "has", "had",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
