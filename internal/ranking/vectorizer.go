package ranking

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	ErrEmptyCorpus     = errors.New("empty corpus for TF-IDF fit")
	ErrEmptyVocabulary = errors.New("empty vocabulary; documents contain only stop words or no tokens")
	ErrNotFitted       = errors.New("tfidf vectorizer not fitted")
)

// Vectorizer implements a TF-IDF vectorizer.
// It builds a vocabulary from the corpus it is fitted on and computes smoothed IDF values.
// Rows are raw term counts weighted by IDF and L2-normalised.
type Vectorizer struct {
	vocabulary   map[string]int
	idf          []float64
	fitted       bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewVectorizer creates an unfitted vectorizer that drops the given stop words.
func NewVectorizer(stopwords map[string]struct{}) *Vectorizer {
	if stopwords == nil {
		stopwords = map[string]struct{}{}
	}
	return &Vectorizer{
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}_]{2,}`),
		stopwords:    stopwords,
	}
}

// Fit builds the vocabulary and IDF values from the provided corpus.
func (v *Vectorizer) Fit(corpus []string) error {
	_, err := v.fit(corpus)
	return err
}

// FitTransform fits the corpus and returns one vector per corpus entry.
func (v *Vectorizer) FitTransform(corpus []string) ([]Vector, error) {
	tokens, err := v.fit(corpus)
	if err != nil {
		return nil, err
	}
	out := make([]Vector, len(tokens))
	for i := range tokens {
		out[i] = v.vectorize(tokens[i])
	}
	return out, nil
}

func (v *Vectorizer) fit(corpus []string) ([][]string, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	// Build vocabulary and document frequencies
	df := make(map[string]int)
	tokens := make([][]string, len(corpus))
	for i, text := range corpus {
		tokens[i] = v.tokenize(text)
		seen := make(map[string]struct{}, len(tokens[i]))
		for _, tok := range tokens[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.fitted = true
	return tokens, nil
}

// Dimension returns the vocabulary size.
func (v *Vectorizer) Dimension() int { return len(v.idf) }

// Transform computes the TF-IDF vector of text against the fitted vocabulary.
// Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(text string) (Vector, error) {
	if !v.fitted {
		return Vector{}, ErrNotFitted
	}
	return v.vectorize(v.tokenize(text)), nil
}

func (v *Vectorizer) vectorize(tokens []string) Vector {
	tf := make(map[int]int)
	for _, tok := range tokens {
		if idx, ok := v.vocabulary[tok]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return Vector{}
	}
	vec := Vector{
		Indices: make([]int, 0, len(tf)),
		Values:  make([]float64, 0, len(tf)),
	}
	for idx := range tf {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)
	for _, idx := range vec.Indices {
		vec.Values = append(vec.Values, float64(tf[idx])*v.idf[idx])
	}
	// L2 normalize
	if norm := vec.Norm(); norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}

func (v *Vectorizer) tokenize(text string) []string {
	raw := v.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := v.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}
