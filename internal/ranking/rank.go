// Package ranking scores résumé texts against a job description and picks the best matches.
package ranking

import (
	"math"

	"resumematch/internal/corpus"
	"resumematch/internal/domain"
)

// TFIDFRanker ranks documents by TF-IDF cosine similarity to a query.
// The vocabulary is fitted fresh on every call, so a ranker holds no corpus state.
type TFIDFRanker struct {
	stopwords map[string]struct{}
}

// NewTFIDFRanker creates a ranker using the English stop-word list.
func NewTFIDFRanker() *TFIDFRanker {
	return &TFIDFRanker{stopwords: EnglishStopWords()}
}

// Name returns the identifier of this ranker implementation.
func (r *TFIDFRanker) Name() string { return "tfidf" }

// Rank returns one score in [0,1] per document, in input order.
// If the space cannot be fitted (for example every text is empty or made of
// stop words) every document scores 0.
func (r *TFIDFRanker) Rank(query string, documents []string) []float64 {
	scores := make([]float64, len(documents))
	if len(documents) == 0 {
		return scores
	}
	texts := make([]string, 0, len(documents)+1)
	texts = append(texts, query)
	texts = append(texts, documents...)
	vectors, err := NewVectorizer(r.stopwords).FitTransform(texts)
	if err != nil {
		return scores
	}
	q := vectors[0]
	for i := range documents {
		scores[i] = Cosine(q, vectors[i+1])
	}
	return scores
}

// RankAndSelect ranks every corpus document against query and returns the
// top limit distinct names together with the full score list aligned to c.Names().
func RankAndSelect(r domain.Ranker, query string, c *corpus.Corpus, limit int) ([]domain.ScoredDocument, []float64) {
	docs := c.Documents()
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	raw := r.Rank(query, texts)
	scores := make([]float64, len(docs))
	candidates := make([]domain.ScoredDocument, len(docs))
	for i, d := range docs {
		scores[i] = scoreAt(raw, i)
		candidates[i] = domain.ScoredDocument{Name: d.Name, Score: scores[i], SourcePath: d.SourcePath}
	}
	return Select(candidates, limit), scores
}

// scoreAt tolerates rankers that return a short slice or undefined values.
func scoreAt(scores []float64, i int) float64 {
	if i >= len(scores) || math.IsNaN(scores[i]) {
		return 0
	}
	return scores[i]
}
