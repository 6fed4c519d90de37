package service

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ashwin/ledgerpad/internal/ledger"
)

// SearchFilter narrows a search; zero values mean no constraint.
type SearchFilter struct {
	Kind     ledger.Kind
	Category string
}

// SearchResult is a matched transaction with its ranking score in [0,1],
// higher is better.
type SearchResult struct {
	Transaction ledger.Transaction
	Score       float64
}

// SearchService ranks transactions against a free-text query. Substring hits
// rank first; near-misses are ranked by normalized Levenshtein similarity
// against the description.
type SearchService struct {
	Ledger     *LedgerService
	Categorize func(description string) string
}

// minSimilarity drops results that are not substring hits and too far from
// the query to be a plausible typo.
const minSimilarity = 0.4

func (s *SearchService) Search(query string, filter SearchFilter) ([]SearchResult, error) {
	txs, err := s.Ledger.All()
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	var out []SearchResult
	for _, t := range txs {
		if filter.Kind != "" && t.Kind != filter.Kind {
			continue
		}
		if filter.Category != "" && s.categoryOf(t) != filter.Category {
			continue
		}
		score, ok := scoreMatch(query, strings.ToLower(t.Description))
		if !ok {
			continue
		}
		out = append(out, SearchResult{Transaction: t, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (s *SearchService) categoryOf(t ledger.Transaction) string {
	if s.Categorize == nil {
		return CategorizeWith(DefaultRules(), t.Description)
	}
	return s.Categorize(t.Description)
}

func scoreMatch(query, desc string) (float64, bool) {
	if query == "" {
		return 1, true
	}
	if strings.Contains(desc, query) {
		return 1, true
	}
	// rank best word-level similarity so "ubr" still finds "uber ride"
	best := wordSimilarity(query, desc)
	if sim := similarity(query, desc); sim > best {
		best = sim
	}
	if best < minSimilarity {
		return 0, false
	}
	return best, true
}

func wordSimilarity(query, desc string) float64 {
	best := 0.0
	for _, w := range strings.Fields(desc) {
		if sim := similarity(query, w); sim > best {
			best = sim
		}
	}
	return best
}

func similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
