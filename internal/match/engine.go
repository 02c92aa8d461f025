package match

import (
	"sort"
	"strings"

	"locmate/internal/domain"
)

// MatchType classifies a search result.
type MatchType string

const (
	MatchExact MatchType = "exact"
	MatchFuzzy MatchType = "fuzzy"
)

// Options controls a fuzzy translation-memory search.
type Options struct {
	// Threshold is the minimum combined similarity a result must reach.
	Threshold float64
	// MaxResults truncates the result list; <= 0 means unlimited.
	MaxResults int
	// ProjectID / GameID restrict the search scope when non-empty.
	ProjectID string
	GameID    string
	// IncludeContext attaches a context window around the match.
	IncludeContext bool
	// PreferRecent breaks score ties by updated_at descending instead of
	// usage_count descending.
	PreferRecent bool
}

// Result is one ranked translation-memory suggestion.
type Result struct {
	Entry      *domain.MemoryEntry `json:"entry"`
	Similarity float64             `json:"similarity"`
	Type       MatchType           `json:"type"`
	Context    string              `json:"context,omitempty"`
}

// FuzzySearch ranks entries against query by combined similarity, keeping
// entries scoring at or above the threshold. Results are sorted by similarity
// descending; ties break by recency when PreferRecent is set, otherwise by
// usage count.
func FuzzySearch(query string, entries []*domain.MemoryEntry, opts Options) []Result {
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		if !inScope(e, opts) {
			continue
		}
		score := Similarity(query, e.SourceText)
		if score < opts.Threshold {
			continue
		}
		r := Result{Entry: e, Similarity: score, Type: MatchFuzzy}
		if score == 1 {
			r.Type = MatchExact
		}
		if opts.IncludeContext {
			r.Context = ExtractContext(e.SourceText, query, contextWindow)
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		if opts.PreferRecent {
			return results[i].Entry.UpdatedAt.After(results[j].Entry.UpdatedAt)
		}
		return results[i].Entry.UsageCount > results[j].Entry.UsageCount
	})

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

// FindExactMatches returns entries whose source text equals query
// case-insensitively, each with similarity fixed at 1, sorted by usage count
// descending.
//
// This is deliberately not FuzzySearch with threshold 1: that variant is
// case-sensitive at the character level and tie-breaks differently. Both
// policies exist upstream of this package; callers pick the one they mean.
func FindExactMatches(query string, entries []*domain.MemoryEntry, projectID string) []Result {
	results := make([]Result, 0)
	for _, e := range entries {
		if projectID != "" && e.ProjectID != projectID {
			continue
		}
		if !strings.EqualFold(e.SourceText, query) {
			continue
		}
		results = append(results, Result{Entry: e, Similarity: 1, Type: MatchExact})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Entry.UsageCount > results[j].Entry.UsageCount
	})
	return results
}

func inScope(e *domain.MemoryEntry, opts Options) bool {
	if opts.ProjectID != "" && e.ProjectID != opts.ProjectID {
		return false
	}
	if opts.GameID != "" && e.GameID != opts.GameID {
		return false
	}
	return true
}
