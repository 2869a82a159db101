package suggest

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// RankedSuggestion tags a suggestion with the candidate table that
// produced it.
type RankedSuggestion struct {
	TableIndex int    `json:"table_index"`
	LayerID    string `json:"layer_id"`
	Suggestion
}

// RankTables runs the engine once per candidate table and returns all
// suggestions ordered by score, best first. Ties keep table order, then
// per-table emission order. Each table is processed on its own
// goroutine; calls share no state so no coordination is needed beyond
// collecting results.
func (s *Suggester) RankTables(ctx context.Context, tables []TableShape, current *State) ([]RankedSuggestion, error) {
	results := make([][]Suggestion, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		i, table := i, table
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			suggestions, err := s.Suggestions(table, current)
			if err != nil {
				return err
			}
			results[i] = suggestions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ranked []RankedSuggestion
	for i, suggestions := range results {
		for _, sug := range suggestions {
			ranked = append(ranked, RankedSuggestion{
				TableIndex: i,
				LayerID:    tables[i].LayerID,
				Suggestion: sug,
			})
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	return ranked, nil
}
