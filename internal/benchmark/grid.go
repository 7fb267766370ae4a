package benchmark

import (
	"github.com/nao1215/othello/internal/model"
)

// Grid expands the cartesian product of board sizes, search depths,
// algorithms, and heuristics into benchmark pairings. Every engine
// configuration plays black against a random-mover baseline, which
// makes win rate a direct measure of engine strength.
func Grid(sizes, depths []int, algorithms, heuristics []string, games int) []model.MatchConfig {
	configs := make([]model.MatchConfig, 0, len(sizes)*len(depths)*len(algorithms)*len(heuristics))
	for _, size := range sizes {
		for _, depth := range depths {
			for _, algorithm := range algorithms {
				for _, heuristic := range heuristics {
					configs = append(configs, model.MatchConfig{
						BoardSize: size,
						Games:     games,
						Black: model.PlayerSpec{
							Kind:      "ai",
							Depth:     depth,
							Algorithm: algorithm,
							Heuristic: heuristic,
						},
						White: model.PlayerSpec{Kind: "random"},
					})
				}
			}
		}
	}
	return configs
}
