package fluid

import "math/rand/v2"

// Cap on reverse moves per shuffle; generation usually stops earlier when
// no candidate move remains.
const maxShuffleMoves = 1000

// Shuffle scrambles the state in place with random reverse moves. Each
// step pours from the most concentrated stack onto the shallowest one:
// destinations are restricted to containers at the globally smallest
// top-block depth and sources to the globally largest, which spreads the
// fluid outward instead of deepening one stack. Every reverse move has a
// forward inverse, so a solved input always scrambles into a solvable
// puzzle. Returns the number of moves applied.
func (s *GameState) Shuffle(r *rand.Rand) int {
	applied := 0
	for range maxShuffleMoves {
		moves := s.PossibleReverseMoves(true)
		if len(moves) == 0 {
			break
		}

		minDepth, maxDepth := s.Containers[0].TopBlockDepth(), 0
		for _, c := range s.Containers {
			depth := c.TopBlockDepth()
			minDepth = min(minDepth, depth)
			maxDepth = max(maxDepth, depth)
		}

		candidates := moves[:0]
		for _, m := range moves {
			if s.Containers[m.To].TopBlockDepth() == minDepth {
				candidates = append(candidates, m)
			}
		}
		spread := candidates[:0]
		for _, m := range candidates {
			if s.Containers[m.From].TopBlockDepth() == maxDepth {
				spread = append(spread, m)
			}
		}
		if len(spread) == 0 {
			break
		}

		if !s.ApplyReverseMove(spread[r.IntN(len(spread))]) {
			break
		}
		applied++
	}
	if applied == maxShuffleMoves {
		Log.Debug("shuffle stopped at move cap", "moves", applied)
	}
	return applied
}
