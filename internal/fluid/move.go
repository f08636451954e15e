package fluid

// Move transfers packets between two containers addressed by index. For
// forward pours the amount is derived by the pouring algebra; for reverse
// pours it is caller-chosen and clamped. Indices must be in bounds and
// distinct — that is the caller's contract, not validated here.
type Move struct {
	From   int `json:"from"`
	To     int `json:"to"`
	Amount int `json:"amount"`
}

// PossibleMoves lists every legal forward pour that transfers the source's
// entire top block. Capacity-limited partial pours are deliberately left
// out to keep any search over moves bounded.
func (s GameState) PossibleMoves() []Move {
	var moves []Move
	for from := range s.Containers {
		for to := range s.Containers {
			if from == to {
				continue
			}
			amount := s.Containers[from].Pourable(&s.Containers[to])
			if amount > 0 && amount == s.Containers[from].TopBlockDepth() {
				moves = append(moves, Move{From: from, To: to, Amount: amount})
			}
		}
	}
	return moves
}

// PossibleReverseMoves lists legal reverse pours between containers with
// differing top colors (pouring onto the same color would be trivially
// undone by a forward pour). With limitSize set the amount is shaved by one
// whenever it would drain the source exactly, so generation never produces
// a move that looks like a completing one.
func (s GameState) PossibleReverseMoves(limitSize bool) []Move {
	var moves []Move
	for from := range s.Containers {
		for to := range s.Containers {
			if from == to {
				continue
			}
			if s.Containers[from].TopColor() == s.Containers[to].TopColor() {
				continue
			}
			amount := s.Containers[from].ReversePourable(&s.Containers[to])
			if limitSize && amount == s.Containers[from].FilledAmount() {
				amount--
			}
			if amount > 0 {
				moves = append(moves, Move{From: from, To: to, Amount: amount})
			}
		}
	}
	return moves
}

func (s *GameState) ApplyMove(m Move) bool {
	return s.Containers[m.From].PourInto(&s.Containers[m.To])
}

func (s *GameState) ApplyReverseMove(m Move) bool {
	return s.Containers[m.From].ReversePourInto(&s.Containers[m.To], m.Amount)
}
