package match

import "mexicantrain/internal/domain"

// Achievement is a notable feat recorded against a seat at match completion
// (spec 4.4's "completion record with achievements").
type Achievement struct {
	Seat domain.SeatID
	Kind string
}

// CompletionRecord summarizes a finished match for the client and for
// storage.
type CompletionRecord struct {
	MatchID      string
	Standings    []Standing
	Achievements []Achievement
}

// Standing is one seat's final ranking.
type Standing struct {
	Seat     domain.SeatID
	Total    int
	GamesWon int
	Rank     int
}

// FinishCurrentGame folds the just-ended game's round scores into the
// match's cumulative totals. Once GamesMax games are recorded it transitions
// the match to completed and returns the completion record; otherwise it
// returns nil and leaves dealing the next game to the caller
// (StartNextGame). Grounded on the teacher's
// Service.findNextPlayer-adjacent round-completion bookkeeping in
// app/service.go, generalized from a single game to a bounded sequence.
func (m *Match) FinishCurrentGame() (*CompletionRecord, error) {
	if m.Current == nil || m.Current.Phase != domain.PhaseEnded {
		return nil, ErrNoCurrentGame
	}

	totalPips := 0
	lowestOther := -1
	for seat, pips := range m.Current.RoundScores {
		totalPips += pips
		if seat == m.Current.WinnerSeat {
			continue
		}
		if lowestOther == -1 || pips < lowestOther {
			lowestOther = pips
		}
	}
	margin := 0
	if m.Current.WinnerSeat != "" && lowestOther >= 0 {
		margin = lowestOther
	}

	record := GameRecord{
		GameIndex:       len(m.History),
		WinnerSeat:      m.Current.WinnerSeat,
		Deadlock:        m.Current.WinnerSeat == "",
		Scores:          m.Current.RoundScores,
		DurationTurns:   m.Current.TurnsTaken,
		TotalPipsScored: totalPips,
		PeakHandSize:    m.Current.PeakHandSize,
		MarginOfVictory: margin,
	}
	m.History = append(m.History, record)
	for seat, pips := range m.Current.RoundScores {
		m.Cumulative[seat] += pips
	}

	if len(m.History) >= m.GamesMax {
		m.Status = StatusCompleted
		return m.buildCompletionRecord(), nil
	}
	return nil, nil
}

func (m *Match) buildCompletionRecord() *CompletionRecord {
	joinOrder := make(map[domain.SeatID]int, len(m.Seats))
	for _, s := range m.Seats {
		joinOrder[s.ID] = s.JoinOrder
	}

	wins := make(map[domain.SeatID]int, len(m.Seats))
	for _, rec := range m.History {
		if !rec.Deadlock {
			wins[rec.WinnerSeat]++
		}
	}

	standings := make([]Standing, 0, len(m.Seats))
	for _, s := range m.Seats {
		standings = append(standings, Standing{Seat: s.ID, Total: m.Cumulative[s.ID], GamesWon: wins[s.ID]})
	}
	sortStandings(standings, joinOrder)
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return &CompletionRecord{
		MatchID:      m.ID,
		Standings:    standings,
		Achievements: m.achievements(),
	}
}

// sortStandings orders seats by ascending cumulative pip total (lower wins,
// as in Mexican Train scoring), breaking ties first by fewer games won and
// then by earliest join order (spec 4.4 item 4).
func sortStandings(s []Standing, joinOrder map[domain.SeatID]int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && standingLess(s[j], s[j-1], joinOrder); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func standingLess(a, b Standing, joinOrder map[domain.SeatID]int) bool {
	if a.Total != b.Total {
		return a.Total < b.Total
	}
	if a.GamesWon != b.GamesWon {
		return a.GamesWon < b.GamesWon
	}
	return joinOrder[a.Seat] < joinOrder[b.Seat]
}

// achievements derives end-of-match feats from the completed game history:
// a clean-sweep winner (won every round) plus feats derived from the
// extrema of each round's duration and margin of victory (spec 4.4 item 3).
func (m *Match) achievements() []Achievement {
	var out []Achievement
	if len(m.History) == 0 {
		return out
	}

	wins := make(map[domain.SeatID]int)
	var fastest, longest, biggestMargin *GameRecord
	for i := range m.History {
		rec := &m.History[i]
		if rec.Deadlock {
			continue
		}
		wins[rec.WinnerSeat]++
		if fastest == nil || rec.DurationTurns < fastest.DurationTurns {
			fastest = rec
		}
		if longest == nil || rec.DurationTurns > longest.DurationTurns {
			longest = rec
		}
		if biggestMargin == nil || rec.MarginOfVictory > biggestMargin.MarginOfVictory {
			biggestMargin = rec
		}
	}

	for seat, count := range wins {
		if count == len(m.History) {
			out = append(out, Achievement{Seat: seat, Kind: "clean_sweep"})
		}
	}
	if fastest != nil {
		out = append(out, Achievement{Seat: fastest.WinnerSeat, Kind: "fastest_win"})
	}
	if longest != nil && longest != fastest {
		out = append(out, Achievement{Seat: longest.WinnerSeat, Kind: "marathon_win"})
	}
	if biggestMargin != nil {
		out = append(out, Achievement{Seat: biggestMargin.WinnerSeat, Kind: "biggest_blowout"})
	}
	return out
}
