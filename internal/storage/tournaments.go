package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pong/internal/match"
)

// Tournament status values.
const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

var (
	ErrBracketSize     = errors.New("storage: tournament needs a power-of-two number of players (at least 2)")
	ErrBracketPlayers  = errors.New("storage: tournament players must be unique and non-empty")
	ErrSlotNotFound    = errors.New("storage: bracket slot not found")
	ErrSlotDecided     = errors.New("storage: bracket slot already decided")
	ErrWinnerNotInSlot = errors.New("storage: winner is not a player of this bracket slot")
)

// Tournament is a single-elimination bracket.
type Tournament struct {
	ID        string
	Name      string
	Size      int
	Status    string
	Champion  string
	CreatedAt time.Time
	Matches   []BracketMatch
}

// Rounds returns the number of rounds of the bracket.
func (t Tournament) Rounds() int {
	return rounds(t.Size)
}

// BracketMatch is one pairing of a bracket. Later-round slots fill in as
// winners advance.
type BracketMatch struct {
	TournamentID string
	Round        int
	Slot         int
	Player1      string
	Player2      string
	MatchID      string
	Winner       string
}

// Ready reports whether both players are known and no winner is recorded.
func (b BracketMatch) Ready() bool {
	return b.Player1 != "" && b.Player2 != "" && b.Winner == ""
}

// Linkage returns the engine linkage for playing this pairing.
func (b BracketMatch) Linkage() match.Linkage {
	return match.Linkage{
		MatchID:      uuid.NewString(),
		TournamentID: b.TournamentID,
		Round:        b.Round,
		Slot:         b.Slot,
	}
}

func rounds(size int) int {
	if size < 2 {
		return 0
	}
	return bits.Len(uint(size)) - 1
}

// CreateTournament seeds round 1 with consecutive pairs of players.
func (s *Store) CreateTournament(name string, players []string) (*Tournament, error) {
	n := len(players)
	if n < 2 || n&(n-1) != 0 {
		return nil, ErrBracketSize
	}
	seeded := make([]string, n)
	seen := make(map[string]bool, n)
	for i, p := range players {
		p = strings.TrimSpace(p)
		key := strings.ToLower(p)
		if p == "" || seen[key] {
			return nil, ErrBracketPlayers
		}
		seen[key] = true
		seeded[i] = p
	}

	id := uuid.NewString()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO tournaments (id, name, size, status) VALUES (?, ?, ?, ?)",
		id, strings.TrimSpace(name), n, StatusActive,
	); err != nil {
		return nil, fmt.Errorf("storage: cannot create tournament: %w", err)
	}

	for slot := 0; slot < n/2; slot++ {
		if _, err := tx.Exec(
			`INSERT INTO tournament_matches (tournament_id, round, slot, player1, player2)
			 VALUES (?, 1, ?, ?, ?)`,
			id, slot, seeded[2*slot], seeded[2*slot+1],
		); err != nil {
			return nil, fmt.Errorf("storage: cannot seed bracket: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("storage: cannot commit tournament: %w", err)
	}
	return s.Tournament(id)
}

// Tournament retrieves a tournament with its bracket.
// Returns nil, nil if it does not exist.
func (s *Store) Tournament(id string) (*Tournament, error) {
	var t Tournament
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, name, size, status, champion, created_at FROM tournaments WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Name, &t.Size, &t.Status, &t.Champion, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tournament: %w", err)
	}
	t.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT tournament_id, round, slot, player1, player2, match_id, winner
		 FROM tournament_matches
		 WHERE tournament_id = ?
		 ORDER BY round, slot`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bracket: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBracket(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		t.Matches = append(t.Matches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &t, nil
}

// NextTournamentMatch returns the first pairing that can be played now.
// Returns nil, nil when nothing is playable.
func (s *Store) NextTournamentMatch(id string) (*BracketMatch, error) {
	b, err := scanBracket(s.db.QueryRow(
		`SELECT tournament_id, round, slot, player1, player2, match_id, winner
		 FROM tournament_matches
		 WHERE tournament_id = ? AND winner = '' AND player1 != '' AND player2 != ''
		 ORDER BY round, slot
		 LIMIT 1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query next match: %w", err)
	}
	return &b, nil
}

func scanBracket(row rowScanner) (BracketMatch, error) {
	var b BracketMatch
	err := row.Scan(&b.TournamentID, &b.Round, &b.Slot, &b.Player1, &b.Player2, &b.MatchID, &b.Winner)
	return b, err
}

// advanceBracket records the winner of a tournament match and moves them
// into the next round, or crowns them after the final.
func advanceBracket(ctx context.Context, tx *sql.Tx, fs match.FinalStats) error {
	link := fs.Link

	var size int
	err := tx.QueryRowContext(ctx, "SELECT size FROM tournaments WHERE id = ?", link.TournamentID).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("storage: cannot query tournament: %w", err)
	}

	b, err := scanBracket(tx.QueryRowContext(ctx,
		`SELECT tournament_id, round, slot, player1, player2, match_id, winner
		 FROM tournament_matches
		 WHERE tournament_id = ? AND round = ? AND slot = ?`,
		link.TournamentID, link.Round, link.Slot,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("storage: cannot query bracket slot: %w", err)
	}
	if b.Winner != "" {
		return ErrSlotDecided
	}
	winner := fs.WinnerName
	if !strings.EqualFold(winner, b.Player1) && !strings.EqualFold(winner, b.Player2) {
		return ErrWinnerNotInSlot
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE tournament_matches SET winner = ?, match_id = ?
		 WHERE tournament_id = ? AND round = ? AND slot = ?`,
		winner, link.MatchID, link.TournamentID, link.Round, link.Slot,
	); err != nil {
		return fmt.Errorf("storage: cannot record bracket winner: %w", err)
	}

	if link.Round >= rounds(size) {
		if _, err := tx.ExecContext(ctx,
			"UPDATE tournaments SET status = ?, champion = ? WHERE id = ?",
			StatusFinished, winner, link.TournamentID,
		); err != nil {
			return fmt.Errorf("storage: cannot finish tournament: %w", err)
		}
		return nil
	}

	next, nextSlot := link.Round+1, link.Slot/2
	column := "player1"
	if link.Slot%2 == 1 {
		column = "player2"
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tournament_matches (tournament_id, round, slot) VALUES (?, ?, ?)
		 ON CONFLICT (tournament_id, round, slot) DO NOTHING`,
		link.TournamentID, next, nextSlot,
	); err != nil {
		return fmt.Errorf("storage: cannot open next bracket slot: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE tournament_matches SET `+column+` = ?
		 WHERE tournament_id = ? AND round = ? AND slot = ?`,
		winner, link.TournamentID, next, nextSlot,
	); err != nil {
		return fmt.Errorf("storage: cannot advance winner: %w", err)
	}
	return nil
}
