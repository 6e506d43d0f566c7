package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-pong/internal/match"
)

// ErrMissingMatchID is returned when finalized stats carry no match id.
var ErrMissingMatchID = errors.New("storage: match id is required")

// MatchRecord is a stored match.
type MatchRecord struct {
	ID           int64
	MatchID      string
	TournamentID string
	Round        int
	Slot         int
	Player1      string
	Player2      string
	Score1       int
	Score2       int
	Winner       string
	Loser        string
	TotalRallies int
	TotalBounces int
	AvgBounces   float64
	Duration     time.Duration
	AvgRally     time.Duration
	Paused       time.Duration
	CreatedAt    time.Time

	// Players is only filled by MatchByID.
	Players []PlayerRecord
}

// PlayerRecord is one side of a stored match.
type PlayerRecord struct {
	Side               int
	Player             string
	Won                bool
	Score              int
	MaxConsecutiveWins int
	Effects            int
	MaxBouncesWonRally int
	FastestWonRally    time.Duration
	FastestLostRally   time.Duration
	MaxSpeedWonRally   float64
	MaxSpeedLostRally  float64
	PaddleHits         int
}

// PlayerSummary aggregates every stored match of one player.
type PlayerSummary struct {
	Name            string
	Matches         int
	Wins            int
	Losses          int
	BestStreak      int
	FastestWonRally time.Duration
	MaxSpeed        float64
	Effects         int
	PaddleHits      int
}

// SubmitMatchStats stores a finished match in one transaction. Tournament
// matches also record the winner in the bracket and advance them.
func (s *Store) SubmitMatchStats(ctx context.Context, fs match.FinalStats) error {
	if fs.Link.MatchID == "" {
		return ErrMissingMatchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var tournamentID any
	if fs.Link.Tournament() {
		tournamentID = fs.Link.TournamentID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO matches
		 (match_id, tournament_id, round, slot, player1, player2, score1, score2, winner, loser,
		  total_rallies, total_bounces, avg_bounces, duration_ms, avg_rally_ms, paused_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fs.Link.MatchID,
		tournamentID,
		fs.Link.Round,
		fs.Link.Slot,
		fs.Players[0].Name,
		fs.Players[1].Name,
		fs.Players[0].Score,
		fs.Players[1].Score,
		fs.WinnerName,
		fs.LoserName,
		fs.TotalRallies,
		fs.TotalBounces,
		fs.AvgBouncesPerRally,
		toMillis(fs.MatchDuration),
		toMillis(fs.AvgRallyDuration),
		toMillis(fs.PausedDuration),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save match: %w", err)
	}

	for i, p := range fs.Players {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO player_match_stats
			 (match_id, side, player, won, score, max_consecutive_wins, effects, max_bounces_won_rally,
			  fastest_won_ms, fastest_lost_ms, max_speed_won, max_speed_lost, paddle_hits)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fs.Link.MatchID,
			i+1,
			p.Name,
			p.Player == fs.Winner,
			p.Score,
			p.MaxConsecutiveWins,
			p.Effects,
			p.MaxBouncesWonRally,
			toMillis(p.FastestWonRally),
			toMillis(p.FastestLostRally),
			p.MaxSpeedWonRally,
			p.MaxSpeedLostRally,
			p.PaddleHits,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save player stats: %w", err)
		}
	}

	if fs.Link.Tournament() {
		if err := advanceBracket(ctx, tx, fs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return nil
}

// Ensure Store implements the match engine's persistence collaborator
var _ match.StatsSubmitter = (*Store)(nil)

const matchColumns = `id, match_id, COALESCE(tournament_id, ''), round, slot, player1, player2,
		score1, score2, winner, loser, total_rallies, total_bounces, avg_bounces,
		duration_ms, avg_rally_ms, paused_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var m MatchRecord
	var durationMs, avgRallyMs, pausedMs int64
	var createdAt any
	err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.TournamentID,
		&m.Round,
		&m.Slot,
		&m.Player1,
		&m.Player2,
		&m.Score1,
		&m.Score2,
		&m.Winner,
		&m.Loser,
		&m.TotalRallies,
		&m.TotalBounces,
		&m.AvgBounces,
		&durationMs,
		&avgRallyMs,
		&pausedMs,
		&createdAt,
	)
	if err != nil {
		return m, err
	}
	m.Duration = fromMillis(durationMs)
	m.AvgRally = fromMillis(avgRallyMs)
	m.Paused = fromMillis(pausedMs)
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// MatchByID retrieves a match with both player records.
// Returns nil, nil if the match does not exist.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	m, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT side, player, won, score, max_consecutive_wins, effects, max_bounces_won_rally,
		        fastest_won_ms, fastest_lost_ms, max_speed_won, max_speed_lost, paddle_hits
		 FROM player_match_stats
		 WHERE match_id = ?
		 ORDER BY side`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p PlayerRecord
		var fastestWon, fastestLost int64
		if err := rows.Scan(
			&p.Side,
			&p.Player,
			&p.Won,
			&p.Score,
			&p.MaxConsecutiveWins,
			&p.Effects,
			&p.MaxBouncesWonRally,
			&fastestWon,
			&fastestLost,
			&p.MaxSpeedWonRally,
			&p.MaxSpeedLostRally,
			&p.PaddleHits,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.FastestWonRally = fromMillis(fastestWon)
		p.FastestLostRally = fromMillis(fastestLost)
		m.Players = append(m.Players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &m, nil
}

// PlayerSummary aggregates the stored matches of a player (case-insensitive).
// Returns nil, nil if the player has no matches.
func (s *Store) PlayerSummary(name string) (*PlayerSummary, error) {
	name = strings.TrimSpace(name)
	sum := &PlayerSummary{Name: name}
	var fastestMs int64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        COALESCE(MAX(max_consecutive_wins), 0),
		        COALESCE(MIN(NULLIF(fastest_won_ms, 0)), 0),
		        COALESCE(MAX(MAX(max_speed_won, max_speed_lost)), 0),
		        COALESCE(SUM(effects), 0),
		        COALESCE(SUM(paddle_hits), 0)
		 FROM player_match_stats
		 WHERE player = ?`,
		name,
	).Scan(&sum.Matches, &sum.Wins, &sum.BestStreak, &fastestMs, &sum.MaxSpeed, &sum.Effects, &sum.PaddleHits)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player summary: %w", err)
	}

	if sum.Matches == 0 {
		return nil, nil
	}
	sum.Losses = sum.Matches - sum.Wins
	sum.FastestWonRally = fromMillis(fastestMs)
	return sum, nil
}
