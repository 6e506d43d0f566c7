package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/match"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// finished builds finalized stats for p1 vs p2 ending a-b.
func finished(id, p1, p2 string, a, b int) match.FinalStats {
	winner := core.Player1
	if b > a {
		winner = core.Player2
	}
	fs := match.FinalStats{
		Link:               match.Linkage{MatchID: id},
		Winner:             winner,
		TotalRallies:       a + b,
		TotalBounces:       3 * (a + b),
		AvgBouncesPerRally: 3,
		MatchDuration:      42 * time.Second,
		AvgRallyDuration:   1500 * time.Millisecond,
		PausedDuration:     2 * time.Second,
	}
	fs.Players[0] = match.FinalPlayerStats{
		Player:             core.Player1,
		Name:               p1,
		Score:              a,
		MaxConsecutiveWins: a,
		Effects:            2,
		MaxBouncesWonRally: 5,
		FastestWonRally:    800 * time.Millisecond,
		FastestLostRally:   1200 * time.Millisecond,
		MaxSpeedWonRally:   410.5,
		MaxSpeedLostRally:  390,
		PaddleHits:         7,
	}
	fs.Players[1] = match.FinalPlayerStats{
		Player:             core.Player2,
		Name:               p2,
		Score:              b,
		MaxConsecutiveWins: b,
		Effects:            1,
		PaddleHits:         6,
		FastestWonRally:    900 * time.Millisecond,
		MaxSpeedWonRally:   300,
	}
	fs.WinnerName = fs.Players[winner.Index()].Name
	fs.LoserName = fs.Players[winner.Opponent().Index()].Name
	return fs
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSubmitAndMatchByID(t *testing.T) {
	store := openTestStore(t)

	fs := finished("m-1", "ann", "bob", 3, 1)
	if err := store.SubmitMatchStats(context.Background(), fs); err != nil {
		t.Fatalf("SubmitMatchStats() failed: %v", err)
	}

	m, err := store.MatchByID("m-1")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if m == nil {
		t.Fatal("MatchByID() returned nil")
	}
	if m.Winner != "ann" || m.Loser != "bob" || m.Score1 != 3 || m.Score2 != 1 {
		t.Errorf("match = %+v", m)
	}
	if m.Duration != 42*time.Second || m.AvgRally != 1500*time.Millisecond || m.Paused != 2*time.Second {
		t.Errorf("durations = %v/%v/%v", m.Duration, m.AvgRally, m.Paused)
	}
	if m.TournamentID != "" {
		t.Errorf("TournamentID = %q, want empty", m.TournamentID)
	}
	if len(m.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(m.Players))
	}

	ann := m.Players[0]
	if !ann.Won || ann.Player != "ann" || ann.Side != 1 {
		t.Errorf("ann = %+v", ann)
	}
	if ann.FastestWonRally != 800*time.Millisecond || ann.FastestLostRally != 1200*time.Millisecond {
		t.Errorf("ann fastest = %v/%v", ann.FastestWonRally, ann.FastestLostRally)
	}
	if ann.MaxSpeedWonRally != 410.5 || ann.PaddleHits != 7 || ann.MaxBouncesWonRally != 5 {
		t.Errorf("ann = %+v", ann)
	}
	if m.Players[1].Won {
		t.Error("loser marked as winner")
	}

	missing, err := store.MatchByID("nope")
	if err != nil || missing != nil {
		t.Errorf("MatchByID(nope) = %v, %v; want nil, nil", missing, err)
	}
}

func TestSubmitRejectsDuplicatesAndMissingID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SubmitMatchStats(ctx, finished("", "ann", "bob", 3, 0)); !errors.Is(err, ErrMissingMatchID) {
		t.Errorf("missing id err = %v", err)
	}

	fs := finished("dup", "ann", "bob", 3, 0)
	if err := store.SubmitMatchStats(ctx, fs); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := store.SubmitMatchStats(ctx, fs); err == nil {
		t.Error("duplicate match id accepted")
	}

	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("matches = %d, want 1", len(matches))
	}
}

func TestRecentMatchesNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c", "d"} {
		if err := store.SubmitMatchStats(ctx, finished(id, "ann", "bob", 3, i%3)); err != nil {
			t.Fatalf("submit %s: %v", id, err)
		}
	}

	matches, err := store.RecentMatches(3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("len = %d, want 3", len(matches))
	}
	if matches[0].MatchID != "d" || matches[2].MatchID != "b" {
		t.Errorf("order = %s,%s,%s", matches[0].MatchID, matches[1].MatchID, matches[2].MatchID)
	}
	if matches[0].Players != nil {
		t.Error("RecentMatches should not load player records")
	}
}

func TestPlayerSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	submits := []match.FinalStats{
		finished("m1", "ann", "bob", 3, 1),
		finished("m2", "bob", "ann", 3, 2),
		finished("m3", "Ann", "cat", 3, 0),
	}
	for _, fs := range submits {
		if err := store.SubmitMatchStats(ctx, fs); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := store.PlayerSummary("ANN")
	if err != nil {
		t.Fatalf("PlayerSummary() failed: %v", err)
	}
	if sum == nil {
		t.Fatal("PlayerSummary() returned nil")
	}
	if sum.Matches != 3 || sum.Wins != 2 || sum.Losses != 1 {
		t.Errorf("record = %d/%d/%d, want 3/2/1", sum.Matches, sum.Wins, sum.Losses)
	}
	if sum.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3", sum.BestStreak)
	}
	if sum.FastestWonRally != 800*time.Millisecond {
		t.Errorf("FastestWonRally = %v, want 800ms", sum.FastestWonRally)
	}
	if sum.MaxSpeed != 410.5 {
		t.Errorf("MaxSpeed = %v, want 410.5", sum.MaxSpeed)
	}

	none, err := store.PlayerSummary("zed")
	if err != nil || none != nil {
		t.Errorf("PlayerSummary(zed) = %v, %v; want nil, nil", none, err)
	}
}

func TestCreateTournamentValidation(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name    string
		players []string
		want    error
	}{
		{"single player", []string{"ann"}, ErrBracketSize},
		{"three players", []string{"ann", "bob", "cat"}, ErrBracketSize},
		{"duplicate", []string{"ann", "ANN"}, ErrBracketPlayers},
		{"blank", []string{"ann", " "}, ErrBracketPlayers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateTournament("cup", tt.players)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTournamentBracketAdvancement(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tour, err := store.CreateTournament("cup", []string{"ann", "bob", "cat", "dan"})
	if err != nil {
		t.Fatalf("CreateTournament() failed: %v", err)
	}
	if tour.Rounds() != 2 || len(tour.Matches) != 2 || tour.Status != StatusActive {
		t.Fatalf("tournament = %+v", tour)
	}

	play := func(p1, p2 string, a, b int) {
		t.Helper()
		next, err := store.NextTournamentMatch(tour.ID)
		if err != nil || next == nil {
			t.Fatalf("NextTournamentMatch() = %v, %v", next, err)
		}
		if next.Player1 != p1 || next.Player2 != p2 {
			t.Fatalf("next = %s vs %s, want %s vs %s", next.Player1, next.Player2, p1, p2)
		}
		fs := finished("", p1, p2, a, b)
		fs.Link = next.Linkage()
		if err := store.SubmitMatchStats(ctx, fs); err != nil {
			t.Fatalf("submit %s vs %s: %v", p1, p2, err)
		}
	}

	play("ann", "bob", 3, 1)
	play("cat", "dan", 2, 3)
	play("ann", "dan", 1, 3)

	next, err := store.NextTournamentMatch(tour.ID)
	if err != nil || next != nil {
		t.Errorf("after final: next = %v, %v", next, err)
	}

	final, err := store.Tournament(tour.ID)
	if err != nil {
		t.Fatal(err)
	}
	if final.Status != StatusFinished || final.Champion != "dan" {
		t.Errorf("status = %s champion = %s", final.Status, final.Champion)
	}
	if len(final.Matches) != 3 {
		t.Fatalf("bracket = %d matches, want 3", len(final.Matches))
	}
	last := final.Matches[2]
	if last.Round != 2 || last.Player1 != "ann" || last.Player2 != "dan" || last.Winner != "dan" || last.MatchID == "" {
		t.Errorf("final = %+v", last)
	}

	m, err := store.MatchByID(last.MatchID)
	if err != nil || m == nil {
		t.Fatalf("MatchByID(final) = %v, %v", m, err)
	}
	if m.TournamentID != tour.ID || m.Round != 2 {
		t.Errorf("stored linkage = %s round %d", m.TournamentID, m.Round)
	}
}

func TestTournamentSubmitErrorsRollBack(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tour, err := store.CreateTournament("cup", []string{"ann", "bob"})
	if err != nil {
		t.Fatal(err)
	}

	stranger := finished("x1", "zed", "bob", 3, 0)
	stranger.Link = match.Linkage{MatchID: "x1", TournamentID: tour.ID, Round: 1, Slot: 0}
	if err := store.SubmitMatchStats(ctx, stranger); !errors.Is(err, ErrWinnerNotInSlot) {
		t.Fatalf("stranger err = %v, want ErrWinnerNotInSlot", err)
	}
	if m, _ := store.MatchByID("x1"); m != nil {
		t.Error("failed tournament submit left a match row")
	}

	wrongSlot := finished("x2", "ann", "bob", 3, 0)
	wrongSlot.Link = match.Linkage{MatchID: "x2", TournamentID: tour.ID, Round: 3, Slot: 0}
	if err := store.SubmitMatchStats(ctx, wrongSlot); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("wrong slot err = %v, want ErrSlotNotFound", err)
	}

	ok := finished("x3", "ann", "bob", 3, 0)
	ok.Link = match.Linkage{MatchID: "x3", TournamentID: tour.ID, Round: 1, Slot: 0}
	if err := store.SubmitMatchStats(ctx, ok); err != nil {
		t.Fatalf("valid submit: %v", err)
	}

	again := finished("x4", "ann", "bob", 3, 0)
	again.Link = match.Linkage{MatchID: "x4", TournamentID: tour.ID, Round: 1, Slot: 0}
	if err := store.SubmitMatchStats(ctx, again); !errors.Is(err, ErrSlotDecided) {
		t.Errorf("replay err = %v, want ErrSlotDecided", err)
	}

	tr, err := store.Tournament(tour.ID)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Champion != "ann" || tr.Status != StatusFinished {
		t.Errorf("champion = %q status = %q", tr.Champion, tr.Status)
	}
}

func TestTournamentNotFound(t *testing.T) {
	store := openTestStore(t)
	tr, err := store.Tournament("missing")
	if err != nil || tr != nil {
		t.Errorf("Tournament(missing) = %v, %v; want nil, nil", tr, err)
	}
}
