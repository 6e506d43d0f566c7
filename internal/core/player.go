package core

// PlayerID identifies one of the two sides of a match.
// Player1 plays the left paddle, Player2 the right paddle.
type PlayerID int

const (
	NoPlayer PlayerID = iota
	Player1
	Player2
)

// Opponent returns the other side. NoPlayer has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// Index returns the zero-based slot for array lookups (Player1=0, Player2=1).
// Returns -1 for NoPlayer.
func (p PlayerID) Index() int {
	switch p {
	case Player1:
		return 0
	case Player2:
		return 1
	default:
		return -1
	}
}

// String returns a short label for the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "none"
	}
}
