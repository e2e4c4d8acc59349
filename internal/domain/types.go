package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status, wire values match the public API
type GameStatus string

const (
	StatusInProgress GameStatus = "in-progress"
	StatusWon        GameStatus = "won"
	StatusDraw       GameStatus = "draw"
)

type PlayerType string

const (
	PlayerTypeHuman    PlayerType = "human"
	PlayerTypeComputer PlayerType = "computer"
)

// Player keys used in the roster and in move requests.
const (
	Player1Key = "p1"
	Player2Key = "p2"
)

type Player struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Color string     `json:"color"`
	Type  PlayerType `json:"type"`
}

// basic errors that can occur during play
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove  Error = "invalid move"
	ErrColumnFull   Error = "column is full"
	ErrGameFinished Error = "game is already finished"
	ErrNotYourTurn  Error = "it's not your turn"
)

// Opponent returns the other player.
func Opponent(p PlayerID) PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}
