package domain

import "time"

type Game struct {
	ID            string            `json:"id"`
	Board         [][]PlayerID      `json:"board"`
	Players       map[string]Player `json:"players"`
	CurrentPlayer PlayerID          `json:"current_player"`
	Status        GameStatus        `json:"status"`
	Winner        PlayerID          `json:"winner"`
	MoveCount     int               `json:"move_count"`
	CreatedAt     time.Time         `json:"created_at"`
	FinishedAt    time.Time         `json:"finished_at,omitempty"`
}

// NewGame creates a fresh game with an empty board and Player1 to move.
// Player colors follow the classic rules: red moves first.
func NewGame(id, player1Name, player2Name string, numHumanPlayers int) *Game {
	player1Type := PlayerTypeComputer
	if numHumanPlayers > 0 {
		player1Type = PlayerTypeHuman
	}
	player2Type := PlayerTypeComputer
	if numHumanPlayers > 1 {
		player2Type = PlayerTypeHuman
	}

	return &Game{
		ID:    id,
		Board: NewBoard(),
		Players: map[string]Player{
			Player1Key: {ID: Player1Key, Name: player1Name, Color: "red", Type: player1Type},
			Player2Key: {ID: Player2Key, Name: player2Name, Color: "yellow", Type: player2Type},
		},
		CurrentPlayer: Player1,
		Status:        StatusInProgress,
		Winner:        Empty,
		MoveCount:     0,
		CreatedAt:     time.Now(),
	}
}

// PlayerByKey maps a roster key ("p1"/"p2") to the engine's PlayerID.
func PlayerByKey(key string) (PlayerID, bool) {
	switch key {
	case Player1Key:
		return Player1, true
	case Player2Key:
		return Player2, true
	default:
		return Empty, false
	}
}

// KeyFor is the inverse of PlayerByKey. Empty maps to "".
func KeyFor(p PlayerID) string {
	switch p {
	case Player1:
		return Player1Key
	case Player2:
		return Player2Key
	default:
		return ""
	}
}

// MakeMove drops a disk for the given player into the column, updates the
// status and flips the turn. It returns the row the disk landed in. On any
// error the game state is left untouched.
func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusInProgress {
		return -1, ErrGameFinished
	}

	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	if column < 0 || column >= Columns {
		return -1, ErrInvalidMove
	}

	row, err := DropDisk(g.Board, column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if CheckWin(g.Board, row, column, player) {
		g.Status = StatusWon
		g.Winner = player
		g.FinishedAt = time.Now()
		return row, nil
	}

	if IsBoardFull(g.Board) {
		g.Status = StatusDraw
		g.FinishedAt = time.Now()
		return row, nil
	}

	g.CurrentPlayer = Opponent(g.CurrentPlayer)

	return row, nil
}

// Restart resets the board while keeping the player roster.
func (g *Game) Restart() {
	g.Board = NewBoard()
	g.CurrentPlayer = Player1
	g.Status = StatusInProgress
	g.Winner = Empty
	g.MoveCount = 0
	g.FinishedAt = time.Time{}
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Clone returns a deep copy. Callers hand clones to serialization so readers
// never observe a board mid-mutation.
func (g *Game) Clone() *Game {
	clone := *g
	clone.Board = CopyBoard(g.Board)
	clone.Players = make(map[string]Player, len(g.Players))
	for key, player := range g.Players {
		clone.Players[key] = player
	}
	return &clone
}
