package game

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sahilm23/connect4-api/internal/domain"
	"github.com/sahilm23/connect4-api/internal/repository"
	"github.com/sahilm23/connect4-api/internal/service/bot"
	"github.com/sahilm23/connect4-api/pkg/uid"
)

// End reasons recorded in the archive.
const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
	ReasonQuit        = "quit"
)

// Archive persists finished games. Saves happen asynchronously so a winning
// move never blocks on the database.
type Archive interface {
	SaveGame(ctx context.Context, game *domain.Game, reason string) error
}

// Notifier pushes state snapshots to live watchers.
type Notifier interface {
	PublishState(game *domain.Game)
	CloseGame(gameID string)
}

// Service owns the game store and serializes access per game ID. The engine
// itself does no locking; every mutation of a game happens under that game's
// mutex.
type Service struct {
	store      repository.GameStore
	archive    Archive  // nil when archiving is disabled
	notifier   Notifier // nil when nobody can watch
	logger     zerolog.Logger
	difficulty string // default bot difficulty

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(logger zerolog.Logger, store repository.GameStore, archive Archive, notifier Notifier, defaultDifficulty string) *Service {
	if !bot.IsValidDifficulty(defaultDifficulty) {
		defaultDifficulty = bot.DifficultyMedium
	}
	return &Service{
		store:      store,
		archive:    archive,
		notifier:   notifier,
		logger:     logger.With().Str("component", "game-service").Logger(),
		difficulty: defaultDifficulty,
		locks:      make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex guarding a game ID, creating it on first use.
func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *Service) dropLock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
}

// getGame loads a game under the caller-held lock. A miss also removes the
// lock entry, so probing unknown IDs cannot grow the lock table.
func (s *Service) getGame(ctx context.Context, id string) (*domain.Game, error) {
	game, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			s.dropLock(id)
		}
		return nil, err
	}
	return game, nil
}

// PruneLocks releases lock entries whose games no longer exist, covering
// games the store dropped on its own (cleanup sweeps, redis expiry). Locks
// currently held stay untouched.
func (s *Service) PruneLocks(ctx context.Context) int {
	games, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list games for lock pruning")
		return 0
	}

	live := make(map[string]struct{}, len(games))
	for _, game := range games {
		live[game.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, lock := range s.locks {
		if _, ok := live[id]; ok {
			continue
		}
		if !lock.TryLock() {
			continue
		}
		delete(s.locks, id)
		lock.Unlock()
		pruned++
	}
	return pruned
}

// Create starts a new game. numHumanPlayers decides which roster slots are
// human and which are computer, like the original two/one/zero player modes.
func (s *Service) Create(ctx context.Context, player1Name, player2Name string, numHumanPlayers int) (*domain.Game, error) {
	game := domain.NewGame(uid.GenerateGameID(), player1Name, player2Name, numHumanPlayers)

	if err := s.store.Save(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("game_id", game.ID).
		Str("player1", player1Name).
		Str("player2", player2Name).
		Int("human_players", numHumanPlayers).
		Msg("game created")

	return game.Clone(), nil
}

// Get returns a snapshot of the current state.
func (s *Service) Get(ctx context.Context, id string) (*domain.Game, error) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	game, err := s.getGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return game.Clone(), nil
}

// List returns snapshots of all stored games.
func (s *Service) List(ctx context.Context) ([]*domain.Game, error) {
	games, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*domain.Game, 0, len(games))
	for _, game := range games {
		lock := s.lockFor(game.ID)
		lock.Lock()
		snapshots = append(snapshots, game.Clone())
		lock.Unlock()
	}
	return snapshots, nil
}

// Move drops a disk for the player identified by its roster key ("p1"/"p2").
func (s *Service) Move(ctx context.Context, id, playerKey string, column int) (*domain.Game, error) {
	player, ok := domain.PlayerByKey(playerKey)
	if !ok {
		return nil, domain.ErrNotYourTurn
	}

	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	game, err := s.getGame(ctx, id)
	if err != nil {
		return nil, err
	}

	row, err := game.MakeMove(player, column)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("game_id", id).
		Str("player", playerKey).
		Int("column", column).
		Int("row", row).
		Str("status", string(game.Status)).
		Msg("move accepted")

	snapshot := game.Clone()
	s.publish(snapshot)

	if game.IsFinished() {
		reason := ReasonDraw
		if game.Status == domain.StatusWon {
			reason = ReasonConnectFour
		}
		s.archiveAsync(snapshot, reason)
	}

	return snapshot, nil
}

// Restart resets the board while keeping the roster.
func (s *Service) Restart(ctx context.Context, id string) (*domain.Game, error) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	game, err := s.getGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Restart()
	if err := s.store.Save(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info().Str("game_id", id).Msg("game restarted")

	snapshot := game.Clone()
	s.publish(snapshot)
	return snapshot, nil
}

// Quit archives the game as quit and removes it from the store.
func (s *Service) Quit(ctx context.Context, id string) error {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	game, err := s.getGame(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("game_id", id).Msg("game quit")

	if !game.IsFinished() {
		s.archiveAsync(game.Clone(), ReasonQuit)
	}

	if s.notifier != nil {
		s.notifier.CloseGame(id)
	}
	s.dropLock(id)

	return nil
}

// NextMove calculates the column the current player should play, without
// applying it. An empty difficulty uses the configured default.
func (s *Service) NextMove(ctx context.Context, id, difficulty string) (int, error) {
	if difficulty == "" {
		difficulty = s.difficulty
	}
	if !bot.IsValidDifficulty(difficulty) {
		return -1, domain.ErrInvalidMove
	}

	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	game, err := s.getGame(ctx, id)
	if err != nil {
		return -1, err
	}

	if game.IsFinished() {
		return -1, domain.ErrGameFinished
	}

	column := bot.CalculateBestMove(game.Board, game.CurrentPlayer, difficulty)
	if column < 0 {
		return -1, domain.ErrInvalidMove
	}

	return column, nil
}

func (s *Service) publish(game *domain.Game) {
	if s.notifier != nil {
		s.notifier.PublishState(game)
	}
}

func (s *Service) archiveAsync(game *domain.Game, reason string) {
	if s.archive == nil {
		return
	}

	go func() {
		if err := s.archive.SaveGame(context.Background(), game, reason); err != nil {
			s.logger.Error().Err(err).Str("game_id", game.ID).Msg("failed to archive game")
		} else {
			s.logger.Debug().Str("game_id", game.ID).Str("reason", reason).Msg("game archived")
		}
	}()
}
