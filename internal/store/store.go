// Package store persists the high score.
package store

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/model"
)

// HighScoreKey is the single key every backend stores the score under.
const HighScoreKey = game.HighScoreStorage

// HighScoreStore reads and writes the persisted high score.
type HighScoreStore interface {
	LoadHighScore(ctx context.Context) (int, error)
	// SaveHighScore keeps the larger of score and the stored value and
	// returns the value stored afterwards. A corrupt stored value is replaced.
	SaveHighScore(ctx context.Context, score int) (int, error)
	// ResetHighScore sets the stored value back to 0.
	ResetHighScore(ctx context.Context) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg model.HighScoreConfig) (HighScoreStore, error) {
	switch cfg.Backend {
	case "", model.BackendSQLite:
		st, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return st, nil
	case model.BackendRedis:
		st, err := OpenRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return st, nil
	case model.BackendJSON:
		return NewJSONStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown high score backend %q", cfg.Backend)
	}
}

// Load returns the stored high score, or 0 when the store is missing,
// unreachable or holds a corrupt value.
func Load(ctx context.Context, st HighScoreStore) int {
	if st == nil {
		return 0
	}
	score, err := st.LoadHighScore(ctx)
	if err != nil {
		log.Printf("failed to load high score: %v", err)
		return 0
	}
	return score
}

// Save offers score as the new high score on behalf of the round with the
// given session id. It returns the best stored score, or score itself when
// the store is missing or the write failed.
func Save(ctx context.Context, st HighScoreStore, sessionID string, score int) int {
	if st == nil {
		return score
	}
	best, err := st.SaveHighScore(ctx, score)
	if err != nil {
		log.Printf("session %s: failed to save high score %d: %v", sessionID, score, err)
		return score
	}
	return best
}

func parseScore(raw string) (int, error) {
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt high score %q: %w", raw, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("corrupt high score %q: negative", raw)
	}
	return score, nil
}
