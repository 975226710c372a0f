package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanatype/internal/model"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return NewRedisStore(client), mr
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "kanatype.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	score, err := st.LoadHighScore(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, score)

	best, err := st.SaveHighScore(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, 300, best)
	best, err = st.SaveHighScore(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, 500, best)
	score, err = st.LoadHighScore(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 500, score)
}

func TestSQLiteStore_KeepsMaximum(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kanatype.db")
	first, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })
	second, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	assert.Equal(t, 300, Save(ctx, first, "a", 300))
	assert.Equal(t, 300, Save(ctx, second, "b", 100))
	assert.Equal(t, 300, Load(ctx, first))
	assert.Equal(t, 300, Load(ctx, second))

	assert.Equal(t, 1000, Save(ctx, second, "b", 1000))
	assert.Equal(t, 1000, Load(ctx, first))

	require.NoError(t, first.ResetHighScore(ctx))
	assert.Equal(t, 0, Load(ctx, second))
	assert.Equal(t, 50, Save(ctx, second, "b", 50))
}

func TestSQLiteStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "kanatype.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	_, err = st.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, HighScoreKey, "lots")
	require.NoError(t, err)

	_, err = st.LoadHighScore(ctx)
	assert.Error(t, err)
	assert.Equal(t, 0, Load(ctx, st))

	best, err := st.SaveHighScore(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, best)
}

func TestRedisStore_SaveLoad(t *testing.T) {
	st, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	score, err := st.LoadHighScore(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, score)

	best, err := st.SaveHighScore(ctx, 1200)
	require.NoError(t, err)
	assert.Equal(t, 1200, best)
	raw, err := mr.Get(HighScoreKey)
	require.NoError(t, err)
	assert.Equal(t, "1200", raw)

	score, err = st.LoadHighScore(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1200, score)
}

func TestRedisStore_KeepsMaximum(t *testing.T) {
	st, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, mr.Set(HighScoreKey, "900"))
	best, err := st.SaveHighScore(ctx, 400)
	require.NoError(t, err)
	assert.Equal(t, 900, best)
	raw, err := mr.Get(HighScoreKey)
	require.NoError(t, err)
	assert.Equal(t, "900", raw)

	best, err = st.SaveHighScore(ctx, 1100)
	require.NoError(t, err)
	assert.Equal(t, 1100, best)

	require.NoError(t, mr.Set(HighScoreKey, "garbage"))
	best, err = st.SaveHighScore(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, best)

	require.NoError(t, st.ResetHighScore(ctx))
	assert.Equal(t, 0, Load(ctx, st))
}

func TestRedisStore_CorruptAndUnavailable(t *testing.T) {
	st, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(HighScoreKey, "-5"))
	assert.Equal(t, 0, Load(ctx, st))

	mr.Close()
	assert.Equal(t, 0, Load(ctx, st))
	assert.Equal(t, 100, Save(ctx, st, "round-1", 100))
}

func TestOpenRedisFailsWithoutServer(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = Open(context.Background(), model.HighScoreConfig{Backend: model.BackendRedis, RedisAddr: addr})
	assert.Error(t, err)
}

func TestJSONStore_PreservesOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "highscore.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark"}`), 0o644))

	st := NewJSONStore(path)
	score, err := st.LoadHighScore(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, score)

	_, err = st.SaveHighScore(ctx, 700)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark","typingGame.highScore":700}`, string(data))

	score, err = st.LoadHighScore(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 700, score)
}

func TestJSONStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "highscore.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	st := NewJSONStore(path)
	assert.Equal(t, 0, Load(ctx, st))

	_, err := st.SaveHighScore(ctx, 100)
	require.NoError(t, err)
	score, err := st.LoadHighScore(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 100, score)
}

func TestJSONStore_KeepsMaximum(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "highscore.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"typingGame.highScore":600}`), 0o644))

	st := NewJSONStore(path)
	assert.Equal(t, 600, Save(ctx, st, "a", 300))
	assert.Equal(t, 600, Load(ctx, st))
	assert.Equal(t, 800, Save(ctx, st, "a", 800))

	require.NoError(t, st.ResetHighScore(ctx))
	assert.Equal(t, 0, Load(ctx, st))
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := Open(ctx, model.HighScoreConfig{Backend: model.BackendJSON, Path: filepath.Join(dir, "hs.json")})
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, st)

	st, err = Open(ctx, model.HighScoreConfig{Path: filepath.Join(dir, "hs.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, st)
	_ = st.Close()

	_, err = Open(ctx, model.HighScoreConfig{Backend: "etcd"})
	assert.Error(t, err)
}

func TestLoadSaveWithNilStore(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, 0, Load(ctx, nil))
	assert.Equal(t, 10, Save(ctx, nil, "", 10))
}
