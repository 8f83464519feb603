package moderation

import (
	"fmt"
	"log/slog"
	"qa-board/repositories"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// Measures the startup path: censored words seeded in badger, loaded back,
// then compiled into the automaton.
func Test_Moderation_Startup_From_Badger(t *testing.T) {
	if testing.Short() {
		t.Skip("startup measurement skipped in short mode")
	}
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelInfo)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()
	repo := repositories.NewCensoredWordRepository(db)

	wordCount := 20_000
	words := make([]string, wordCount)
	for i := range words {
		words[i] = fmt.Sprintf("word%dx", i)
	}

	startSeed := time.Now()
	req.NoError(repo.Add(words...))
	log.Info("Seeded censored words", "count", wordCount, "elapsed", time.Since(startSeed))

	startLoad := time.Now()
	loaded, err := repo.List()
	req.NoError(err)
	req.Len(loaded, wordCount)
	log.Info("Loaded censored words", "elapsed", time.Since(startLoad))

	startBuild := time.Now()
	mod, err := NewModerator(loaded, '*', log)
	req.NoError(err)
	log.Info("Built automaton", "elapsed", time.Since(startBuild), "total", time.Since(startLoad))

	content, found := mod.Censor("say word42x twice")
	req.Equal("say ******* twice", content)
	req.Len(found, 1)
}
