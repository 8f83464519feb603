package repositories

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const censoredWordPrefix = "blacklist:"

// CensoredWordRepository keeps the moderation dictionary. Words live in the
// keys only.
type CensoredWordRepository struct {
	db *badger.DB
}

func NewCensoredWordRepository(db *badger.DB) *CensoredWordRepository {
	return &CensoredWordRepository{db: db}
}

// Add stores the words, ignoring blanks. Adding an existing word is a no-op.
func (r *CensoredWordRepository) Add(words ...string) error {
	wb := r.db.NewWriteBatch()
	defer wb.Cancel()
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		if err := wb.Set([]byte(censoredWordPrefix+word), nil); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (r *CensoredWordRepository) List() ([]string, error) {
	var words []string
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(censoredWordPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			words = append(words, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return words, err
}
