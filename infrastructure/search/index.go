package search

import (
	"context"
	"fmt"
	"log/slog"
	"qa-board/domain"
	"qa-board/errors"
	"strconv"
	"strings"

	"github.com/blugelabs/bluge"
)

const (
	idField      = "_id"
	messageField = "message"
	statusField  = "status"
)

// Index is a bluge full-text index over question messages.
type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func Open(path string, log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, fmt.Errorf("cannot open search index at %s: %w", path, err)
	}
	return &Index{writer: writer, log: log}, nil
}

// Index upserts the question document. The question id is the document id,
// so re-indexing an updated question replaces the previous version.
func (i *Index) Index(question domain.Question) error {
	doc := bluge.NewDocument(strconv.FormatInt(question.ID, 10)).
		AddField(bluge.NewTextField(messageField, question.Message)).
		AddField(bluge.NewKeywordField(statusField, string(question.Status)).StoreValue())
	return i.writer.Update(doc.ID(), doc)
}

// Search returns question ids by relevance.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.ErrEmptySearchQuery
	}

	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("cannot open index reader: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("Cannot close index reader", "error", err)
		}
	}()

	request := bluge.NewTopNSearch(limit, bluge.NewMatchQuery(query).SetField(messageField))
	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	ids := []int64{}
	match, err := matches.Next()
	for err == nil && match != nil {
		var parseErr error
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field != idField {
				return true
			}
			var id int64
			if id, parseErr = strconv.ParseInt(string(value), 10, 64); parseErr == nil {
				ids = append(ids, id)
			}
			return false
		})
		if err == nil && parseErr != nil {
			i.log.Debug("Skipping document with foreign id", "error", parseErr)
		}
		if err != nil {
			break
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i *Index) Close() error {
	return i.writer.Close()
}
