package sink

import (
	"context"
	"fmt"
	"log/slog"
	"qa-board/domain"
	"qa-board/mocks"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSearchSink_Indexes_Question_Events(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	searcher := mocks.NewMockISearcher(ctrl)
	sink := NewSearchSink(searcher, logs.GetLoggerFromLevel(slog.LevelDebug))
	question := domain.NewPendingQuestion(1, "hello", time.Now().UTC())

	// Both question events are indexed
	searcher.EXPECT().Index(question).Return(nil).Times(2)

	req.NoError(sink.Consume(context.Background(), domain.NewQuestion{Question: question}))
	req.NoError(sink.Consume(context.Background(), domain.QuestionUpdated{Question: question}))
}

func TestSearchSink_Ignores_Answers(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	searcher := mocks.NewMockISearcher(ctrl)
	sink := NewSearchSink(searcher, logs.GetLoggerFromLevel(slog.LevelDebug))

	searcher.EXPECT().Index(gomock.Any()).Times(0)

	req.NoError(sink.Consume(context.Background(), domain.NewAnswer{Answer: domain.Answer{ID: 1}}))
}

func TestSearchSink_Propagates_Index_Error(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	searcher := mocks.NewMockISearcher(ctrl)
	sink := NewSearchSink(searcher, logs.GetLoggerFromLevel(slog.LevelDebug))

	searcher.EXPECT().Index(gomock.Any()).Return(fmt.Errorf("disk full"))

	err := sink.Consume(context.Background(), domain.NewQuestion{})
	req.EqualError(err, "disk full")
}

func TestSearchSink_Cancelled_Context(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	searcher := mocks.NewMockISearcher(ctrl)
	sink := NewSearchSink(searcher, logs.GetLoggerFromLevel(slog.LevelDebug))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	searcher.EXPECT().Index(gomock.Any()).Times(0)

	req.ErrorIs(sink.Consume(ctx, domain.NewQuestion{}), context.Canceled)
}
