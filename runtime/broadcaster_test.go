package runtime

import (
	"context"
	"log/slog"
	"qa-board/domain"
	"qa-board/errors"
	"qa-board/mocks"
	"qa-board/observability"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBroadcaster_Announce_NewQuestion_Frame(t *testing.T) {
	req := require.New(t)
	registry, metrics := newTestRegistry()
	a, b := newFakeChannel(), newFakeChannel()
	registry.Register(a)
	registry.Register(b)
	broadcaster := NewBroadcaster(logs.GetLoggerFromLevel(slog.LevelDebug), registry, metrics, nil)

	question := domain.Question{
		ID:        1,
		Message:   "hi",
		Status:    domain.StatusPending,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Answers:   []domain.Answer{},
	}

	// When a new question is announced
	err := broadcaster.Announce(context.Background(), domain.NewQuestion{Question: question})
	req.NoError(err)

	// Then every open channel gets exactly one frame with the envelope
	expected := `{"type":"NEW_QUESTION","payload":{"id":1,"message":"hi","status":"pending",` +
		`"created_at":"2024-01-01T00:00:00Z","was_escalated":false,"answers":[]}}`
	for _, ch := range []*fakeChannel{a, b} {
		frames := ch.received()
		req.Len(frames, 1)
		req.JSONEq(expected, string(frames[0]))
	}
	req.Equal(float64(1), testutil.ToFloat64(metrics.EventsAnnounced.WithLabelValues("NEW_QUESTION")))
}

func TestBroadcaster_Announce_Inlines_Answers_And_Never_Sends_Null(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	// Given a question whose answers were never loaded
	frame, err := Encode(domain.QuestionUpdated{Question: domain.Question{ID: 4, Status: domain.StatusEscalated, WasEscalated: true, CreatedAt: at}})
	req.NoError(err)
	req.JSONEq(`{"type":"QUESTION_UPDATED","payload":{"id":4,"message":"","status":"escalated",
		"created_at":"2024-05-06T07:08:09Z","was_escalated":true,"answers":[]}}`, string(frame))

	// Given a question with answers
	frame, err = Encode(domain.QuestionUpdated{Question: domain.Question{
		ID: 4, Status: domain.StatusAnswered, CreatedAt: at,
		Answers: []domain.Answer{{ID: 9, QuestionID: 4, UserName: "ann", Message: "yes", CreatedAt: at}},
	}})
	req.NoError(err)
	req.JSONEq(`{"type":"QUESTION_UPDATED","payload":{"id":4,"message":"","status":"answered",
		"created_at":"2024-05-06T07:08:09Z","was_escalated":false,
		"answers":[{"id":9,"user_name":"ann","message":"yes","created_at":"2024-05-06T07:08:09Z"}]}}`, string(frame))
}

func TestBroadcaster_Announce_NewAnswer_Frame(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	frame, err := Encode(domain.NewAnswer{Answer: domain.Answer{
		ID: 3, QuestionID: 1, UserName: "bob", Message: "42", CreatedAt: at,
	}})

	req.NoError(err)
	req.JSONEq(`{"type":"NEW_ANSWER","payload":{"question_id":1,"id":3,"user_name":"bob",
		"message":"42","created_at":"2024-01-02T03:04:05Z"}}`, string(frame))
}

func TestBroadcaster_Announce_SerializationError_Sends_Nothing(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	registry := mocks.NewMockIRegistry(ctrl)
	events := make(chan domain.Event, 1)
	broadcaster := NewBroadcaster(logs.GetLoggerFromLevel(slog.LevelDebug), registry, metrics, events)

	// Given a timestamp that has no RFC 3339 representation
	question := domain.Question{ID: 1, CreatedAt: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)}

	// Then the registry must never be reached
	registry.EXPECT().Broadcast(gomock.Any()).Times(0)

	err := broadcaster.Announce(context.Background(), domain.NewQuestion{Question: question})

	var serializationErr *errors.SerializationError
	req.ErrorAs(err, &serializationErr)
	req.Equal("NEW_QUESTION", serializationErr.EventType)
	req.Empty(events)
	req.Equal(float64(1), testutil.ToFloat64(metrics.SerializationFailures))
}

func TestBroadcaster_Forwards_Events_Without_Blocking(t *testing.T) {
	req := require.New(t)
	registry, metrics := newTestRegistry()
	events := make(chan domain.Event, 1)
	broadcaster := NewBroadcaster(logs.GetLoggerFromLevel(slog.LevelDebug), registry, metrics, events)
	first := domain.NewQuestion{Question: domain.Question{ID: 1}}
	second := domain.NewQuestion{Question: domain.Question{ID: 2}}

	// When more events are announced than the queue holds
	req.NoError(broadcaster.Announce(context.Background(), first))
	req.NoError(broadcaster.Announce(context.Background(), second))

	// Then the first is queued and the overflow is dropped
	req.Len(events, 1)
	req.Equal(first, <-events)
	req.Equal(float64(1), testutil.ToFloat64(metrics.EventsDropped))
}
