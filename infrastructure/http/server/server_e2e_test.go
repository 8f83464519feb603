package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"qa-board/auth"
	"qa-board/domain"
	"qa-board/infrastructure/search"
	qaws "qa-board/infrastructure/websocket"
	"qa-board/moderation"
	"qa-board/observability"
	"qa-board/repositories"
	"qa-board/runtime"
	"qa-board/runtime/workers"
	"qa-board/services"
	"qa-board/sink"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const e2eAdminToken = "e2e-admin"

type e2eStack struct {
	http     *httptest.Server
	registry *runtime.Registry
}

func newE2EStack(t *testing.T) e2eStack {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	clock := clockwork.NewRealClock()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	questionRepo, err := repositories.NewQuestionRepository(db, log)
	req.NoError(err)
	index, err := search.Open(t.TempDir(), log)
	req.NoError(err)
	moderator, err := moderation.NewModerator([]string{"badger"}, '*', log)
	req.NoError(err)

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	registry := runtime.NewRegistry(log, metrics)
	events := make(chan domain.Event, 16)
	broadcaster := runtime.NewBroadcaster(log, registry, metrics, events)
	fanout := workers.NewEventFanout(log, events, time.Second).Add(sink.NewSearchSink(index, log))
	ctx, cancel := context.WithCancel(context.Background())
	fanoutDone := make(chan struct{})
	go func() {
		_ = fanout.Run(ctx)
		close(fanoutDone)
	}()

	questions := services.NewQuestionService(questionRepo, broadcaster, index, moderator, clock, log, 10)
	authService := services.NewAuthService(repositories.NewUserRepository(db),
		auth.NewTokenIssuer("e2e-secret", time.Hour, clock), e2eAdminToken, log)
	ws := qaws.NewHandler(registry, clock, log, qaws.Options{
		BufferSize:   16,
		WriteTimeout: time.Second,
		PingInterval: time.Minute,
		PongTimeout:  time.Minute,
	}, []string{"*"})

	srv := NewServer(Config{RateLimitPerSecond: 1000, RateLimitBurst: 1000}, questions, authService, ws, reg, log)
	httpServer := httptest.NewServer(srv)
	t.Cleanup(func() {
		cancel()
		<-fanoutDone
		registry.CloseAll()
		httpServer.Close()
		_ = index.Close()
		_ = questionRepo.Close()
		_ = db.Close()
	})
	return e2eStack{http: httpServer, registry: registry}
}

func (s e2eStack) call(t *testing.T, method, path, body string, headers ...string) (int, string) {
	t.Helper()
	r, err := http.NewRequest(method, s.http.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	r.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}
	resp, err := http.DefaultClient.Do(r)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var f frame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestEndToEnd_Question_Lifecycle_Is_Pushed(t *testing.T) {
	req := require.New(t)
	stack := newE2EStack(t)

	// Given a subscriber
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(stack.http.URL, "http")+"/ws/questions", nil)
	req.NoError(err)
	defer conn.Close()
	req.Eventually(func() bool { return stack.registry.Len() == 1 }, time.Second, 10*time.Millisecond)

	// When a question is posted
	status, body := stack.call(t, http.MethodPost, "/questions", `{"user_name":"alice","message":"Is the badger room open?"}`)
	req.Equal(http.StatusOK, status, body)

	// Then the subscriber receives it, moderated and with an empty answer list
	f := readFrame(t, conn)
	req.Equal("NEW_QUESTION", f.Type)
	var question domain.Question
	req.NoError(json.Unmarshal(f.Payload, &question))
	req.Equal("Is the ****** room open?", question.Message)
	req.Equal(domain.StatusPending, question.Status)
	req.Contains(string(f.Payload), `"answers":[]`)

	// When someone answers
	status, body = stack.call(t, http.MethodPost, "/questions/1/answers", `{"user_name":"bob","message":"Yes, until 6pm"}`)
	req.Equal(http.StatusOK, status, body)

	f = readFrame(t, conn)
	req.Equal("NEW_ANSWER", f.Type)
	var answer domain.AnswerPayload
	req.NoError(json.Unmarshal(f.Payload, &answer))
	req.Equal(int64(1), answer.QuestionID)
	req.Equal("bob", answer.UserName)

	// When an admin escalates without credentials it is refused and nothing is pushed
	status, _ = stack.call(t, http.MethodPatch, "/questions/1/escalate", "")
	req.Equal(http.StatusUnauthorized, status)

	status, body = stack.call(t, http.MethodPatch, "/questions/1/escalate", "", auth.AdminTokenHeader, e2eAdminToken)
	req.Equal(http.StatusOK, status, body)

	// Then the update carries the inlined answers
	f = readFrame(t, conn)
	req.Equal("QUESTION_UPDATED", f.Type)
	req.NoError(json.Unmarshal(f.Payload, &question))
	req.Equal(domain.StatusEscalated, question.Status)
	req.True(question.WasEscalated)
	req.Len(question.Answers, 1)
}

func TestEndToEnd_Register_Then_Admin_With_Bearer(t *testing.T) {
	req := require.New(t)
	stack := newE2EStack(t)

	status, body := stack.call(t, http.MethodPost, "/questions", `{"message":"first"}`)
	req.Equal(http.StatusOK, status, body)

	status, body = stack.call(t, http.MethodPost, "/register", `{"username":"carol","email":"carol@example.com","password":"secret123"}`)
	req.Equal(http.StatusOK, status, body)
	var token tokenResponse
	req.NoError(json.Unmarshal([]byte(body), &token))
	req.Equal("bearer", token.TokenType)

	status, _ = stack.call(t, http.MethodPost, "/register", `{"username":"carol2","email":"carol@example.com","password":"secret123"}`)
	req.Equal(http.StatusBadRequest, status)

	status, body = stack.call(t, http.MethodPost, "/login", `{"email":"carol@example.com","password":"secret123"}`)
	req.Equal(http.StatusOK, status, body)

	status, body = stack.call(t, http.MethodPatch, "/questions/1/answer", "", "Authorization", "Bearer "+token.AccessToken)
	req.Equal(http.StatusOK, status, body)
	req.Contains(body, `"status":"answered"`)
}

func TestEndToEnd_Search(t *testing.T) {
	req := require.New(t)
	stack := newE2EStack(t)

	for _, message := range []string{"Where is the parking?", "When does lunch start?"} {
		status, body := stack.call(t, http.MethodPost, "/questions", `{"message":"`+message+`"}`)
		req.Equal(http.StatusOK, status, body)
	}

	// Indexing is asynchronous, through the fanout worker
	req.Eventually(func() bool {
		status, body := stack.call(t, http.MethodGet, "/questions/search?q=parking", "")
		return status == http.StatusOK && strings.Contains(body, "Where is the parking?")
	}, 2*time.Second, 20*time.Millisecond)

	status, body := stack.call(t, http.MethodGet, "/questions/search?q=parking", "")
	req.Equal(http.StatusOK, status)
	req.NotContains(body, "lunch")

	status, body = stack.call(t, http.MethodGet, "/questions/search?q=", "")
	req.Equal(http.StatusBadRequest, status, body)
}
