package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.BaseURL == "" {
		s.T().Skip("E2E_BASE_URL not set")
	}
	s.client = &http.Client{Timeout: 10 * time.Second}
}

// Step prints a header so each scenario step stands out in the test log.
func (s *BaseHTTPSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Do sends a JSON request and returns the status code with the raw body.
func (s *BaseHTTPSuite) Do(method, path string, body any, headers map[string]string) (int, []byte) {
	var reader io.Reader
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, strings.TrimRight(s.Config.BaseURL, "/")+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Failed to reach "+s.Config.BaseURL)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		fmt.Fprintf(&logBuilder, "\nREQUEST:\n%s\nRESPONSE:\n%s", payload, raw)
	}
	s.T().Log(logBuilder.String())
	return resp.StatusCode, raw
}

// DoJSON is Do plus decoding of the response body into out.
func (s *BaseHTTPSuite) DoJSON(method, path string, body any, headers map[string]string, out any) int {
	status, raw := s.Do(method, path, body, headers)
	if out != nil && status < http.StatusBadRequest {
		s.Require().NoError(json.Unmarshal(raw, out), string(raw))
	}
	return status
}

// WithFeed subscribes to the question feed for the duration of fn.
func (s *BaseHTTPSuite) WithFeed(name string, fn func(feed *Feed)) {
	s.Step(name)
	url := "ws" + strings.TrimPrefix(strings.TrimRight(s.Config.BaseURL, "/"), "http") + "/ws/questions"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, http.Header{"Origin": {s.Config.Origin}})
	s.Require().NoError(err, "Failed to open feed at "+url)
	defer conn.Close()

	fn(&Feed{s: s, conn: conn})
}

type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type Feed struct {
	s    *BaseHTTPSuite
	conn *websocket.Conn
}

// Next waits for the next frame of the given type, skipping frames
// produced by concurrent activity on a shared server.
func (f *Feed) Next(eventType string, timeout time.Duration) Event {
	deadline := time.Now().Add(timeout)
	for {
		f.s.Require().NoError(f.conn.SetReadDeadline(deadline))
		_, frame, err := f.conn.ReadMessage()
		f.s.Require().NoError(err, "no %s frame before deadline", eventType)

		var evt Event
		f.s.Require().NoError(json.Unmarshal(frame, &evt))
		if evt.Type == eventType {
			return evt
		}
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
