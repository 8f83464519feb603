package internal

import (
	"qa-board/errors"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DefaultAllowedOrigins is used when ALLOWED_ORIGINS is left empty.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8000"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`
	InspectorPort  int    `env:"INSPECTOR_PORT,default=8081"`

	AdminToken        string        `env:"ADMIN_TOKEN,required=true"`
	SecretKey         string        `env:"SECRET_KEY,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=720h"`

	// Comma separated lists. go-env splits tag options on commas so defaults live in code.
	AllowedOrigins  string `env:"ALLOWED_ORIGINS"`
	CensoredWords   string `env:"CENSORED_WORDS"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`

	ChannelBufferSize int           `env:"CHANNEL_BUFFER_SIZE,default=64"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	PingInterval      time.Duration `env:"PING_INTERVAL,default=30s"`
	PongTimeout       time.Duration `env:"PONG_TIMEOUT,default=60s"`
	ReadLimit         int64         `env:"READ_LIMIT,default=4096"`

	EventBufferSize int           `env:"EVENT_BUFFER_SIZE,default=256"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,default=5s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=1s"`

	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=15s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=20"`

	RateLimitPerSecond float64       `env:"RATE_LIMIT_PER_SECOND,default=5"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST,default=10"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	SearchLimit        int           `env:"SEARCH_LIMIT,default=20"`
}

// CharacterRune returns the single rune used to mask censored words.
func (c Config) CharacterRune() (rune, error) {
	r := []rune(c.CharReplacement)
	if len(r) != 1 {
		return 0, errors.ErrInvalidReplacement
	}
	return r[0], nil
}

func (c Config) Origins() []string {
	origins := SplitList(c.AllowedOrigins)
	if len(origins) == 0 {
		return DefaultAllowedOrigins
	}
	return origins
}

func (c Config) CensoredWordList() []string {
	return SplitList(c.CensoredWords)
}

// SplitList splits a comma separated value, trimming blanks and dropping empty entries.
func SplitList(value string) []string {
	return lo.FilterMap(strings.Split(value, ","), func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}
