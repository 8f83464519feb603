package internal_test

import (
	"qa-board/errors"
	"qa-board/internal"
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)

	// Given only the required variables
	es := env.EnvSet{
		"BADGER_FILEPATH": "/tmp/badger",
		"BLUGE_FILEPATH":  "/tmp/bluge",
		"ADMIN_TOKEN":     "admin",
		"SECRET_KEY":      "secret",
	}

	// When the environment is unmarshalled
	var config internal.Config
	err := env.Unmarshal(es, &config)

	// Then every optional value falls back to its default
	req.NoError(err)
	req.Equal("0.0.0.0", config.Host)
	req.Equal(8000, config.Port)
	req.Equal("INFO", config.LogLevel)
	req.Equal(720*time.Hour, config.AuthTokenDuration)
	req.Equal(internal.DefaultAllowedOrigins, config.Origins())
	req.Empty(config.CensoredWordList())
	r, err := config.CharacterRune()
	req.NoError(err)
	req.Equal('*', r)
}

func TestConfig_MissingSecret(t *testing.T) {
	req := require.New(t)

	es := env.EnvSet{
		"BADGER_FILEPATH": "/tmp/badger",
		"BLUGE_FILEPATH":  "/tmp/bluge",
		"ADMIN_TOKEN":     "admin",
	}

	var config internal.Config
	err := env.Unmarshal(es, &config)

	req.Error(err)
}

func TestConfig_Lists(t *testing.T) {
	req := require.New(t)

	config := internal.Config{
		AllowedOrigins: " https://board.example.com ,,http://localhost:5173",
		CensoredWords:  "badword, worse ,",
	}

	req.Equal([]string{"https://board.example.com", "http://localhost:5173"}, config.Origins())
	req.Equal([]string{"badword", "worse"}, config.CensoredWordList())
}

func TestConfig_CharacterRune(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  rune
		err   error
	}{
		{name: "ascii", value: "#", want: '#'},
		{name: "multibyte", value: "€", want: '€'},
		{name: "empty", value: "", err: errors.ErrInvalidReplacement},
		{name: "too long", value: "**", err: errors.ErrInvalidReplacement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got, err := internal.Config{CharReplacement: tt.value}.CharacterRune()
			if tt.err != nil {
				req.ErrorIs(err, tt.err)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, got)
		})
	}
}
