package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"qa-board/domain"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var (
	feedURL string
	origin  string
)

var rootCmd = &cobra.Command{
	Use:          "listener",
	Short:        "Subscribe to the question feed and print every event",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return listen(ctx, feedURL, origin)
	},
}

func init() {
	rootCmd.Flags().StringVar(&feedURL, "url", "ws://localhost:8000/ws/questions", "question feed endpoint")
	rootCmd.Flags().StringVar(&origin, "origin", "http://localhost:3000", "Origin header sent on upgrade")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func listen(ctx context.Context, url, origin string) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, map[string][]string{"Origin": {origin}})
	if err != nil {
		return fmt.Errorf("unable to connect to %s: %w", url, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	fmt.Printf("Listening on %s\n", url)
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("connection closed: %w", err)
		}
		var msg struct {
			Type    domain.EventType `json:"type"`
			Payload json.RawMessage  `json:"payload"`
		}
		if err := json.Unmarshal(frame, &msg); err != nil {
			fmt.Fprintf(os.Stderr, "Malformed frame: %s\n", frame)
			continue
		}
		fmt.Printf("%-18s %s\n", msg.Type, msg.Payload)
	}
}
