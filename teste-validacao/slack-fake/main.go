// slack-fake imita o chat.postMessage do Slack para validar o notifier localmente.
//
//	go run ./teste-validacao/slack-fake
//	SLACK_API_URL=http://localhost:8081/api/ SLACK_BOT_TOKEN=xoxb-fake go run ./cmd/jobs-api
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	e := newServer(log.Logger)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("slack-fake listening")
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

func newServer(l zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.POST("/api/chat.postMessage", func(c echo.Context) error {
		channel := c.FormValue("channel")
		if channel == "" {
			return c.JSON(http.StatusOK, map[string]any{"ok": false, "error": "channel_not_found"})
		}

		ev := l.Info().Str("channel", channel).Str("text", c.FormValue("text"))
		if raw := c.FormValue("blocks"); raw != "" {
			ev = ev.RawJSON("blocks", json.RawMessage(raw))
		}
		ev.Msg("chat.postMessage")

		return c.JSON(http.StatusOK, map[string]any{
			"ok":      true,
			"channel": channel,
			"ts":      time.Now().Format("20060102150405.000000"),
		})
	})
	return e
}
