// Package ingest exposes the HTTP intake endpoint for messages
// collected outside the bot, such as a user-account relay.
package ingest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vagabr/vaga-responder/internal/responder"
)

// Processor is the responder surface the endpoint drives.
type Processor interface {
	Process(ctx context.Context, in responder.Inbound) error
}

type payload struct {
	Text   string   `json:"text"`
	Source string   `json:"source"`
	Origin string   `json:"origin"`
	URLs   []string `json:"urls"`
}

// Server wraps the HTTP intake around a processor.
type Server struct {
	processor Processor
	logger    *zap.Logger
	engine    *gin.Engine
}

func NewServer(proc Processor, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{processor: proc, logger: logger, engine: engine}
	engine.POST("/ingest", s.handleIngest)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return s
}

// Handler exposes the router for mounting and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("ingest server started", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleIngest(c *gin.Context) {
	var p payload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if strings.TrimSpace(p.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	source := p.Source
	if source == "" {
		source = "ingest"
	}

	in := responder.Inbound{
		Text:   p.Text,
		Source: source,
		Origin: p.Origin,
		URLs:   p.URLs,
	}
	if err := s.processor.Process(c.Request.Context(), in); err != nil {
		s.logger.Error("ingest processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
