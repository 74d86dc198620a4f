package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vagabr/vaga-responder/internal/responder"
)

type stubProcessor struct {
	inbound []responder.Inbound
	err     error
}

func (s *stubProcessor) Process(_ context.Context, in responder.Inbound) error {
	s.inbound = append(s.inbound, in)
	return s.err
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIngestAccepted(t *testing.T) {
	proc := &stubProcessor{}
	srv := NewServer(proc, zap.NewNop())

	w := post(t, srv.Handler(), `{"text":"vaga node senior","source":"relay:vagas","urls":["https://example.com/v"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("body = %s, want ok:true", w.Body.String())
	}

	if len(proc.inbound) != 1 {
		t.Fatalf("processed %d messages, want 1", len(proc.inbound))
	}
	in := proc.inbound[0]
	if in.Text != "vaga node senior" || in.Source != "relay:vagas" {
		t.Errorf("inbound = %+v", in)
	}
	if len(in.URLs) != 1 || in.URLs[0] != "https://example.com/v" {
		t.Errorf("URLs = %v", in.URLs)
	}
}

func TestIngestDefaultsSource(t *testing.T) {
	proc := &stubProcessor{}
	srv := NewServer(proc, zap.NewNop())

	w := post(t, srv.Handler(), `{"text":"vaga"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if proc.inbound[0].Source != "ingest" {
		t.Errorf("Source = %q, want ingest", proc.inbound[0].Source)
	}
}

func TestIngestRejectsMissingText(t *testing.T) {
	proc := &stubProcessor{}
	srv := NewServer(proc, zap.NewNop())

	for _, body := range []string{`{}`, `{"text":"   "}`, `not json`} {
		w := post(t, srv.Handler(), body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
	if len(proc.inbound) != 0 {
		t.Errorf("processed %d messages, want 0", len(proc.inbound))
	}
}

func TestIngestProcessingFailure(t *testing.T) {
	proc := &stubProcessor{err: errors.New("smtp down")}
	srv := NewServer(proc, zap.NewNop())

	w := post(t, srv.Handler(), `{"text":"vaga node"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "smtp down") {
		t.Errorf("body = %s", w.Body.String())
	}
}
