package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type echoLen struct{ err error }

func (e *echoLen) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(r.Body)
	e.err = err
	if err != nil {
		http.Error(w, "read", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(r.Method + " " + string(b)))
}

func TestServer_Routes(t *testing.T) {
	ts := httptest.NewServer(New(":0", &echoLen{}, nil).Handler())
	defer ts.Close()

	res, err := http.Post(ts.URL+"/", "application/json", strings.NewReader(`{"type":1}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if string(body) != `POST {"type":1}` {
		t.Errorf("interactions handler not reached: %q", body)
	}

	res, err = http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected healthz 200, got %d", res.StatusCode)
	}
}

func TestServer_RejectsLargeBodies(t *testing.T) {
	h := &echoLen{}
	srv := New(":0", h, nil)

	big := strings.Repeat("x", MaxBody+1)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}

	// sin Content-Length el límite lo pone MaxBytesReader
	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader(big)))
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if h.err == nil {
		t.Error("expected read error past the limit")
	}
}

func TestServer_StartShutdown(t *testing.T) {
	srv := New("127.0.0.1:0", &echoLen{}, nil)
	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("graceful shutdown must not be an error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return")
	}
}
