package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/ytdlp/v2/errs"
)

func TestNew(t *testing.T) {
	log := zerolog.Nop()

	b, err := New(BackendYouTube, log)
	if err != nil {
		t.Fatalf("New(youtube) error = %v", err)
	}
	if _, ok := b.(*YouTubeBackend); !ok {
		t.Errorf("New(youtube) = %T", b)
	}

	b, err = New(BackendYTDLP, log)
	if err != nil {
		t.Fatalf("New(ytdlp) error = %v", err)
	}
	if _, ok := b.(*YTDLPBackend); !ok {
		t.Errorf("New(ytdlp) = %T", b)
	}

	if _, err := New("vimeo", log); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(vimeo) error = %v, want ErrUnknownBackend", err)
	}
}

func TestCopyWithContextReportsProgress(t *testing.T) {
	var calls []int64
	pw := &progressWriter{total: 10, fn: func(done, total int64) {
		if total != 10 {
			t.Errorf("total = %d, want 10", total)
		}
		calls = append(calls, done)
	}}
	var dst bytes.Buffer

	n, err := copyWithContext(context.Background(), &dst, teeReader{r: strings.NewReader("0123456789"), w: pw})
	if err != nil {
		t.Fatalf("copyWithContext() error = %v", err)
	}
	if n != 10 || dst.String() != "0123456789" {
		t.Errorf("copied %d bytes %q", n, dst.String())
	}
	if len(calls) == 0 || calls[len(calls)-1] != 10 {
		t.Errorf("progress calls = %v, want last = 10", calls)
	}
}

func TestCopyWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dst bytes.Buffer
	_, err := copyWithContext(ctx, &dst, strings.NewReader("data"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if dst.Len() != 0 {
		t.Errorf("wrote %d bytes after cancel", dst.Len())
	}
}

func TestClassifyYTDLPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{"private", errs.ErrPrivate, true},
		{"wrapped geo block", fmt.Errorf("resolve: %w", errs.ErrGeoBlocked), true},
		{"age restricted", errs.ErrAgeRestricted, true},
		{"unavailable", errs.ErrVideoUnavailable, true},
		{"rate limited", errs.ErrRateLimited, false},
		{"message only", errors.New("video is private"), false},
		{"transport", errors.New("download failed: EOF"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyYTDLPError(tt.err)
			if got := errors.Is(err, ErrUnavailable); got != tt.unavailable {
				t.Errorf("errors.Is(%v, ErrUnavailable) = %v, want %v", err, got, tt.unavailable)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("classified error %v lost the cause", err)
			}
		})
	}
}

func TestNewHTTPClientDefaultsTimeout(t *testing.T) {
	if c := newHTTPClient(0); c.Transport == nil {
		t.Fatal("expected a transport")
	}
}

// trickleServer sends the first n bytes of a 1000 byte body, one every gap,
// then holds the connection open until the test ends.
func trickleServer(t *testing.T, n int, gap time.Duration) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(http.StatusOK)
		for i := 0; i < n; i++ {
			_, _ = w.Write([]byte{'x'})
			w.(http.Flusher).Flush()
			time.Sleep(gap)
		}
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

func TestHTTPClientFailsStalledBody(t *testing.T) {
	srv := trickleServer(t, 3, 0)
	client := newHTTPClient(200 * time.Millisecond)

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()

	start := time.Now()
	_, err = io.ReadAll(resp.Body)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("ReadAll() error = nil, want the stalled body to fail")
	}
	if elapsed > 2*time.Second {
		t.Errorf("stalled read returned after %s, want about 200ms", elapsed)
	}
}

func TestHTTPClientKeepsSlowSteadyBody(t *testing.T) {
	// 8 bytes at 50ms each outlast the 200ms timeout in total but never idle that long
	srv := trickleServer(t, 8, 50*time.Millisecond)
	client := newHTTPClient(200 * time.Millisecond)

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()

	buf := make([]byte, 8)
	if _, err := io.ReadFull(resp.Body, buf); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	if string(buf) != "xxxxxxxx" {
		t.Errorf("body = %q", buf)
	}
}
