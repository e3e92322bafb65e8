package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/ytfetch/internal/model"
)

// Backend names
const (
	BackendYouTube = "youtube"
	BackendYTDLP   = "ytdlp"
)

// DefaultFetchTimeout bounds connection setup while fetching a catalog.
const DefaultFetchTimeout = 30 * time.Second

var (
	// ErrUnknownBackend is returned by New for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown catalog backend")
	// ErrUnavailable means the video cannot be fetched (private, removed, restricted).
	ErrUnavailable = errors.New("video unavailable")
	// ErrStreamNotFound means the requested itag is not in the video's catalog.
	ErrStreamNotFound = errors.New("stream not found in catalog")
)

// ProgressFunc receives bytes written so far and the total (0 if unknown).
type ProgressFunc func(downloaded, total int64)

// TransferRequest describes one stream transfer.
type TransferRequest struct {
	Video     *model.Video
	Stream    model.Stream
	Directory string
	Filename  string
	Timeout   time.Duration
	Progress  ProgressFunc
}

// Fetcher returns the stream catalog of a video.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.Video, error)
}

// Transferer downloads one stream and reports the local path it wrote.
type Transferer interface {
	Transfer(ctx context.Context, req TransferRequest) (string, error)
}

// Backend is a catalog source that can also transfer its streams.
type Backend interface {
	Fetcher
	Transferer
}

// New returns the backend registered under name.
func New(name string, log zerolog.Logger) (Backend, error) {
	switch name {
	case BackendYouTube:
		return NewYouTubeBackend(DefaultFetchTimeout, log), nil
	case BackendYTDLP:
		return NewYTDLPBackend(DefaultFetchTimeout, log), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownBackend, name, BackendYouTube, BackendYTDLP)
	}
}

// Names lists the supported backends.
func Names() []string {
	return []string{BackendYouTube, BackendYTDLP}
}

// newHTTPClient bounds dial, TLS handshake, the wait for response headers and
// every socket read or write by timeout. A stalled body fails once no byte
// arrives for timeout; a slow but steady one is never cut off.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	dialer := &net.Dialer{Timeout: timeout}
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				conn, err := dialer.DialContext(ctx, network, addr)
				if err != nil {
					return nil, err
				}
				return &idleTimeoutConn{Conn: conn, timeout: timeout}, nil
			},
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// idleTimeoutConn pushes the connection deadline forward before every read
// and write.
type idleTimeoutConn struct {
	net.Conn
	timeout time.Duration
}

func (c *idleTimeoutConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

func (c *idleTimeoutConn) Write(b []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Write(b)
}

// progressWriter counts bytes passing through it.
type progressWriter struct {
	written int64
	total   int64
	fn      ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.fn != nil {
		p.fn(p.written, p.total)
	}
	return len(b), nil
}

// copyWithContext copies src into dst until EOF or ctx is done.
func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}

// teeReader mirrors reads into w, reporting progress as bytes arrive.
type teeReader struct {
	r io.Reader
	w io.Writer
}

func (t teeReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		_, _ = t.w.Write(p[:n])
	}
	return n, err
}
