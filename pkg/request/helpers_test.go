package request_test

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/javelin/pkg/request"
)

// recorder collects the notifications of one request.
type recorder struct {
	mu      sync.Mutex
	done    []any
	errs    []any
	finally chan struct{}
}

func record(r *request.Request) *recorder {
	rec := &recorder{finally: make(chan struct{}, 4)}
	r.OnDone(func(payload any) {
		rec.mu.Lock()
		rec.done = append(rec.done, payload)
		rec.mu.Unlock()
	})
	r.OnError(func(errValue any) {
		rec.mu.Lock()
		rec.errs = append(rec.errs, errValue)
		rec.mu.Unlock()
	})
	r.OnFinally(func() {
		rec.finally <- struct{}{}
	})
	return rec
}

func (rec *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-rec.finally:
	case <-time.After(2 * time.Second):
		t.Fatal("request did not finish")
	}
}

func (rec *recorder) snapshot() (done, errs []any) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]any(nil), rec.done...), append([]any(nil), rec.errs...)
}

// stubDoer answers every request with a fixed response. When release is set
// it blocks until release is closed, ignoring the request context.
type stubDoer struct {
	status  int
	body    string
	release chan struct{}
	closed  chan struct{}
	once    sync.Once
}

func newStubDoer(status int, body string) *stubDoer {
	return &stubDoer{status: status, body: body, closed: make(chan struct{})}
}

func (d *stubDoer) Do(req *http.Request) (*http.Response, error) {
	if d.release != nil {
		<-d.release
	}
	return &http.Response{
		StatusCode: d.status,
		Body:       &signalBody{Reader: strings.NewReader(d.body), doer: d},
		Request:    req,
	}, nil
}

// waitClosed blocks until the response body was closed, i.e. the exchange
// goroutine has returned.
func (d *stubDoer) waitClosed(t *testing.T) {
	t.Helper()
	select {
	case <-d.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("response body was never closed")
	}
}

type signalBody struct {
	io.Reader
	doer *stubDoer
}

func (b *signalBody) Close() error {
	b.doer.once.Do(func() { close(b.doer.closed) })
	return nil
}
