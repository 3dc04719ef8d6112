package watch

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	routeIndex  = "/"
	routeEvents = "/events"
	routeReport = "/report.json"
)

const (
	sseEventGraph = "graph"
	sseEventError = "analysis-error"
)

// broker manages SSE client connections and broadcasts analysis snapshots.
type broker struct {
	mu      sync.Mutex
	clients map[chan snapshot]struct{}
	latest  *snapshot
}

func newBroker() *broker {
	return &broker{
		clients: make(map[chan snapshot]struct{}),
	}
}

func (b *broker) subscribe() chan snapshot {
	ch := make(chan snapshot, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	if b.latest != nil {
		ch <- *b.latest
	}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan snapshot) {
	b.mu.Lock()
	delete(b.clients, ch)
	close(ch)
	b.mu.Unlock()
}

func (b *broker) publish(s snapshot) {
	b.mu.Lock()
	b.latest = &s
	for ch := range b.clients {
		select {
		case ch <- s:
		default:
		}
	}
	b.mu.Unlock()
}

func (b *broker) current() (snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest == nil {
		return snapshot{}, false
	}
	return *b.latest, true
}

func newRouter(b *broker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(routeIndex, handleIndex)
	r.Get(routeEvents, handleSSE(b))
	r.Get(routeReport, handleReport(b))
	return r
}

func newServer(b *broker, port int) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: newRouter(b),
	}
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func handleReport(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s, ok := b.current()
		if !ok {
			http.Error(w, "analysis pending", http.StatusServiceUnavailable)
			return
		}
		if s.Err != "" {
			http.Error(w, s.Err, http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(s.Report); err != nil {
			http.Error(w, "failed to write report", http.StatusInternalServerError)
		}
	}
}

func handleSSE(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := b.subscribe()
		defer b.unsubscribe(ch)

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-ch:
				if !ok {
					return
				}
				writeEvent(w, s)
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, s snapshot) {
	event, data := sseEventGraph, s.DOT
	if s.Err != "" {
		event, data = sseEventError, s.Err
	}

	fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprintf(w, "\n")
}
