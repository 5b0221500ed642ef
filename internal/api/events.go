package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	bb "github.com/logiclab/breadboard"
	"github.com/logiclab/breadboard/internal/metrics"
	"github.com/logiclab/breadboard/logger"
)

// feed fans board snapshots out to event-stream clients.
//
// Every client owns a small buffered channel. When a client lags, its oldest
// queued snapshot is dropped to make room, so streams converge on the newest
// version and a slow reader only costs itself intermediate frames.
type feed struct {
	cfg ConfigSource

	mu      sync.Mutex
	last    uint64
	clients map[string]chan bb.Snapshot
}

func newFeed(board *bb.Board, cfg ConfigSource) *feed {
	f := &feed{cfg: cfg, clients: make(map[string]chan bb.Snapshot)}
	snap := board.Snapshot()
	metrics.Gates.Set(float64(len(snap.Gates)))
	metrics.Wires.Set(float64(len(snap.Wires)))
	board.OnChange(f.broadcast)
	return f
}

// broadcast queues snap for every connected client and refreshes the board
// size gauges. Listeners run outside the board lock, so when mutations race
// an older snapshot can arrive after the newer one that subsumes it; those
// are dropped here, keeping the feed version-monotonic.
func (f *feed) broadcast(snap bb.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if snap.Version <= f.last {
		return
	}
	f.last = snap.Version
	metrics.Gates.Set(float64(len(snap.Gates)))
	metrics.Wires.Set(float64(len(snap.Wires)))

	for _, ch := range f.clients {
		select {
		case ch <- snap:
		default:
			// full: drop the client's oldest frame, then queue the new one
			select {
			case <-ch:
				metrics.SnapshotsDropped.Inc()
			default:
			}
			select {
			case ch <- snap:
			default:
				metrics.SnapshotsDropped.Inc()
			}
		}
	}
}

func (f *feed) subscribe() (string, chan bb.Snapshot) {
	id := uuid.New().String()
	ch := make(chan bb.Snapshot, f.cfg.Config().Events.ClientBuffer)
	f.mu.Lock()
	f.clients[id] = ch
	f.mu.Unlock()
	metrics.EventClients.Inc()
	return id, ch
}

func (f *feed) unsubscribe(id string) {
	f.mu.Lock()
	delete(f.clients, id)
	f.mu.Unlock()
	metrics.EventClients.Dec()
}

// GET /v1/events — server-sent snapshot stream.
//
// The client receives the current snapshot on connect, then one event per
// applied board transition. Events carry the snapshot version as their SSE
// id and are coalesced when the client cannot keep up: versions on one
// stream only ever increase. Comment lines serve as heartbeats.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	id, ch := h.feed.subscribe()
	defer h.feed.unsubscribe(id)
	log := logger.Logger().With().Str("client", id).Logger()
	log.Info().Msg("event stream open")
	defer log.Info().Msg("event stream closed")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// subscribed before this snapshot was taken, so anything the channel
	// already holds is superseded by it and the version check below skips it
	last := h.board.Snapshot()
	if writeEvent(w, last) != nil {
		return
	}
	fl.Flush()

	heartbeat := time.NewTicker(h.cfg.Config().Events.Heartbeat())
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			fl.Flush()
		case snap := <-ch:
			if snap.Version <= last.Version {
				continue
			}
			last = snap
			if writeEvent(w, snap) != nil {
				return
			}
			fl.Flush()
		}
	}
}

// writeEvent frames one snapshot as an SSE event.
func writeEvent(w io.Writer, snap bb.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: %s\n\n", snap.Version, data)
	return err
}
