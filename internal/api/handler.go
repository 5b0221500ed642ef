// Package api exposes a Board to rendering and interaction clients over
// HTTP: JSON commands and queries mirroring the Board's mutation and query
// methods, plus a server-sent snapshot stream that replaces polling.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bb "github.com/logiclab/breadboard"
	"github.com/logiclab/breadboard/internal/config"
	"github.com/logiclab/breadboard/internal/metrics"
	"github.com/logiclab/breadboard/logger"
)

// A ConfigSource provides the current service configuration. Handlers read
// it per request, so a hot reload takes effect without a restart.
type ConfigSource interface {
	Config() *config.Config
}

// Handler holds all HTTP handler dependencies.
type Handler struct {
	board *bb.Board
	cfg   ConfigSource
	feed  *feed
	mux   *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(board *bb.Board, cfg ConfigSource) http.Handler {
	h := &Handler{board: board, cfg: cfg, feed: newFeed(board, cfg), mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /v1/board", h.getBoard)
	h.mux.HandleFunc("POST /v1/gates", h.addGate)
	h.mux.HandleFunc("DELETE /v1/gates/{id}", h.removeGate)
	h.mux.HandleFunc("PUT /v1/gates/{id}/input", h.setInput)
	h.mux.HandleFunc("PUT /v1/gates/{id}/position", h.moveGate)
	h.mux.HandleFunc("POST /v1/wires", h.addWire)
	h.mux.HandleFunc("DELETE /v1/wires/{id}", h.removeWire)
	h.mux.HandleFunc("GET /v1/events", h.events)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// timed runs one board call, recording its latency and outcome under op.
func timed(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.MutationDuration.Observe(float64(time.Since(start).Microseconds()) / 1e3)
	if err != nil {
		metrics.Mutations.WithLabelValues(op, "rejected").Inc()
		return err
	}
	metrics.Mutations.WithLabelValues(op, "ok").Inc()
	return nil
}

// httpStatus maps board mutation errors onto HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, bb.ErrInvalidReference):
		return http.StatusNotFound
	case errors.Is(err, bb.ErrSlotOccupied):
		return http.StatusConflict
	case errors.Is(err, bb.ErrNotInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the {id} path segment, answering 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", r.PathValue("id")))
		return 0, false
	}
	return id, true
}

// GET /v1/board — full snapshot of gates, wires and settled outputs.
func (h *Handler) getBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.Snapshot())
}

// POST /v1/gates — create a gate.
func (h *Handler) addGate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind  string `json:"kind"`
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	kind, err := bb.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if max := h.cfg.Config().Limits.MaxGates; max > 0 && len(h.board.Snapshot().Gates) >= max {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("gate limit %d reached", max))
		return
	}

	var id bb.GateID
	_ = timed("add_gate", func() error {
		id = h.board.AddGate(kind, req.Label)
		return nil
	})
	g, _ := h.board.Gate(id)
	writeJSON(w, http.StatusCreated, g)
}

// DELETE /v1/gates/{id} — remove a gate and every wire touching it.
// Removing an unknown gate is a no-op, not an error.
func (h *Handler) removeGate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_ = timed("remove_gate", func() error {
		h.board.RemoveGate(bb.GateID(id))
		return nil
	})
	w.WriteHeader(http.StatusNoContent)
}

// PUT /v1/gates/{id}/input — set the stimulus value of an Input gate.
func (h *Handler) setInput(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Value bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	err := timed("set_input", func() error {
		return h.board.SetInput(bb.GateID(id), req.Value)
	})
	if err != nil {
		writeError(w, httpStatus(err), err.Error())
		return
	}
	g, _ := h.board.Gate(bb.GateID(id))
	writeJSON(w, http.StatusOK, g)
}

// PUT /v1/gates/{id}/position — move a gate on the canvas. Position is
// display state: outputs are untouched.
func (h *Handler) moveGate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	gid := bb.GateID(id)
	if _, found := h.board.Gate(gid); !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no gate %d", id))
		return
	}
	_ = timed("move_gate", func() error {
		h.board.MoveGate(gid, req.X, req.Y)
		return nil
	})
	g, _ := h.board.Gate(gid)
	writeJSON(w, http.StatusOK, g)
}

// POST /v1/wires — connect a source gate's output to one input slot.
func (h *Handler) addWire(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source bb.GateID `json:"source"`
		Dest   bb.GateID `json:"dest"`
		Slot   int       `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if max := h.cfg.Config().Limits.MaxWires; max > 0 && len(h.board.Snapshot().Wires) >= max {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("wire limit %d reached", max))
		return
	}

	var id bb.WireID
	err := timed("add_wire", func() error {
		var err error
		id, err = h.board.AddWire(req.Source, req.Dest, req.Slot)
		return err
	})
	if err != nil {
		writeError(w, httpStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, bb.Wire{ID: id, Source: req.Source, Dest: req.Dest, Slot: req.Slot})
}

// DELETE /v1/wires/{id} — remove a wire, freeing the slot it drove.
func (h *Handler) removeWire(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_ = timed("remove_wire", func() error {
		h.board.RemoveWire(bb.WireID(id))
		return nil
	})
	w.WriteHeader(http.StatusNoContent)
}

// GET /healthz — liveness probe.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loggingMiddleware logs one line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log := logger.Logger()
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("dur", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush forwards to the wrapped writer so the event stream can flush
// through the middleware.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
