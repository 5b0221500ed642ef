package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bb "github.com/logiclab/breadboard"
	"github.com/logiclab/breadboard/internal/config"
)

func TestEventStream(t *testing.T) {
	assert := require.New(t)
	board := bb.New()
	in := board.AddGate(bb.Input, "a")
	not := board.AddGate(bb.Not, "")
	_, err := board.AddWire(in, not, 0)
	assert.NoError(err)
	srv := newTestServer(t, board, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/events", nil)
	assert.NoError(err)
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(err)
	defer resp.Body.Close()
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal("text/event-stream", resp.Header.Get("Content-Type"))

	sc := bufio.NewScanner(resp.Body)
	next := func() bb.Snapshot {
		for sc.Scan() {
			line := sc.Text()
			if strings.HasPrefix(line, "data: ") {
				var s bb.Snapshot
				assert.NoError(json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &s))
				return s
			}
		}
		t.Fatalf("stream ended early: %v", sc.Err())
		return bb.Snapshot{}
	}

	// the snapshot at connect time arrives first
	first := next()
	assert.Equal(board.Version(), first.Version)
	assert.Len(first.Gates, 2)
	assert.Len(first.Wires, 1)

	// a mutation pushes a newer snapshot with the settled outputs
	assert.NoError(board.SetInput(in, true))
	second := next()
	assert.Greater(second.Version, first.Version)
	g, ok := second.Gate(not)
	assert.True(ok)
	assert.False(g.Out)

	// versions on one stream only increase
	_, err = board.ToggleInput(in)
	assert.NoError(err)
	third := next()
	assert.Greater(third.Version, second.Version)
}

func TestFeedCoalesces(t *testing.T) {
	assert := require.New(t)
	cfg := config.Default()
	cfg.Events.ClientBuffer = 1
	board := bb.New()
	f := newFeed(board, config.Static{C: cfg})

	id, ch := f.subscribe()
	defer f.unsubscribe(id)

	// three broadcasts against a one-slot buffer: the stale frames give way
	board.AddGate(bb.Input, "a")
	board.AddGate(bb.Not, "")
	board.AddGate(bb.Output, "")

	snap := <-ch
	assert.Equal(board.Version(), snap.Version)
	assert.Len(snap.Gates, 3)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected queued snapshot v%d", extra.Version)
	default:
	}
}

func TestFeedUnsubscribe(t *testing.T) {
	assert := require.New(t)
	board := bb.New()
	f := newFeed(board, config.Static{C: config.Default()})

	id, ch := f.subscribe()
	f.unsubscribe(id)
	board.AddGate(bb.Input, "a")
	select {
	case snap := <-ch:
		t.Fatalf("snapshot v%d delivered after unsubscribe", snap.Version)
	default:
	}
	assert.Empty(f.clients)
}
