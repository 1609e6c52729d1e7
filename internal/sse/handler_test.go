package sse

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

type fakeSnapshotProvider struct {
	snapshot *domain.Snapshot
	err      error
	calls    int
}

func (p *fakeSnapshotProvider) Snapshot(context.Context) (*domain.Snapshot, error) {
	p.calls++
	return p.snapshot, p.err
}

// readEvents reads SSE lines until deadline or the wanted event appears.
func readEvents(t *testing.T, body *bufio.Scanner, wantEvent string, deadline time.Duration) []string {
	t.Helper()

	var lines []string
	timeout := time.After(deadline)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for body.Scan() {
			line := body.Text()
			lines = append(lines, line)
			if strings.HasPrefix(line, "event: "+wantEvent) {
				// Read the data line too.
				if body.Scan() {
					lines = append(lines, body.Text())
				}
				return
			}
		}
	}()

	select {
	case <-done:
	case <-timeout:
		t.Fatalf("did not see event %q within %v; got lines: %v", wantEvent, deadline, lines)
	}
	return lines
}

func TestHandler_SnapshotOnConnect(t *testing.T) {
	m := NewManager(discardLogger())
	provider := &fakeSnapshotProvider{snapshot: testSnapshot()}
	h := NewHandler(m, provider, nil, discardLogger())

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := readEvents(t, bufio.NewScanner(resp.Body), "leaderboard.updated", 3*time.Second)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "event: connected")
	assert.Contains(t, joined, "event: leaderboard.updated")
	assert.Contains(t, joined, `"usr-1"`)
	assert.Equal(t, 1, provider.calls)
}

func TestHandler_SnapshotErrorKeepsStreamOpen(t *testing.T) {
	m := NewManager(discardLogger())
	provider := &fakeSnapshotProvider{err: errors.New("aggregation failed")}
	h := NewHandler(m, provider, nil, discardLogger())

	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Connection is established despite the snapshot failure.
	lines := readEvents(t, bufio.NewScanner(resp.Body), "connected", 3*time.Second)
	assert.Contains(t, strings.Join(lines, "\n"), "event: connected")
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	m := NewManager(discardLogger())
	h := NewHandler(m, &fakeSnapshotProvider{snapshot: testSnapshot()}, nil, discardLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaderboard/stream", nil)
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_StreamsBroadcasts(t *testing.T) {
	m := NewManager(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	provider := &fakeSnapshotProvider{snapshot: testSnapshot()}
	h := NewHandler(m, provider, nil, discardLogger())

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	readEvents(t, scanner, "leaderboard.updated", 3*time.Second)

	// Wait for the client to register, then broadcast another cycle.
	require.Eventually(t, func() bool { return m.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)
	m.BroadcastLeaderboard(testSnapshot())

	lines := readEvents(t, scanner, "leaderboard.updated", 3*time.Second)
	assert.Contains(t, strings.Join(lines, "\n"), "event: leaderboard.updated")
}
