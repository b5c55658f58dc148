// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogama/retryhttp"
	"github.com/gogama/retryhttp/backoff"
	"github.com/gogama/retryhttp/request"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		expectedLevel zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"invalid defaults to info", "chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(tt.level, false, &buf)
			assert.Equal(t, tt.expectedLevel, l.GetLevel())
		})
	}

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		l := New("info", false, &buf)
		l.Info().Str("k", "v").Msg("hello")
		var m map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
		assert.Equal(t, "hello", m["message"])
		assert.Equal(t, "v", m["k"])
		assert.Contains(t, m, "time")
	})
	t.Run("pretty output", func(t *testing.T) {
		var buf bytes.Buffer
		l := New("info", true, &buf)
		l.Info().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}

func TestInstall(t *testing.T) {
	var n int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&n, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	g := &retryhttp.HandlerGroup{}
	Install(g, zerolog.New(&buf).Level(zerolog.DebugLevel))
	var id string
	g.PushBack(retryhttp.AfterExecutionEnd, retryhttp.HandlerFunc(func(_ retryhttp.Event, e *request.Execution) {
		id = ExecutionID(e)
	}))
	cl := &retryhttp.Client{
		HTTPDoer: server.Client(),
		Backoff:  backoff.New(backoff.WithAttempts(3), backoff.WithDelay(5*time.Millisecond)),
		Handlers: g,
	}

	e, err := cl.Get(server.URL)

	require.NoError(t, err)
	require.Equal(t, 200, e.StatusCode())
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	lines := readLines(t, &buf)
	require.Len(t, lines, 5)
	messages := make([]string, len(lines))
	for i, line := range lines {
		messages[i], _ = line["message"].(string)
		assert.Equal(t, id, line["execution"], "line %d", i)
	}
	assert.Equal(t, []string{
		"execution start",
		"attempt complete",
		"retrying",
		"attempt complete",
		"execution end",
	}, messages)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "GET", lines[0]["method"])
	assert.EqualValues(t, 3, lines[0]["attempts"])
	assert.EqualValues(t, 503, lines[1]["status"])
	assert.Equal(t, "info", lines[2]["level"])
	assert.EqualValues(t, 0, lines[2]["attempt"])
	assert.EqualValues(t, 2, lines[2]["remaining"])
	assert.EqualValues(t, 5, lines[2]["wait"])
	assert.EqualValues(t, 10, lines[2]["next_delay"])
	assert.Equal(t, "info", lines[4]["level"])
	assert.EqualValues(t, 2, lines[4]["attempts"])
	assert.EqualValues(t, 200, lines[4]["status"])
}

func TestInstall_Error(t *testing.T) {
	var buf bytes.Buffer
	g := &retryhttp.HandlerGroup{}
	Install(g, zerolog.New(&buf).Level(zerolog.InfoLevel))
	cl := &retryhttp.Client{
		HTTPDoer: failingDoer{},
		Backoff:  backoff.New(backoff.WithAttempts(2), backoff.WithDelay(time.Millisecond)),
		Handlers: g,
	}

	_, err := cl.Get("http://localhost/")

	require.Error(t, err)
	lines := readLines(t, &buf)
	require.Len(t, lines, 2, "debug lines must be filtered out")
	assert.Equal(t, "retrying", lines[0]["message"])
	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "execution end", lines[1]["message"])
	assert.Contains(t, lines[1]["error"], "connection refused")
}

func TestExecutionID_None(t *testing.T) {
	assert.Equal(t, "", ExecutionID(&request.Execution{}))
}

type failingDoer struct{}

func (failingDoer) Do(_ *http.Request) (*http.Response, error) {
	return nil, errConnRefused
}

var errConnRefused = &connRefusedError{}

type connRefusedError struct{}

func (*connRefusedError) Error() string { return "dial tcp: connection refused" }

func readLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	var lines []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.NoError(t, sc.Err())
	return lines
}
