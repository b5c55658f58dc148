// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryhttp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/retryhttp/backoff"
	"github.com/gogama/retryhttp/request"
	"github.com/gogama/retryhttp/retry"
	"github.com/gogama/retryhttp/timeout"
	"github.com/gogama/retryhttp/transient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	t.Run("happy path", testClientHappyPath)
	t.Run("zero value", testClientZeroValue)
	t.Run("servers", testClientServers)
	t.Run("attempt timeout", testClientAttemptTimeout)
	t.Run("adaptive timeouts", testClientAdaptiveTimeouts)
	t.Run("read body error", testClientBodyError)
	t.Run("decisions", testClientDecisions)
	t.Run("scenarios", testClientScenarios)
	t.Run("replication", testClientReplication)
	t.Run("plan context", testClientPlanContext)
	t.Run("close idle connections", testClientCloseIdleConnections)
}

func TestURLErrorOp(t *testing.T) {
	assert.Equal(t, "Get", urlErrorOp(""))
	assert.Equal(t, "Get", urlErrorOp("GET"))
	assert.Equal(t, "G", urlErrorOp("G"))
	assert.Equal(t, "Xyz", urlErrorOp("XYZ"))
	assert.Equal(t, "Put", urlErrorOp("PUT"))
}

func testClientHappyPath(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name        string
		action      func(c *Client) (*request.Execution, error)
		extraChecks func(*testing.T, *request.Execution)
	}{
		{
			name: "Get",
			action: func(c *Client) (*request.Execution, error) {
				return c.Get("test")
			},
		},
		{
			name: "Post",
			action: func(c *Client) (*request.Execution, error) {
				return c.Post("test", "text/plain", "foo")
			},
			extraChecks: func(t *testing.T, e *request.Execution) {
				assert.Equal(t, "text/plain", e.Request.Header.Get("Content-Type"))
				assert.Equal(t, []byte("foo"), e.Plan.Body)
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			mockDoer := newMockHTTPDoer(t)
			cl := &Client{
				HTTPDoer: mockDoer,
				Handlers: &HandlerGroup{},
			}
			resp := newResponse(200, "foo")
			mockDoer.On("Do", mock.Anything).Return(resp, nil).Once()

			before := time.Now()

			cl.Handlers.mock(BeforeExecutionStart).On("Handle", BeforeExecutionStart, mock.MatchedBy(func(e *request.Execution) bool {
				return !e.Started() && e.Plan != nil && e.Request == nil && e.Backoff == backoff.Default()
			})).Once()
			cl.Handlers.mock(BeforeAttempt).On("Handle", BeforeAttempt, mock.MatchedBy(func(e *request.Execution) bool {
				return !e.Start.Before(before) && e.Request != nil && e.Response == nil && !e.Ended()
			})).Once()
			cl.Handlers.mock(BeforeReadBody).On("Handle", BeforeReadBody, mock.MatchedBy(func(e *request.Execution) bool {
				return e.Response == resp && e.Err == nil && e.Body == nil
			})).Once()
			cl.Handlers.mock(AfterAttemptTimeout)
			cl.Handlers.mock(AfterAttempt).On("Handle", AfterAttempt, mock.MatchedBy(func(e *request.Execution) bool {
				return e.Response == resp && e.Err == nil && string(e.Body) == "foo"
			})).Once()
			cl.Handlers.mock(BeforeRetryWait)
			cl.Handlers.mock(AfterPlanTimeout)
			cl.Handlers.mock(AfterExecutionEnd).On("Handle", AfterExecutionEnd, mock.MatchedBy(func(e *request.Execution) bool {
				return e.Response == resp && e.Err == nil && e.Attempt == 0 && e.Ended()
			})).Once()

			e, err := testCase.action(cl)

			mockDoer.AssertExpectations(t)
			cl.Handlers.assertExpectations(t)
			for _, evt := range []Event{AfterAttemptTimeout, BeforeRetryWait, AfterPlanTimeout} {
				cl.Handlers.mock(evt).AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			}
			require.NotNil(t, e)
			assert.NoError(t, err)
			assert.Equal(t, "test", e.Plan.URL.String())
			assert.Equal(t, 200, e.StatusCode())
			assert.Equal(t, []byte("foo"), e.Body)
			assert.Equal(t, 0, e.Attempt)
			assert.Equal(t, time.Duration(0), e.Wait)
			if testCase.extraChecks != nil {
				testCase.extraChecks(t, e)
			}
		})
	}
}

func testClientZeroValue(t *testing.T) {
	t.Parallel()
	cl := &Client{}
	p := (&serverInstruction{
		StatusCode: 201,
		Body:       []bodyChunk{{Data: []byte("created")}},
	}).toPlan(context.Background(), "PUT", httpServer)

	e, err := cl.Do(p)

	require.NoError(t, err)
	assert.Equal(t, 201, e.StatusCode())
	assert.Equal(t, "created", string(e.Body))
	assert.Equal(t, 0, e.Attempt)
	assert.Equal(t, backoff.DefaultAttempts-1, e.Backoff.Remaining())
}

func testClientServers(t *testing.T) {
	t.Parallel()
	for _, server := range servers {
		server := server
		t.Run(serverName(server), func(t *testing.T) {
			t.Parallel()
			cl := &Client{
				HTTPDoer: server.Client(),
				Backoff:  backoff.New(backoff.WithAttempts(3), backoff.WithDelay(time.Millisecond)),
			}
			t.Run("final status", func(t *testing.T) {
				p := (&serverInstruction{
					StatusCode: 200,
					Body:       []bodyChunk{{Data: []byte("he")}, {Pause: time.Millisecond, Data: []byte("llo")}},
				}).toPlan(context.Background(), "POST", server)
				e, err := cl.Do(p)
				require.NoError(t, err)
				assert.Equal(t, 200, e.StatusCode())
				assert.Equal(t, "hello", string(e.Body))
				assert.Equal(t, 0, e.Attempt)
				if server == http2Server {
					assert.Equal(t, 2, e.Response.ProtoMajor)
				}
			})
			t.Run("retry exhausted", func(t *testing.T) {
				p := (&serverInstruction{StatusCode: 503}).toPlan(context.Background(), "POST", server)
				e, err := cl.Do(p)
				require.NoError(t, err, "a final error status is an outcome, not an error")
				assert.Equal(t, 503, e.StatusCode())
				assert.Equal(t, 2, e.Attempt)
				assert.True(t, e.Backoff.Exhausted())
			})
		})
	}
}

func testClientAttemptTimeout(t *testing.T) {
	t.Parallel()
	for _, server := range servers {
		server := server
		t.Run(serverName(server), func(t *testing.T) {
			t.Parallel()
			cl := &Client{
				HTTPDoer:       server.Client(),
				Backoff:        backoff.New(backoff.WithAttempts(2), backoff.WithDelay(time.Millisecond)),
				AttemptTimeout: 20 * time.Millisecond,
				Handlers:       &HandlerGroup{},
			}
			tr := cl.addTraceHandlers()
			p := (&serverInstruction{HeaderPause: 200 * time.Millisecond, StatusCode: 200}).toPlan(context.Background(), "GET", server)

			e, err := cl.Do(p)

			require.Error(t, err)
			var urlErr *url.Error
			require.ErrorAs(t, err, &urlErr)
			assert.True(t, urlErr.Timeout())
			assert.True(t, e.Timeout())
			assert.Same(t, err, e.Err)
			assert.Equal(t, 1, e.Attempt)
			assert.Equal(t, 2, e.AttemptTimeouts)
			assert.Nil(t, e.Response)
			assert.Equal(t, []string{
				"BeforeExecutionStart",
				"BeforeAttempt", "AfterAttemptTimeout", "AfterAttempt", "BeforeRetryWait",
				"BeforeAttempt", "AfterAttemptTimeout", "AfterAttempt",
				"AfterExecutionEnd",
			}, tr.calls)
		})
	}
}

func testClientBodyError(t *testing.T) {
	t.Parallel()
	mockDoer := newMockHTTPDoer(t)
	cl := &Client{
		HTTPDoer: mockDoer,
		Backoff:  backoff.New(backoff.WithAttempts(2), backoff.WithDelay(time.Millisecond)),
	}
	readErr := errors.New("connection went away")
	body := newMockReadCloser(t)
	body.On("Read", mock.Anything).Return(0, readErr).Once()
	body.On("Close").Return(nil).Once()
	mockDoer.On("Do", mock.Anything).Return(&http.Response{StatusCode: 200, Body: body}, nil).Once()
	mockDoer.On("Do", mock.Anything).Return(newResponse(200, "ok"), nil).Once()

	e, err := cl.Get("http://test")

	require.NoError(t, err)
	assert.Equal(t, 1, e.Attempt)
	assert.Equal(t, "ok", string(e.Body))
	mockDoer.AssertExpectations(t)
	body.AssertExpectations(t)

	t.Run("final attempt", func(t *testing.T) {
		mockDoer := newMockHTTPDoer(t)
		body := newMockReadCloser(t)
		body.On("Read", mock.Anything).Return(0, readErr).Once()
		body.On("Close").Return(nil).Once()
		resp := &http.Response{StatusCode: 200, Body: body}
		mockDoer.On("Do", mock.Anything).Return(resp, nil).Once()
		cl := &Client{HTTPDoer: mockDoer, Backoff: backoff.New(backoff.WithAttempts(1))}

		e, err := cl.Get("http://test")

		var urlErr *url.Error
		require.ErrorAs(t, err, &urlErr)
		assert.Same(t, readErr, urlErr.Err)
		assert.Same(t, resp, e.Response, "response is kept when its body fails")
	})
}

func testClientDecisions(t *testing.T) {
	t.Parallel()
	transportErr := syscall.ECONNREFUSED
	testCases := []struct {
		name     string
		resp     *http.Response
		err      error
		attempts int
	}{
		{"transport failure", nil, transportErr, 2},
		{"200", newResponse(200, ""), nil, 1},
		{"301", newResponse(301, ""), nil, 1},
		{"404", newResponse(404, ""), nil, 2},
		{"500", newResponse(500, ""), nil, 2},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			mockDoer := newMockHTTPDoer(t)
			for i := 0; i < testCase.attempts; i++ {
				resp := testCase.resp
				if resp != nil {
					resp = newResponse(resp.StatusCode, "")
				}
				mockDoer.On("Do", mock.Anything).Return(resp, testCase.err).Once()
			}
			cl := &Client{
				HTTPDoer: mockDoer,
				Backoff:  backoff.New(backoff.WithAttempts(2), backoff.WithDelay(time.Millisecond)),
			}

			e, _ := cl.Get("http://test")

			mockDoer.AssertExpectations(t)
			assert.Equal(t, testCase.attempts-1, e.Attempt)
		})
	}
	t.Run("custom engine", func(t *testing.T) {
		mockDoer := newMockHTTPDoer(t)
		mockDoer.On("Do", mock.Anything).Return(newResponse(404, ""), nil).Once()
		cl := &Client{
			HTTPDoer: mockDoer,
			Engine:   &retry.Engine{Decider: retry.ServerError.Or(retry.TransientErr)},
		}
		e, err := cl.Get("http://test")
		require.NoError(t, err)
		assert.Equal(t, 404, e.StatusCode())
		assert.Equal(t, 0, e.Attempt)
		mockDoer.AssertExpectations(t)
	})
}

func testClientScenarios(t *testing.T) {
	t.Parallel()
	t.Run("500 500 200", func(t *testing.T) {
		t.Parallel()
		server := newScriptedServer(t, false, 500, 500, 200)
		cl := &Client{
			HTTPDoer: server.Client(),
			Backoff: backoff.New(
				backoff.WithAttempts(3),
				backoff.WithDelay(100*time.Millisecond),
				backoff.WithMultiplier(2),
			),
			Handlers: &HandlerGroup{},
		}
		var waits []time.Duration
		cl.Handlers.PushBack(BeforeRetryWait, HandlerFunc(func(_ Event, e *request.Execution) {
			waits = append(waits, e.Wait)
		}))

		e, err := cl.Get(server.URL)

		require.NoError(t, err)
		assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, waits)
		assert.Equal(t, 200, e.StatusCode())
		assert.Equal(t, "attempt 2", string(e.Body))
		assert.Equal(t, 2, e.Attempt)
		assert.Equal(t, 3, server.count())
		gaps := server.gaps()
		require.Len(t, gaps, 2)
		assert.GreaterOrEqual(t, gaps[0], 100*time.Millisecond)
		assert.GreaterOrEqual(t, gaps[1], 200*time.Millisecond)
	})
	t.Run("fail fail with ceiling", func(t *testing.T) {
		t.Parallel()
		first := &opaqueError{"first"}
		second := &opaqueError{"second"}
		mockDoer := newMockHTTPDoer(t)
		mockDoer.On("Do", mock.Anything).Return(nil, first).Once()
		mockDoer.On("Do", mock.Anything).Return(nil, second).Once()
		cl := &Client{
			HTTPDoer: mockDoer,
			Backoff: backoff.New(
				backoff.WithAttempts(2),
				backoff.WithDelay(100*time.Millisecond),
				backoff.WithMultiplier(3),
				backoff.WithMaxDelay(150*time.Millisecond),
			),
			Handlers: &HandlerGroup{},
		}
		var waits []time.Duration
		cl.Handlers.PushBack(BeforeRetryWait, HandlerFunc(func(_ Event, e *request.Execution) {
			waits = append(waits, e.Wait)
		}))

		e, err := cl.Get("http://test")

		mockDoer.AssertExpectations(t)
		assert.Equal(t, []time.Duration{100 * time.Millisecond}, waits)
		var urlErr *url.Error
		require.ErrorAs(t, err, &urlErr)
		assert.Same(t, second, urlErr.Err)
		assert.Same(t, err, e.Err)
		assert.Nil(t, e.Response)
		assert.Equal(t, 1, e.Attempt)
		assert.True(t, e.Backoff.Exhausted())
		assert.Equal(t, 150*time.Millisecond, e.Backoff.Delay(), "advance clamps 300ms to the ceiling")
	})
}

func testClientReplication(t *testing.T) {
	t.Parallel()
	t.Run("every attempt is identical", func(t *testing.T) {
		t.Parallel()
		server := newScriptedServer(t, true, 503, 503, 200)
		cl := &Client{
			HTTPDoer: server.Client(),
			Backoff:  backoff.New(backoff.WithAttempts(3), backoff.WithDelay(time.Millisecond)),
			Handlers: &HandlerGroup{},
		}
		var sent []*http.Request
		cl.Handlers.PushBack(BeforeAttempt, HandlerFunc(func(_ Event, e *request.Execution) {
			sent = append(sent, e.Request)
		}))
		p, err := request.NewPlan("POST", server.URL+"/path?q=1", "payload")
		require.NoError(t, err)
		p.Header.Add("X-Dup", "a")
		p.Header.Add("X-Dup", "b")

		e, err := cl.Do(p)

		require.NoError(t, err)
		assert.Equal(t, 200, e.StatusCode())
		require.Len(t, sent, 3)
		assert.NotSame(t, sent[0], sent[1])
		assert.NotSame(t, sent[1], sent[2])
		server.mu.Lock()
		defer server.mu.Unlock()
		for i := range server.bodies {
			assert.Equal(t, "payload", server.bodies[i])
			assert.Equal(t, []string{"a", "b"}, server.headers[i]["X-Dup"])
		}
		assert.Equal(t, []string{"a", "b"}, p.Header["X-Dup"], "plan must not be changed")
	})
	t.Run("failure is fatal", func(t *testing.T) {
		t.Parallel()
		mockDoer := newMockHTTPDoer(t)
		mockDoer.On("Do", mock.Anything).Return(newResponse(500, "oops"), nil).Once()
		cl := &Client{
			HTTPDoer: mockDoer,
			Handlers: &HandlerGroup{},
		}
		tr := cl.addTraceHandlers()
		cl.Handlers.PushBack(BeforeAttempt, HandlerFunc(func(_ Event, e *request.Execution) {
			e.Request.Body = io.NopCloser(strings.NewReader("one-shot"))
			e.Request.GetBody = nil
		}))

		e, err := cl.Post("http://test", "text/plain", "x")

		mockDoer.AssertExpectations(t)
		var urlErr *url.Error
		require.ErrorAs(t, err, &urlErr)
		assert.ErrorIs(t, err, request.ErrBodyNotReplayable)
		assert.Equal(t, 500, e.StatusCode(), "last response is kept")
		assert.Equal(t, "oops", string(e.Body))
		assert.Equal(t, 0, e.Attempt)
		assert.NotContains(t, tr.calls, "BeforeRetryWait")
	})
}

func testClientPlanContext(t *testing.T) {
	t.Parallel()
	t.Run("done before start", func(t *testing.T) {
		mockDoer := newMockHTTPDoer(t)
		cl := &Client{HTTPDoer: mockDoer}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p, err := request.NewPlanWithContext(ctx, "GET", "http://test", nil)
		require.NoError(t, err)

		e, err := cl.Do(p)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, e.Request)
		mockDoer.AssertNotCalled(t, "Do", mock.Anything)
	})
	t.Run("cancel during wait", func(t *testing.T) {
		mockDoer := newMockHTTPDoer(t)
		mockDoer.On("Do", mock.Anything).Return(newResponse(503, ""), nil).Once()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		cl := &Client{
			HTTPDoer: mockDoer,
			Backoff:  backoff.New(backoff.WithDelay(time.Hour)),
			Handlers: &HandlerGroup{},
		}
		cl.Handlers.PushBack(BeforeRetryWait, HandlerFunc(func(_ Event, _ *request.Execution) {
			cancel()
		}))
		tr := cl.addTraceHandlers()
		p, err := request.NewPlanWithContext(ctx, "GET", "http://test", nil)
		require.NoError(t, err)

		start := time.Now()
		e, err := cl.Do(p)

		assert.Less(t, time.Since(start), time.Minute)
		var urlErr *url.Error
		require.ErrorAs(t, err, &urlErr)
		assert.Same(t, context.Canceled, urlErr.Err)
		assert.False(t, e.Timeout())
		assert.Nil(t, e.Response)
		assert.Equal(t, 0, e.Attempt)
		assert.NotContains(t, tr.calls, "AfterPlanTimeout")
		mockDoer.AssertExpectations(t)
	})
	t.Run("deadline during wait", func(t *testing.T) {
		mockDoer := newMockHTTPDoer(t)
		mockDoer.On("Do", mock.Anything).Return(newResponse(503, ""), nil).Once()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		cl := &Client{
			HTTPDoer: mockDoer,
			Backoff:  backoff.New(backoff.WithDelay(time.Hour)),
			Handlers: &HandlerGroup{},
		}
		tr := cl.addTraceHandlers()
		p, err := request.NewPlanWithContext(ctx, "GET", "http://test", nil)
		require.NoError(t, err)

		e, err := cl.Do(p)

		require.Error(t, err)
		assert.True(t, e.Timeout())
		assert.Equal(t, transient.Timeout, transient.Categorize(err))
		assert.Equal(t, []string{
			"BeforeExecutionStart",
			"BeforeAttempt", "BeforeReadBody", "AfterAttempt", "BeforeRetryWait",
			"AfterPlanTimeout",
			"AfterExecutionEnd",
		}, tr.calls)
	})
}

func testClientCloseIdleConnections(t *testing.T) {
	t.Parallel()
	t.Run("not supported", func(t *testing.T) {
		cl := &Client{HTTPDoer: newMockHTTPDoer(t)}
		assert.NotPanics(t, cl.CloseIdleConnections)
	})
	t.Run("supported", func(t *testing.T) {
		m := newMockHTTPDoerWithCloseIdleConnections(t)
		m.On("CloseIdleConnections").Once()
		cl := &Client{HTTPDoer: m}
		cl.CloseIdleConnections()
		m.AssertExpectations(t)
	})
}

func testClientAdaptiveTimeouts(t *testing.T) {
	t.Parallel()
	var limits []time.Duration
	doer := funcDoer(func(r *http.Request) (*http.Response, error) {
		deadline, ok := r.Context().Deadline()
		require.True(t, ok, "attempt %d has no deadline", len(limits))
		limits = append(limits, time.Until(deadline))
		if len(limits) <= 2 {
			<-r.Context().Done()
			return nil, r.Context().Err()
		}
		return newResponse(200, "ok"), nil
	})
	cl := &Client{
		HTTPDoer:       doer,
		Backoff:        backoff.New(backoff.WithAttempts(4), backoff.WithDelay(time.Millisecond)),
		AttemptTimeout: time.Hour,
		Timeouts:       timeout.Adaptive(20*time.Millisecond, 40*time.Millisecond, 80*time.Millisecond),
	}

	e, err := cl.Get("http://test/")

	require.NoError(t, err)
	assert.Equal(t, 200, e.StatusCode())
	assert.Equal(t, 2, e.Attempt)
	assert.Equal(t, 2, e.AttemptTimeouts)
	require.Len(t, limits, 3)
	for i, expected := range []time.Duration{20 * time.Millisecond, 40 * time.Millisecond, 80 * time.Millisecond} {
		assert.LessOrEqual(t, limits[i], expected, "attempt %d", i)
		assert.Greater(t, limits[i], expected-15*time.Millisecond, "attempt %d", i)
	}
}

type funcDoer func(r *http.Request) (*http.Response, error)

func (f funcDoer) Do(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// opaqueError is a transport failure which is not transient.
type opaqueError struct {
	msg string
}

func (e *opaqueError) Error() string {
	return e.msg
}

type mockHTTPDoer struct {
	mock.Mock
}

func newMockHTTPDoer(t *testing.T) *mockHTTPDoer {
	m := &mockHTTPDoer{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

type mockHTTPDoerWithCloseIdleConnections struct {
	mockHTTPDoer
}

func newMockHTTPDoerWithCloseIdleConnections(t *testing.T) *mockHTTPDoerWithCloseIdleConnections {
	m := &mockHTTPDoerWithCloseIdleConnections{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoerWithCloseIdleConnections) CloseIdleConnections() {
	m.Called()
}

func (g *HandlerGroup) mock(evt Event) *mockHandler {
	if int(evt) < len(g.handlers) {
		for _, h := range g.handlers[evt] {
			if m, ok := h.(*mockHandler); ok {
				return m
			}
		}
	}

	m := &mockHandler{}
	g.PushBack(evt, m)
	return m
}

func (g *HandlerGroup) assertExpectations(t *testing.T) {
	if g.handlers == nil {
		return
	}

	for _, evt := range Events() {
		for _, h := range g.handlers[evt] {
			if m, ok := h.(*mockHandler); ok {
				m.AssertExpectations(t)
			}
		}
	}
}

type mockHandler struct {
	mock.Mock
}

func (m *mockHandler) Handle(evt Event, e *request.Execution) {
	m.Called(evt, e)
}

type trace struct {
	calls []string
}

func (c *Client) addTraceHandlers() *trace {
	tr := &trace{}
	h := HandlerFunc(func(evt Event, _ *request.Execution) {
		tr.calls = append(tr.calls, evt.Name())
	})
	for _, evt := range Events() {
		c.Handlers.PushBack(evt, h)
	}
	return tr
}

type mockReadCloser struct {
	mock.Mock
}

func newMockReadCloser(t *testing.T) *mockReadCloser {
	m := &mockReadCloser{}
	m.Test(t)
	return m
}

func (m *mockReadCloser) Read(p []byte) (n int, err error) {
	args := m.Called(p)
	n = args.Int(0)
	err = args.Error(1)
	return
}

func (m *mockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}
