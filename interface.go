// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryhttp

import (
	"github.com/gogama/retryhttp/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes an HTTP request plan and returns the final execution
// state (and error, if any). Client implements the Doer interface, and
// any other Doer implementation must behave substantially the same as
// Client.Do.
type Doer interface {
	Do(p *request.Plan) (*request.Execution, error)
}

// Get uses the specified Doer to issue a GET to the specified URL,
// using the same policies as d.Do.
func Get(d Doer, url string) (*request.Execution, error) {
	p, err := request.NewPlan("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(p)
}

// Post uses the specified Doer to issue a POST to the specified URL,
// using the same policies as d.Do. The Content-Type header is set to
// contentType.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.BodyBytes.
func Post(d Doer, url, contentType string, body interface{}) (*request.Execution, error) {
	p, err := request.NewPlan("POST", url, body)
	if err != nil {
		return nil, err
	}
	p.Header.Set("Content-Type", contentType)
	return d.Do(p)
}
