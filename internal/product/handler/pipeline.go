package handler

import (
	"context"
	"net/http"
	"net/url"
)

// Request is the transport-neutral description of an incoming call as it travels
// through a pipeline. Stages may attach the decoded body to Input.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Params map[string]string
	Query  url.Values
	Body   []byte
	Input  any

	// bodyErr is set when the body could not be read. It is reported by the
	// stage that needs the body, so earlier stages still run first.
	bodyErr error
}

// Param returns the path parameter with the given name.
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// Response is the outcome of a pipeline. A string Body is written as plain text,
// anything else as JSON.
type Response struct {
	Status int
	Body   any
}

// Stage checks or enriches a request. Returning an error ends the pipeline.
type Stage func(ctx context.Context, req *Request) (*Request, error)

// Action produces the response once every stage has passed.
type Action func(ctx context.Context, req *Request) (*Response, error)

// Pipeline is an ordered list of stages followed by an action.
type Pipeline struct {
	stages []Stage
	action Action
}

// NewPipeline creates a pipeline that runs stages in order before action.
func NewPipeline(action Action, stages ...Stage) Pipeline {
	return Pipeline{stages: stages, action: action}
}

// Execute runs the pipeline and stops at the first failing stage.
func (p Pipeline) Execute(ctx context.Context, req *Request) (*Response, error) {
	var err error
	for _, stage := range p.stages {
		if req, err = stage(ctx, req); err != nil {
			return nil, err
		}
	}
	return p.action(ctx, req)
}
