package errors

import (
	"errors"
	"fmt"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   string `json:"upstream_body,omitempty"`
}

// Dump flattens an error chain for structured logging, surfacing the remote
// API status and body when the chain contains an upstream failure.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var upstream UpstreamStatusError
	if errors.As(err, &upstream) {
		d.UpstreamStatus = upstream.StatusCode()
		d.UpstreamBody = upstream.Body()
	}

	return d
}

// UpstreamStatusError is implemented by transport errors that carry the raw
// remote response.
type UpstreamStatusError interface {
	error
	StatusCode() int
	Body() string
}
