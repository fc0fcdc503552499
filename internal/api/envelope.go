package api

import (
	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/qlpapp/qlp-server/internal/errors"
)

// Envelope wraps every successful response body.
type Envelope struct {
	Version int  `json:"v" doc:"Envelope schema version"`
	Success bool `json:"success" doc:"Always true for successful responses"`
	Data    any  `json:"data,omitempty" doc:"Response payload"`
}

// ErrorEnvelope wraps every error response body. Error carries the
// human-readable message for clients that only read one field.
type ErrorEnvelope struct {
	Version int    `json:"v" doc:"Envelope schema version"`
	Success bool   `json:"success" doc:"Always false for errors"`
	Error   string `json:"error" doc:"Human-readable error message"`
	Code    string `json:"code,omitempty" doc:"Machine-readable error code"`
	Message string `json:"message,omitempty" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// EnvelopeTransformer is a huma transformer that wraps response bodies in
// Envelope or ErrorEnvelope. ctx may be nil.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case Envelope, *Envelope, ErrorEnvelope, *ErrorEnvelope:
		return v, nil
	case *APIError:
		return ErrorEnvelope{
			Version: EnvelopeVersion,
			Error:   val.Message,
			Code:    val.Code,
			Message: val.Message,
			Details: val.Details,
		}, nil
	case *huma.ErrorModel:
		return ErrorEnvelope{
			Version: EnvelopeVersion,
			Error:   val.Detail,
			Code:    string(domainerrors.CodeForStatus(val.Status)),
			Message: val.Detail,
			Details: val.Errors,
		}, nil
	}

	return Envelope{Version: EnvelopeVersion, Success: true, Data: v}, nil
}
