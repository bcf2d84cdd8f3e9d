package services

import (
	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain"
)

// Outcome classifies a Response.
type Outcome int

const (
	// OutcomeOk means the operation succeeded; Payload may be set.
	OutcomeOk Outcome = iota
	// OutcomeRejected means the caller sent something the domain refuses.
	OutcomeRejected
	// OutcomeInternalError means a collaborator (supplier, storage) failed.
	OutcomeInternalError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOk:
		return "ok"
	case OutcomeRejected:
		return "rejected"
	default:
		return "internal_error"
	}
}

// Response is what every ProductService operation returns. Transport
// adapters translate it; the service never returns a bare error.
type Response struct {
	Outcome Outcome
	Payload any
	Err     error
}

// Message is the human-readable failure text, empty on success.
func (r Response) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func ok(payload any) Response {
	return Response{Outcome: OutcomeOk, Payload: payload}
}

// failed sorts an error into Rejected or InternalError. Only domain
// rejections count as the caller's fault.
func failed(err error) Response {
	if domain.IsRejection(err) {
		return Response{Outcome: OutcomeRejected, Err: err}
	}
	return Response{Outcome: OutcomeInternalError, Err: err}
}

// respond converts a pipeline result into a Response.
func respond[T any](r result.Result[T]) Response {
	return result.OnEither(r, failed, func(v T) Response {
		return ok(v)
	})
}
