package response

import (
	"log/slog"
	"net/http"
)

// Kind tags an Outcome. The controller only ever produces these four.
type Kind int

const (
	KindOK Kind = iota
	KindCreated
	KindNoContent
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindCreated:
		return "created"
	case KindNoContent:
		return "no-content"
	case KindNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// StatusCode maps a Kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case KindCreated:
		return http.StatusCreated
	case KindNoContent:
		return http.StatusNoContent
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Outcome is the transport-neutral result of a controller operation.
//
//	KindOK        Value holds the body
//	KindCreated   Value holds the new resource, Location points at it
//	KindNoContent nothing else is set
//	KindNotFound  Message describes what was missing
//
// WriteOutcome renders it over HTTP; other hosts can switch on Kind.
// ─────────────────────────────────────────────────────────────────────────────
type Outcome struct {
	Kind     Kind
	Value    any
	Location string
	Message  string
}

func OK(value any) Outcome {
	return Outcome{Kind: KindOK, Value: value}
}

func Created(location string, value any) Outcome {
	return Outcome{Kind: KindCreated, Value: value, Location: location}
}

func NoContent() Outcome {
	return Outcome{Kind: KindNoContent}
}

func NotFound(message string) Outcome {
	return Outcome{Kind: KindNotFound, Message: message}
}

// WriteOutcome writes o to w using the status code of its Kind.
func WriteOutcome(w http.ResponseWriter, o Outcome) {
	var err error

	switch o.Kind {
	case KindNoContent:
		w.WriteHeader(http.StatusNoContent)
		return
	case KindNotFound:
		err = WriteJSON(w, http.StatusNotFound, Response{Status: StatusError, Error: o.Message})
	case KindCreated:
		w.Header().Set("Location", o.Location)
		err = WriteJSON(w, http.StatusCreated, o.Value)
	default:
		err = WriteJSON(w, o.Kind.StatusCode(), o.Value)
	}

	if err != nil {
		slog.Error("failed to write response",
			slog.String("outcome", o.Kind.String()),
			slog.String("error", err.Error()))
	}
}
