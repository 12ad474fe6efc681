// Package student contains the HTTP handlers for the Student resource.
//
// HANDLER PATTERN: CLOSURE / FACTORY
// ────────────────────────────────────
// The router expects func(http.ResponseWriter, *http.Request), which has no
// room for dependencies. Each factory below takes the Controller once at
// startup and returns a handler that closes over it:
//
//	router.HandleFunc("POST /api/students", student.New(ctrl))
//
// Handlers only decode, validate, and render. Deciding which outcome a
// request produces is the Controller's job (see controller.go).
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/aanand-mishra/students-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// validate is shared by every handler; a *validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

// newValidator reports fields by their JSON names ("name", not "Name").
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeStudent reads and validates the request body. It writes the 400
// response itself and reports false when the request must stop here.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var student types.Student

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return student, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return student, false
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body must contain a single JSON object")))
		return student, false
	}

	if err := validate.Struct(student); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		}
		return student, false
	}

	return student, true
}

// errInternal replaces the real cause in 500 bodies; the cause is logged.
var errInternal = errors.New("internal server error")

// render writes the outcome. A taken id becomes 409; any other controller
// error becomes a 500 with a generic message.
func render(w http.ResponseWriter, op string, o response.Outcome, err error) {
	switch {
	case err == nil:
		response.WriteOutcome(w, o)
	case errors.Is(err, storage.ErrConflict):
		slog.Info("student already exists",
			slog.String("op", op),
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(storage.ErrConflict))
	default:
		slog.Error("student operation failed",
			slog.String("op", op),
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errInternal))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
//	{ "name": "Sam", "age": 19, "gender": "Male", "isGraduated": false }
//
// 201 Created with the stored student and a Location header.
// 400 for an empty body, malformed JSON, trailing data, or failed validation.
// 409 when a client-supplied id is already taken.
// ─────────────────────────────────────────────────────────────────────────────
func New(ctrl *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		o, err := ctrl.Create(r.Context(), student)
		if err == nil {
			slog.Info("student created", slog.String("location", o.Location))
		}
		render(w, "create", o, err)
	}
}

// GetByID handles GET /api/students/{id}: 200 with the student, or 404.
func GetByID(ctrl *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		o, err := ctrl.Get(r.Context(), id)
		render(w, "get", o, err)
	}
}

// GetList handles GET /api/students: 200 with a JSON array, [] when empty.
func GetList(ctrl *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		o, err := ctrl.GetAll(r.Context())
		render(w, "list", o, err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces every field except the id. Any id in the body is ignored.
//
// 204 No Content on success, 404 when the id is unknown, 400 on bad input.
// ─────────────────────────────────────────────────────────────────────────────
func Update(ctrl *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		o, err := ctrl.Update(r.Context(), id, student)
		render(w, "update", o, err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
//	200 OK  { "status": "deleted", "id": "..." }
//	404     when the id is unknown
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(ctrl *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		o, err := ctrl.Delete(r.Context(), id)
		render(w, "delete", o, err)
	}
}
