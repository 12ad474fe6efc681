package student

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/students-api/internal/service"
	"github.com/aanand-mishra/students-api/internal/storage/memory"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/aanand-mishra/students-api/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, seed ...types.Student) *Controller {
	t.Helper()
	store := memory.New()
	for _, s := range seed {
		_, err := store.CreateStudent(context.Background(), s)
		require.NoError(t, err)
	}
	return NewController(service.New(store))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestNew_RejectsBadBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "empty body", body: "", wantErr: "request body is empty"},
		{name: "malformed json", body: "{", wantErr: "unexpected EOF"},
		{name: "trailing garbage", body: `{"name": "C", "age": 3} garbage`, wantErr: "single JSON object"},
		{name: "two objects", body: `{"name": "C", "age": 3}{"name": "D", "age": 4}`, wantErr: "single JSON object"},
		{name: "missing name", body: `{"age": 20}`, wantErr: "field name is required"},
		{name: "age too high", body: `{"name": "Old", "age": 151}`, wantErr: "field age must be at most 150"},
		{name: "missing age", body: `{"name": "Kid"}`, wantErr: "field age is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			New(newTestController(t))(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, response.StatusError, resp.Status)
			assert.Contains(t, resp.Error, tt.wantErr)
		})
	}
}

func TestNew_CreatesStudent(t *testing.T) {
	body := `{"name": "Sam", "age": 19, "gender": "Male", "isGraduated": false, "courses": ["math"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(body))
	rec := httptest.NewRecorder()

	New(newTestController(t))(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "/api/students/"+created.ID, rec.Header().Get("Location"))
	assert.Equal(t, "Sam", created.Name)
	assert.Equal(t, 19, created.Age)
	assert.Equal(t, []string{"math"}, created.Courses)
}

func TestGetByID(t *testing.T) {
	alex := types.Student{ID: "s1", Name: "Alex", Age: 21, Gender: "Male"}
	ctrl := newTestController(t, alex)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/students/s1", nil)
		req.SetPathValue("id", "s1")
		rec := httptest.NewRecorder()

		GetByID(ctrl)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got types.Student
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, alex, got)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/students/abc", nil)
		req.SetPathValue("id", "abc")
		rec := httptest.NewRecorder()

		GetByID(ctrl)(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "student with id abc not found", decodeError(t, rec).Error)
	})
}

func TestGetList_EmptyStoreReturnsEmptyArray(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	rec := httptest.NewRecorder()

	GetList(newTestController(t))(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdate_ReturnsNoContentWithEmptyBody(t *testing.T) {
	ctrl := newTestController(t, types.Student{ID: "s2", Name: "Before", Age: 30})

	req := httptest.NewRequest(http.MethodPut, "/api/students/s2",
		strings.NewReader(`{"id": "ignored", "name": "After", "age": 31}`))
	req.SetPathValue("id", "s2")
	rec := httptest.NewRecorder()

	Update(ctrl)(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	o, err := ctrl.Get(context.Background(), "s2")
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: "s2", Name: "After", Age: 31}, o.Value)
}

func TestUpdate_UnknownIDReturnsNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/students/nope",
		strings.NewReader(`{"name": "After", "age": 31}`))
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()

	Update(newTestController(t))(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_ReturnsAcknowledgement(t *testing.T) {
	ctrl := newTestController(t, types.Student{ID: "s3", Name: "Gone", Age: 40})

	req := httptest.NewRequest(http.MethodDelete, "/api/students/s3", nil)
	req.SetPathValue("id", "s3")
	rec := httptest.NewRecorder()

	Delete(ctrl)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "deleted", "id": "s3"}`, rec.Body.String())

	o, err := ctrl.Get(context.Background(), "s3")
	require.NoError(t, err)
	assert.Equal(t, response.KindNotFound, o.Kind)
}

func TestHandlers_ServiceFailureIsInternalError(t *testing.T) {
	svc := new(mockService)
	svc.On("GetAllStudents", mock.Anything).Return(nil, errors.New("disk on fire"))

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	rec := httptest.NewRecorder()

	GetList(NewController(svc))(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "internal server error", resp.Error)
	assert.NotContains(t, resp.Error, "disk on fire")
}

func TestNew_DuplicateIDIsConflict(t *testing.T) {
	ctrl := newTestController(t, types.Student{ID: "s1", Name: "Alex", Age: 21})

	req := httptest.NewRequest(http.MethodPost, "/api/students",
		strings.NewReader(`{"id": "s1", "name": "Other", "age": 30}`))
	rec := httptest.NewRecorder()

	New(ctrl)(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "student already exists", resp.Error)
	assert.NotContains(t, resp.Error, "s1")

	o, err := ctrl.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Alex", o.Value.(types.Student).Name)
}

func TestGetByID_KeepsMissingAndEmptyCoursesApart(t *testing.T) {
	ctrl := newTestController(t,
		types.Student{ID: "none", Name: "NoList", Age: 20},
		types.Student{ID: "empty", Name: "EmptyList", Age: 20, Courses: []string{}},
	)

	tests := []struct {
		id   string
		want string
	}{
		{id: "none", want: "null"},
		{id: "empty", want: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/students/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()

			GetByID(ctrl)(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var body map[string]json.RawMessage
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.Contains(t, body, "courses")
			assert.JSONEq(t, tt.want, string(body["courses"]))
		})
	}
}
