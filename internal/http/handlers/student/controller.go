package student

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/students-api/internal/service"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/aanand-mishra/students-api/internal/utils/response"
)

// BasePath is the collection path; Created outcomes point below it.
const BasePath = "/api/students"

// Controller maps each student operation onto one Service call and turns
// the result into a response.Outcome. Errors from the service are returned
// untouched; the controller neither retries nor recovers.
type Controller struct {
	svc service.Service
}

// NewController returns a Controller bound to svc for its whole lifetime.
func NewController(svc service.Service) *Controller {
	return &Controller{svc: svc}
}

func notFound(id string) response.Outcome {
	return response.NotFound(fmt.Sprintf("student with id %s not found", id))
}

// Get returns the student with the given id, or NotFound.
func (c *Controller) Get(ctx context.Context, id string) (response.Outcome, error) {
	student, err := c.svc.GetStudent(ctx, id)
	if err != nil {
		return response.Outcome{}, err
	}
	if student == nil {
		return notFound(id), nil
	}
	return response.OK(*student), nil
}

// GetAll returns every student in the order the service produced them.
func (c *Controller) GetAll(ctx context.Context) (response.Outcome, error) {
	students, err := c.svc.GetAllStudents(ctx)
	if err != nil {
		return response.Outcome{}, err
	}
	if students == nil {
		students = []types.Student{}
	}
	return response.OK(students), nil
}

// Create stores the payload and points the caller at the new resource.
func (c *Controller) Create(ctx context.Context, student types.Student) (response.Outcome, error) {
	created, err := c.svc.CreateStudent(ctx, student)
	if err != nil {
		return response.Outcome{}, err
	}
	return response.Created(BasePath+"/"+created.ID, created), nil
}

// Update replaces an existing student and answers with no body.
func (c *Controller) Update(ctx context.Context, id string, student types.Student) (response.Outcome, error) {
	existing, err := c.svc.GetStudent(ctx, id)
	if err != nil {
		return response.Outcome{}, err
	}
	if existing == nil {
		return notFound(id), nil
	}

	if err := c.svc.UpdateStudent(ctx, id, student); err != nil {
		return response.Outcome{}, err
	}
	return response.NoContent(), nil
}

// DeleteAck is the body returned by a successful Delete.
type DeleteAck struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// Delete removes an existing student. Unlike Update it answers with an
// acknowledgement body; existing clients rely on that.
func (c *Controller) Delete(ctx context.Context, id string) (response.Outcome, error) {
	existing, err := c.svc.GetStudent(ctx, id)
	if err != nil {
		return response.Outcome{}, err
	}
	if existing == nil {
		return notFound(id), nil
	}

	if err := c.svc.DeleteStudent(ctx, id); err != nil {
		return response.Outcome{}, err
	}
	return response.OK(DeleteAck{Status: "deleted", ID: id}), nil
}
