// Package types holds the shared data structures used across the
// application. Handlers, the service layer, and storage all import types
// without depending on each other, which keeps the import graph acyclic.
package types

// Student represents a student record in our system.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  controls the JSON field names (camelCase, matching the
//     public API contract).
//
//  2. validate:"..." holds rules checked by the go-playground/validator
//     package before a payload reaches the service.
//
// ID is assigned by the service on create and never changes afterwards.
// Courses is null when the student has no course list and [] when the list
// is empty; both storage backends keep the two apart.
type Student struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"        validate:"required"`
	Age         int      `json:"age"         validate:"required,min=1,max=150"`
	Gender      string   `json:"gender"`
	IsGraduated bool     `json:"isGraduated"`
	Courses     []string `json:"courses"     validate:"omitempty,dive,required"`
}
