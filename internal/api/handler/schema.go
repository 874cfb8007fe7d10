package handler

import "encoding/json"

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Session ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          json.RawMessage `json:"user,omitempty" swaggertype:"object"`
}

type loginResponse struct {
	User json.RawMessage `json:"user" swaggertype:"object"`
}

// --- Registration ---

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Sex       string `json:"sex"       validate:"required,oneof=M F"`
	City      string `json:"city"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
}

// --- Reports ---

// submitReportRequest carries the incident form. The coordinates come from a
// map click and are either both present or both absent.
type submitReportRequest struct {
	Anonymous    bool     `json:"anonymous"`
	Name         string   `json:"name"`
	Email        string   `json:"email"        validate:"omitempty,email"`
	IncidentDate string   `json:"incidentDate" validate:"required,datetime=2006-01-02"`
	Description  string   `json:"description"  validate:"required"`
	Category     string   `json:"category"     validate:"required"`
	Latitude     *float64 `json:"latitude"     validate:"required_with=Longitude,omitempty,latitude"`
	Longitude    *float64 `json:"longitude"    validate:"required_with=Latitude,omitempty,longitude"`
}

type submitReportResponse struct {
	Message   string `json:"message"`
	Reference string `json:"reference"`
}
