package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ReportID accepts both numeric and string identifiers from the remote API.
type ReportID string

func (id *ReportID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ReportID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ReportID(n.String())
	return nil
}

func (id ReportID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Report is a submitted incident as returned by GET /reports.
type Report struct {
	ID           ReportID `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	IncidentDate string   `json:"incidentDate"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// Location reports where the incident happened. ok is false when the
// report was submitted without a position.
func (r Report) Location() (c Coordinates, ok bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *r.Latitude, Lng: *r.Longitude}, true
}

// Coordinates is a point picked on the map.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ReportSubmission is the body sent to POST /report.
type ReportSubmission struct {
	Anonymous    bool     `json:"anonymous"`
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
	IncidentDate string   `json:"incidentDate"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// Registration is the body sent to POST /register.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
	Sex       string `json:"sex"`
	City      string `json:"city"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
