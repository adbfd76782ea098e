package job

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jobport/jobport-client/internal/apiclient"
	"github.com/jobport/jobport-client/internal/company"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

/// CanTransition is the job status machine: draft jobs go active when
// published, active jobs can be closed, closed is terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusActive
	case StatusActive:
		return to == StatusClosed
	}
	return false
}

type Type string

const (
	TypeFullTime   Type = "Full-Time"
	TypePartTime   Type = "Part-Time"
	TypeInternship Type = "Internship"
)

func ValidType(t Type) bool {
	return t == TypeFullTime || t == TypePartTime || t == TypeInternship
}

type Job struct {
	ID           string           `json:"id"`
	CompanyID    string           `json:"companyId"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Type         Type             `json:"jobType"`
	Location     string           `json:"location"`
	Salary       string           `json:"salary,omitempty"`
	Deadline     *time.Time       `json:"deadline,omitempty"`
	Status       Status           `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	Company      *company.Company `json:"Company,omitempty"`
	Applications []ApplicationRef `json:"applications,omitempty"`
}

// ApplicationRef is the reference shape embedded in job payloads.
type ApplicationRef struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// CompanyName returns the embedded company name when the payload carries one.
func (j Job) CompanyName() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.Name
}

// PostedAgo renders the creation time for display.
func (j Job) PostedAgo() string {
	if j.CreatedAt.IsZero() {
		return ""
	}
	return humanize.Time(j.CreatedAt)
}

/// Accepting reports whether the job takes applications at the given instant:
// active status and, when a deadline is set, the deadline has not passed.
// This is computed, never stored.
func (j Job) Accepting(now time.Time) bool {
	if j.Status != StatusActive {
		return false
	}
	if j.Deadline != nil && j.Deadline.Before(now) {
		return false
	}
	return true
}

type Form struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        Type       `json:"jobType"`
	Location    string     `json:"location"`
	Salary      string     `json:"salary,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Draft       bool       `json:"-"`
}

func (f Form) Validate() error {
	v := &apiclient.ValidationError{}
	if f.Title == "" {
		v.Add("title", "title is required")
	}
	if f.Description == "" {
		v.Add("description", "description is required")
	}
	if f.Location == "" {
		v.Add("location", "location is required")
	}
	if f.Type == "" {
		v.Add("jobType", "job type is required")
	} else if !ValidType(f.Type) {
		v.Add("jobType", "job type must be Full-Time, Part-Time or Internship")
	}
	return v.ErrOrNil()
}
