package application

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jobport/jobport-client/internal/job"
	"github.com/jobport/jobport-client/internal/user"
)

type Status string

const (
	StatusApplied     Status = "applied"
	StatusInterviewed Status = "interviewed"
	StatusHired       Status = "hired"
	StatusRejected    Status = "rejected"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusApplied, StatusInterviewed, StatusHired, StatusRejected:
		return true
	}
	return false
}

// transitions is the explicit status machine. Interviewed may be skipped,
// hired and rejected are terminal, regressions are rejected.
var transitions = map[Status][]Status{
	StatusApplied:     {StatusInterviewed, StatusHired, StatusRejected},
	StatusInterviewed: {StatusHired, StatusRejected},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transition.
func (s Status) Terminal() bool {
	return s == StatusHired || s == StatusRejected
}

type Application struct {
	ID          string     `json:"id"`
	JobID       string     `json:"jobId"`
	UserID      string     `json:"userId"`
	Status      Status     `json:"status"`
	CoverLetter string     `json:"coverLetter,omitempty"`
	Resume      string     `json:"resume,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	Job         *job.Job   `json:"job,omitempty"`
	User        *user.User `json:"user,omitempty"`
}

// Withdrawable reports whether the owning applicant may still withdraw.
func (a Application) Withdrawable() bool {
	return !a.Status.Terminal()
}

// AppliedAgo renders the submission time for display.
func (a Application) AppliedAgo() string {
	if a.CreatedAt.IsZero() {
		return ""
	}
	return humanize.Time(a.CreatedAt)
}

// JobTitle tolerates an orphaned job reference: the job may have been
// deleted after the application was submitted.
func (a Application) JobTitle() string {
	if a.Job == nil {
		return ""
	}
	return a.Job.Title
}

// Stats counts applications per status, for the summary bar on the
// applicant's list view.
type Stats struct {
	Applied     int
	Interviewed int
	Hired       int
	Rejected    int
}

func Summarize(apps []Application) Stats {
	var st Stats
	for _, a := range apps {
		switch a.Status {
		case StatusApplied:
			st.Applied++
		case StatusInterviewed:
			st.Interviewed++
		case StatusHired:
			st.Hired++
		case StatusRejected:
			st.Rejected++
		}
	}
	return st
}
