package company

import (
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jobport/jobport-client/internal/apiclient"
)

type Company struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	Name        string    `json:"companyName"`
	Industry    string    `json:"industry"`
	Location    string    `json:"location"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	Jobs        []JobRef  `json:"jobs,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobRef is the reference shape embedded in company payloads.
type JobRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// CreatedAgo renders the creation time for display.
func (c Company) CreatedAgo() string {
	if c.CreatedAt.IsZero() {
		return ""
	}
	return humanize.Time(c.CreatedAt)
}

type Form struct {
	Name        string `json:"companyName"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

// Validate applies the pre-submission checks. A failure here means no
// request is issued.
func (f Form) Validate() error {
	v := &apiclient.ValidationError{}
	if f.Name == "" {
		v.Add("companyName", "company name is required")
	}
	if f.Industry == "" {
		v.Add("industry", "industry is required")
	}
	if f.Location == "" {
		v.Add("location", "location is required")
	}
	if f.Website != "" {
		u, err := url.Parse(f.Website)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			v.Add("website", "website must be a valid http(s) URL")
		}
	}
	return v.ErrOrNil()
}
