package job

import (
	"context"
	"net/url"

	"github.com/jobport/jobport-client/internal/apiclient"
)

type Repository struct {
	client *apiclient.Client
}

func NewRepository(client *apiclient.Client) *Repository {
	return &Repository{client: client}
}

type jobsResponse struct {
	Jobs []Job `json:"jobs"`
}

type jobResponse struct {
	Job Job `json:"job"`
}

// List fetches jobs, passing the filter through as query parameters. The
// same Filter is reusable client-side on an already-fetched list.
func (r *Repository) List(ctx context.Context, f Filter) ([]Job, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Type != "" {
		q.Set("jobType", string(f.Type))
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	path := "/jobs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var res jobsResponse
	if err := r.client.Get(ctx, path, &res); err != nil {
		return nil, err
	}
	return res.Jobs, nil
}

func (r *Repository) ByID(ctx context.Context, id string) (Job, error) {
	var res jobResponse
	if err := r.client.Get(ctx, "/jobs/"+id, &res); err != nil {
		return Job{}, err
	}
	return res.Job, nil
}

type createRequest struct {
	Form
	CompanyID string `json:"companyId"`
	Status    Status `json:"status"`
}

func (r *Repository) Create(ctx context.Context, companyID string, form Form, status Status) (Job, error) {
	var res jobResponse
	req := createRequest{Form: form, CompanyID: companyID, Status: status}
	if err := r.client.Post(ctx, "/jobs", req, &res); err != nil {
		return Job{}, err
	}
	return res.Job, nil
}

type updateRequest struct {
	Form
	Status Status `json:"status,omitempty"`
}

// Update edits a job's fields. A non-empty status rides along for the
// draft to active transition.
func (r *Repository) Update(ctx context.Context, id string, form Form, status Status) (Job, error) {
	var res jobResponse
	req := updateRequest{Form: form, Status: status}
	if err := r.client.Put(ctx, "/jobs/"+id, req, &res); err != nil {
		return Job{}, err
	}
	return res.Job, nil
}

// Close flips an active job to closed via the dedicated endpoint.
func (r *Repository) Close(ctx context.Context, id string) (Job, error) {
	var res jobResponse
	if err := r.client.Patch(ctx, "/jobs/"+id+"/close", nil, &res); err != nil {
		return Job{}, err
	}
	return res.Job, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/jobs/"+id, nil)
}
