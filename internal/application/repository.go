package application

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

type applicationsResponse struct {
	Applications []Application `json:"applications"`
}

type applicationResponse struct {
	Application Application `json:"application"`
}

// Submit uploads the resume for jobID as multipart form data. A duplicate
// application surfaces as a Conflict error from the backend.
func (r *Repository) Submit(ctx context.Context, jobID, resumeName string, resumeData []byte) (Application, error) {
	var res applicationResponse
	if err := r.client.PostMultipart(ctx, "/applications/"+jobID, "resume", resumeName, resumeData, &res); err != nil {
		return Application{}, err
	}
	return res.Application, nil
}

// Mine lists the authenticated applicant's applications, optionally filtered
// by status server-side.
func (r *Repository) Mine(ctx context.Context, status Status) ([]Application, error) {
	path := "/applications/my-applications"
	if status != "" {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}
	var res applicationsResponse
	if err := r.client.Get(ctx, path, &res); err != nil {
		return nil, err
	}
	return res.Applications, nil
}

// ByJob lists applications submitted against the given job.
func (r *Repository) ByJob(ctx context.Context, jobID string) ([]Application, error) {
	var res applicationsResponse
	if err := r.client.Get(ctx, "/applications/job/"+jobID, &res); err != nil {
		return nil, err
	}
	return res.Applications, nil
}

func (r *Repository) SetStatus(ctx context.Context, id string, status Status) (Application, error) {
	var res applicationResponse
	payload := map[string]Status{"status": status}
	if err := r.client.Patch(ctx, "/applications/"+id+"/status", payload, &res); err != nil {
		return Application{}, err
	}
	return res.Application, nil
}

func (r *Repository) Withdraw(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/applications/"+id, nil)
}

// Resume streams the stored resume as an opaque blob with its content type.
func (r *Repository) Resume(ctx context.Context, id string) ([]byte, string, error) {
	return r.client.GetBlob(ctx, "/uploads/"+id+"/resume")
}
