package admin

import (
	"context"

	"github.com/jobport/jobport-client/internal/apiclient"
	"github.com/jobport/jobport-client/internal/application"
	"github.com/jobport/jobport-client/internal/company"
	"github.com/jobport/jobport-client/internal/job"
	"github.com/jobport/jobport-client/internal/user"
)

// Repository issues the admin REST calls. These mirror the public entity
// endpoints but bypass ownership server-side.
type Repository struct {
	client *apiclient.Client
}

func NewRepository(client *apiclient.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Dashboard(ctx context.Context) (Stats, error) {
	var res struct {
		Stats Stats `json:"stats"`
	}
	if err := r.client.Get(ctx, "/admin/dashboard", &res); err != nil {
		return Stats{}, err
	}
	return res.Stats, nil
}

func (r *Repository) Users(ctx context.Context) ([]user.User, error) {
	var res struct {
		Users []user.User `json:"users"`
	}
	if err := r.client.Get(ctx, "/admin/users", &res); err != nil {
		return nil, err
	}
	return res.Users, nil
}

func (r *Repository) Companies(ctx context.Context) ([]company.Company, error) {
	var res struct {
		Companies []company.Company `json:"companies"`
	}
	if err := r.client.Get(ctx, "/admin/companies", &res); err != nil {
		return nil, err
	}
	return res.Companies, nil
}

func (r *Repository) Jobs(ctx context.Context) ([]job.Job, error) {
	var res struct {
		Jobs []job.Job `json:"jobs"`
	}
	if err := r.client.Get(ctx, "/admin/jobs", &res); err != nil {
		return nil, err
	}
	return res.Jobs, nil
}

func (r *Repository) Applications(ctx context.Context) ([]application.Application, error) {
	var res struct {
		Applications []application.Application `json:"applications"`
	}
	if err := r.client.Get(ctx, "/admin/applications", &res); err != nil {
		return nil, err
	}
	return res.Applications, nil
}

func (r *Repository) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.client.Put(ctx, "/admin/users/"+id, fields, nil)
}

func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/admin/users/"+id, nil)
}

func (r *Repository) UpdateCompany(ctx context.Context, id string, form company.Form) error {
	return r.client.Put(ctx, "/admin/companies/"+id, form, nil)
}

func (r *Repository) DeleteCompany(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/admin/companies/"+id, nil)
}

func (r *Repository) UpdateJobStatus(ctx context.Context, id string, status job.Status) error {
	return r.client.Put(ctx, "/admin/jobs/"+id, map[string]job.Status{"status": status}, nil)
}

func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/admin/jobs/"+id, nil)
}

func (r *Repository) UpdateApplicationStatus(ctx context.Context, id string, status application.Status) error {
	return r.client.Put(ctx, "/admin/applications/"+id, map[string]application.Status{"status": status}, nil)
}

func (r *Repository) DeleteApplication(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/admin/applications/"+id, nil)
}
