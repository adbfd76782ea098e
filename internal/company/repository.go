package company

import (
	"context"

	"github.com/jobport/jobport-client/internal/apiclient"
)

// Repository issues the raw REST calls for companies. Access checks and
// validation live in Service; repositories only speak to the wire.
type Repository struct {
	client *apiclient.Client
}

func NewRepository(client *apiclient.Client) *Repository {
	return &Repository{client: client}
}

type companiesResponse struct {
	Companies []Company `json:"companies"`
}

type companyResponse struct {
	Company Company `json:"company"`
}

func (r *Repository) All(ctx context.Context) ([]Company, error) {
	var res companiesResponse
	if err := r.client.Get(ctx, "/companies", &res); err != nil {
		return nil, err
	}
	return res.Companies, nil
}

func (r *Repository) ByID(ctx context.Context, id string) (Company, error) {
	var res companyResponse
	if err := r.client.Get(ctx, "/companies/"+id, &res); err != nil {
		return Company{}, err
	}
	return res.Company, nil
}

// Mine lists companies owned by the authenticated employer.
func (r *Repository) Mine(ctx context.Context) ([]Company, error) {
	var res companiesResponse
	if err := r.client.Get(ctx, "/companies/my/companies", &res); err != nil {
		return nil, err
	}
	return res.Companies, nil
}

func (r *Repository) Create(ctx context.Context, form Form) (Company, error) {
	var res companyResponse
	if err := r.client.Post(ctx, "/companies", form, &res); err != nil {
		return Company{}, err
	}
	return res.Company, nil
}

func (r *Repository) Update(ctx context.Context, id string, form Form) (Company, error) {
	var res companyResponse
	if err := r.client.Put(ctx, "/companies/"+id, form, &res); err != nil {
		return Company{}, err
	}
	return res.Company, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/companies/"+id, nil)
}
