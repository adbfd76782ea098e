package admin

import (
	"github.com/jobport/jobport-client/internal/access"
	"github.com/jobport/jobport-client/internal/application"
	"github.com/jobport/jobport-client/internal/company"
	"github.com/jobport/jobport-client/internal/job"
	"github.com/jobport/jobport-client/internal/listing"
	"github.com/jobport/jobport-client/internal/user"
)

// Query is the one list contract shared by all four admin views: a search
// term spanning the entity's name-ish fields, an optional status or role
// filter, and a page window.
type Query struct {
	Search   string
	Status   string
	Role     access.Role
	Page     int
	PageSize int
}

// FilterUsers searches full name, email and role, then filters by role.
func FilterUsers(users []user.User, q Query) ([]user.User, int) {
	matched := listing.Filter(users, func(u user.User) bool {
		if !listing.ContainsFold(q.Search, u.FullName, u.Email, string(u.Role)) {
			return false
		}
		return q.Role == "" || u.Role == q.Role
	})
	return listing.Page(matched, q.Page, q.PageSize)
}

// FilterCompanies searches name, industry and location.
func FilterCompanies(companies []company.Company, q Query) ([]company.Company, int) {
	matched := listing.Filter(companies, func(c company.Company) bool {
		return listing.ContainsFold(q.Search, c.Name, c.Industry, c.Location)
	})
	return listing.Page(matched, q.Page, q.PageSize)
}

// FilterJobs searches title, company name and location, then filters by
// status.
func FilterJobs(jobs []job.Job, q Query) ([]job.Job, int) {
	matched := listing.Filter(jobs, func(j job.Job) bool {
		if !listing.ContainsFold(q.Search, j.Title, j.CompanyName(), j.Location) {
			return false
		}
		return q.Status == "" || string(j.Status) == q.Status
	})
	return listing.Page(matched, q.Page, q.PageSize)
}

// FilterApplications searches applicant name, job title and company name,
// then filters by status. Orphaned job references match the search term only
// through the applicant's name.
func FilterApplications(apps []application.Application, q Query) ([]application.Application, int) {
	matched := listing.Filter(apps, func(a application.Application) bool {
		applicant := ""
		if a.User != nil {
			applicant = a.User.FullName
		}
		companyName := ""
		if a.Job != nil {
			companyName = a.Job.CompanyName()
		}
		if !listing.ContainsFold(q.Search, applicant, a.JobTitle(), companyName) {
			return false
		}
		return q.Status == "" || string(a.Status) == q.Status
	})
	return listing.Page(matched, q.Page, q.PageSize)
}
