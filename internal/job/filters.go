package job

import "github.com/jobport/jobport-client/internal/listing"

// Filter is the job search predicate. All set fields must match (logical
// AND); zero values match everything.
type Filter struct {
	Search   string
	Status   Status
	Type     Type
	Location string
}

// Match applies the predicate to a single job. Search spans title, company
// name and location, case-insensitively.
func (f Filter) Match(j Job) bool {
	if !listing.ContainsFold(f.Search, j.Title, j.CompanyName(), j.Location) {
		return false
	}
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.Type != "" && j.Type != f.Type {
		return false
	}
	if !listing.ContainsFold(f.Location, j.Location) {
		return false
	}
	return true
}

// Apply filters a fetched job list client-side.
func Apply(jobs []Job, f Filter) []Job {
	return listing.Filter(jobs, f.Match)
}

// Paginate cuts one page out of the filtered result set.
func Paginate(jobs []Job, page, pageSize int) ([]Job, int) {
	return listing.Page(jobs, page, pageSize)
}
