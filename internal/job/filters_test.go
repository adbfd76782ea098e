package job

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jobport/jobport-client/internal/company"
)

func sampleJobs() []Job {
	acme := &company.Company{Name: "Acme Corp"}
	globex := &company.Company{Name: "Globex"}
	return []Job{
		{ID: "1", Title: "Go Engineer", Location: "Berlin", Type: TypeFullTime, Status: StatusActive, Company: acme},
		{ID: "2", Title: "Frontend Developer", Location: "Remote", Type: TypePartTime, Status: StatusActive, Company: globex},
		{ID: "3", Title: "Platform Engineer", Location: "Berlin", Type: TypeFullTime, Status: StatusClosed, Company: acme},
		{ID: "4", Title: "Data Intern", Location: "Munich", Type: TypeInternship, Status: StatusActive, Company: globex},
	}
}

func TestFilterMatchAND(t *testing.T) {
	jobs := sampleJobs()

	require.Len(t, Apply(jobs, Filter{}), 4)

	got := Apply(jobs, Filter{Search: "engineer"})
	require.Len(t, got, 2)

	// search matches company name too
	got = Apply(jobs, Filter{Search: "acme"})
	require.Len(t, got, 2)

	// all fields must match
	got = Apply(jobs, Filter{Search: "engineer", Status: StatusActive})
	require.Len(t, got, 1)
	require.Equal(t, "1", got[0].ID)

	got = Apply(jobs, Filter{Type: TypeInternship})
	require.Len(t, got, 1)
	require.Equal(t, "4", got[0].ID)

	got = Apply(jobs, Filter{Location: "berlin", Status: StatusClosed})
	require.Len(t, got, 1)
	require.Equal(t, "3", got[0].ID)

	require.Empty(t, Apply(jobs, Filter{Search: "engineer", Type: TypeInternship}))
}

func TestPaginate(t *testing.T) {
	jobs := sampleJobs()
	page, total := Paginate(jobs, 0, 3)
	require.Len(t, page, 3)
	require.Equal(t, 2, total)

	page, _ = Paginate(jobs, 1, 3)
	require.Len(t, page, 1)

	page, _ = Paginate(jobs, 2, 3)
	require.Empty(t, page)
}
