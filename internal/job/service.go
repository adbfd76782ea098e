package job

import (
	"context"

	"github.com/jobport/jobport-client/internal/access"
	"github.com/jobport/jobport-client/internal/apiclient"
	"github.com/jobport/jobport-client/internal/company"
	"github.com/jobport/jobport-client/internal/session"
)

// Service is the job lifecycle. Ownership is indirect: a job belongs to the
// employer who owns its company, so every mutation resolves the owning
// company before touching the job.
type Service struct {
	repo      *Repository
	companies *company.Repository
	sessions  *session.Store
}

func NewService(repo *Repository, companies *company.Repository, sessions *session.Store) *Service {
	return &Service{repo: repo, companies: companies, sessions: sessions}
}

func (s *Service) Browse(ctx context.Context, f Filter) ([]Job, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) View(ctx context.Context, id string) (Job, error) {
	return s.repo.ByID(ctx, id)
}

// Mine lists jobs posted under the employer's own companies.
func (s *Service) Mine(ctx context.Context) ([]Job, error) {
	if _, err := s.actor(); err != nil {
		return nil, err
	}
	owned, err := s.companies.Mine(ctx)
	if err != nil {
		return nil, err
	}
	ownedIDs := make(map[string]bool, len(owned))
	for _, c := range owned {
		ownedIDs[c.ID] = true
	}
	all, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	mine := make([]Job, 0, len(all))
	for _, j := range all {
		if ownedIDs[j.CompanyID] {
			mine = append(mine, j)
		}
	}
	return mine, nil
}

// Create posts a job under companyID. New jobs go live immediately unless
// the form asks for a draft.
func (s *Service) Create(ctx context.Context, companyID string, form Form) ([]Job, error) {
	actor, err := s.actor()
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	target, err := s.companies.ByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(actor.User.Role, target.OwnerID, actor.User.ID) {
		return nil, apiclient.NewError(apiclient.KindForbidden, "you do not own this company")
	}
	status := StatusActive
	if form.Draft {
		status = StatusDraft
	}
	if _, err := s.repo.Create(ctx, companyID, form, status); err != nil {
		return nil, err
	}
	return s.Mine(ctx)
}

func (s *Service) Update(ctx context.Context, id string, form Form) ([]Job, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.ownedJob(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.repo.Update(ctx, id, form, ""); err != nil {
		return nil, err
	}
	return s.Mine(ctx)
}

// Publish moves a draft job to active.
func (s *Service) Publish(ctx context.Context, id string) ([]Job, error) {
	existing, err := s.ownedJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(existing.Status, StatusActive) {
		return nil, apiclient.NewError(apiclient.KindValidation, "only draft jobs can be published")
	}
	form := Form{
		Title:       existing.Title,
		Description: existing.Description,
		Type:        existing.Type,
		Location:    existing.Location,
		Salary:      existing.Salary,
		Deadline:    existing.Deadline,
	}
	if _, err := s.repo.Update(ctx, id, form, StatusActive); err != nil {
		return nil, err
	}
	return s.Mine(ctx)
}

// Close transitions active to closed. Closing an already-closed job is a
// no-op: the job is returned unchanged and no request is issued.
func (s *Service) Close(ctx context.Context, id string) (Job, error) {
	existing, err := s.ownedJob(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if existing.Status == StatusClosed {
		return existing, nil
	}
	if !CanTransition(existing.Status, StatusClosed) {
		return Job{}, apiclient.NewError(apiclient.KindValidation, "only active jobs can be closed")
	}
	return s.repo.Close(ctx, id)
}

// Delete permanently removes a job after explicit confirmation. Applications
// pointing at it become orphaned server-side; application views tolerate the
// missing reference.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) ([]Job, error) {
	if !confirmed {
		v := &apiclient.ValidationError{}
		v.Add("confirm", "deletion requires confirmation")
		return nil, v
	}
	if _, err := s.ownedJob(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return s.Mine(ctx)
}

// ownedJob fetches the job and checks the actor may mutate it through its
// company's owner.
func (s *Service) ownedJob(ctx context.Context, id string) (Job, error) {
	actor, err := s.actor()
	if err != nil {
		return Job{}, err
	}
	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return Job{}, err
	}
	ownerID := ""
	if existing.Company != nil {
		ownerID = existing.Company.OwnerID
	} else if existing.CompanyID != "" {
		owning, err := s.companies.ByID(ctx, existing.CompanyID)
		if err != nil {
			return Job{}, err
		}
		ownerID = owning.OwnerID
	}
	if !access.CanMutate(actor.User.Role, ownerID, actor.User.ID) {
		return Job{}, apiclient.NewError(apiclient.KindForbidden, "you do not own this job")
	}
	return existing, nil
}

func (s *Service) actor() (session.Session, error) {
	sess, ok := s.sessions.Get()
	if !ok {
		return session.Session{}, apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	if !access.Allowed(sess.User.Role, access.ActionManageJobs) {
		return session.Session{}, apiclient.NewError(apiclient.KindForbidden, "only employers can manage jobs")
	}
	return sess, nil
}
