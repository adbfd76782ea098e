package admin

import (
	"context"
	"fmt"

	"github.com/jobport/jobport-client/internal/access"
	"github.com/jobport/jobport-client/internal/apiclient"
	"github.com/jobport/jobport-client/internal/application"
	"github.com/jobport/jobport-client/internal/company"
	"github.com/jobport/jobport-client/internal/job"
	"github.com/jobport/jobport-client/internal/session"
	"github.com/jobport/jobport-client/internal/user"
)

// Service gates the admin views. Ownership checks do not apply here, but
// lifecycle legality still does: an admin cannot move an application
// backwards any more than an employer can.
type Service struct {
	repo     *Repository
	sessions *session.Store
}

func NewService(repo *Repository, sessions *session.Store) *Service {
	return &Service{repo: repo, sessions: sessions}
}

func (s *Service) Dashboard(ctx context.Context) (Stats, error) {
	if err := s.requireAdmin(); err != nil {
		return Stats{}, err
	}
	return s.repo.Dashboard(ctx)
}

func (s *Service) Users(ctx context.Context, q Query) ([]user.User, int, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, 0, err
	}
	all, err := s.repo.Users(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, total := FilterUsers(all, q)
	return page, total, nil
}

func (s *Service) Companies(ctx context.Context, q Query) ([]company.Company, int, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, 0, err
	}
	all, err := s.repo.Companies(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, total := FilterCompanies(all, q)
	return page, total, nil
}

func (s *Service) Jobs(ctx context.Context, q Query) ([]job.Job, int, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, 0, err
	}
	all, err := s.repo.Jobs(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, total := FilterJobs(all, q)
	return page, total, nil
}

func (s *Service) Applications(ctx context.Context, q Query) ([]application.Application, int, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, 0, err
	}
	all, err := s.repo.Applications(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, total := FilterApplications(all, q)
	return page, total, nil
}

// SetUserRole edits a user's role directly.
func (s *Service) SetUserRole(ctx context.Context, id string, role access.Role) ([]user.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if !access.ValidRole(role) {
		return nil, apiclient.NewError(apiclient.KindValidation, fmt.Sprintf("unknown role %q", role))
	}
	if err := s.repo.UpdateUser(ctx, id, map[string]interface{}{"role": role}); err != nil {
		return nil, err
	}
	return s.repo.Users(ctx)
}

func (s *Service) DeleteUser(ctx context.Context, id string, confirmed bool) ([]user.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if err := requireConfirmed(confirmed); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Users(ctx)
}

func (s *Service) DeleteCompany(ctx context.Context, id string, confirmed bool) ([]company.Company, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if err := requireConfirmed(confirmed); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteCompany(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Companies(ctx)
}

// SetJobStatus edits a job's status directly, still honouring the job
// status machine.
func (s *Service) SetJobStatus(ctx context.Context, target job.Job, status job.Status) ([]job.Job, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if target.Status == status {
		return s.repo.Jobs(ctx)
	}
	if !job.CanTransition(target.Status, status) {
		return nil, apiclient.NewError(apiclient.KindValidation, fmt.Sprintf("invalid transition %s to %s", target.Status, status))
	}
	if err := s.repo.UpdateJobStatus(ctx, target.ID, status); err != nil {
		return nil, err
	}
	return s.repo.Jobs(ctx)
}

func (s *Service) DeleteJob(ctx context.Context, id string, confirmed bool) ([]job.Job, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if err := requireConfirmed(confirmed); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteJob(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Jobs(ctx)
}

// SetApplicationStatus edits an application's status through the same
// transition table the employer flow uses.
func (s *Service) SetApplicationStatus(ctx context.Context, target application.Application, status application.Status) ([]application.Application, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if !application.ValidStatus(status) {
		return nil, apiclient.NewError(apiclient.KindValidation, fmt.Sprintf("unknown status %q", status))
	}
	if !application.CanTransition(target.Status, status) {
		return nil, apiclient.NewError(apiclient.KindValidation, fmt.Sprintf("invalid transition %s to %s", target.Status, status))
	}
	if err := s.repo.UpdateApplicationStatus(ctx, target.ID, status); err != nil {
		return nil, err
	}
	return s.repo.Applications(ctx)
}

func (s *Service) DeleteApplication(ctx context.Context, id string, confirmed bool) ([]application.Application, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if err := requireConfirmed(confirmed); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteApplication(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Applications(ctx)
}

func (s *Service) requireAdmin() error {
	sess, ok := s.sessions.Get()
	if !ok {
		return apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	if !access.Allowed(sess.User.Role, access.ActionViewAdminDashboard) {
		return apiclient.NewError(apiclient.KindForbidden, "admin access required")
	}
	return nil
}

func requireConfirmed(confirmed bool) error {
	if confirmed {
		return nil
	}
	v := &apiclient.ValidationError{}
	v.Add("confirm", "deletion requires confirmation")
	return v
}
