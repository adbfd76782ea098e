package company

import (
	"context"

	"github.com/jobport/jobport-client/internal/access"
	"github.com/jobport/jobport-client/internal/apiclient"
	"github.com/jobport/jobport-client/internal/session"
)

// Service is the company lifecycle: validate, gate on role and ownership,
// mutate, then re-fetch the owning list. Mutations return the refreshed list
// so the screen never renders assumed state.
type Service struct {
	repo     *Repository
	sessions *session.Store
}

func NewService(repo *Repository, sessions *session.Store) *Service {
	return &Service{repo: repo, sessions: sessions}
}

func (s *Service) Browse(ctx context.Context) ([]Company, error) {
	return s.repo.All(ctx)
}

func (s *Service) View(ctx context.Context, id string) (Company, error) {
	return s.repo.ByID(ctx, id)
}

func (s *Service) Mine(ctx context.Context) ([]Company, error) {
	if _, err := s.actor(); err != nil {
		return nil, err
	}
	return s.repo.Mine(ctx)
}

func (s *Service) Create(ctx context.Context, form Form) ([]Company, error) {
	if _, err := s.actor(); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.Create(ctx, form); err != nil {
		return nil, err
	}
	return s.repo.Mine(ctx)
}

func (s *Service) Update(ctx context.Context, id string, form Form) ([]Company, error) {
	actor, err := s.actor()
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(actor.User.Role, existing.OwnerID, actor.User.ID) {
		return nil, apiclient.NewError(apiclient.KindForbidden, "you do not own this company")
	}
	if _, err := s.repo.Update(ctx, id, form); err != nil {
		return nil, err
	}
	return s.repo.Mine(ctx)
}

// Delete removes a company after explicit confirmation. The backend cascades
// the delete to the company's jobs; the refreshed list reflects that.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) ([]Company, error) {
	actor, err := s.actor()
	if err != nil {
		return nil, err
	}
	if !confirmed {
		v := &apiclient.ValidationError{}
		v.Add("confirm", "deletion requires confirmation")
		return nil, v
	}
	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(actor.User.Role, existing.OwnerID, actor.User.ID) {
		return nil, apiclient.NewError(apiclient.KindForbidden, "you do not own this company")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Mine(ctx)
}

func (s *Service) actor() (session.Session, error) {
	sess, ok := s.sessions.Get()
	if !ok {
		return session.Session{}, apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	if !access.Allowed(sess.User.Role, access.ActionManageCompanies) {
		return session.Session{}, apiclient.NewError(apiclient.KindForbidden, "only employers can manage companies")
	}
	return sess, nil
}
