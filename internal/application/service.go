package application

import (
	"context"
	"fmt"
	"time"

	"github.com/jobport/jobport-client/internal/access"
	"github.com/jobport/jobport-client/internal/apiclient"
	"github.com/jobport/jobport-client/internal/job"
	"github.com/jobport/jobport-client/internal/session"
)

// Service is the application lifecycle. Submission and withdrawal belong to
// applicants; status transitions belong to the employer owning the job (or
// an admin), and are checked against the explicit transition table before
// any request is issued.
type Service struct {
	repo     *Repository
	jobs     *job.Repository
	sessions *session.Store
	now      func() time.Time
}

func NewService(repo *Repository, jobs *job.Repository, sessions *session.Store) *Service {
	return &Service{repo: repo, jobs: jobs, sessions: sessions, now: time.Now}
}

// Submit applies to a job with a resume. All local checks run before any
// network call: role, consent, resume constraints and whether the job is
// still accepting applications.
func (s *Service) Submit(ctx context.Context, jobID, resumeName string, resumeData []byte, consent bool) (Application, error) {
	sess, ok := s.sessions.Get()
	if !ok {
		return Application{}, apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	if !access.Allowed(sess.User.Role, access.ActionApplyToJob) {
		return Application{}, apiclient.NewError(apiclient.KindForbidden, "only applicants can apply to jobs")
	}
	v := &apiclient.ValidationError{}
	if !consent {
		v.Add("consent", "you must accept the terms to proceed")
	}
	if err := apiclient.ValidateResumeFile(resumeName, int64(len(resumeData))); err != nil {
		if fieldErr, ok := err.(*apiclient.ValidationError); ok {
			for field, msg := range fieldErr.Fields {
				v.Add(field, msg)
			}
		}
	}
	if err := v.ErrOrNil(); err != nil {
		return Application{}, err
	}
	target, err := s.jobs.ByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}
	if !target.Accepting(s.now()) {
		return Application{}, apiclient.NewError(apiclient.KindValidation, "this job is no longer accepting applications")
	}
	return s.repo.Submit(ctx, jobID, resumeName, resumeData)
}

// Mine lists the applicant's own applications.
func (s *Service) Mine(ctx context.Context, status Status) ([]Application, error) {
	sess, ok := s.sessions.Get()
	if !ok {
		return nil, apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	if !access.Allowed(sess.User.Role, access.ActionViewOwnApplications) {
		return nil, apiclient.NewError(apiclient.KindForbidden, "only applicants have an application list")
	}
	if status != "" && !ValidStatus(status) {
		return nil, apiclient.NewError(apiclient.KindValidation, fmt.Sprintf("unknown status %q", status))
	}
	return s.repo.Mine(ctx, status)
}

// ForJob lists applications against one of the employer's jobs.
func (s *Service) ForJob(ctx context.Context, jobID string) ([]Application, error) {
	sess, ok := s.sessions.Get()
	if !ok {
		return nil, apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	if !access.Allowed(sess.User.Role, access.ActionReviewApplications) {
		return nil, apiclient.NewError(apiclient.KindForbidden, "only employers can review applications")
	}
	return s.repo.ByJob(ctx, jobID)
}

// Withdraw removes the applicant's own application after confirmation.
// Hired and rejected applications cannot be withdrawn.
func (s *Service) Withdraw(ctx context.Context, app Application, confirmed bool) ([]Application, error) {
	sess, ok := s.sessions.Get()
	if !ok {
		return nil, apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	if !access.Allowed(sess.User.Role, access.ActionWithdrawApplication) || app.UserID != sess.User.ID {
		return nil, apiclient.NewError(apiclient.KindForbidden, "you can only withdraw your own applications")
	}
	if !confirmed {
		v := &apiclient.ValidationError{}
		v.Add("confirm", "withdrawal requires confirmation")
		return nil, v
	}
	if !app.Withdrawable() {
		return nil, apiclient.NewError(apiclient.KindForbidden, fmt.Sprintf("a %s application cannot be withdrawn", app.Status))
	}
	if err := s.repo.Withdraw(ctx, app.ID); err != nil {
		return nil, err
	}
	return s.repo.Mine(ctx, "")
}

// SetStatus moves an application along the status machine. The transition
// table binds admins too: admin bypasses ownership, not lifecycle legality.
func (s *Service) SetStatus(ctx context.Context, app Application, to Status) ([]Application, error) {
	sess, ok := s.sessions.Get()
	if !ok {
		return nil, apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	if !access.Allowed(sess.User.Role, access.ActionTransitionApplication) {
		return nil, apiclient.NewError(apiclient.KindForbidden, "only employers can update application status")
	}
	if !ValidStatus(to) {
		return nil, apiclient.NewError(apiclient.KindValidation, fmt.Sprintf("unknown status %q", to))
	}
	if !CanTransition(app.Status, to) {
		return nil, apiclient.NewError(apiclient.KindValidation, fmt.Sprintf("invalid transition %s to %s", app.Status, to))
	}
	if sess.User.Role != access.RoleAdmin {
		ownerID, err := s.jobOwner(ctx, app)
		if err != nil {
			return nil, err
		}
		if !access.CanMutate(sess.User.Role, ownerID, sess.User.ID) {
			return nil, apiclient.NewError(apiclient.KindForbidden, "you do not own the job for this application")
		}
	}
	if _, err := s.repo.SetStatus(ctx, app.ID, to); err != nil {
		return nil, err
	}
	return s.repo.ByJob(ctx, app.JobID)
}

// OpenResume fetches the resume blob for viewing. The bytes are never
// interpreted client-side.
func (s *Service) OpenResume(ctx context.Context, applicationID string) ([]byte, string, error) {
	sess, ok := s.sessions.Get()
	if !ok {
		return nil, "", apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	if !access.Allowed(sess.User.Role, access.ActionReviewApplications) {
		return nil, "", apiclient.NewError(apiclient.KindForbidden, "only employers can open resumes")
	}
	return s.repo.Resume(ctx, applicationID)
}

func (s *Service) jobOwner(ctx context.Context, app Application) (string, error) {
	if app.Job != nil && app.Job.Company != nil {
		return app.Job.Company.OwnerID, nil
	}
	target, err := s.jobs.ByID(ctx, app.JobID)
	if err != nil {
		return "", err
	}
	if target.Company == nil {
		return "", nil
	}
	return target.Company.OwnerID, nil
}
