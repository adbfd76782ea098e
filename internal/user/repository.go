package user

import (
	"context"
	"regexp"

	"github.com/jobport/jobport-client/internal/access"
	"github.com/jobport/jobport-client/internal/apiclient"
	"github.com/jobport/jobport-client/internal/session"
)

var emailRe = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

const minPasswordLen = 8

// Repository handles authentication and profile calls. Login and Register
// persist the returned session so every subsequent call is authenticated.
type Repository struct {
	client   *apiclient.Client
	sessions *session.Store
}

func NewRepository(client *apiclient.Client, sessions *session.Store) *Repository {
	return &Repository{client: client, sessions: sessions}
}

type authResponse struct {
	Token string  `json:"token"`
	User  User    `json:"user"`
	Msg   *string `json:"message,omitempty"`
}

func (r *Repository) Login(ctx context.Context, email, password string) (User, error) {
	v := &apiclient.ValidationError{}
	if email == "" {
		v.Add("email", "email is required")
	}
	if password == "" {
		v.Add("password", "password is required")
	}
	if err := v.ErrOrNil(); err != nil {
		return User{}, err
	}
	var res authResponse
	payload := map[string]string{"email": email, "password": password}
	if err := r.client.Post(ctx, "/users/login", payload, &res); err != nil {
		return User{}, err
	}
	if err := r.persistSession(res); err != nil {
		return User{}, err
	}
	return res.User, nil
}

func (r *Repository) Register(ctx context.Context, form RegisterForm) (User, error) {
	v := &apiclient.ValidationError{}
	if form.FullName == "" {
		v.Add("fullName", "full name is required")
	}
	if !emailRe.MatchString(form.Email) {
		v.Add("email", "a valid email is required")
	}
	if len(form.Password) < minPasswordLen {
		v.Add("password", "password must be at least 8 characters")
	}
	if !access.RegistrableRole(form.Role) {
		v.Add("role", "role must be applicant or employer")
	}
	if err := v.ErrOrNil(); err != nil {
		return User{}, err
	}
	var res authResponse
	if err := r.client.Post(ctx, "/users/register", form, &res); err != nil {
		return User{}, err
	}
	if err := r.persistSession(res); err != nil {
		return User{}, err
	}
	return res.User, nil
}

// Logout discards the local session. The bearer token is stateless so there
// is nothing to revoke server-side.
func (r *Repository) Logout() error {
	return r.sessions.Clear()
}

// UpdateProfile edits the authenticated user's own record and refreshes the
// stored profile so later screens see the change.
func (r *Repository) UpdateProfile(ctx context.Context, form ProfileForm) (User, error) {
	sess, ok := r.sessions.Get()
	if !ok {
		return User{}, apiclient.NewError(apiclient.KindUnauthorized, "not signed in")
	}
	v := &apiclient.ValidationError{}
	if form.FullName == "" {
		v.Add("fullName", "full name is required")
	}
	if !emailRe.MatchString(form.Email) {
		v.Add("email", "a valid email is required")
	}
	if err := v.ErrOrNil(); err != nil {
		return User{}, err
	}
	var res struct {
		User User `json:"user"`
	}
	if err := r.client.Put(ctx, "/users/"+sess.User.ID, form, &res); err != nil {
		return User{}, err
	}
	updated := sess.User
	updated.FullName = res.User.FullName
	updated.Email = res.User.Email
	updated.Contact = res.User.Contact
	if err := r.sessions.UpdateProfile(updated); err != nil {
		return User{}, err
	}
	return res.User, nil
}

// RequestPasswordReset asks the backend to email a reset link. The backend
// answers the same way whether or not the address exists.
func (r *Repository) RequestPasswordReset(ctx context.Context, email string) error {
	if !emailRe.MatchString(email) {
		v := &apiclient.ValidationError{}
		v.Add("email", "a valid email is required")
		return v
	}
	return r.client.Post(ctx, "/passwords/request-reset", map[string]string{"email": email}, nil)
}

// ResetPassword redeems a reset token from the email link.
func (r *Repository) ResetPassword(ctx context.Context, token, newPassword, confirm string) error {
	v := &apiclient.ValidationError{}
	if token == "" {
		v.Add("token", "reset token is missing")
	}
	if len(newPassword) < minPasswordLen {
		v.Add("password", "password must be at least 8 characters")
	}
	if newPassword != confirm {
		v.Add("confirm", "passwords do not match")
	}
	if err := v.ErrOrNil(); err != nil {
		return err
	}
	payload := map[string]string{"token": token, "newPassword": newPassword}
	return r.client.Post(ctx, "/passwords/reset-password", payload, nil)
}

func (r *Repository) persistSession(res authResponse) error {
	profile := session.Profile{
		ID:       res.User.ID,
		FullName: res.User.FullName,
		UserName: res.User.UserName,
		Email:    res.User.Email,
		Role:     res.User.Role,
		Contact:  res.User.Contact,
	}
	return r.sessions.Set(res.Token, profile)
}
