package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobport/jobport-client/internal/access"
	"github.com/jobport/jobport-client/internal/admin"
	"github.com/jobport/jobport-client/internal/apiclient"
	"github.com/jobport/jobport-client/internal/application"
	"github.com/jobport/jobport-client/internal/company"
	"github.com/jobport/jobport-client/internal/config"
	"github.com/jobport/jobport-client/internal/job"
	"github.com/jobport/jobport-client/internal/session"
	"github.com/jobport/jobport-client/internal/user"
)

type app struct {
	sessions     *session.Store
	users        *user.Repository
	companies    *company.Service
	jobs         *job.Service
	applications *application.Service
	admin        *admin.Service
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to load config: %+v\n", err)
		os.Exit(1)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()
	if cfg.Env == "prod" {
		logger = logger.Level(zerolog.InfoLevel)
	}

	sessions := session.NewStore(cfg.SessionFile)
	client := apiclient.NewClient(apiclient.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Tokens:  sessions,
		Logger:  logger,
		OnUnauthorized: func() {
			// expired or revoked credential, next screen is the login one
			if err := sessions.Clear(); err != nil {
				logger.Warn().Err(err).Msg("unable to clear session")
			}
		},
		SentryDSN: cfg.SentryDSN,
	})

	companyRepo := company.NewRepository(client)
	jobRepo := job.NewRepository(client)
	applicationRepo := application.NewRepository(client)

	a := &app{
		sessions:     sessions,
		users:        user.NewRepository(client, sessions),
		companies:    company.NewService(companyRepo, sessions),
		jobs:         job.NewService(jobRepo, companyRepo, sessions),
		applications: application.NewService(applicationRepo, jobRepo, sessions),
		admin:        admin.NewService(admin.NewRepository(client), sessions),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", renderError(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(args)
		u, err := a.users.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s (%s)\n", u.FullName, u.Role)
		return nil
	case "logout":
		return a.users.Logout()
	case "whoami":
		sess, ok := a.sessions.Get()
		if !ok {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s <%s> role=%s\n", sess.User.FullName, sess.User.Email, sess.User.Role)
		if exp, ok := sess.ExpiresAt(); ok {
			fmt.Printf("token expires %s\n", exp.Format(time.RFC3339))
		}
		return nil
	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		name := fs.String("name", "", "full name")
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		role := fs.String("role", "applicant", "applicant or employer")
		fs.Parse(args)
		u, err := a.users.Register(ctx, user.RegisterForm{
			FullName: *name,
			Email:    *email,
			Password: *password,
			Role:     access.Role(*role),
		})
		if err != nil {
			return err
		}
		fmt.Printf("registered %s as %s\n", u.Email, u.Role)
		return nil
	case "jobs":
		fs := flag.NewFlagSet("jobs", flag.ExitOnError)
		search := fs.String("search", "", "search title, company or location")
		status := fs.String("status", "", "draft, active or closed")
		jobType := fs.String("type", "", "Full-Time, Part-Time or Internship")
		location := fs.String("location", "", "location filter")
		page := fs.Int("page", 0, "page index")
		pageSize := fs.Int("page-size", 10, "jobs per page")
		fs.Parse(args)
		all, err := a.jobs.Browse(ctx, job.Filter{
			Search:   *search,
			Status:   job.Status(*status),
			Type:     job.Type(*jobType),
			Location: *location,
		})
		if err != nil {
			return err
		}
		pageJobs, totalPages := job.Paginate(all, *page, *pageSize)
		for _, j := range pageJobs {
			fmt.Printf("%s\t%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.CompanyName(), j.Location, j.Status, j.PostedAgo())
		}
		fmt.Printf("page %d of %d (%d jobs)\n", *page+1, totalPages, len(all))
		return nil
	case "apply":
		fs := flag.NewFlagSet("apply", flag.ExitOnError)
		jobID := fs.String("job", "", "job id")
		resume := fs.String("resume", "", "path to resume (PDF, DOC or DOCX, max 5MB)")
		consent := fs.Bool("consent", false, "consent to data processing")
		fs.Parse(args)
		data, err := os.ReadFile(*resume)
		if err != nil {
			return err
		}
		created, err := a.applications.Submit(ctx, *jobID, *resume, data, *consent)
		if err != nil {
			return err
		}
		fmt.Printf("application %s submitted, status %s\n", created.ID, created.Status)
		return nil
	case "my-applications":
		fs := flag.NewFlagSet("my-applications", flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		fs.Parse(args)
		apps, err := a.applications.Mine(ctx, application.Status(*status))
		if err != nil {
			return err
		}
		for _, ap := range apps {
			fmt.Printf("%s\t%s\t%s\t%s\n", ap.ID, ap.JobTitle(), ap.Status, ap.AppliedAgo())
		}
		st := application.Summarize(apps)
		fmt.Printf("applied=%d interviewed=%d hired=%d rejected=%d\n", st.Applied, st.Interviewed, st.Hired, st.Rejected)
		return nil
	case "withdraw":
		fs := flag.NewFlagSet("withdraw", flag.ExitOnError)
		id := fs.String("id", "", "application id")
		yes := fs.Bool("yes", false, "confirm withdrawal")
		fs.Parse(args)
		apps, err := a.applications.Mine(ctx, "")
		if err != nil {
			return err
		}
		for _, ap := range apps {
			if ap.ID == *id {
				if _, err := a.applications.Withdraw(ctx, ap, *yes); err != nil {
					return err
				}
				fmt.Println("application withdrawn")
				return nil
			}
		}
		return apiclient.NewError(apiclient.KindNotFound, "no such application")
	case "companies":
		companies, err := a.companies.Browse(ctx)
		if err != nil {
			return err
		}
		for _, c := range companies {
			fmt.Printf("%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Industry, c.Location)
		}
		return nil
	case "my-companies":
		companies, err := a.companies.Mine(ctx)
		if err != nil {
			return err
		}
		for _, c := range companies {
			fmt.Printf("%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Industry, c.Location)
		}
		return nil
	case "my-jobs":
		jobs, err := a.jobs.Mine(ctx)
		if err != nil {
			return err
		}
		for _, j := range jobs {
			fmt.Printf("%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Status, j.PostedAgo())
		}
		return nil
	case "close-job":
		fs := flag.NewFlagSet("close-job", flag.ExitOnError)
		id := fs.String("id", "", "job id")
		fs.Parse(args)
		closed, err := a.jobs.Close(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("job %s is now %s\n", closed.ID, closed.Status)
		return nil
	case "admin-dashboard":
		stats, err := a.admin.Dashboard(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("users=%d companies=%d jobs=%d applications=%d\n",
			stats.Overview.TotalUsers,
			stats.Overview.TotalCompanies,
			stats.Overview.TotalJobs,
			stats.Overview.TotalApplications,
		)
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func renderError(err error) string {
	var v *apiclient.ValidationError
	if errors.As(err, &v) {
		out := "validation failed:"
		for field, msg := range v.Fields {
			out += fmt.Sprintf("\n  %s: %s", field, msg)
		}
		return out
	}
	return err.Error()
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: jobport <command> [flags]

commands:
  login, logout, whoami, register
  jobs, apply, my-applications, withdraw
  companies, my-companies, my-jobs, close-job
  admin-dashboard`)
}
