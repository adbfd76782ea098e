package application

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jobport/jobport-client/internal/access"
	"github.com/jobport/jobport-client/internal/apiclient"
	"github.com/jobport/jobport-client/internal/company"
	"github.com/jobport/jobport-client/internal/job"
	"github.com/jobport/jobport-client/internal/session"
)

type fakeBackend struct {
	router *mux.Router
	jobs   map[string]job.Job
	apps   map[string]*Application
	nextID int
	hits   map[string]int
}

func newFakeBackend() *fakeBackend {
	fb := &fakeBackend{
		router: mux.NewRouter(),
		jobs:   make(map[string]job.Job),
		apps:   make(map[string]*Application),
		nextID: 1,
		hits:   make(map[string]int),
	}
	fb.router.HandleFunc("/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		fb.hits["job"]++
		j, ok := fb.jobs[mux.Vars(r)["id"]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"message": "job not found"})
			return
		}
		writeJSON(w, map[string]interface{}{"job": j})
	}).Methods("GET")
	fb.router.HandleFunc("/applications/{jobId}", func(w http.ResponseWriter, r *http.Request) {
		fb.hits["submit"]++
		jobID := mux.Vars(r)["jobId"]
		userID := bearerUser(r)
		for _, a := range fb.apps {
			if a.JobID == jobID && a.UserID == userID {
				w.WriteHeader(http.StatusConflict)
				writeJSON(w, map[string]string{"message": "you have already applied for this job"})
				return
			}
		}
		created := &Application{
			ID:        fmt.Sprintf("a%d", fb.nextID),
			JobID:     jobID,
			UserID:    userID,
			Status:    StatusApplied,
			CreatedAt: time.Now(),
		}
		fb.nextID++
		fb.apps[created.ID] = created
		writeJSON(w, map[string]interface{}{"application": *created})
	}).Methods("POST")
	fb.router.HandleFunc("/applications/my-applications", func(w http.ResponseWriter, r *http.Request) {
		fb.hits["mine"]++
		userID := bearerUser(r)
		status := r.URL.Query().Get("status")
		out := []Application{}
		for _, a := range fb.apps {
			if a.UserID != userID {
				continue
			}
			if status != "" && string(a.Status) != status {
				continue
			}
			out = append(out, *a)
		}
		writeJSON(w, map[string]interface{}{"applications": out})
	}).Methods("GET")
	fb.router.HandleFunc("/applications/job/{jobId}", func(w http.ResponseWriter, r *http.Request) {
		fb.hits["byjob"]++
		out := []Application{}
		for _, a := range fb.apps {
			if a.JobID == mux.Vars(r)["jobId"] {
				out = append(out, *a)
			}
		}
		writeJSON(w, map[string]interface{}{"applications": out})
	}).Methods("GET")
	fb.router.HandleFunc("/applications/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		fb.hits["status"]++
		var req struct {
			Status Status `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		a := fb.apps[mux.Vars(r)["id"]]
		a.Status = req.Status
		writeJSON(w, map[string]interface{}{"application": *a})
	}).Methods("PATCH")
	fb.router.HandleFunc("/applications/{id}", func(w http.ResponseWriter, r *http.Request) {
		fb.hits["withdraw"]++
		delete(fb.apps, mux.Vars(r)["id"])
		writeJSON(w, map[string]string{"message": "withdrawn"})
	}).Methods("DELETE")
	fb.router.HandleFunc("/uploads/{id}/resume", func(w http.ResponseWriter, r *http.Request) {
		fb.hits["resume"]++
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}).Methods("GET")
	return fb
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// bearerUser reads the user id out of the bearer token. The test sessions use
// the profile id as the token so the fake can tell users apart.
func bearerUser(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func newTestService(t *testing.T, fb *fakeBackend, profile session.Profile) *Service {
	t.Helper()
	srv := httptest.NewServer(fb.router)
	t.Cleanup(srv.Close)
	sessions := session.NewStore("")
	if profile.ID != "" {
		require.NoError(t, sessions.Set(profile.ID, profile))
	}
	client := apiclient.NewClient(apiclient.Config{BaseURL: srv.URL, Tokens: sessions, Logger: zerolog.Nop()})
	return NewService(NewRepository(client), job.NewRepository(client), sessions)
}

func jane() session.Profile {
	return session.Profile{ID: "7", FullName: "Jane", Role: access.RoleApplicant}
}

func activeJob(id string) job.Job {
	return job.Job{ID: id, Status: job.StatusActive, Title: "Go Engineer", CompanyID: "c1", Company: &company.Company{ID: "c1", OwnerID: "9"}}
}

func TestSubmitHappyPath(t *testing.T) {
	fb := newFakeBackend()
	fb.jobs["42"] = activeJob("42")
	svc := newTestService(t, fb, jane())

	resume := make([]byte, 2*1024*1024)
	created, err := svc.Submit(context.Background(), "42", "cv.pdf", resume, true)
	require.NoError(t, err)
	require.Equal(t, StatusApplied, created.Status)
	require.Equal(t, "42", created.JobID)
	require.Equal(t, 1, fb.hits["submit"])
}

func TestSubmitDuplicateSurfacesConflict(t *testing.T) {
	fb := newFakeBackend()
	fb.jobs["42"] = activeJob("42")
	svc := newTestService(t, fb, jane())

	resume := []byte("pdf")
	_, err := svc.Submit(context.Background(), "42", "cv.pdf", resume, true)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "42", "cv.pdf", resume, true)
	require.True(t, apiclient.IsKind(err, apiclient.KindConflict))
	require.Len(t, fb.apps, 1, "no duplicate record")
}

func TestSubmitLocalValidationIssuesNoRequest(t *testing.T) {
	fb := newFakeBackend()
	fb.jobs["42"] = activeJob("42")
	svc := newTestService(t, fb, jane())

	cases := []struct {
		name    string
		file    string
		data    []byte
		consent bool
	}{
		{"no consent", "cv.pdf", []byte("x"), false},
		{"bad type", "cv.txt", []byte("x"), true},
		{"too large", "cv.pdf", make([]byte, apiclient.MaxResumeSize+1), true},
		{"missing resume", "", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), "42", tc.file, tc.data, tc.consent)
			require.True(t, apiclient.IsKind(err, apiclient.KindValidation))
		})
	}
	require.Zero(t, fb.hits["submit"])
	require.Zero(t, fb.hits["job"], "local validation precedes every network call")
}

func TestSubmitClosedOrExpiredJob(t *testing.T) {
	fb := newFakeBackend()
	fb.jobs["1"] = job.Job{ID: "1", Status: job.StatusClosed}
	past := time.Now().Add(-24 * time.Hour)
	fb.jobs["2"] = job.Job{ID: "2", Status: job.StatusActive, Deadline: &past}
	svc := newTestService(t, fb, jane())

	_, err := svc.Submit(context.Background(), "1", "cv.pdf", []byte("x"), true)
	require.True(t, apiclient.IsKind(err, apiclient.KindValidation))

	_, err = svc.Submit(context.Background(), "2", "cv.pdf", []byte("x"), true)
	require.True(t, apiclient.IsKind(err, apiclient.KindValidation))
	require.Zero(t, fb.hits["submit"])
}

func TestSubmitRequiresApplicantRole(t *testing.T) {
	fb := newFakeBackend()
	fb.jobs["42"] = activeJob("42")

	svc := newTestService(t, fb, session.Profile{})
	_, err := svc.Submit(context.Background(), "42", "cv.pdf", []byte("x"), true)
	require.True(t, apiclient.IsKind(err, apiclient.KindUnauthorized))

	svc = newTestService(t, fb, session.Profile{ID: "9", Role: access.RoleEmployer})
	_, err = svc.Submit(context.Background(), "42", "cv.pdf", []byte("x"), true)
	require.True(t, apiclient.IsKind(err, apiclient.KindForbidden))
}

func TestWithdrawRules(t *testing.T) {
	fb := newFakeBackend()
	svc := newTestService(t, fb, jane())

	// terminal statuses cannot be withdrawn, no request issued
	for _, status := range []Status{StatusHired, StatusRejected} {
		app := Application{ID: "a1", UserID: "7", Status: status}
		_, err := svc.Withdraw(context.Background(), app, true)
		require.True(t, apiclient.IsKind(err, apiclient.KindForbidden), "status %s", status)
	}
	require.Zero(t, fb.hits["withdraw"])

	// not the owner
	other := Application{ID: "a2", UserID: "8", Status: StatusApplied}
	_, err := svc.Withdraw(context.Background(), other, true)
	require.True(t, apiclient.IsKind(err, apiclient.KindForbidden))

	// needs confirmation
	own := Application{ID: "a3", UserID: "7", Status: StatusApplied}
	_, err = svc.Withdraw(context.Background(), own, false)
	require.True(t, apiclient.IsKind(err, apiclient.KindValidation))
	require.Zero(t, fb.hits["withdraw"])

	// happy path refetches the owning list
	fb.apps["a3"] = &Application{ID: "a3", JobID: "42", UserID: "7", Status: StatusApplied}
	remaining, err := svc.Withdraw(context.Background(), own, true)
	require.NoError(t, err)
	require.Empty(t, remaining)
	require.Equal(t, 1, fb.hits["withdraw"])
}

func TestSetStatusTransitions(t *testing.T) {
	fb := newFakeBackend()
	fb.jobs["42"] = activeJob("42")
	fb.apps["a9"] = &Application{ID: "a9", JobID: "42", UserID: "7", Status: StatusApplied}
	owner := session.Profile{ID: "9", FullName: "Ed", Role: access.RoleEmployer}
	svc := newTestService(t, fb, owner)

	app := *fb.apps["a9"]

	// regression and unknown values rejected locally
	_, err := svc.SetStatus(context.Background(), app, StatusApplied)
	require.True(t, apiclient.IsKind(err, apiclient.KindValidation))
	_, err = svc.SetStatus(context.Background(), app, Status("pending"))
	require.True(t, apiclient.IsKind(err, apiclient.KindValidation))
	require.Zero(t, fb.hits["status"])

	// applied -> hired directly is allowed
	list, err := svc.SetStatus(context.Background(), app, StatusHired)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, StatusHired, list[0].Status)

	// terminal now: no further transitions
	_, err = svc.SetStatus(context.Background(), list[0], StatusApplied)
	require.True(t, apiclient.IsKind(err, apiclient.KindValidation))
}

func TestSetStatusOwnershipGate(t *testing.T) {
	fb := newFakeBackend()
	fb.jobs["42"] = activeJob("42") // owned by employer 9
	fb.apps["a9"] = &Application{ID: "a9", JobID: "42", UserID: "7", Status: StatusApplied}

	stranger := session.Profile{ID: "11", Role: access.RoleEmployer}
	svc := newTestService(t, fb, stranger)
	_, err := svc.SetStatus(context.Background(), *fb.apps["a9"], StatusInterviewed)
	require.True(t, apiclient.IsKind(err, apiclient.KindForbidden))
	require.Zero(t, fb.hits["status"])

	// admin bypasses ownership but not the transition table
	admin := session.Profile{ID: "1", Role: access.RoleAdmin}
	svc = newTestService(t, fb, admin)
	_, err = svc.SetStatus(context.Background(), *fb.apps["a9"], StatusApplied)
	require.True(t, apiclient.IsKind(err, apiclient.KindValidation))

	list, err := svc.SetStatus(context.Background(), *fb.apps["a9"], StatusInterviewed)
	require.NoError(t, err)
	require.Equal(t, StatusInterviewed, list[0].Status)
}

func TestMineStatusFilter(t *testing.T) {
	fb := newFakeBackend()
	fb.apps["a1"] = &Application{ID: "a1", JobID: "1", UserID: "7", Status: StatusApplied}
	fb.apps["a2"] = &Application{ID: "a2", JobID: "2", UserID: "7", Status: StatusHired}
	svc := newTestService(t, fb, jane())

	_, err := svc.Mine(context.Background(), Status("bogus"))
	require.True(t, apiclient.IsKind(err, apiclient.KindValidation))

	all, err := svc.Mine(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	hired, err := svc.Mine(context.Background(), StatusHired)
	require.NoError(t, err)
	require.Len(t, hired, 1)
	require.Equal(t, "a2", hired[0].ID)
	require.False(t, hired[0].Withdrawable())
}

func TestOpenResume(t *testing.T) {
	fb := newFakeBackend()
	employerSvc := newTestService(t, fb, session.Profile{ID: "9", Role: access.RoleEmployer})
	data, contentType, err := employerSvc.OpenResume(context.Background(), "a1")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", contentType)
	require.NotEmpty(t, data)

	applicantSvc := newTestService(t, fb, jane())
	_, _, err = applicantSvc.OpenResume(context.Background(), "a1")
	require.True(t, apiclient.IsKind(err, apiclient.KindForbidden))
}
