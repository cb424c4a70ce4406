package adminui

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"confportal/internal/auth"
	"confportal/internal/domain"
	"confportal/internal/service"
	"confportal/internal/store/memory"
)

var testCodec = auth.NewCookieCodec([]byte("0123456789abcdef0123456789abcdef"))

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store, *service.AuthService) {
	t.Helper()

	store := memory.New()
	authSvc := &service.AuthService{
		Users:      store,
		Sessions:   store,
		SessionTTL: 2 * time.Hour,
	}
	handler := New(Opts{
		Auth: authSvc,
		Admin: &service.AdminService{
			Users:        store,
			Applications: store,
			Theses:       store,
		},
		CookieCodec: testCodec,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, store, authSvc
}

// loginAs registers a user directly against the store and returns a client
// holding their session cookie.
func loginAs(t *testing.T, srv *httptest.Server, store *memory.Store, authSvc *service.AuthService, email string, admin bool) *http.Client {
	t.Helper()
	ctx := context.Background()

	u, err := authSvc.Register(ctx, email, "Test User", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if admin {
		if err := store.SetAdmin(ctx, u.ID, true); err != nil {
			t.Fatalf("set admin: %v", err)
		}
	}
	_, token, err := authSvc.Login(ctx, email, "s3cret-pass", false)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	srvURL, _ := url.Parse(srv.URL)
	jar.SetCookies(srvURL, []*http.Cookie{{
		Name:  auth.SessionCookieName,
		Value: testCodec.EncodeToken(token),
	}})
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	srv, _, _ := newTestServer(t)
	c := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	resp, err := c.Get(srv.URL + "/admin/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/app/login" {
		t.Errorf("Location = %q, want /app/login", loc)
	}
}

func TestNonAdminForbidden(t *testing.T) {
	srv, store, authSvc := newTestServer(t)
	c := loginAs(t, srv, store, authSvc, "user@example.com", false)

	resp, err := c.Get(srv.URL + "/admin/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestAdminDashboardAndStatusForm(t *testing.T) {
	srv, store, authSvc := newTestServer(t)

	member, err := authSvc.Register(context.Background(), "speaker@example.com", "Speaker", "s3cret-pass")
	if err != nil {
		t.Fatalf("register member: %v", err)
	}
	app, err := store.CreateApplication(context.Background(), domain.Application{
		UserID:    member.ID,
		Role:      domain.RoleSpeaker,
		FullName:  "Speaker",
		Email:     "speaker@example.com",
		TalkTitle: "Plan caches",
		Status:    domain.ApplicationPending,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}

	c := loginAs(t, srv, store, authSvc, "admin@example.com", true)

	resp, err := c.Get(srv.URL + "/admin/applications")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("applications page: status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Plan caches") {
		t.Errorf("applications page does not list the talk")
	}

	resp, err = c.Post(srv.URL+"/admin/applications/"+app.ID+"/status",
		"application/x-www-form-urlencoded", strings.NewReader("status=approved"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("set status: status = %d, want 302", resp.StatusCode)
	}

	got, err := store.GetApplicationByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("reload application: %v", err)
	}
	if got.Status != domain.ApplicationApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
}

func TestPromoteUserForm(t *testing.T) {
	srv, store, authSvc := newTestServer(t)

	member, err := authSvc.Register(context.Background(), "plain@example.com", "Plain", "s3cret-pass")
	if err != nil {
		t.Fatalf("register member: %v", err)
	}

	c := loginAs(t, srv, store, authSvc, "admin@example.com", true)

	resp, err := c.Post(srv.URL+"/admin/users/"+member.ID+"/promote",
		"application/x-www-form-urlencoded", strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("promote: status = %d, want 302", resp.StatusCode)
	}

	got, err := store.GetUserByID(context.Background(), member.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !got.IsAdmin {
		t.Errorf("user not promoted")
	}
}
