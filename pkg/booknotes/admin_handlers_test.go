package booknotes

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer starts the full router on a test server with a cookie jar
// so the admin session survives across requests. Redirects are not followed;
// the tests assert on Location headers directly.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client, *App) {
	t.Helper()

	app := newTestApp(t)
	srv := httptest.NewServer(app.Router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client, app
}

func seedAdmin(t *testing.T, app *App) {
	t.Helper()
	require.NoError(t, app.CreateAdmin(context.Background(), "admin", "hunter2"))
}

func postForm(t *testing.T, client *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.Post(rawURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func login(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	resp := postForm(t, client, baseURL+"/admin", url.Values{
		"username": {"admin"},
		"password": {"hunter2"},
		"secret":   {testSecretWord},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin/interface", resp.Header.Get("Location"))
}

func readBody(t *testing.T, client *http.Client, rawURL string) (int, string) {
	t.Helper()
	resp, err := client.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestInterfaceUnauthenticated(t *testing.T) {
	srv, client, _ := newTestServer(t)

	status, _ := readBody(t, client, srv.URL+"/admin/interface")
	assert.Equal(t, http.StatusUnauthorized, status)

	resp := postForm(t, client, srv.URL+"/admin/interface", url.Values{"author": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutUnauthenticated(t *testing.T) {
	srv, client, _ := newTestServer(t)

	status, _ := readBody(t, client, srv.URL+"/logout")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginWrongSecretRedirectsToDeterrent(t *testing.T) {
	srv, client, app := newTestServer(t)
	seedAdmin(t, app)

	resp := postForm(t, client, srv.URL+"/admin", url.Values{
		"username": {"admin"},
		"password": {"hunter2"},
		"secret":   {"wrong word"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://example.com/deterrent", resp.Header.Get("Location"))

	// The wrong secret must not establish a session.
	status, _ := readBody(t, client, srv.URL+"/admin/interface")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginBadCredentials(t *testing.T) {
	srv, client, app := newTestServer(t)
	seedAdmin(t, app)

	for _, form := range []url.Values{
		{"username": {"admin"}, "password": {"wrong"}, "secret": {testSecretWord}},
		{"username": {"nobody"}, "password": {"hunter2"}, "secret": {testSecretWord}},
	} {
		resp := postForm(t, client, srv.URL+"/admin", form)
		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/admin", resp.Header.Get("Location"))
	}

	// The flash lands on the login page, not a session on the interface.
	status, body := readBody(t, client, srv.URL+"/admin")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Invalid username or password")

	status, _ = readBody(t, client, srv.URL+"/admin/interface")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginMissingFields(t *testing.T) {
	srv, client, app := newTestServer(t)
	seedAdmin(t, app)

	resp := postForm(t, client, srv.URL+"/admin", url.Values{
		"username": {"admin"},
		"secret":   {testSecretWord},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestLoginAndSubmitFlow(t *testing.T) {
	srv, client, app := newTestServer(t)
	seedAdmin(t, app)
	login(t, client, srv.URL)

	status, body := readBody(t, client, srv.URL+"/admin/interface")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Add a note")

	resp := postForm(t, client, srv.URL+"/admin/interface", url.Values{
		"author":  {"Seneca"},
		"book":    {"Letters"},
		"chapter": {"I"},
		"bio":     {"Stoic philosopher"},
		"content": {"On time"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin/interface", resp.Header.Get("Location"))

	status, body = readBody(t, client, srv.URL+"/admin/interface")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Form submitted successfully")

	// The submitted note is visible through the public API.
	status, body = readBody(t, client, srv.URL+"/get/notes?book=Letters")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "On time")
	assert.Contains(t, body, `"chapter":"I"`)
}

func TestSubmitDuplicateFlash(t *testing.T) {
	srv, client, app := newTestServer(t)
	seedAdmin(t, app)
	login(t, client, srv.URL)

	form := url.Values{
		"author":  {"Seneca"},
		"book":    {"Letters"},
		"chapter": {"I"},
		"bio":     {"Stoic philosopher"},
		"content": {"On time"},
	}

	resp := postForm(t, client, srv.URL+"/admin/interface", form)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	status, body := readBody(t, client, srv.URL+"/admin/interface")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Form submitted successfully")

	resp = postForm(t, client, srv.URL+"/admin/interface", form)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	status, body = readBody(t, client, srv.URL+"/admin/interface")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "This information is already in the database")

	notes, err := app.Store().ListNotes(context.Background())
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestSubmitMissingFields(t *testing.T) {
	srv, client, app := newTestServer(t)
	seedAdmin(t, app)
	login(t, client, srv.URL)

	resp := postForm(t, client, srv.URL+"/admin/interface", url.Values{
		"author": {"Seneca"},
		"book":   {"Letters"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	status, body := readBody(t, client, srv.URL+"/admin/interface")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "All fields are required")

	notes, err := app.Store().ListNotes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestLogoutClearsSession(t *testing.T) {
	srv, client, app := newTestServer(t)
	seedAdmin(t, app)
	login(t, client, srv.URL)

	resp, err := client.Get(srv.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	status, _ := readBody(t, client, srv.URL+"/admin/interface")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginPageRenders(t *testing.T) {
	srv, client, _ := newTestServer(t)

	status, body := readBody(t, client, srv.URL+"/admin")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Admin Login")
}
