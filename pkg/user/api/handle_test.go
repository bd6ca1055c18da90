package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/noracamacho/verificationapp/pkg/emailcode"
	"github.com/noracamacho/verificationapp/pkg/notification"
	"github.com/noracamacho/verificationapp/pkg/router"
	"github.com/noracamacho/verificationapp/pkg/tokengenerator"
	"github.com/noracamacho/verificationapp/pkg/user"
	"github.com/noracamacho/verificationapp/pkg/user/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:3000"

func newTestServer(t *testing.T) (*httptest.Server, *notification.MockNotifier) {
	t.Helper()

	nm := notification.NewNotificationManager()
	mock := &notification.MockNotifier{}
	nm.RegisterNotifier(notification.EmailSystem, mock)

	for notifType, subject := range map[notification.NoticeType]string{
		notification.EmailVerifyNotice:   "Verificate email for user app",
		notification.PasswordResetNotice: "Password recovery for user app",
	} {
		err := nm.RegisterNotification(notifType, notification.EmailSystem, notification.NoticeTemplate{
			Subject: subject,
			Html:    `<a href="{{.Link}}">{{.Link}}</a>`,
		})
		require.NoError(t, err)
	}

	codes := emailcode.NewService(emailcode.NewInMemoryRepository(), nm)
	tokens := tokengenerator.NewJwtService("test-secret")
	svc := user.NewUserService(user.NewInMemoryRepository(), codes, tokens)

	r := chi.NewRouter()
	router.SetupRoutes(r, router.Config{
		UserHandle: api.NewHandle(svc),
		Auth:       tokens.Auth(),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, mock
}

func doJSON(t *testing.T, method, url, token string, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	if resp.Header.Get("Content-Type") != "" {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

func registerBody(email string) string {
	return fmt.Sprintf(`{
		"email": %q,
		"password": "pw1",
		"firstName": "Ada",
		"lastName": "Lovelace",
		"country": "UK",
		"image": "https://example.com/ada.png",
		"frontBaseUrl": %q
	}`, email, testBaseURL)
}

// lastCode extracts the one-time code from the link in the most recent
// notification.
func lastCode(t *testing.T, mock *notification.MockNotifier) string {
	t.Helper()
	sent, ok := mock.Last()
	require.True(t, ok, "no notification sent")
	link := sent.Notification.Data["Link"]
	require.NotEmpty(t, link)
	return link[strings.LastIndex(link, "/")+1:]
}

func registerAndVerify(t *testing.T, srv *httptest.Server, mock *notification.MockNotifier, email string) map[string]interface{} {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/users", "", registerBody(email))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/users/verify/"+lastCode(t, mock), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body
}

func login(t *testing.T, srv *httptest.Server, email, password string) (map[string]interface{}, string) {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/users/login", "",
		fmt.Sprintf(`{"email": %q, "password": %q}`, email, password))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	u, _ := body["user"].(map[string]interface{})
	require.NotNil(t, u)
	return u, token
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	srv, mock := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/users", "", registerBody("a@x.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, false, body["isVerified"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")

	// login before verification is rejected
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/users/login", "",
		`{"email": "a@x.com", "password": "pw1"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid Credentials", body["message"])

	code := lastCode(t, mock)
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/users/verify/"+code, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isVerified"])

	// the code is single use
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/users/verify/"+code, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid Credentials", body["message"])

	u, _ := login(t, srv, "a@x.com", "pw1")
	assert.Equal(t, "a@x.com", u["email"])
	assert.Equal(t, true, u["isVerified"])
	assert.NotContains(t, u, "password")
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/users", "", registerBody("a@x.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/users", "", registerBody("a@x.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGatedRoutesRequireToken(t *testing.T) {
	srv, mock := newTestServer(t)
	registerAndVerify(t, srv, mock, "a@x.com")

	for _, url := range []string{
		srv.URL + "/users",
		srv.URL + "/users/me",
	} {
		resp, _ := doJSON(t, http.MethodGet, url, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, url)
	}

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/users/me", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMe(t *testing.T) {
	srv, mock := newTestServer(t)
	verified := registerAndVerify(t, srv, mock, "a@x.com")
	_, token := login(t, srv, "a@x.com", "pw1")

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/users/me", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, verified["id"], body["id"])
	assert.Equal(t, "a@x.com", body["email"])
}

func TestGetUsersAndGetUser(t *testing.T) {
	srv, mock := newTestServer(t)
	first := registerAndVerify(t, srv, mock, "a@x.com")
	registerAndVerify(t, srv, mock, "b@x.com")
	_, token := login(t, srv, "a@x.com", "pw1")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/users", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	assert.Len(t, users, 2)

	id, _ := first["id"].(string)
	require.NotEmpty(t, id)
	getResp, body := doJSON(t, http.MethodGet, srv.URL+"/users/"+id, token, "")
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	assert.Equal(t, "a@x.com", body["email"])
}

func TestGetUserNotFound(t *testing.T) {
	srv, mock := newTestServer(t)
	registerAndVerify(t, srv, mock, "a@x.com")
	_, token := login(t, srv, "a@x.com", "pw1")

	// unknown but well formed id
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/users/6a9f4b6e-0c0d-4f7b-9a39-1f1a2b3c4d5e", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// unparsable id
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/users/not-a-uuid", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateUserIgnoresPasswordAndVerified(t *testing.T) {
	srv, mock := newTestServer(t)
	u := registerAndVerify(t, srv, mock, "a@x.com")
	_, token := login(t, srv, "a@x.com", "pw1")

	id, _ := u["id"].(string)
	resp, body := doJSON(t, http.MethodPut, srv.URL+"/users/"+id, token, `{
		"email": "b@x.com",
		"firstName": "Grace",
		"lastName": "Hopper",
		"country": "US",
		"image": "https://example.com/grace.png",
		"password": "hacked",
		"isVerified": false
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "b@x.com", body["email"])
	assert.Equal(t, "Grace", body["firstName"])
	assert.Equal(t, true, body["isVerified"])

	// the original password still authenticates under the new email
	login(t, srv, "b@x.com", "pw1")
}

func TestUpdateUserPartialBody(t *testing.T) {
	srv, mock := newTestServer(t)
	u := registerAndVerify(t, srv, mock, "a@x.com")
	_, token := login(t, srv, "a@x.com", "pw1")

	id, _ := u["id"].(string)
	resp, body := doJSON(t, http.MethodPut, srv.URL+"/users/"+id, token,
		`{"firstName": "Grace"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Grace", body["firstName"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "Lovelace", body["lastName"])
	assert.Equal(t, "UK", body["country"])
	assert.Equal(t, true, body["isVerified"])

	// a provided field cannot be blanked
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/users/"+id, token,
		`{"email": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteUser(t *testing.T) {
	srv, mock := newTestServer(t)
	u := registerAndVerify(t, srv, mock, "a@x.com")
	registerAndVerify(t, srv, mock, "b@x.com")
	_, token := login(t, srv, "b@x.com", "pw1")

	id, _ := u["id"].(string)
	resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/users/"+id, token, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/users/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPasswordResetFlow(t *testing.T) {
	srv, mock := newTestServer(t)
	registerAndVerify(t, srv, mock, "a@x.com")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/users/reset_password", "",
		fmt.Sprintf(`{"email": "a@x.com", "frontBaseUrl": %q}`, testBaseURL))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	sent, ok := mock.Last()
	require.True(t, ok)
	assert.Equal(t, notification.PasswordResetNotice, sent.Type)

	code := lastCode(t, mock)
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/users/reset_password/"+code, "",
		`{"password": "pw2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@x.com", body["email"])

	// old password is out, new one is in
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/users/login", "",
		`{"email": "a@x.com", "password": "pw1"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	login(t, srv, "a@x.com", "pw2")

	// spent code cannot be replayed
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/users/reset_password/"+code, "",
		`{"password": "pw3"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestResetPasswordUnknownOrUnverified(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/users/reset_password", "",
		fmt.Sprintf(`{"email": "nobody@x.com", "frontBaseUrl": %q}`, testBaseURL))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid Credentials", body["message"])

	doJSON(t, http.MethodPost, srv.URL+"/users", "", registerBody("a@x.com"))
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/users/reset_password", "",
		fmt.Sprintf(`{"email": "a@x.com", "frontBaseUrl": %q}`, testBaseURL))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
