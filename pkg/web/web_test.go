package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taxipark/config"
	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/pkg/session"
	"taxipark/service"
	"taxipark/storage/sqlite"
)

const (
	testUsername = "test.driver"
	testPassword = "test1234pass"
)

type testApp struct {
	t       *testing.T
	handler http.Handler
	svc     service.IServiceManager
	me      *models.Driver
	cookie  *http.Cookie
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNop()

	stg, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(stg.Close)

	cfg := config.Config{
		ServiceName:    "taxipark-test",
		SessionSecret:  "test-secret",
		SessionTTL:     time.Hour,
		RequestTimeout: 5 * time.Second,
		BcryptCost:     bcrypt.MinCost,
	}
	svc := service.New(cfg, stg, session.NewMemoryStore(), log)

	me, err := svc.Driver().Create(ctx, service.DriverInput{
		Username:        testUsername,
		FirstName:       "Test",
		LastName:        "Driver",
		LicenseNumber:   "ABC12345",
		Password:        testPassword,
		PasswordConfirm: testPassword,
	})
	require.NoError(t, err)

	srv, err := New(cfg, svc, log)
	require.NoError(t, err)

	return &testApp{t: t, handler: srv.Handler(), svc: svc, me: me}
}

func (a *testApp) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(target string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, target, nil)
}

func (a *testApp) post(target string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return a.do(http.MethodPost, target, form)
}

func (a *testApp) login() {
	a.t.Helper()
	rec := a.post(loginPath, url.Values{"username": {testUsername}, "password": {testPassword}})
	require.Equal(a.t, http.StatusFound, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			a.cookie = c
		}
	}
	require.NotNil(a.t, a.cookie, "login must set the session cookie")
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	require.Equal(t, location, rec.Header().Get("Location"))
}

func TestLoginRequired(t *testing.T) {
	app := setupTestApp(t)

	for _, path := range []string{"/", "/manufacturers/", "/cars/", "/drivers/", "/cars/1", "/drivers/1/update", "/cars/1/toggle-assign"} {
		rec := app.get(path)
		requireRedirect(t, rec, "/accounts/login/?next="+url.QueryEscape(path))
	}

	rec := app.post("/manufacturers/create", url.Values{"name": {"Ford"}, "country": {"USA"}})
	require.Equal(t, http.StatusFound, rec.Code)
	counts, err := app.svc.Dashboard().Counts(context.Background())
	require.NoError(t, err)
	require.Zero(t, counts.Manufacturers)
}

func TestLogin(t *testing.T) {
	app := setupTestApp(t)

	rec := app.get("/accounts/login/?next=/cars/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `value="/cars/"`)

	rec = app.post(loginPath, url.Values{"username": {testUsername}, "password": {"wrong"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Please enter a correct username and password.")

	rec = app.post(loginPath, url.Values{"username": {testUsername}, "password": {testPassword}, "next": {"/cars/"}})
	requireRedirect(t, rec, "/cars/")

	rec = app.post(loginPath, url.Values{"username": {testUsername}, "password": {testPassword}, "next": {"//evil.example"}})
	requireRedirect(t, rec, "/")
}

func TestLogout(t *testing.T) {
	app := setupTestApp(t)
	app.login()

	require.Equal(t, http.StatusOK, app.get("/").Code)

	requireRedirect(t, app.get("/accounts/logout/"), loginPath)

	rec := app.get("/")
	require.Equal(t, http.StatusFound, rec.Code, "the old cookie must no longer authenticate")
}

func TestIndex(t *testing.T) {
	app := setupTestApp(t)
	app.login()

	rec := app.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "<strong>Drivers:</strong> 1")
	require.Contains(t, body, "<strong>Cars:</strong> 0")
	require.Contains(t, body, testUsername)
}

func TestManufacturerCRUD(t *testing.T) {
	app := setupTestApp(t)
	app.login()

	rec := app.post("/manufacturers/create", url.Values{"name": {""}, "country": {"USA"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "This field is required.")
	require.Contains(t, rec.Body.String(), `value="USA"`)

	requireRedirect(t, app.post("/manufacturers/create", url.Values{"name": {"Ford"}, "country": {"USA"}}), manufacturerListPath)

	rec = app.get("/manufacturers/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Ford")
	require.Contains(t, rec.Body.String(), `href="/manufacturers/1/update"`)

	require.Equal(t, http.StatusOK, app.get("/manufacturers/1/update").Code)
	requireRedirect(t, app.post("/manufacturers/1/update", url.Values{"name": {"Ford"}, "country": {"United States"}}), manufacturerListPath)
	require.Contains(t, app.get("/manufacturers/").Body.String(), "United States")

	rec = app.get("/manufacturers/1/delete")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Ford United States")
	requireRedirect(t, app.post("/manufacturers/1/delete", nil), manufacturerListPath)

	require.Equal(t, http.StatusNotFound, app.get("/manufacturers/1/update").Code)
	require.Equal(t, http.StatusNotFound, app.post("/manufacturers/1/delete", nil).Code)
}

func TestManufacturerList_SearchAndPagination(t *testing.T) {
	app := setupTestApp(t)
	app.login()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := app.svc.Manufacturer().Create(ctx, service.ManufacturerInput{Name: "Maker " + strconv.Itoa(i), Country: "c"})
		require.NoError(t, err)
	}
	for _, name := range []string{"Audi", "BMW", "Volkswagen"} {
		_, err := app.svc.Manufacturer().Create(ctx, service.ManufacturerInput{Name: name, Country: "Germany"})
		require.NoError(t, err)
	}

	rec := app.get("/manufacturers/?manufacturer=maker")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `value="maker"`)
	require.Contains(t, body, "manufacturer=maker&amp;page=2")
	require.Contains(t, body, "1 of 2")
	require.NotContains(t, body, "Audi")

	rec = app.get("/manufacturers/?manufacturer=maker&page=2")
	body = rec.Body.String()
	require.Contains(t, body, "Maker 5")
	require.Contains(t, body, "Maker 6")
	require.NotContains(t, body, "Maker 4")
	require.Contains(t, body, "manufacturer=maker&amp;page=1")

	rec = app.get("/manufacturers/?manufacturer=W")
	body = rec.Body.String()
	require.Contains(t, body, "BMW")
	require.Contains(t, body, "Volkswagen")
	require.NotContains(t, body, "Audi")
	require.NotContains(t, body, "1 of", "a single page is not paginated")

	rec = app.get("/manufacturers/?page=abc")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "1 of 2")
}

func TestCarCRUDAndToggle(t *testing.T) {
	app := setupTestApp(t)
	app.login()
	ctx := context.Background()

	m, err := app.svc.Manufacturer().Create(ctx, service.ManufacturerInput{Name: "Ford", Country: "USA"})
	require.NoError(t, err)
	mID := strconv.FormatInt(m.ID, 10)
	meID := strconv.FormatInt(app.me.ID, 10)

	rec := app.get("/cars/create")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `name="drivers" value="`+meID+`"`)

	rec = app.post("/cars/create", url.Values{"model": {"Focus"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "This field is required.")

	requireRedirect(t, app.post("/cars/create", url.Values{"model": {"Focus"}, "manufacturer": {mID}}), carListPath)

	rec = app.get("/cars/1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Assign me to this car")

	requireRedirect(t, app.get("/cars/1/toggle-assign"), "/cars/1")
	rec = app.get("/cars/1")
	require.Contains(t, rec.Body.String(), "Delete me from this car")
	require.Contains(t, app.get("/drivers/"+meID).Body.String(), "Focus")

	requireRedirect(t, app.get("/cars/1/toggle-assign"), "/cars/1")
	require.Contains(t, app.get("/cars/1").Body.String(), "Assign me to this car")

	requireRedirect(t, app.post("/cars/1/update", url.Values{
		"model": {"Mondeo"}, "manufacturer": {mID}, "drivers": {meID},
	}), carListPath)
	rec = app.get("/cars/1")
	require.Contains(t, rec.Body.String(), "Mondeo")
	require.Contains(t, rec.Body.String(), "Delete me from this car")

	require.Equal(t, http.StatusOK, app.get("/cars/1/delete").Code)
	requireRedirect(t, app.post("/cars/1/delete", nil), carListPath)
	require.NotContains(t, app.get("/drivers/"+meID).Body.String(), "Mondeo")
	require.NotContains(t, app.get("/cars/").Body.String(), "Mondeo")

	require.Equal(t, http.StatusNotFound, app.get("/cars/1").Code)
	require.Equal(t, http.StatusNotFound, app.get("/cars/1/toggle-assign").Code)
	require.Equal(t, http.StatusNotFound, app.get("/cars/abc").Code)
}

func TestDriverLicenseUpdate(t *testing.T) {
	app := setupTestApp(t)
	app.login()
	path := "/drivers/" + strconv.FormatInt(app.me.ID, 10) + "/update"

	rec := app.get(path)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `value="ABC12345"`)

	tests := []struct {
		license string
		message string
	}{
		{"ABC123", "License number should consist of 8 characters"},
		{"abc12345", "First 3 characters should be uppercase letters"},
		{"ABC1234Z", "Last 5 characters should be digits"},
	}
	for _, tt := range tests {
		rec := app.post(path, url.Values{"license_number": {tt.license}})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), tt.message)
	}

	requireRedirect(t, app.post(path, url.Values{"license_number": {"QWE98765"}}), driverListPath)
	require.Contains(t, app.get("/drivers/").Body.String(), "QWE98765")

	require.Equal(t, http.StatusNotFound, app.get("/drivers/999/update").Code)
}

func TestDriverCreateAndDelete(t *testing.T) {
	app := setupTestApp(t)
	app.login()

	rec := app.post("/drivers/create", url.Values{
		"username": {"new.driver"}, "license_number": {"ABC12345"},
		"password1": {testPassword}, "password2": {"different1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `value="new.driver"`)

	requireRedirect(t, app.post("/drivers/create", url.Values{
		"username": {"new.driver"}, "first_name": {"New"}, "last_name": {"Driver"},
		"license_number": {"XYZ54321"}, "password1": {testPassword}, "password2": {testPassword},
	}), driverListPath)

	rec = app.get("/drivers/?driver=new")
	require.Contains(t, rec.Body.String(), "new.driver")
	require.NotContains(t, rec.Body.String(), "(Me)")

	page, err := app.svc.Driver().List(context.Background(), service.ListParams{Search: "new.driver"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	path := "/drivers/" + strconv.FormatInt(page.Items[0].ID, 10)

	require.Equal(t, http.StatusOK, app.get(path).Code)
	require.Contains(t, app.get(path+"/delete").Body.String(), "new.driver (New Driver)")
	requireRedirect(t, app.post(path+"/delete", nil), driverListPath)
	require.Equal(t, http.StatusNotFound, app.get(path).Code)
}

func TestNotFound(t *testing.T) {
	app := setupTestApp(t)
	rec := app.get("/no/such/page")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Not Found")

	for _, path := range []string{"/cars/999", "/cars/999/toggle-assign", "/drivers/999", "/manufacturers/999/update", "/cars/abc"} {
		require.Equal(t, http.StatusNotFound, app.get(path).Code, path)
	}
}

func TestSafeNext(t *testing.T) {
	require.Equal(t, "/cars/?model=a", safeNext("/cars/?model=a"))
	require.Equal(t, "/", safeNext(""))
	require.Equal(t, "/", safeNext("//evil.example"))
	require.Equal(t, "/", safeNext("https://evil.example"))
	require.Equal(t, "/", safeNext(`/\evil.example`))
}

func TestPageQuery(t *testing.T) {
	require.Equal(t, "?page=2", pageQuery("model", "", 2))
	require.Equal(t, "?model=a+b&page=3", pageQuery("model", "a b", 3))
}
