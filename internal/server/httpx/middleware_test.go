package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/avdeev-d/gallerykeep/internal/server/auth"
	"github.com/avdeev-d/gallerykeep/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_NoCookie(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/galleries", nil)
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_GarbageCookie(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/galleries", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "not-a-sealed-cookie"})
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ForgedCookie(t *testing.T) {
	s, deps := newTestServer(t)
	deps.identity.users["tok"] = &models.User{ID: 1, Role: models.RoleReader}

	forged, err := auth.SealSessionCookie("tok", []byte("attacker-secret"), 0)
	if err != nil {
		t.Fatalf("SealSessionCookie: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/galleries", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: forged})
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_DeadSession(t *testing.T) {
	s, deps := newTestServer(t)

	// sealed correctly, but the identity layer no longer knows the token
	cookie := sessionCookie(t, deps, "tok", &models.User{ID: 1, Role: models.RoleReader})
	delete(deps.identity.users, "tok")

	req := httptest.NewRequest(http.MethodGet, "/galleries", nil)
	req.AddCookie(cookie)
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_StorageFaultIsNotAnAuthVerdict(t *testing.T) {
	s, deps := newTestServer(t)
	cookie := sessionCookie(t, deps, "tok", &models.User{ID: 1, Role: models.RoleReader})
	deps.identity.err = common.ErrInternal

	req := httptest.NewRequest(http.MethodGet, "/galleries", nil)
	req.AddCookie(cookie)
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthenticate_ValidSession(t *testing.T) {
	s, deps := newTestServer(t)
	cookie := sessionCookie(t, deps, "tok", &models.User{ID: 1, Email: "r@b.c", Role: models.RoleReader})

	req := httptest.NewRequest(http.MethodGet, "/galleries", nil)
	req.AddCookie(cookie)
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireWriter_ReaderIsForbidden(t *testing.T) {
	s, deps := newTestServer(t)
	cookie := sessionCookie(t, deps, "tok", &models.User{ID: 1, Role: models.RoleReader})

	req := httptest.NewRequest(http.MethodPost, "/galleries/3/delete", nil)
	req.AddCookie(cookie)
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, deps.gallery.deletedGalleries)
}

func TestRequireWriter_WriterPasses(t *testing.T) {
	s, deps := newTestServer(t)
	cookie := sessionCookie(t, deps, "tok", &models.User{ID: 1, Role: models.RoleWriter})

	req := httptest.NewRequest(http.MethodPost, "/galleries/3/delete", nil)
	req.AddCookie(cookie)
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []int64{3}, deps.gallery.deletedGalleries)
}

func TestRequireWriter_ReaderCannotMutateAnything(t *testing.T) {
	s, deps := newTestServer(t)
	cookie := sessionCookie(t, deps, "tok", &models.User{ID: 1, Role: models.RoleReader})

	mutations := []string{
		"/galleries",
		"/galleries/3/rename",
		"/galleries/3/delete",
		"/galleries/3/images",
		"/galleries/3/images/10/caption",
		"/galleries/3/images/10/delete",
	}
	for _, path := range mutations {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.AddCookie(cookie)
		rec := doRequest(s, req)
		assert.Equalf(t, http.StatusForbidden, rec.Code, "POST %s", path)
	}
}
