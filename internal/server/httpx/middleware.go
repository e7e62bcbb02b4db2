package httpx

import (
	"errors"
	"net/http"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/avdeev-d/gallerykeep/internal/server/auth"
	"github.com/avdeev-d/gallerykeep/internal/server/models"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey  = "user"
	ctxTokenKey = "sessionToken"
)

// authenticate opens the session cookie, resolves the user, and stores the
// projection on the request context. Anything short of a live session gets
// 401 with the login page, never a hint of why.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(auth.CookieName)
		if err != nil {
			s.renderLogin(c, http.StatusUnauthorized)
			c.Abort()
			return
		}

		token, err := auth.OpenSessionCookie(cookie, []byte(s.cfg.CookieSecret))
		if err != nil {
			s.renderLogin(c, http.StatusUnauthorized)
			c.Abort()
			return
		}

		user, err := s.identity.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				// expired, unknown, or dangling: same door
				s.renderLogin(c, http.StatusUnauthorized)
			} else {
				// storage fault; not an authentication verdict
				s.fail(c, err)
			}
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// requireWriter gates mutations. The caller is already authenticated, so a
// wrong role is 403, not 401.
func (s *Server) requireWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || user.Role != models.RoleWriter {
			s.fail(c, common.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func (s *Server) renderLogin(c *gin.Context, status int) {
	c.HTML(status, "login.html", gin.H{})
}
