package httpx

import (
	"errors"
	"net/http"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/gin-gonic/gin"
)

// fail maps service errors onto HTTP responses. Detail goes to the log; the
// client sees only the generic page for its status class.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.HTML(http.StatusNotFound, "message.html", gin.H{"Message": "Page not found."})
	case errors.Is(err, common.ErrUnauthorized):
		s.renderLogin(c, http.StatusUnauthorized)
	case errors.Is(err, common.ErrForbidden):
		c.HTML(http.StatusForbidden, "message.html", gin.H{"Message": "You do not have permission to do that."})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err.Error())
		c.HTML(http.StatusInternalServerError, "message.html", gin.H{"Message": "Something went wrong."})
	}
}
