package httpx

import (
	"net/http"
	"strconv"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, common.ErrNotFound
	}
	return id, nil
}

func (s *Server) index(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/galleries")
}

func (s *Server) listGalleries(c *gin.Context) {
	tiles, err := s.gallery.ListGalleries(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "galleries.html", gin.H{
		"Tiles": tiles,
		"User":  currentUser(c),
	})
}

func (s *Server) createGallery(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		name = "Untitled"
	}

	user := currentUser(c)
	id, err := s.gallery.CreateGallery(c.Request.Context(), user.ID, name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/galleries/"+strconv.FormatInt(id, 10))
}

func (s *Server) showGallery(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	contents, err := s.gallery.GetGallery(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "gallery.html", gin.H{
		"Gallery": contents,
		"User":    currentUser(c),
	})
}

func (s *Server) renameGallery(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	name := c.PostForm("name")
	if name == "" {
		c.HTML(http.StatusBadRequest, "message.html", gin.H{"Message": "Gallery name is required."})
		return
	}

	if err := s.gallery.RenameGallery(c.Request.Context(), id, name); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/galleries/"+strconv.FormatInt(id, 10))
}

func (s *Server) deleteGallery(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.gallery.DeleteGallery(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/galleries")
}

func (s *Server) showLightbox(c *gin.Context) {
	galleryID, err := paramID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	imageID, err := paramID(c, "imageID")
	if err != nil {
		s.fail(c, err)
		return
	}

	lightbox, err := s.gallery.GetLightbox(c.Request.Context(), galleryID, imageID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "lightbox.html", gin.H{
		"Lightbox": lightbox,
		"User":     currentUser(c),
	})
}

func (s *Server) updateCaption(c *gin.Context) {
	galleryID, err := paramID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	imageID, err := paramID(c, "imageID")
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.gallery.UpdateCaption(c.Request.Context(), imageID, c.PostForm("caption")); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/galleries/"+strconv.FormatInt(galleryID, 10)+"/images/"+strconv.FormatInt(imageID, 10))
}

func (s *Server) deleteImage(c *gin.Context) {
	galleryID, err := paramID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	imageID, err := paramID(c, "imageID")
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.gallery.DeleteImage(c.Request.Context(), imageID); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/galleries/"+strconv.FormatInt(galleryID, 10))
}
