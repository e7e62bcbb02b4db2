package httpx

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	"github.com/avdeev-d/gallerykeep/internal/server/services"
	"github.com/avdeev-d/gallerykeep/internal/server/thumbs"
	"github.com/gin-gonic/gin"
)

func (s *Server) uploadForm(c *gin.Context) {
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
	c.HTML(http.StatusOK, "upload.html", gin.H{
		"Gallery": contents,
		"User":    currentUser(c),
	})
}

func (s *Server) uploadImage(c *gin.Context) {
	galleryID, err := paramID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	originalHeader, err := c.FormFile("image")
	if err != nil {
		c.HTML(http.StatusBadRequest, "message.html", gin.H{"Message": "An original image file is required."})
		return
	}
	displayHeader, err := c.FormFile("modified_image")
	if err != nil {
		c.HTML(http.StatusBadRequest, "message.html", gin.H{"Message": "A display image file is required."})
		return
	}

	original, err := readUpload(originalHeader)
	if err != nil {
		s.fail(c, err)
		return
	}
	display, err := readUpload(displayHeader)
	if err != nil {
		s.fail(c, err)
		return
	}

	user := currentUser(c)
	caption := c.PostForm("caption")

	image, err := s.gallery.CreateImage(c.Request.Context(), user.ID, galleryID, originalHeader.Filename, caption,
		func(ctx context.Context, paths services.ImagePaths) error {
			return s.persistCopies(ctx, original, display, paths)
		})
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "image uploaded", "gallery", galleryID, "image", image.ID, "user", user.Email)
	c.Redirect(http.StatusSeeOther, "/galleries/"+strconv.FormatInt(galleryID, 10))
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// persistCopies writes the untouched original, the display copy and the
// thumbnail (derived from the display copy) concurrently. Any failure
// propagates and rolls the image rows back.
func (s *Server) persistCopies(ctx context.Context, original, display []byte, paths services.ImagePaths) error {
	var thumb bytes.Buffer
	if err := s.thumbs.Generate(&thumb, bytes.NewReader(display)); err != nil {
		return err
	}

	targets := map[string][]byte{
		paths.OriginalPath:         original,
		paths.Path:                 display,
		paths.Path + thumbs.Suffix: thumb.Bytes(),
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(targets))
	for key, payload := range targets {
		wg.Add(1)
		go func(key string, payload []byte) {
			defer wg.Done()
			if err := s.sink.Save(ctx, key, bytes.NewReader(payload)); err != nil {
				errCh <- err
			}
		}(key, payload)
	}
	wg.Wait()
	close(errCh)

	return <-errCh
}

func (s *Server) serveImage(c *gin.Context) {
	key := s.cfg.ImageDir + "/" + c.Param("name")

	rc, err := s.sink.Open(c.Request.Context(), key)
	if err != nil {
		s.fail(c, err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
