package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/avdeev-d/gallerykeep/internal/server/auth"
	"github.com/avdeev-d/gallerykeep/internal/server/mail"
	"github.com/gin-gonic/gin"
)

func (s *Server) signupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (s *Server) signup(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": "Email and password are required."})
		return
	}

	verificationID, err := s.users.SignUp(c.Request.Context(), email, password)
	if err != nil {
		s.fail(c, err)
		return
	}

	// mail failures must not lose the account; the log keeps the link
	go s.sendVerificationRequest(email, verificationID)

	c.HTML(http.StatusOK, "message.html", gin.H{
		"Message": "Account created. You will receive an email once your account is verified.",
	})
}

// sendVerificationRequest mails the verification link to the admin. Accounts
// are vetted by the operator, not self-verified.
func (s *Server) sendVerificationRequest(email, verificationID string) {
	ctx := context.Background()
	link := fmt.Sprintf("http://%s/signup/%s", s.cfg.PublicHost, verificationID)
	err := s.mailer.Send(ctx, mail.Message{
		To:       s.cfg.AdminEmail,
		Subject:  "Verify new gallerykeep user",
		Text:     fmt.Sprintf("%s signed up. Verify the account: %s", email, link),
		Category: "Verify New User",
	})
	if err != nil {
		s.logger.Error(ctx, "verification mail failed", "email", email, "error", err.Error())
		return
	}
	s.logger.Info(ctx, "verification mail sent", "email", email)
}

func (s *Server) verify(c *gin.Context) {
	email, err := s.users.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	go s.sendWelcomeMail(email)

	c.HTML(http.StatusOK, "message.html", gin.H{
		"Message": "Account verified.",
	})
}

func (s *Server) sendWelcomeMail(email string) {
	ctx := context.Background()
	err := s.mailer.Send(ctx, mail.Message{
		To:       email,
		Subject:  "Welcome to gallerykeep",
		Text:     fmt.Sprintf("Your account is verified. Log in at http://%s/login", s.cfg.PublicHost),
		Category: "Welcome",
	})
	if err != nil {
		s.logger.Error(ctx, "welcome mail failed", "email", email, "error", err.Error())
	}
}

func (s *Server) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (s *Server) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	token, err := s.users.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid email or password."})
			return
		}
		s.fail(c, err)
		return
	}

	sealed, err := auth.SealSessionCookie(token, []byte(s.cfg.CookieSecret), s.cfg.SessionTTL)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.SetCookie(auth.CookieName, sealed, int(s.cfg.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/galleries")
}

func (s *Server) logout(c *gin.Context) {
	if v, ok := c.Get(ctxTokenKey); ok {
		if token, ok := v.(string); ok {
			if err := s.users.Logout(c.Request.Context(), token); err != nil {
				s.logger.Error(c.Request.Context(), "logout failed", "error", err.Error())
			}
		}
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
