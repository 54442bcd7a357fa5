package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/IannnnnW/ambso-site/pkg/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SubmitContact accepts the contact form. Messages are logged, not
// delivered; the outcome is shown on the contact page through a flash.
func (s *Site) SubmitContact(c *gin.Context) {
	session := sessions.Default(c)
	back := siteLink(s.media.BasePath, "/contact")

	var form models.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(contactProblem(err), "error")
		if err := session.Save(); err != nil {
			s.log.Warn("session save failed", "error", err)
		}
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	s.log.Info("contact message received",
		"email", form.Email,
		"subject", form.Subject,
		"request_id", c.GetString(requestIDKey),
	)
	session.AddFlash("Thank you for your message. We will get back to you soon.", "success")
	if err := session.Save(); err != nil {
		s.log.Warn("session save failed", "error", err)
	}
	c.Redirect(http.StatusSeeOther, back)
}

func contactProblem(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Please check the form and try again."
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fmt.Sprintf("Please check these fields: %s.", strings.Join(fields, ", "))
}
