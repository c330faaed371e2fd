package main

import (
	"fmt"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Mailer delivers contact form messages.
type Mailer interface {
	Send(msg ContactMessage) error
}

type ContactMessage struct {
	Name    string `form:"fullName" binding:"required,max=200"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Message string `form:"message" binding:"required,max=5000"`
}

type smtpMailer struct {
	cfg SMTPConfig
	log zerolog.Logger
}

func newSMTPMailer(cfg SMTPConfig, log zerolog.Logger) *smtpMailer {
	return &smtpMailer{cfg: cfg, log: log}
}

var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")

func (m *smtpMailer) Send(msg ContactMessage) error {
	if !m.cfg.Configured() {
		return fmt.Errorf("SMTP credentials not configured")
	}
	to := m.cfg.To
	if to == "" {
		to = m.cfg.User
	}
	host := m.cfg.Host
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, host)
	if err := smtp.SendMail(host+":"+m.cfg.Port, auth, m.cfg.User, []string{to}, composeMail(m.cfg.User, to, msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	m.log.Info().Str("name", msg.Name).Msg("contact email sent")
	return nil
}

func composeMail(from, to string, msg ContactMessage) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	return []byte("To: " + to + "\r\n" +
		"Subject: Portfolio Contact: " + headerSafe.Replace(msg.Name) + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe.Replace(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

type contact struct {
	mailer Mailer
	log    zerolog.Logger
}

func (h *contact) form(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form", gin.H{"title": "Contact Me"})
}

// submit answers the htmx form post with a success or error fragment.
func (h *contact) submit(c *gin.Context) {
	var msg ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		c.HTML(http.StatusUnprocessableEntity, "contact-error", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}
	if err := h.mailer.Send(msg); err != nil {
		h.log.Error().Err(err).Msg("error sending contact email")
		c.HTML(http.StatusOK, "contact-error", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	c.HTML(http.StatusOK, "contact-success", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
