package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"
)

type IMailService interface {
	Send(to, subject, intro string, lines ...string) error
}

// SMTPConfig holds the SMTP account and branding used for operator mail.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool // implicit TLS (465) instead of STARTTLS (587)
	RequireTLS bool

	AppName string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *texttemplate.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	htmlTpl, err := template.New("html").Parse(baseHTMLTemplate)
	if err != nil {
		return nil, err
	}
	textTpl, err := texttemplate.New("text").Parse(plainTextTemplate)
	if err != nil {
		return nil, err
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &smtpMailService{cfg: cfg, htmlTpl: htmlTpl, textTpl: textTpl}, nil
}

func (s *smtpMailService) Send(to, subject, intro string, lines ...string) error {
	html, text, err := s.renderEmail(EmailData{
		Title:   subject,
		Intro:   intro,
		Lines:   lines,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

type EmailData struct {
	Title   string
	Intro   string
	Lines   []string
	AppName string
	Year    int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 24px; background: #f1f5f9; font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; }
    .container { max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
    .header { padding: 20px 24px; background: #14532d; color: #ffffff; font-weight: 700; }
    .body { padding: 24px; color: #334155; line-height: 1.6; }
    .footer { padding: 16px 24px; color: #64748b; font-size: 12px; text-align: center; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="body">
      <h2>{{.Title}}</h2>
      <p>{{.Intro}}</p>
      {{range .Lines}}<p>{{.}}</p>{{end}}
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{range .Lines}}
{{.}}{{end}}

{{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	msg := s.buildMessage(to, subject, htmlBody, textBody)
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	if s.cfg.UseSSL {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}
