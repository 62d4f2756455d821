package services

import (
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"studybuddy-backend/internal/models"
)

type EmailService struct {
	host        string
	port        string
	user        string
	pass        string
	from        string
	frontendURL string
	devMode     bool
}

func NewEmailService(host, port, user, pass, from, frontendURL string) *EmailService {
	devMode := host == "" || user == ""
	if devMode {
		log.Println("⚠ Email service running in DEV MODE (logging to console)")
	}
	return &EmailService{
		host:        host,
		port:        port,
		user:        user,
		pass:        pass,
		from:        from,
		frontendURL: frontendURL,
		devMode:     devMode,
	}
}

// SendTaskReminderEmail lists a student's overdue tasks.
func (s *EmailService) SendTaskReminderEmail(to, name string, items []models.OverdueReminder) error {
	subject := fmt.Sprintf("You have %d overdue task(s)", len(items))
	return s.sendHTML(to, subject, reminderBody(name, s.frontendURL, items))
}

func reminderBody(name, frontendURL string, items []models.OverdueReminder) string {
	var rows strings.Builder
	for _, item := range items {
		fmt.Fprintf(&rows, `
        <tr>
          <td style="padding: 8px 0; color: #1e293b; font-size: 14px;">%s</td>
          <td style="padding: 8px 0; color: #64748b; font-size: 14px;">%s</td>
          <td style="padding: 8px 0; color: #dc2626; font-size: 14px; text-align: right;">%s</td>
        </tr>`, html.EscapeString(item.TaskTitle), html.EscapeString(item.CourseTitle), item.DueDate.String())
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #f8fafc;">
  <div style="max-width: 480px; margin: 40px auto; background: white; border-radius: 12px; box-shadow: 0 4px 24px rgba(0,0,0,0.08); overflow: hidden;">
    <div style="background: #0f766e; padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px; font-weight: 700;">StudyBuddy</h1>
    </div>
    <div style="padding: 32px;">
      <h2 style="margin: 0 0 16px; font-size: 20px; color: #1e293b;">Hi %s,</h2>
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0 0 16px;">
        These tasks are past their due date and still open:
      </p>
      <table style="width: 100%%; border-collapse: collapse;">%s
      </table>
      <a href="%s" style="display: inline-block; margin-top: 24px; background: #0f766e; color: white; text-decoration: none; padding: 12px 32px; border-radius: 8px; font-weight: 600; font-size: 14px;">
        Open StudyBuddy
      </a>
    </div>
  </div>
</body>
</html>`, html.EscapeString(name), rows.String(), frontendURL)
}

func (s *EmailService) sendHTML(to, subject, htmlBody string) error {
	if s.devMode {
		log.Printf("📧 [DEV EMAIL] To: %s | Subject: %s", to, subject)
		log.Printf("📧 Body:\n%s", htmlBody)
		return nil
	}

	headers := []string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}

	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}
