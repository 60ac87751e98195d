package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func smtpConfig() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email through the configured SMTP server
func SendEmail(to, subject, body string) error {
	config := smtpConfig()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendOrderConfirmation emails the buyer after an order is placed. Failures
// are the caller's to log; the order itself is already committed.
func SendOrderConfirmation(to, reference string, total float64) error {
	subject := "Your MarketSphere Order " + reference
	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Your order <b>%s</b> has been placed successfully.</p>
		<p>Order total: <b>%.2f</b></p>
		<p>We will notify you when it ships.</p>
	`, reference, total)
	return SendEmail(to, subject, body)
}
