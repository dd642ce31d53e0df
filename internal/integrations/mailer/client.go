package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"
	"time"
)

const defaultResendURL = "https://api.resend.com"

// Client клиент отправки почты. Если задан ключ Resend API, письма уходят
// через Resend; иначе используется SMTP fallback.
type Client struct {
	resendAPIKey string
	resendURL    string
	httpClient   *http.Client
	smtp         SMTPSettings
	log          Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(resendAPIKey string, smtpSettings SMTPSettings, timeout time.Duration, log Logger) *Client {
	return &Client{
		resendAPIKey: resendAPIKey,
		resendURL:    defaultResendURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		smtp: smtpSettings,
		log:  log,
	}
}

// Send отправляет письмо через сконфигурированный провайдер.
// Ошибка отправки не критична для вызывающего кода: он логирует её и продолжает.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	if c.resendAPIKey != "" {
		return c.sendResend(ctx, msg)
	}
	return c.sendSMTP(msg)
}

// sendResend отправляет письмо через Resend API (POST /emails)
func (c *Client) sendResend(ctx context.Context, msg *Message) error {
	payload := resendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resendURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrDeliveryFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.resendAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		c.log.Info("Mailer: resend delivered to=%s subject=%q", strings.Join(msg.To, ","), msg.Subject)
		return nil
	}

	// Пытаемся вытащить структурированную ошибку провайдера
	var provErr resendError
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &provErr); err == nil && provErr.Message != "" {
		return fmt.Errorf("%w: resend status=%d name=%s: %s", ErrInvalidResponse, resp.StatusCode, provErr.Name, provErr.Message)
	}

	return fmt.Errorf("%w: resend unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
}

// sendSMTP отправляет письмо через SMTP (fallback без внешнего провайдера)
func (c *Client) sendSMTP(msg *Message) error {
	if c.smtp.Host == "" {
		return fmt.Errorf("%w: neither resend api key nor smtp host configured", ErrDeliveryFailed)
	}

	addr := fmt.Sprintf("%s:%d", c.smtp.Host, c.smtp.Port)

	var auth smtp.Auth
	if c.smtp.Username != "" {
		auth = smtp.PlainAuth("", c.smtp.Username, c.smtp.Password, c.smtp.Host)
	}

	body, err := buildMIME(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to build message: %v", ErrDeliveryFailed, err)
	}

	// MAIL FROM требует голый адрес, без display name
	from := msg.From
	if parsed, err := mail.ParseAddress(msg.From); err == nil {
		from = parsed.Address
	}

	if err := smtp.SendMail(addr, auth, from, msg.To, body); err != nil {
		return fmt.Errorf("%w: smtp send: %v", ErrDeliveryFailed, err)
	}

	c.log.Info("Mailer: smtp delivered to=%s subject=%q", strings.Join(msg.To, ","), msg.Subject)
	return nil
}

// buildMIME собирает тело письма. С HTML — multipart/alternative,
// без HTML — обычный text/plain.
func buildMIME(msg *Message) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", msg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	if msg.HTML == "" {
		buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		buf.WriteString(msg.Text)
		return buf.Bytes(), nil
	}

	writer := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", writer.Boundary())

	textPart, err := writer.CreatePart(map[string][]string{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(msg.Text)); err != nil {
		return nil, err
	}

	htmlPart, err := writer.CreatePart(map[string][]string{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(msg.HTML)); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
