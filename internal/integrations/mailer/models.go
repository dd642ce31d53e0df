package mailer

// Message письмо для отправки. HTML опционален: если задан,
// письмо уходит как multipart/alternative (текст + HTML).
type Message struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

// SMTPSettings настройки SMTP fallback
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
}

// resendRequest тело запроса Resend API (POST /emails)
type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html,omitempty"`
}

// resendError тело ошибки Resend API
type resendError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}
