package notifications

import (
	"fmt"
	"strings"
)

// renderEmail собирает простой читаемый HTML, чтобы письма не попадали в спам
func renderEmail(title string, paragraphs []string) string {
	var parasHTML strings.Builder
	for _, p := range paragraphs {
		parasHTML.WriteString(fmt.Sprintf("<p style='margin:0 0 12px;color:#1f2937;font-size:14px;'>%s</p>", p))
	}

	return fmt.Sprintf(`
    <div style="max-width:540px;margin:0 auto;padding:20px;font-family:Arial,sans-serif;background:#f8fafc;color:#0f172a;border-radius:12px;border:1px solid #e2e8f0;">
      <h2 style="margin:0 0 16px;font-size:20px;color:#047857;">%s</h2>
      %s
      <p style='margin:18px 0 0;font-size:12px;color:#6b7280;'>SAMASS — Massages à Quimper</p>
    </div>
    `, title, parasHTML.String())
}
