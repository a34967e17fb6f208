package templates

import (
	"fmt"
	"html"
	"strings"
)

// DigestSection is one titled list in the digest email
type DigestSection struct {
	Title string
	Empty string
	Lines []string
}

// RenderDigestEmail generates the HTML for the daily digest. Every title and line
// is HTML-escaped.
func RenderDigestEmail(subject string, sections []DigestSection) string {
	var body strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&body, "<h2>%s</h2>\n", html.EscapeString(s.Title))
		if len(s.Lines) == 0 {
			fmt.Fprintf(&body, "<p class=\"empty\">%s</p>\n", html.EscapeString(s.Empty))
			continue
		}
		body.WriteString("<ul>\n")
		for _, line := range s.Lines {
			fmt.Fprintf(&body, "<li>%s</li>\n", html.EscapeString(line))
		}
		body.WriteString("</ul>\n")
	}
	return renderLayout(html.EscapeString(subject), body.String())
}

// RenderDigestText is the plain text alternative of RenderDigestEmail
func RenderDigestText(subject string, sections []DigestSection) string {
	var b strings.Builder
	b.WriteString(subject + "\n")
	for _, s := range sections {
		b.WriteString("\n" + s.Title + "\n")
		if len(s.Lines) == 0 {
			b.WriteString("  " + s.Empty + "\n")
			continue
		}
		for _, line := range s.Lines {
			b.WriteString("  - " + line + "\n")
		}
	}
	return b.String()
}

// renderLayout wraps already escaped content in the office email layout
func renderLayout(safeSubject, htmlBody string) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f3f4f6; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: #1e3a8a; padding: 32px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; font-weight: 700; }
    .content { padding: 32px 30px; color: #111827; line-height: 1.6; font-size: 15px; }
    .content h2 { font-size: 17px; margin: 24px 0 8px; color: #1e3a8a; }
    .content .empty { color: #6b7280; }
    .footer { padding: 24px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
    </div>
    <div class="footer">
      <p>Prosecution Office Case Management</p>
    </div>
  </div>
</body>
</html>`, safeSubject, safeSubject, htmlBody)
}
