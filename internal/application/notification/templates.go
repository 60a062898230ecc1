package notification

import (
	"bytes"
	"html/template"
	"time"
)

const layoutHTML = `{{define "layout"}}<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>a{color:#008080;text-decoration:none;} p{margin:10px 0;}</style></head>
<body style="margin:0;padding:0;background-color:#121212;font-family:Arial,sans-serif;">
<table border="0" cellpadding="0" cellspacing="0" width="100%"><tr><td style="padding:20px 0;">
<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="max-width:600px;border-collapse:collapse;background-color:#1E1E1E;border:1px solid #333;border-radius:10px;">
<tr><td align="center" style="padding:30px 20px 20px 20px;"><h1 style="color:#ffffff;margin:10px 0 0 0;font-size:24px;">{{.Heading}}</h1></td></tr>
<tr><td style="padding:20px 30px;color:#E0E0E0;font-size:16px;line-height:1.6;">{{template "content" .}}</td></tr>
<tr><td style="padding:30px;text-align:center;font-size:12px;color:#888;border-top:1px solid #333;">
<p style="margin:0;">&copy; {{.Year}} Wcontent. All rights reserved.</p><p style="margin:5px 0 0 0;">If you did not request this email, please ignore it.</p>
</td></tr></table></td></tr></table></body></html>{{end}}
{{define "cta"}}<table border="0" cellpadding="0" cellspacing="0" style="margin:30px 0;"><tr><td align="center">
<a href="{{.URL}}" target="_blank" style="background-color:#008080;color:#ffffff;padding:12px 25px;text-decoration:none;border-radius:5px;font-weight:bold;display:inline-block;">{{.Text}}</a>
</td></tr></table>{{end}}`

const otpHTML = `{{define "content"}}<p>Hi there,</p>
<p>Use the code below to verify your email address and finish creating your Wcontent account.</p>
<p style="font-size:32px;font-weight:bold;letter-spacing:6px;color:#ffffff;text-align:center;">{{.Code}}</p>
<p>This code expires in {{.ExpiresIn}} and can be used once.</p>{{end}}`

const welcomeHTML = `{{define "content"}}<p>Hi there,</p>
<p>Thank you for joining Wcontent, the ultimate ecosystem designed to empower content creators like you. We're thrilled to have you on board!</p>
<p>You can now access all of our powerful features. Here's a glimpse of what you can do:</p>
<ul style="padding-left:20px;">
<li style="margin-bottom:10px;"><strong>Generate Content:</strong> Use our AI tools to brainstorm topics, headlines, and outlines.</li>
<li style="margin-bottom:10px;"><strong>Find Opportunities:</strong> Explore our marketplace for paid gigs and sponsorships.</li>
<li style="margin-bottom:10px;"><strong>Collaborate:</strong> Connect with other creators to grow your audience together.</li>
</ul>{{template "cta" .CTA}}{{end}}`

const newApplicationHTML = `{{define "content"}}<p>Great news! A new creator has applied for your opportunity, <strong>"{{.Title}}"</strong>.</p>
<h3>Applicant Details:</h3>
<table border="0" cellpadding="5" cellspacing="0" style="width:100%;border-collapse:collapse;">
<tr><td style="width:100px;"><strong>Name:</strong></td><td>{{.Name}}</td></tr>
<tr><td><strong>Email:</strong></td><td>{{.Email}}</td></tr>
<tr><td><strong>Portfolio:</strong></td><td>{{if .ResumeURL}}<a href="{{.ResumeURL}}" style="color:#008080;text-decoration:none;">View Portfolio</a>{{else}}N/A{{end}}</td></tr>
<tr><td><strong>Date:</strong></td><td>{{.Date}}</td></tr>
</table>{{template "cta" .CTA}}{{end}}`

const applicationConfirmationHTML = `{{define "content"}}<p>Hi there,</p>
<p>Thank you for applying for the opportunity, <strong>"{{.Title}}"</strong> on Wcontent.</p>
<p>Your application has been successfully submitted to the opportunity poster. You can track the status of all your applications from your dashboard.</p>
{{template "cta" .CTA}}{{end}}`

const newCollabRequestHTML = `{{define "content"}}<p>Someone is excited to collaborate with you! You've received a new request for your post, <strong>"{{.Title}}"</strong>.</p>
<h3>Requester Details:</h3>
<table border="0" cellpadding="5" cellspacing="0" style="width:100%;border-collapse:collapse;">
<tr><td style="width:100px;"><strong>Name:</strong></td><td>{{.Name}}</td></tr>
<tr><td><strong>Email:</strong></td><td>{{.Email}}</td></tr>
<tr><td><strong>Date:</strong></td><td>{{.Date}}</td></tr>
</table>
<h3 style="margin-top:20px;">Message:</h3>
<p style="padding:15px;background-color:#2a2a2a;border-radius:5px;border:1px solid #444;"><em>"{{.Message}}"</em></p>
{{template "cta" .CTA}}{{end}}`

const collabConfirmationHTML = `{{define "content"}}<p>Hi there,</p>
<p>Your collaboration request for <strong>"{{.Title}}"</strong> has been sent.</p>
<p>The creator has been notified. We hope this leads to an amazing partnership! You can manage your collaboration posts and requests from your dashboard.</p>
{{template "cta" .CTA}}{{end}}`

var base = template.Must(template.New("base").Parse(layoutHTML))

func page(content string) *template.Template {
	return template.Must(template.Must(base.Clone()).Parse(content))
}

var templates = map[string]*template.Template{
	KindOTP:                     page(otpHTML),
	KindWelcome:                 page(welcomeHTML),
	KindNewApplication:          page(newApplicationHTML),
	KindApplicationConfirmation: page(applicationConfirmationHTML),
	KindNewCollabRequest:        page(newCollabRequestHTML),
	KindCollabConfirmation:      page(collabConfirmationHTML),
}

type cta struct {
	Text string
	URL  string
}

// view is the data passed to every template. Fields unused by a template stay empty.
type view struct {
	Heading   string
	Title     string
	Year      int
	CTA       cta
	Code      string
	ExpiresIn string
	Name      string
	Email     string
	ResumeURL string
	Date      string
	Message   string
}

func render(kind string, v view) (string, error) {
	var buf bytes.Buffer
	if err := templates[kind].ExecuteTemplate(&buf, "layout", v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatDate renders RFC 3339 timestamps and YYYY-MM-DD dates as "Jan 2, 2006".
// Anything else is returned unchanged; empty input becomes "N/A".
func formatDate(s string) string {
	if s == "" {
		return "N/A"
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}
