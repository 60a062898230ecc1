package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wcontent-api/internal/domain"
	"github.com/wcontent-api/internal/infrastructure/smtp"
	"github.com/wcontent-api/internal/infrastructure/sns"
	"github.com/wcontent-api/internal/pkg/clock"
)

// Notification kinds. They double as SNS event kinds.
const (
	KindOTP                     = "otp"
	KindWelcome                 = "welcome"
	KindNewApplication          = "new_application"
	KindApplicationConfirmation = "application_confirmation"
	KindNewCollabRequest        = "new_collab_request"
	KindCollabConfirmation      = "collab_request_confirmation"
)

type mailer interface {
	Send(ctx context.Context, msg smtp.Message) error
}

type eventPublisher interface {
	PublishEvent(ctx context.Context, e sns.Event) error
}

type runner interface {
	Go(ctx context.Context, name string, f func(ctx context.Context) error)
}

type NotifierDeps struct {
	Mailer  mailer
	Events  eventPublisher // optional
	Runner  runner
	Clock   clock.Clocker
	BaseURL string
	OTPTTL  time.Duration
}

// Notifier renders and delivers user-facing emails. Every Send* call returns
// immediately; delivery happens on the runner and failures are only logged.
type Notifier struct {
	mailer  mailer
	events  eventPublisher
	runner  runner
	clock   clock.Clocker
	baseURL string
	otpTTL  time.Duration
}

func NewNotifier(deps NotifierDeps) *Notifier {
	n := &Notifier{
		mailer:  deps.Mailer,
		events:  deps.Events,
		runner:  deps.Runner,
		clock:   deps.Clock,
		baseURL: deps.BaseURL,
		otpTTL:  deps.OTPTTL,
	}
	if n.clock == nil {
		n.clock = clock.New()
	}
	return n
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a few minutes"
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func (n *Notifier) SendOTP(ctx context.Context, email, code string) {
	n.send(ctx, KindOTP, email, "Your Wcontent verification code", "", view{
		Heading:   "Verify your email",
		Code:      code,
		ExpiresIn: humanDuration(n.otpTTL),
	}, fmt.Sprintf("Your Wcontent verification code is %s. It expires in %s.", code, humanDuration(n.otpTTL)))
}

func (n *Notifier) SendWelcome(ctx context.Context, email string) {
	n.send(ctx, KindWelcome, email, "Welcome to Wcontent! Your Creator Journey Starts Now.", "", view{
		Heading: "Welcome to Wcontent!",
		CTA:     cta{Text: "Go to Your Dashboard", URL: n.baseURL + "/dashboard"},
	}, "Thank you for joining Wcontent. Visit "+n.baseURL+"/dashboard to get started.")
}

func (n *Notifier) SendNewApplication(ctx context.Context, ownerEmail string, a domain.Applicant, title, opportunityID string) {
	n.send(ctx, KindNewApplication, ownerEmail, fmt.Sprintf("New Application Received for %q", title), opportunityID, view{
		Heading:   "New Application Received!",
		Title:     title,
		Name:      a.Name,
		Email:     a.Email,
		ResumeURL: a.ResumeURL,
		Date:      formatDate(a.ApplicationDate),
		CTA:       cta{Text: "View All Applications", URL: n.baseURL + "/dashboard/opportunities/myopportunities"},
	}, fmt.Sprintf("%s (%s) applied for %q.", a.Name, a.Email, title))
}

func (n *Notifier) SendApplicationConfirmation(ctx context.Context, email, title string) {
	n.send(ctx, KindApplicationConfirmation, email, fmt.Sprintf("Your Application for %q has been received!", title), "", view{
		Heading: "Application Received!",
		Title:   title,
		CTA:     cta{Text: "View My Applications", URL: n.baseURL + "/dashboard/opportunities/myapps"},
	}, fmt.Sprintf("Your application for %q was submitted.", title))
}

func (n *Notifier) SendNewCollabRequest(ctx context.Context, ownerEmail string, r domain.CollabRequest, title, collaborationID string) {
	n.send(ctx, KindNewCollabRequest, ownerEmail, fmt.Sprintf("New Collaboration Request for %q", title), collaborationID, view{
		Heading: "New Collab Request!",
		Title:   title,
		Name:    r.RequesterName,
		Email:   r.RequesterEmail,
		Date:    formatDate(r.AppliedDate),
		Message: r.Message,
		CTA:     cta{Text: "View Collaboration Requests", URL: n.baseURL + "/dashboard/collabs/myrequests"},
	}, fmt.Sprintf("%s (%s) wants to collaborate on %q.", r.RequesterName, r.RequesterEmail, title))
}

func (n *Notifier) SendCollabRequestConfirmation(ctx context.Context, email, title string) {
	n.send(ctx, KindCollabConfirmation, email, fmt.Sprintf("Your Collaboration Request for %q has been sent!", title), "", view{
		Heading: "Request Sent!",
		Title:   title,
		CTA:     cta{Text: "Go to Dashboard", URL: n.baseURL + "/dashboard"},
	}, fmt.Sprintf("Your collaboration request for %q has been sent.", title))
}

func (n *Notifier) send(ctx context.Context, kind, to, subject, ref string, v view, text string) {
	if to == "" {
		slog.WarnContext(ctx, "notification skipped, no recipient", "kind", kind, "ref", ref)
		return
	}
	v.Year = n.clock.Now().Year()
	html, err := render(kind, v)
	if err != nil {
		slog.ErrorContext(ctx, "render notification", "kind", kind, "err", err)
		return
	}
	msg := smtp.Message{To: to, Subject: subject, TextBody: text, HTMLBody: html}
	event := sns.Event{Kind: kind, Recipient: to, Subject: subject, Reference: ref, OccurredAt: n.clock.Now().UTC()}

	n.runner.Go(ctx, "notify:"+kind, func(ctx context.Context) error {
		if err := n.mailer.Send(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "notification not delivered", "kind", kind, "to", to, "err", fmt.Errorf("%w: %w", domain.ErrDeliveryFailure, err))
		}
		if n.events != nil {
			if err := n.events.PublishEvent(ctx, event); err != nil {
				slog.WarnContext(ctx, "notification event not published", "kind", kind, "err", err)
			}
		}
		return nil
	})
}
