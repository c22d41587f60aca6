package service

import (
	"log/slog"

	"jobscaffold-backend/internal/config"
	"jobscaffold-backend/internal/events"
	"jobscaffold-backend/internal/integration"
	"jobscaffold-backend/internal/repository"
	"jobscaffold-backend/internal/service/admin"
	"jobscaffold-backend/internal/service/email"
	"jobscaffold-backend/internal/service/fanout"
	"jobscaffold-backend/internal/service/lead"
	"jobscaffold-backend/internal/service/notifier"
	"jobscaffold-backend/internal/service/payment"
	"jobscaffold-backend/internal/service/push"
	"jobscaffold-backend/internal/service/report"
)

type Services struct {
	Email    email.Service
	Fanout   *fanout.Service
	Notifier *notifier.Service
	Lead     *lead.Service
	Report   *report.Service
	Payment  *payment.Service
	Admin    *admin.Service
}

// NewServices wires the service graph. Optional integrations (email, chat,
// mailing list, captcha) are nil when unconfigured and every consumer
// treats nil as "channel disabled".
func NewServices(
	repos *repository.Repositories,
	bus events.Publisher,
	sender push.MulticastSender,
	cfg *config.Config,
	logger *slog.Logger,
) *Services {
	var emailSvc email.Service
	if cfg.ResendAPIKey != "" && cfg.FromEmail != "" {
		emailSvc = email.NewService(cfg)
	} else {
		logger.Warn("email channel not configured, notification and lead emails disabled")
	}

	var slack *integration.SlackNotifier
	if cfg.SlackWebhookURL != "" {
		slack = integration.NewSlackNotifier(cfg.SlackWebhookURL)
	}

	var list lead.ListSyncer
	if cfg.MailchimpAPIKey != "" && cfg.MailchimpListID != "" && cfg.MailchimpServerPrefix != "" {
		list = integration.NewMailchimpClient(cfg.MailchimpAPIKey, cfg.MailchimpListID, cfg.MailchimpServerPrefix)
	}

	var captcha lead.CaptchaVerifier
	if cfg.RecaptchaSecret != "" {
		captcha = integration.NewRecaptchaVerifier(cfg.RecaptchaSecret, cfg.RecaptchaMinScore)
	}

	var fanoutEmail fanout.EmailSender
	var leadEmail lead.EmailSender
	var reportEmail report.EmailSender
	if emailSvc != nil {
		fanoutEmail = emailSvc
		leadEmail = emailSvc
		reportEmail = emailSvc
	}

	var leadChat lead.ChatNotifier
	var reportChat report.ChatNotifier
	if slack != nil {
		leadChat = slack
		reportChat = slack
	}

	dispatcher := push.NewDispatcher(sender, logger)
	fanoutSvc := fanout.NewService(repos.DeviceToken, repos.User, dispatcher, fanoutEmail, logger)
	notifierSvc := notifier.NewService(repos.Notification, repos.User, repos.Project, bus, logger)
	leadSvc := lead.NewService(repos.Lead, bus, captcha, leadEmail, leadChat, list, logger)
	reportSvc := report.NewService(repos.Lead, reportEmail, reportChat, cfg.AdminEmails, logger)
	paymentSvc := payment.NewService(cfg, repos.Invoice, logger)
	adminSvc := admin.NewService(repos.User, logger)

	return &Services{
		Email:    emailSvc,
		Fanout:   fanoutSvc,
		Notifier: notifierSvc,
		Lead:     leadSvc,
		Report:   reportSvc,
		Payment:  paymentSvc,
		Admin:    adminSvc,
	}
}
