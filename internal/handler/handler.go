package handler

import "jobscaffold-backend/internal/service"

type Handlers struct {
	Notification *NotificationHandler
	Lead         *LeadHandler
	Payment      *PaymentHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Notification: NewNotificationHandler(services.Notifier),
		Lead:         NewLeadHandler(services.Lead),
		Payment:      NewPaymentHandler(services.Payment),
		Admin:        NewAdminHandler(services.Admin),
	}
}
