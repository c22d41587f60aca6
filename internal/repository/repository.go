package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	DeviceToken  DeviceTokenRepository
	Notification NotificationRepository
	Lead         LeadRepository
	Invoice      InvoiceRepository
	Project      ProjectRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		DeviceToken:  NewDeviceTokenRepository(db),
		Notification: NewNotificationRepository(db),
		Lead:         NewLeadRepository(db),
		Invoice:      NewInvoiceRepository(db),
		Project:      NewProjectRepository(db),
	}
}
