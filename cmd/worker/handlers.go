package main

import (
	"github.com/hibiken/asynq"

	appJob "megheza-backend/internal/domains/application/job"
	"megheza-backend/internal/domains/application/model"
	"megheza-backend/internal/infrastructure/email"
	emailjob "megheza-backend/internal/infrastructure/email/job"
	"megheza-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	verifiedNotification *emailjob.VerifiedNotificationHandler
	redactDocuments      *appJob.RedactDocumentsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	var emailSvc email.EmailService = email.NewMockEmailService()
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPEmailService(cfg.SMTP)
	}

	return &HandlerRegistry{
		verifiedNotification: emailjob.NewVerifiedNotificationHandler(emailSvc),
		redactDocuments:      appJob.NewRedactDocumentsHandler(c.ApplicationService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(model.TypeNotifyVerified, h.verifiedNotification.ProcessTask)
	mux.HandleFunc(model.TypeRedactDocuments, h.redactDocuments.ProcessTask)
}
