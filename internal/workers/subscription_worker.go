package workers

import (
	"context"
	"time"

	"gymdesk_backend/internal/email"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/metrics"
	"gymdesk_backend/internal/repositories"
)

// SubscriptionWorker runs the two background sweeps: expiring overdue
// subscriptions and sending renewal reminders before end_date.
type SubscriptionWorker struct {
	subscriptionRepo repositories.SubscriptionRepository
	tenantRepo       repositories.TenantRepository
	mailer           email.Provider

	reminderDays   int
	expiryInterval time.Duration
	remindInterval time.Duration
}

func NewSubscriptionWorker(
	subscriptionRepo repositories.SubscriptionRepository,
	tenantRepo repositories.TenantRepository,
	mailer email.Provider,
	reminderDays int,
) *SubscriptionWorker {
	return &SubscriptionWorker{
		subscriptionRepo: subscriptionRepo,
		tenantRepo:       tenantRepo,
		mailer:           mailer,
		reminderDays:     reminderDays,
		expiryInterval:   time.Hour,
		remindInterval:   6 * time.Hour,
	}
}

// Start launches both loops. They stop when ctx is cancelled.
func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.runExpiry(ctx)
	go w.runReminders(ctx)
	logger.Info("Subscription worker started",
		"reminder_days", w.reminderDays,
		"expiry_interval", w.expiryInterval.String(),
	)
}

func (w *SubscriptionWorker) runExpiry(ctx context.Context) {
	ticker := time.NewTicker(w.expiryInterval)
	defer ticker.Stop()

	// One pass at startup so a restart does not delay expiry by an hour.
	w.expireOverdue(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.expireOverdue(ctx)
		}
	}
}

func (w *SubscriptionWorker) expireOverdue(ctx context.Context) {
	expired, err := w.subscriptionRepo.ExpireOverdue(ctx)
	if err != nil {
		logger.CtxWithError(ctx, "subscription expiry sweep failed", err)
		return
	}
	if expired > 0 {
		metrics.SubscriptionsExpiredTotal.Add(float64(expired))
		logger.CtxInfo(ctx, "subscriptions expired", "count", expired)
	}
}

func (w *SubscriptionWorker) runReminders(ctx context.Context) {
	ticker := time.NewTicker(w.remindInterval)
	defer ticker.Stop()

	w.sendReminders(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sendReminders(ctx)
		}
	}
}

func (w *SubscriptionWorker) sendReminders(ctx context.Context) {
	due, err := w.subscriptionRepo.FindDueForReminder(ctx, w.reminderDays)
	if err != nil {
		logger.CtxWithError(ctx, "renewal reminder sweep failed", err)
		return
	}

	for _, sub := range due {
		if sub.Client == nil || sub.Client.Profile == nil || sub.Plan == nil {
			continue
		}
		profile := sub.Client.Profile

		tenantName := ""
		if tenant, err := w.tenantRepo.FindByID(ctx, sub.TenantID); err == nil {
			tenantName = tenant.Name
		}

		err := w.mailer.SendTemplate(
			[]string{profile.Email},
			"Your membership is about to expire",
			email.TemplateRenewalReminder,
			email.TemplateData{
				"FullName":   profile.FullName,
				"PlanName":   sub.Plan.Name,
				"TenantName": tenantName,
				"EndDate":    sub.EndDate.Format("2006-01-02"),
			},
		)
		if err != nil {
			logger.CtxWithError(ctx, "failed to send renewal reminder", err,
				"subscription_id", sub.ID, "email", profile.Email)
			continue
		}

		// Mark only after the send went out; a failed send retries on the
		// next sweep.
		if err := w.subscriptionRepo.MarkReminderSent(ctx, sub.ID); err != nil {
			logger.CtxWithError(ctx, "failed to mark reminder sent", err,
				"subscription_id", sub.ID)
			continue
		}
		metrics.RenewalRemindersSentTotal.Inc()
	}
}
