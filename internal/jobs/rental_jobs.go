package jobs

import (
	"context"
	"fmt"
	"time"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/logger"
)

// SendReturnReminders notifies customers whose active rental is due back
// within the next 24 hours.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		now := jr.now()

		rentals, err := jr.store.Rentals().ListActiveDueBetween(ctx, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to list rentals due for return", "error", err)
			return
		}

		count := 0
		for _, rental := range rentals {
			vehicle, err := jr.store.Vehicles().GetByID(ctx, rental.VehicleID)
			if err != nil {
				logger.Error("Failed to load vehicle for reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			customer, err := jr.store.Customers().GetByID(ctx, rental.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			message := fmt.Sprintf("Reminder: %s is due back on %s. Late returns incur a fee per late day.",
				vehicle.DisplayName(), rental.ReturnDate.Format("Jan 2, 2006 3:04 PM"))
			actionURL := fmt.Sprintf("/my/rentals/%d", rental.ID)
			if err := jr.notifier.Notify(ctx, customer.UserID, "Return Reminder", message, domain.SeverityInfo, actionURL); err != nil {
				logger.Error("Failed to send return reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Sent return reminders", "count", count)
	})
}

// SendOverdueNotices notifies customers and admins about active rentals past
// their scheduled return. The rental stays Active: only an admin completing
// the return transitions it, and the late fee is computed at that point.
func (jr *JobRunner) SendOverdueNotices() {
	jr.runWithRecovery("SendOverdueNotices", func() {
		ctx := context.Background()
		now := jr.now()

		rentals, err := jr.store.Rentals().ListActiveOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		admins, err := jr.store.Users().ListAdmins(ctx)
		if err != nil {
			logger.Error("Failed to list admins for overdue notices", "error", err)
			return
		}

		count := 0
		for _, rental := range rentals {
			vehicle, err := jr.store.Vehicles().GetByID(ctx, rental.VehicleID)
			if err != nil {
				logger.Error("Failed to load vehicle for overdue notice", "rental_id", rental.ID, "error", err)
				continue
			}
			customer, err := jr.store.Customers().GetByID(ctx, rental.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for overdue notice", "rental_id", rental.ID, "error", err)
				continue
			}

			dueAt := rental.ReturnDate.Format("Jan 2, 2006 3:04 PM")
			customerMsg := fmt.Sprintf("%s was due back on %s. Please return it as soon as possible; a late fee applies per late day.",
				vehicle.DisplayName(), dueAt)
			if err := jr.notifier.Notify(ctx, customer.UserID, "Rental Overdue", customerMsg, domain.SeverityWarning,
				fmt.Sprintf("/my/rentals/%d", rental.ID)); err != nil {
				logger.Error("Failed to notify customer of overdue rental", "rental_id", rental.ID, "error", err)
			}

			adminMsg := fmt.Sprintf("%s rented by %s was due back on %s and has not been returned.",
				vehicle.DisplayName(), customer.FullName(), dueAt)
			for _, admin := range admins {
				if err := jr.notifier.Notify(ctx, admin.ID, "Overdue Rental", adminMsg, domain.SeverityWarning,
					fmt.Sprintf("/admin/rentals/%d", rental.ID)); err != nil {
					logger.Error("Failed to notify admin of overdue rental", "rental_id", rental.ID, "admin_id", admin.ID, "error", err)
				}
			}
			count++
		}
		logger.Info("Sent overdue notices", "count", count)
	})
}
