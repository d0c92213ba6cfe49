package worker

import (
	"github.com/ticketreport/backend/internal/service"
)

// StartNotificationWorker registers the event subscribers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
