// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/gimme-oss/gimme/logging"
	"github.com/gimme-oss/gimme/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a mail client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyGrantApplied informs the target of a grant that access has been set
// up, and the requester that their request went through.
func (n *NotificationService) NotifyGrantApplied(ctx context.Context, receipt model.GrantReceipt) error {
	// In a real deployment this would go out through a mail or chat
	// integration; for now the notification is logged.
	logger.Info("NOTIFICATION: Temporary access granted",
		zap.String("project", receipt.Project),
		zap.String("member", receipt.Member),
		zap.String("role", receipt.Role),
		zap.String("expiry", receipt.Expiry),
		zap.String("grantedBy", receipt.GrantedBy))
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	// Mock email sending
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))

	return nil
}

// NotifyAdmins reports a grant-pipeline problem to the operators.
func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	if message == "" {
		return fmt.Errorf("empty admin notification")
	}
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
