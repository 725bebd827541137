// service/services.go
package service

import (
	"github.com/gimme-oss/gimme/audit"
	"github.com/gimme-oss/gimme/util"
)

type Services struct {
	Grant    IGrantService
	Identity IIdentityService
}

func InitializeServices(
	policyStore PolicyStore,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	identityService := NewIdentityService(cacheService)

	services := &Services{
		Grant:    NewGrantService(policyStore, identityService, validationUtil, notificationSvc, eventBus, auditService),
		Identity: identityService,
	}

	return services, nil
}
