// controller/controllers.go
package controller

import "github.com/gimme-oss/gimme/service"

type Controllers struct {
	Grant *GrantController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Grant: NewGrantController(services.Grant),
	}
}
