// controller/grant_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gimme-oss/gimme/config"
	gimme_errors "github.com/gimme-oss/gimme/errors"
	"github.com/gimme-oss/gimme/model"
	"github.com/gimme-oss/gimme/service"
	"github.com/gimme-oss/gimme/util"
)

type GrantController struct {
	grantService service.IGrantService
}

func NewGrantController(grantService service.IGrantService) *GrantController {
	return &GrantController{
		grantService: grantService,
	}
}

// RegisterRoutes registers the API routes
func (gc *GrantController) RegisterRoutes(r *gin.RouterGroup) {
	grants := r.Group("/grants")
	{
		grants.POST("", gc.CreateGrant)
	}
}

// CreateGrant endpoint: applies a temporary, expiring role binding to a
// project's IAM policy.
func (gc *GrantController) CreateGrant(c *gin.Context) {
	var req model.GrantRequest
	if err := c.ShouldBind(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid grant request", gimme_errors.ErrInvalidGrantData)
		return
	}
	if req.Period == 0 {
		req.Period = config.GetInt("grant.defaultPeriodMinutes")
	}

	auth, err := util.GetSessionAuth(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", gimme_errors.ErrUnauthorized)
		return
	}

	receipt, err := gc.grantService.ApplyGrant(c, req, auth)
	if err != nil {
		switch {
		case errors.Is(err, gimme_errors.ErrProfileIncomplete):
			util.RespondWithError(c, http.StatusForbidden, "Incomplete profile information was returned by Google", err)
		case errors.Is(err, gimme_errors.ErrIdentityUnavailable):
			util.RespondWithError(c, http.StatusForbidden, "Could not get your profile information from Google", err)
		case errors.Is(err, gimme_errors.ErrDomainNotAllowed):
			util.RespondWithError(c, http.StatusForbidden, "The account you are logged in with does not match the configured whitelist", err)
		case errors.Is(err, gimme_errors.ErrInvalidGrantData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid grant request", err)
		case errors.Is(err, gimme_errors.ErrProjectNotFound):
			util.RespondWithError(c, http.StatusBadRequest, "Could not find project ID in provided URL", err)
		case errors.Is(err, gimme_errors.ErrPolicyUnavailable):
			util.RespondWithError(c, http.StatusBadGateway, "Could not apply new policy", err)
		case errors.Is(err, gimme_errors.ErrPolicyWriteFailed):
			message := fmt.Sprintf("Could not apply new policy: %s", gimme_errors.Detail(err, gimme_errors.ErrPolicyWriteFailed))
			util.RespondWithError(c, http.StatusBadGateway, message, err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to apply grant", gimme_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Great success, they'll have access in a minute!",
		"grant":   receipt,
	})
}
