// util/validation_util.go

package util

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gimme-oss/gimme/config"
	"github.com/gimme-oss/gimme/model"
)

const fallbackMaxPeriodMinutes = 1440

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{validate: validator.New()}
}

func (v *ValidationUtil) ValidateGrantRequest(req model.GrantRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return err
	}
	if !strings.HasPrefix(req.Role, "roles/") && !strings.Contains(req.Role, "/roles/") {
		return fmt.Errorf("role %q is not a valid role name", req.Role)
	}
	maxPeriod := config.GetInt("grant.maxPeriodMinutes")
	if maxPeriod <= 0 {
		maxPeriod = fallbackMaxPeriodMinutes
	}
	if req.Period > maxPeriod {
		return fmt.Errorf("requested period of %d minutes exceeds the maximum of %d", req.Period, maxPeriod)
	}
	// Add more validation rules as needed
	return nil
}
