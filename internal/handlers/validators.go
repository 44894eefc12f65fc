package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prosync/prosync-api/internal/models"
)

// RegisterValidators installs the custom binding rules. Call once before
// routes are served.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("decision", validDecision)
	}
}

func validDecision(fl validator.FieldLevel) bool {
	switch models.WorkflowDecision(fl.Field().String()) {
	case models.DecisionAccept, models.DecisionReject:
		return true
	}
	return false
}
