package validator

import (
	"testing"

	"resto-erp-ws/internal/model"

	"github.com/stretchr/testify/assert"
)

type roleRequest struct {
	Name string     `validate:"required"`
	Role model.Role `validate:"required,enum"`
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(roleRequest{Name: "Dewi", Role: model.RoleHR}))

	err := Check(roleRequest{Name: "Dewi", Role: "Chef"})
	assert.ErrorContains(t, err, "enum")

	err = Check(roleRequest{Role: model.RoleHR})
	assert.ErrorContains(t, err, "required")
}

func TestValidateStruct_CollectsEveryField(t *testing.T) {
	errs := ValidateStruct(roleRequest{})
	assert.Len(t, errs, 2)
}
