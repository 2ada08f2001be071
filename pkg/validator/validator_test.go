package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name    string    `validate:"required"`
	Email   string    `validate:"required,email"`
	OwnerID uuid.UUID `validate:"uuid_required"`
}

func TestValidateStructPass(t *testing.T) {
	req := sampleRequest{Name: "Tomatoes", Email: "cook@example.com", OwnerID: uuid.New()}
	assert.Nil(t, ValidateStruct(&req))
}

func TestValidateStructReportsEachFailure(t *testing.T) {
	req := sampleRequest{Email: "not-an-email"}

	errs := ValidateStruct(&req)
	require.Len(t, errs, 3)

	tags := map[string]string{}
	for _, e := range errs {
		tags[e.FailedField] = e.Tag
	}
	assert.Equal(t, "required", tags["sampleRequest.Name"])
	assert.Equal(t, "email", tags["sampleRequest.Email"])
	assert.Equal(t, "uuid_required", tags["sampleRequest.OwnerID"])
}

func TestUUIDRequiredRejectsNil(t *testing.T) {
	req := sampleRequest{Name: "Tomatoes", Email: "cook@example.com", OwnerID: uuid.Nil}

	errs := ValidateStruct(&req)
	require.Len(t, errs, 1)
	assert.Equal(t, "uuid_required", errs[0].Tag)
}
