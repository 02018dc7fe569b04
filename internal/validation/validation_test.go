package validation

import (
	"testing"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(&dto.ContactCreate{OPID: "jdoe", FirstName: "J", LastName: "D", Password: "x", PhoneNumber: "+15550001111", Email: "nope"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Contains(t, verr.Msg, "valid email")
}

func TestStructEscalationInterval(t *testing.T) {
	ok := dto.ContactGroupWrite{OPID: "ops", Name: "Ops", EscalationInterval: "5 minutes", EscalationFactor: "READ"}
	assert.NoError(t, Struct(&ok))

	none := dto.ContactGroupWrite{OPID: "ops", Name: "Ops", EscalationInterval: "NONE"}
	assert.NoError(t, Struct(&none))

	bad := dto.ContactGroupWrite{OPID: "ops", Name: "Ops", EscalationInterval: "7 minutes"}
	err := Struct(&bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escalationInterval")
}

func TestStructNestedMembers(t *testing.T) {
	w := dto.ContactGroupWrite{OPID: "ops", Name: "Ops", Contacts: []dto.ContactGroupMember{{ContactID: 0}}}
	err := Struct(&w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contacts[0].contactId")
}
