package partner

import (
	"testing"

	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(" Acme Prints ", map[string]any{MetadataEmail: "ops@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Prints", c.Name)
	assert.Equal(t, "ops@acme.test", c.MetadataString(MetadataEmail))
	assert.Equal(t, "", c.MetadataString(MetadataPhone))

	c, err = NewCustomer("Walk-in", nil)
	require.NoError(t, err)
	assert.NotNil(t, c.Metadata)

	_, err = NewCustomer("", nil)
	require.Error(t, err)
	assert.True(t, shared.IsDomainError(err, shared.CodeValidation))
}

func TestCustomer_Update(t *testing.T) {
	c, err := NewCustomer("Acme", map[string]any{MetadataPhone: "123"})
	require.NoError(t, err)

	require.NoError(t, c.Update("Acme Ltd", nil))
	assert.Equal(t, "Acme Ltd", c.Name)
	assert.Equal(t, "123", c.MetadataString(MetadataPhone), "nil metadata keeps the existing map")

	require.NoError(t, c.Update("Acme Ltd", map[string]any{MetadataAddress: "1 Mill Rd"}))
	assert.Equal(t, "", c.MetadataString(MetadataPhone))
	assert.Equal(t, "1 Mill Rd", c.MetadataString(MetadataAddress))

	assert.Error(t, c.Update("   ", nil))
}

func TestCustomer_MetadataStringNonString(t *testing.T) {
	c, err := NewCustomer("Acme", map[string]any{MetadataPhone: 42})
	require.NoError(t, err)
	assert.Equal(t, "", c.MetadataString(MetadataPhone))
}
