package rate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeValidator_ValidateCodes_Errors(t *testing.T) {
	validator := NewValidator()

	require.Equal(t, ErrFromRequired, validator.ValidateCodes("", "EUR"))
	require.Equal(t, ErrFromRequired, validator.ValidateCodes("   ", "EUR"))
	require.Equal(t, ErrToRequired, validator.ValidateCodes("USD", ""))
	require.Equal(t, ErrFromFormat, validator.ValidateCodes("EURO", "RON"))
	require.Equal(t, ErrFromFormat, validator.ValidateCodes("E1R", "RON"))
	require.Equal(t, ErrToFormat, validator.ValidateCodes("EUR", "лей"))
}

func TestCodeValidator_ValidateCodes_Success(t *testing.T) {
	validator := NewValidator()
	require.NoError(t, validator.ValidateCodes("USD", "EUR"))
	require.NoError(t, validator.ValidateCodes(" usd", "eur "))
	require.NoError(t, validator.ValidateCodes("RON", "RON"))
}
