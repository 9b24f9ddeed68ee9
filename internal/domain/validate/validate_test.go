package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "rahim uddin", NormalizeName("  Rahim   UDDIN "))
	require.Equal(t, "", NormalizeName("   "))
}

func TestNormalizeTableName(t *testing.T) {
	require.Equal(t, "window-side", NormalizeTableName(" Window  Side "))
}

func TestPersonName(t *testing.T) {
	require.NoError(t, PersonName("rahim", "name"))

	for _, bad := range []string{"ab", "1abc", "@abc", ""} {
		err := PersonName(bad, "name")
		require.Error(t, err, bad)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestMobile(t *testing.T) {
	require.NoError(t, Mobile("01712345678"))
	require.NoError(t, Mobile("01912345678"))

	for _, bad := range []string{
		"0171234567",   // ten digits
		"017123456789", // twelve digits
		"02712345678",  // not a mobile prefix
		"01212345678",  // invalid operator digit
		"0171234567a",  // non-numeric
	} {
		err := Mobile(bad)
		require.Error(t, err, bad)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestTitle(t *testing.T) {
	require.NoError(t, Title("gas refill"))
	require.Error(t, Title("@gas"))
}
