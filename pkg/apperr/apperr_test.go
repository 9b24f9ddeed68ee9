package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, KindValidation, KindOf(Validationf("bad input")))
	require.Equal(t, KindNotFound, KindOf(NotFoundf("missing")))
	require.Equal(t, KindConflict, KindOf(Conflictf("duplicate")))
	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	require.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := NotFoundf("member not found")
	outer := fmt.Errorf("create invoice: %w", inner)
	require.Equal(t, KindNotFound, KindOf(outer))

	ledger := Wrap(KindLedgerFailed, "invoice created but member ledger update failed", inner)
	require.Equal(t, KindLedgerFailed, KindOf(ledger))
	// The cause stays reachable.
	require.ErrorIs(t, ledger, inner)
}

func TestMessage(t *testing.T) {
	err := Wrap(KindStoreUnavailable, "store unreachable", errors.New("connection refused"))
	require.Equal(t, "store unreachable", Message(err))
	require.Contains(t, err.Error(), "connection refused")

	require.Equal(t, "plain", Message(errors.New("plain")))
	require.Empty(t, Message(nil))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[int]error{
		http.StatusBadRequest:          Validationf("bad"),
		http.StatusNotFound:            NotFoundf("missing"),
		http.StatusConflict:            Conflictf("duplicate"),
		http.StatusBadGateway:          New(KindLedgerFailed, "ledger failed"),
		http.StatusServiceUnavailable:  New(KindStoreUnavailable, "down"),
		http.StatusInternalServerError: errors.New("plain"),
	}
	for status, err := range cases {
		require.Equal(t, status, HTTPStatus(err))
	}
}
