package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{ErrInvalidPackage, KindValidation},
		{ErrInvalidCustomCoins, KindValidation},
		{ErrReasonTooLong, KindValidation},
		{ErrMissingReference, KindValidation},
		{ErrDuplicateReference, KindConflict},
		{ErrOrderAlreadyProcessed, KindConflict},
		{ErrPaymentAlreadyReviewed, KindConflict},
		{ErrInsufficientCoins, KindConflict},
		{ErrTooManyAttempts, KindConflict},
		{ErrNotAuthorized, KindAuthorization},
		{ErrNotYourOrder, KindAuthorization},
		{ErrWrongPassword, KindAuthorization},
		{ErrOrderNotFound, KindNotFound},
		{ErrPaymentNotFound, KindNotFound},
		{ErrUserNotFound, KindNotFound},
		{errors.New("сломалась БД"), KindUnknown},
		{nil, KindUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, KindOf(c.err), "KindOf(%v)", c.err)
	}
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("al crear pedido: %w", ErrDuplicateReference)
	assert.Equal(t, KindConflict, KindOf(wrapped))
}
