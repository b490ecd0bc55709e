package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"typed not-found", New(KindNotFound, "coupon not found"), KindNotFound},
		{"wrapped upstream", Wrap(KindUpstream, "listing orders", errors.New("connection refused")), KindUpstream},
		{"fmt wrapped", fmt.Errorf("handler: %w", New(KindConflict, "duplicate code")), KindConflict},
		{"untyped", errors.New("plain"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorMessageCarriesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(KindUpstream, "querying coupons", cause)

	assert.Contains(t, err.Error(), "querying coupons")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, Unauthenticated(New(KindUnauthenticated, "missing session")))
	assert.True(t, IsValidation(New(KindValidation, "code is required")))
	assert.True(t, IsNotFound(New(KindNotFound, "no such product")))
	assert.True(t, IsConflict(New(KindConflict, "duplicate code")))
	assert.True(t, IsUpstream(Wrap(KindUpstream, "db", errors.New("boom"))))
	assert.False(t, IsNotFound(New(KindConflict, "duplicate code")))
}

func TestErrorsIsMatchesSameKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(KindNotFound, "order 9"))
	assert.True(t, errors.Is(err, New(KindNotFound, "any")))
	assert.False(t, errors.Is(err, New(KindConflict, "any")))
}
