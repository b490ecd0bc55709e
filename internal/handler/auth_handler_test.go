package handler

import (
	"testing"

	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     PasswordRequest
		wantErr string
	}{
		{
			"all fields present and matching",
			PasswordRequest{CurrentPassword: "oldpass", NewPassword: "newpass1", ConfirmPassword: "newpass1"},
			"",
		},
		{
			"missing current password",
			PasswordRequest{NewPassword: "newpass1", ConfirmPassword: "newpass1"},
			"all password fields are required",
		},
		{
			"missing confirmation",
			PasswordRequest{CurrentPassword: "oldpass", NewPassword: "newpass1"},
			"all password fields are required",
		},
		{
			"new password too short",
			PasswordRequest{CurrentPassword: "oldpass", NewPassword: "abc", ConfirmPassword: "abc"},
			"new password must be at least 6 characters",
		},
		{
			"confirmation mismatch",
			PasswordRequest{CurrentPassword: "oldpass", NewPassword: "newpass1", ConfirmPassword: "newpass2"},
			"new password confirmation does not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
