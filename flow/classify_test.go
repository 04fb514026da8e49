package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbautistas/github-oauth-login/flow"
)

func TestLoginFailureMessage(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		description string
		want        string
	}{
		{
			name:        "incorrect client credentials",
			code:        "incorrect_client_credentials",
			description: "The client_id and/or client_secret passed are incorrect.",
			want:        "Login fail. The client_id and/or client_secret passed are incorrect.",
		},
		{
			name:        "redirect uri mismatch",
			code:        "redirect_uri_mismatch",
			description: "The redirect_uri MUST match the registered callback URL.",
			want:        "Login fail. The redirect_uri MUST match the registered callback URL.",
		},
		{
			name:        "bad verification code",
			code:        "bad_verification_code",
			description: "X",
			want:        "Login fail. X",
		},
		{
			name:        "unverified user email",
			code:        "unverified_user_email",
			description: "The user has not verified their email.",
			want:        "Login fail. The user has not verified their email.",
		},
		{
			name:        "unrecognized code still surfaces description",
			code:        "application_suspended",
			description: "Your application has been suspended.",
			want:        "Login fail. Your application has been suspended.",
		},
		{
			name: "unrecognized code without description falls back to the code",
			code: "application_suspended",
			want: "Login fail. application_suspended",
		},
		{
			name: "empty envelope gets the generic message",
			want: flow.MsgLoginFailedExchange,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, flow.LoginFailureMessage(tc.code, tc.description))
		})
	}
}

func TestIsKnownOAuthError(t *testing.T) {
	for _, code := range []string{
		"incorrect_client_credentials",
		"redirect_uri_mismatch",
		"bad_verification_code",
		"unverified_user_email",
	} {
		require.True(t, flow.IsKnownOAuthError(code), code)
	}
	require.False(t, flow.IsKnownOAuthError("application_suspended"))
}

func TestRepoCreationMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "created",
			status: 201,
			body:   `{"id":1,"name":"demo"}`,
			want:   flow.MsgRepoCreated,
		},
		{
			name:   "unauthorized ignores the body entirely",
			status: 401,
			body:   `not even json`,
			want:   flow.MsgSessionExpired,
		},
		{
			name:   "unprocessable with direct message",
			status: 422,
			body:   `{"message":"Repository creation failed.","errors":[{"message":"name already exists on this account"}]}`,
			want:   "Repository creation failed.",
		},
		{
			name:   "not found falls back to the errors array",
			status: 404,
			body:   `{"errors":[{"resource":"Repository"},{"message":"Not Found"}]}`,
			want:   "Not Found",
		},
		{
			name:   "forbidden without any message",
			status: 403,
			body:   `{}`,
			want:   flow.MsgUnknownError,
		},
		{
			name:   "unexpected status",
			status: 500,
			body:   `{"message":"boom"}`,
			want:   flow.MsgUnexpectedStatus,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, flow.RepoCreationMessage(tc.status, []byte(tc.body)))
		})
	}
}
