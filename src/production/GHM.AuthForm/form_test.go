package authform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		mode  Mode
		creds ghmmodels.Credentials
		want  string
	}{
		{"login ok", ModeLogin, ghmmodels.Credentials{Username: "a", Password: "b"}, ""},
		{"login blank username", ModeLogin, ghmmodels.Credentials{Username: "  ", Password: "b"}, MsgCredentialsRequired},
		{"login missing password", ModeLogin, ghmmodels.Credentials{Username: "a"}, MsgCredentialsRequired},
		{"register mismatch", ModeRegister, ghmmodels.Credentials{Username: "a", Password: "abcdef", ConfirmPassword: "abcdeg"}, MsgPasswordMismatch},
		{"register short", ModeRegister, ghmmodels.Credentials{Username: "a", Password: "abc", ConfirmPassword: "abc"}, MsgPasswordTooShort},
		{"register ok", ModeRegister, ghmmodels.Credentials{Username: "a", Password: "abcdef", ConfirmPassword: "abcdef"}, ""},
		{"login ignores confirmation", ModeLogin, ghmmodels.Credentials{Username: "a", Password: "b", ConfirmPassword: "c"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewForm(tc.mode)
			f.Credentials = tc.creds
			assert.Equal(t, tc.want, UserMessage(f.Validate()))
		})
	}
}

func TestToggleClearsError(t *testing.T) {
	f := NewForm(ModeLogin)
	f.Error = MsgCredentialsRequired

	f.Toggle()
	assert.Equal(t, ModeRegister, f.Mode)
	assert.Empty(t, f.Error)

	f.Toggle()
	assert.Equal(t, ModeLogin, f.Mode)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeRegister, ParseMode("Register"))
	assert.Equal(t, ModeLogin, ParseMode("login"))
	assert.Equal(t, ModeLogin, ParseMode("anything"))
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, MsgUnexpected, UserMessage(errors.New("decode failed")))
	assert.Equal(t, "Request failed with status 418", UserMessage(fmt.Errorf("wrapped: %w", &ServerError{StatusCode: 418})))
	assert.Equal(t, MsgInProgress, UserMessage(ErrSubmissionInProgress))
	assert.Equal(t,
		"Cannot connect to server at http://api.local. Please check if the server is running.",
		UserMessage(&TransportError{APIBase: "http://api.local"}))
}
