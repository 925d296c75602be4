package authform

import (
	"strings"

	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

// Mode selects which of the two forms is showing
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// ParseMode defaults to login for anything it does not know
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeRegister {
		return ModeRegister
	}
	return ModeLogin
}

// Form is the state behind the login/register screen
type Form struct {
	Mode        Mode
	Credentials ghmmodels.Credentials
	Error       string
	Submitting  bool
}

// NewForm returns an empty form in the given mode
func NewForm(mode Mode) *Form {
	return &Form{Mode: mode}
}

// Toggle switches between login and register and clears the error
func (f *Form) Toggle() {
	if f.Mode == ModeRegister {
		f.Mode = ModeLogin
	} else {
		f.Mode = ModeRegister
	}
	f.Error = ""
}

// IsRegister reports whether the form is in registration mode
func (f *Form) IsRegister() bool { return f.Mode == ModeRegister }

// Validate runs the local checks. It never touches the network.
func (f *Form) Validate() error {
	c := f.Credentials
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return &ValidationError{Message: MsgCredentialsRequired}
	}
	if f.Mode != ModeRegister {
		return nil
	}
	if c.Password != c.ConfirmPassword {
		return &ValidationError{Message: MsgPasswordMismatch}
	}
	if len(c.Password) < MinPasswordLength {
		return &ValidationError{Message: MsgPasswordTooShort}
	}
	return nil
}
