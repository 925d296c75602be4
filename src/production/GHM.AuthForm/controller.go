package authform

import (
	"context"
	"sync"
	"time"

	logger "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Logger"
	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

// DashboardPath is where a freshly authenticated user is sent
const DashboardPath = "/dashboard"

// Result is the outcome of one submission
type Result struct {
	Session  *ghmmodels.Session
	Redirect string
	Err      error
}

// Message is the user-visible error, empty on success
func (r Result) Message() string { return UserMessage(r.Err) }

// OK reports whether the submission authenticated the user
func (r Result) OK() bool { return r.Err == nil && r.Session != nil }

// Options tune a Controller
type Options struct {
	// OnAuthenticated is how the hosting application learns about the new session
	OnAuthenticated func(ghmmodels.Session)
	// SessionTTL is used when the token carries no exp claim
	SessionTTL time.Duration
	Now        func() time.Time
	Logger     *logger.Logger
}

// Controller drives a single form instance: validate, call the API, persist
// the session, notify the host. At most one call is in flight at a time.
type Controller struct {
	auth    Authenticator
	storage Storage
	opts    Options

	mu         sync.Mutex
	submitting bool
}

// NewController wires a controller to an API and a session store
func NewController(auth Authenticator, storage Storage, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Controller{auth: auth, storage: storage, opts: opts}
}

// Submitting reports whether a call is in flight
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return false
	}
	c.submitting = true
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()
}

// Submit runs the form. The form's Error and Submitting fields reflect the
// outcome when it returns.
func (c *Controller) Submit(ctx context.Context, form *Form) Result {
	form.Error = ""

	if err := form.Validate(); err != nil {
		form.Error = UserMessage(err)
		return Result{Err: err}
	}

	if !c.begin() {
		form.Error = MsgInProgress
		return Result{Err: ErrSubmissionInProgress}
	}
	form.Submitting = true
	defer func() {
		form.Submitting = false
		c.end()
	}()

	log := c.opts.Logger.WithFields(map[string]interface{}{
		"mode":     string(form.Mode),
		"username": form.Credentials.Username,
	})

	var session *ghmmodels.Session
	var err error
	if form.IsRegister() {
		session, err = c.auth.Register(ctx, form.Credentials)
	} else {
		session, err = c.auth.Login(ctx, form.Credentials)
	}
	if err != nil {
		log.Logger.Warn().Err(err).Msg("Authentication failed")
		form.Error = UserMessage(err)
		return Result{Err: err}
	}

	if err := SaveSession(c.storage, session, c.opts.SessionTTL, c.opts.Now()); err != nil {
		log.ErrorWithError(err, "Failed to persist session")
		form.Error = UserMessage(err)
		return Result{Err: err}
	}

	log.Info("User authenticated")
	if c.opts.OnAuthenticated != nil {
		c.opts.OnAuthenticated(*session)
	}

	form.Credentials = ghmmodels.Credentials{}
	return Result{Session: session, Redirect: DashboardPath}
}
