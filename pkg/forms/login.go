package forms

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-firform/internal/backend"
	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/schema"
	"github.com/goliatone/go-firform/pkg/session"
	"github.com/goliatone/go-firform/pkg/validation"
)

const (
	captchaEnvKey = "captcha"
	captchaField  = "captcha"
)

// Login is the sign-in form plus its captcha challenge.
type Login struct {
	*form.Engine

	deps Deps

	mu      sync.Mutex
	ctx     context.Context
	captcha string
	session session.Session
}

// NewLogin builds the sign-in form. Open must run before the form is shown.
// onDone receives the stored session after a successful login.
func NewLogin(deps Deps, onDone func(session.Session)) (*Login, error) {
	deps, err := deps.withDefaults()
	if err != nil {
		return nil, err
	}
	s, err := deps.schema(schema.Login)
	if err != nil {
		return nil, err
	}

	l := &Login{deps: deps, ctx: context.Background()}
	engine, err := form.New(s, deps.options(
		form.WithSubmitter(form.SubmitterFunc(l.submit)),
		form.OnSuccess(func(form.Outcome) {
			if onDone != nil {
				onDone(l.Session())
			}
		}),
		form.OnFailure(func(error) {
			l.refreshAfterFailure()
		}),
	)...)
	if err != nil {
		return nil, err
	}
	l.Engine = engine
	return l, nil
}

// Open pre-fills the remembered email and issues the first captcha.
func (l *Login) Open(ctx context.Context) {
	l.mu.Lock()
	l.ctx = ctx
	l.mu.Unlock()

	email, err := l.deps.Sessions.RememberedEmail(ctx)
	if err != nil {
		l.deps.Logger.Warn("load remembered email", zap.Error(err))
	}
	if email != "" {
		l.Prefill(map[string]any{"email": email, "rememberMe": true})
	}
	l.RefreshCaptcha(ctx)
}

// Captcha returns the challenge to display, "" when none could be fetched.
func (l *Login) Captcha() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.captcha
}

// Session returns the session stored by the last successful login.
func (l *Login) Session() session.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session
}

// RefreshCaptcha replaces the challenge. When the backend is unavailable the
// expected text is cleared and the user is told.
func (l *Login) RefreshCaptcha(ctx context.Context) {
	text, err := l.deps.Client.CaptchaText(ctx)
	if err != nil {
		l.deps.Logger.Warn("fetch captcha", zap.Error(err))
		text = ""
		l.deps.notify(form.LevelError, "login.captchaFailed")
	}
	l.mu.Lock()
	l.captcha = text
	l.mu.Unlock()
	l.SetEnv(captchaEnvKey, text)
}

func (l *Login) refreshAfterFailure() {
	l.mu.Lock()
	ctx := l.ctx
	l.mu.Unlock()
	l.RefreshCaptcha(ctx)
	_ = l.SetField(captchaField, "")
}

func (l *Login) submit(ctx context.Context, values map[string]any) (form.Outcome, error) {
	email := validation.Text(values["email"])
	token, err := l.deps.Client.Login(ctx, backend.Credentials{
		Email:    email,
		Password: validation.Raw(values["password"]),
		Captcha:  validation.Text(values[captchaField]),
	})
	if err != nil {
		return form.Outcome{}, err
	}
	sess, err := session.FromToken(token)
	if err != nil {
		return form.Outcome{}, err
	}
	if err := l.deps.Sessions.Save(ctx, sess); err != nil {
		return form.Outcome{}, err
	}

	remember, _ := values["rememberMe"].(bool)
	if remember {
		err = l.deps.Sessions.SetRememberedEmail(ctx, email)
	} else {
		err = l.deps.Sessions.ForgetEmail(ctx)
	}
	if err != nil {
		l.deps.Logger.Warn("update remembered email", zap.Error(err))
	}

	l.mu.Lock()
	l.session = sess
	l.mu.Unlock()
	return form.Outcome{Payload: map[string]any{"token": token}}, nil
}
