package backend

import (
	"context"
	"strings"

	"github.com/goliatone/go-firform/internal/apicontract"
	"github.com/goliatone/go-firform/pkg/fir"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"`
}

// User is the authenticated account as the backend reports it.
type User struct {
	ID           fir.ID `json:"id,omitempty"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName,omitempty"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Photo        string `json:"photo,omitempty"`
}

// FullName joins the non-empty name parts.
func (u User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Values returns the profile form state for u. Password starts empty.
func (u User) Values() map[string]any {
	return map[string]any{
		"firstName":    u.FirstName,
		"middleName":   u.MiddleName,
		"lastName":     u.LastName,
		"mobileNumber": u.MobileNumber,
		"password":     "",
	}
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, up Upload) error {
	body, err := up.body()
	if err != nil {
		return err
	}
	return c.call(ctx, apicontract.OpRegister, nil, body, nil)
}

// CaptchaText fetches a new captcha challenge.
func (c *Client) CaptchaText(ctx context.Context) (string, error) {
	var out struct {
		CaptchaText string `json:"captchaText"`
	}
	if err := c.call(ctx, apicontract.OpCaptchaText, nil, nil, &out); err != nil {
		return "", err
	}
	return out.CaptchaText, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	body, err := c.validated(apicontract.OpLogin, creds)
	if err != nil {
		return "", err
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.call(ctx, apicontract.OpLogin, nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// CurrentUser returns the account behind the token.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var out User
	err := c.call(ctx, apicontract.OpCurrentUser, nil, nil, &out)
	return out, err
}

// Profile returns the editable profile.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var out User
	err := c.call(ctx, apicontract.OpGetProfile, nil, nil, &out)
	return out, err
}

// UpdateProfile sends the changed profile fields.
func (c *Client) UpdateProfile(ctx context.Context, up Upload) (User, error) {
	body, err := up.body()
	if err != nil {
		return User{}, err
	}
	var out User
	err = c.call(ctx, apicontract.OpUpdateProfile, nil, body, &out)
	return out, err
}
