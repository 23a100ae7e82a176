package cli

import (
	"context"
	"fmt"

	"github.com/hafidzirham/localspot-cli/internal/api"
)

// Input indirections used as test seams.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// LoginCmd prompts for credentials and authenticates the session. Format
// checks happen here; the session manager reports server rejections with
// the server's own message.
func (a *App) LoginCmd(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}

	form := loginForm{Email: email, Password: password}
	if err := checkForm(form); err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}

	snap := a.session.Snapshot()
	fmt.Fprintf(a.out, "Logged in as %s\n", snap.User.Username)
	return nil
}

// RegisterCmd creates a new account. The session stays unauthenticated; the
// user logs in afterwards.
func (a *App) RegisterCmd(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	confirmation, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}

	form := registerForm{
		Username:             username,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
	}
	if err := checkForm(form); err != nil {
		return err
	}

	err = a.session.Register(ctx, &api.RegisterRequest{
		Username:             username,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

// GuestCmd switches to guest mode: browsing without an account.
func (a *App) GuestCmd(_ context.Context) error {
	a.session.ContinueAsGuest()
	fmt.Fprintln(a.out, "Continuing as guest. Favorites and reviews need an account.")
	return nil
}

// LogoutCmd ends the current session. It cannot fail: remote invalidation
// is best-effort and local state always clears.
func (a *App) LogoutCmd(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// ForgotPasswordCmd requests a reset OTP for an email address.
func (a *App) ForgotPasswordCmd(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if err := checkForm(loginForm{Email: email, Password: "x"}); err != nil {
		return err
	}

	if err := a.session.ForgotPassword(ctx, email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "If the address exists, a reset code has been sent.")
	return nil
}

// ResetPasswordCmd completes a password reset with the emailed OTP.
func (a *App) ResetPasswordCmd(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	otp, err := getSimpleText(a.reader, "Reset code", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	confirmation, err := getPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}

	form := resetForm{
		Email:                   email,
		OTP:                     otp,
		NewPassword:             password,
		NewPasswordConfirmation: confirmation,
	}
	if err := checkForm(form); err != nil {
		return err
	}

	err = a.session.ResetPassword(ctx, &api.PasswordReset{
		Email:                   email,
		OTP:                     otp,
		NewPassword:             password,
		NewPasswordConfirmation: confirmation,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password reset. Log in with your new password.")
	return nil
}
