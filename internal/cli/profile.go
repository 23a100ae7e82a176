package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hafidzirham/localspot-cli/internal/api"
	"github.com/hafidzirham/localspot-cli/internal/filex"
	"github.com/hafidzirham/localspot-cli/internal/session"
)

// ProfileCmd prints the current profile.
func (a *App) ProfileCmd(_ context.Context) error {
	snap := a.session.Snapshot()
	switch snap.State() {
	case session.StateGuest:
		fmt.Fprintln(a.out, "Browsing as guest — no profile. Use 'login' or 'register'.")
		return nil
	case session.StateAuthenticated:
		u := snap.User
		fmt.Fprintf(a.out, "Username: %s\nEmail:    %s\n", u.Username, u.Email)
		if u.ProfilePictureURL != "" {
			fmt.Fprintf(a.out, "Photo:    %s\n", u.ProfilePictureURL)
		}
		return nil
	default:
		return session.ErrNotAuthenticated
	}
}

// UpdateProfileCmd edits the text fields of the profile. Empty answers keep
// the current values.
func (a *App) UpdateProfileCmd(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.State() != session.StateAuthenticated {
		return session.ErrNotAuthenticated
	}

	username, err := getSimpleText(a.reader, fmt.Sprintf("Username [%s]", snap.User.Username), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", snap.User.Email), a.out)
	if err != nil {
		return err
	}

	if username == "" && email == "" {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}
	if email != "" {
		if err := checkForm(loginForm{Email: email, Password: "x"}); err != nil {
			return err
		}
	}

	user, err := a.session.UpdateProfile(ctx, &api.ProfileUpdate{Username: username, Email: email})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", user.Username, user.Email)
	return nil
}

// UploadPhotoCmd uploads a new profile photo from a local file.
func (a *App) UploadPhotoCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: photo <path-to-image>")
	}

	name, contentType, data, err := filex.ReadImage(args[0])
	if err != nil {
		return err
	}

	user, err := a.session.UploadProfilePhoto(ctx, &api.Photo{
		FileName:    name,
		ContentType: contentType,
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Photo updated: %s\n", user.ProfilePictureURL)
	return nil
}
