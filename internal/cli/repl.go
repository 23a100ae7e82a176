package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isGuest() bool
	LoginCmd(ctx context.Context) error
	RegisterCmd(ctx context.Context) error
	GuestCmd(ctx context.Context) error
	LogoutCmd(ctx context.Context) error
	ForgotPasswordCmd(ctx context.Context) error
	ResetPasswordCmd(ctx context.Context) error
	ProfileCmd(ctx context.Context) error
	UpdateProfileCmd(ctx context.Context) error
	UploadPhotoCmd(ctx context.Context, args []string) error
	PlacesCmd(ctx context.Context, args []string) error
	PlaceCmd(ctx context.Context, args []string) error
	CategoriesCmd(ctx context.Context) error
	MyPlacesCmd(ctx context.Context) error
	AddPlaceCmd(ctx context.Context) error
	EditPlaceCmd(ctx context.Context, args []string) error
	DeletePlaceCmd(ctx context.Context, args []string) error
	FavoritesCmd(ctx context.Context) error
	ToggleFavoriteCmd(ctx context.Context, args []string) error
	ReviewsCmd(ctx context.Context, args []string) error
	MyReviewsCmd(ctx context.Context) error
	AddReviewCmd(ctx context.Context) error
	EditReviewCmd(ctx context.Context, args []string) error
	DeleteReviewCmd(ctx context.Context, args []string) error
}

// runREPL reads commands line by line and dispatches them. Command errors
// are printed, never fatal; the loop exits on EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "localspot (%s)> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printHelp(out, a.isLoggedIn())
		case "login":
			err = a.LoginCmd(ctx)
		case "register":
			err = a.RegisterCmd(ctx)
		case "guest":
			err = a.GuestCmd(ctx)
		case "logout":
			err = a.LogoutCmd(ctx)
		case "forgot":
			err = a.ForgotPasswordCmd(ctx)
		case "reset":
			err = a.ResetPasswordCmd(ctx)
		case "profile":
			err = a.ProfileCmd(ctx)
		case "update":
			err = a.UpdateProfileCmd(ctx)
		case "photo":
			err = a.UploadPhotoCmd(ctx, args)
		case "places", "search":
			err = a.PlacesCmd(ctx, args)
		case "place":
			err = a.PlaceCmd(ctx, args)
		case "categories":
			err = a.CategoriesCmd(ctx)
		case "myplaces":
			err = a.MyPlacesCmd(ctx)
		case "addplace":
			err = a.AddPlaceCmd(ctx)
		case "editplace":
			err = a.EditPlaceCmd(ctx, args)
		case "delplace":
			err = a.DeletePlaceCmd(ctx, args)
		case "favorites", "fav":
			err = a.FavoritesCmd(ctx)
		case "togglefav":
			err = a.ToggleFavoriteCmd(ctx, args)
		case "reviews":
			err = a.ReviewsCmd(ctx, args)
		case "myreviews":
			err = a.MyReviewsCmd(ctx)
		case "addreview":
			err = a.AddReviewCmd(ctx)
		case "editreview":
			err = a.EditReviewCmd(ctx, args)
		case "delreview":
			err = a.DeleteReviewCmd(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

func printHelp(out io.Writer, loggedIn bool) {
	fmt.Fprintln(out, "Browse:  places [query], place <id>, categories, reviews <place-id>")
	if loggedIn {
		fmt.Fprintln(out, "Account: profile, update, photo <path>, logout")
		fmt.Fprintln(out, "My data: favorites, togglefav <place-id>, myplaces, addplace, editplace <id>, delplace <id>")
		fmt.Fprintln(out, "Reviews: myreviews, addreview, editreview <id>, delreview <id>")
	} else {
		fmt.Fprintln(out, "Account: login, register, guest, forgot, reset")
	}
	fmt.Fprintln(out, "Other:   help, exit")
}
