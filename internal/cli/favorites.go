package cli

import (
	"context"
	"fmt"
)

// FavoritesCmd lists the current user's favorite places.
func (a *App) FavoritesCmd(ctx context.Context) error {
	places, err := a.favorites.List(ctx)
	if err != nil {
		return err
	}
	a.printPlaces(places)
	return nil
}

// ToggleFavoriteCmd flips the favorite flag for a place. The flag flips
// locally right away and reverts if the server rejects the change.
func (a *App) ToggleFavoriteCmd(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: togglefav <place-id>")
	if err != nil {
		return err
	}

	favorited, err := a.favorites.Toggle(ctx, id)
	if err != nil {
		return err
	}
	if favorited {
		fmt.Fprintf(a.out, "Place #%d added to favorites.\n", id)
	} else {
		fmt.Fprintf(a.out, "Place #%d removed from favorites.\n", id)
	}
	return nil
}
