package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hafidzirham/localspot-cli/internal/api"
	"github.com/hafidzirham/localspot-cli/internal/models"
)

func parseID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a numeric id: %q", args[0])
	}
	return id, nil
}

func (a *App) printPlaces(places []models.Place) {
	if len(places) == 0 {
		fmt.Fprintln(a.out, "No places found.")
		return
	}
	for _, p := range places {
		rating := "n/a"
		if p.AverageRating != nil {
			rating = fmt.Sprintf("%.1f", *p.AverageRating)
		}
		marker := " "
		if a.favorites.IsFavorited(p.ID) {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s #%d  %-30s %s  %s\n", marker, p.ID, p.Name, rating, p.Address)
	}
}

// PlacesCmd lists places, optionally filtered by a search query.
func (a *App) PlacesCmd(ctx context.Context, args []string) error {
	q := &api.PlaceQuery{Search: strings.Join(args, " ")}
	places, err := a.places.Search(ctx, q)
	if err != nil {
		return err
	}
	a.printPlaces(places)
	return nil
}

// PlaceCmd shows the detail of one place, including its reviews.
func (a *App) PlaceCmd(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: place <id>")
	if err != nil {
		return err
	}

	p, err := a.places.Detail(ctx, id)
	if err != nil {
		return err
	}
	a.favorites.Observe(p)

	fmt.Fprintf(a.out, "#%d %s\n%s\n%s\n", p.ID, p.Name, p.Description, p.Address)
	if p.AverageRating != nil {
		fmt.Fprintf(a.out, "Rating: %.1f\n", *p.AverageRating)
	}
	if p.IsFavorited {
		fmt.Fprintln(a.out, "In your favorites.")
	}

	reviews, err := a.reviews.ForPlace(ctx, id)
	if err != nil {
		// Detail already printed; reviews are an extra.
		fmt.Fprintln(a.out, "Could not load reviews:", err)
		return nil
	}
	for _, r := range reviews {
		fmt.Fprintf(a.out, "  [%d/5] %s: %s\n", r.Rating, r.Username, r.Comment)
	}
	return nil
}

// CategoriesCmd lists the place categories.
func (a *App) CategoriesCmd(ctx context.Context) error {
	cats, err := a.places.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		fmt.Fprintf(a.out, "#%d %s\n", c.ID, c.Name)
	}
	return nil
}

// MyPlacesCmd lists the places added by the current user.
func (a *App) MyPlacesCmd(ctx context.Context) error {
	places, err := a.places.Mine(ctx)
	if err != nil {
		return err
	}
	a.printPlaces(places)
	return nil
}

func (a *App) promptPlaceInput(defaults *api.PlaceInput) (*api.PlaceInput, error) {
	in := &api.PlaceInput{}
	if defaults != nil {
		*in = *defaults
	}

	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return nil, err
	}
	if name != "" {
		in.Name = name
	}

	desc, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return nil, err
	}
	if desc != "" {
		in.Description = desc
	}

	addr, err := getSimpleText(a.reader, "Address", a.out)
	if err != nil {
		return nil, err
	}
	if addr != "" {
		in.Address = addr
	}

	cat, err := GetInt(a.reader, "Category id", a.out)
	if err != nil {
		return nil, err
	}
	in.CategoryID = cat

	return in, nil
}

// AddPlaceCmd interactively creates a new place.
func (a *App) AddPlaceCmd(ctx context.Context) error {
	in, err := a.promptPlaceInput(nil)
	if err != nil {
		return err
	}
	if in.Name == "" {
		return errors.New("a place needs a name")
	}

	p, err := a.places.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created place #%d %s\n", p.ID, p.Name)
	return nil
}

// EditPlaceCmd edits one of the current user's places. Empty answers keep
// the existing values.
func (a *App) EditPlaceCmd(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: editplace <id>")
	if err != nil {
		return err
	}

	current, err := a.places.Detail(ctx, id)
	if err != nil {
		return err
	}

	in, err := a.promptPlaceInput(&api.PlaceInput{
		Name:        current.Name,
		Description: current.Description,
		Address:     current.Address,
		CategoryID:  current.CategoryID,
		Latitude:    current.Latitude,
		Longitude:   current.Longitude,
	})
	if err != nil {
		return err
	}

	p, err := a.places.Update(ctx, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated place #%d %s\n", p.ID, p.Name)
	return nil
}

// DeletePlaceCmd removes one of the current user's places.
func (a *App) DeletePlaceCmd(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: delplace <id>")
	if err != nil {
		return err
	}
	if err := a.places.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted place #%d\n", id)
	return nil
}
