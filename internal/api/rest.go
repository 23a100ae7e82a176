package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/hafidzirham/localspot-cli/internal/models"
)

// RESTClient implements Client against the LocalSpot JSON-over-HTTPS API.
type RESTClient struct {
	rc *resty.Client
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient returns a client bound to baseURL, e.g.
// "https://localspot.hafidzirham.com/api". The timeout applies per request;
// there are no retries.
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			r.SetHeader("X-Request-ID", uuid.NewString())
			return nil
		})
	return &RESTClient{rc: rc}
}

// errorBody is the failure shape the server uses: a human-readable message
// plus optional per-field validation errors.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (c *RESTClient) req(ctx context.Context, token string) *resty.Request {
	r := c.rc.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// check converts a resty outcome into the package error taxonomy. For calls
// authorized with a bearer token, 401/403 means the credential was rejected
// and maps to ErrUnauthorized; everywhere else the server body is surfaced
// as *Error so its message reaches the user (e.g. a failed login).
func check(resp *resty.Response, err error, authorized bool) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsSuccess() {
		return nil
	}
	code := resp.StatusCode()
	if authorized && (code == http.StatusUnauthorized || code == http.StatusForbidden) {
		return ErrUnauthorized
	}
	var eb errorBody
	_ = json.Unmarshal(resp.Body(), &eb)
	return &Error{StatusCode: code, Message: eb.Message, Fields: eb.Errors}
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	resp, err := c.req(ctx, "").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/login")
	if err := check(resp, err, false); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, &Error{StatusCode: resp.StatusCode(), Message: "malformed login response"}
	}
	return &out, nil
}

func (c *RESTClient) Logout(ctx context.Context, token string) error {
	resp, err := c.req(ctx, token).Post("/logout")
	return check(resp, err, true)
}

func (c *RESTClient) Register(ctx context.Context, reg *RegisterRequest) error {
	resp, err := c.req(ctx, "").SetBody(reg).Post("/register")
	return check(resp, err, false)
}

func (c *RESTClient) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.req(ctx, "").
		SetBody(map[string]string{"email": email}).
		Post("/forgot-password")
	return check(resp, err, false)
}

func (c *RESTClient) ResetPassword(ctx context.Context, reset *PasswordReset) error {
	resp, err := c.req(ctx, "").SetBody(reset).Post("/reset-password")
	return check(resp, err, false)
}

func (c *RESTClient) Profile(ctx context.Context, token string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	resp, err := c.req(ctx, token).SetResult(&out).Get("/profile")
	if err := check(resp, err, true); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &Error{StatusCode: resp.StatusCode(), Message: "malformed profile response"}
	}
	return out.User, nil
}

func (c *RESTClient) UpdateProfile(ctx context.Context, token string, upd *ProfileUpdate) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	// The backend expects POST for profile updates.
	resp, err := c.req(ctx, token).SetBody(upd).SetResult(&out).Post("/profile")
	if err := check(resp, err, true); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &Error{StatusCode: resp.StatusCode(), Message: "malformed profile response"}
	}
	return out.User, nil
}

func (c *RESTClient) UploadProfilePhoto(ctx context.Context, token string, photo *Photo) (string, error) {
	var out struct {
		ProfilePictureURL string `json:"profile_picture_url"`
	}
	resp, err := c.req(ctx, token).
		SetFileReader("photo", photo.FileName, photo.Body).
		SetResult(&out).
		Put("/profile/upload-photo")
	if err := check(resp, err, true); err != nil {
		return "", err
	}
	return out.ProfilePictureURL, nil
}

func (c *RESTClient) Places(ctx context.Context, token string, q *PlaceQuery) ([]models.Place, error) {
	var out struct {
		Places []models.Place `json:"places"`
	}
	r := c.req(ctx, token).SetResult(&out)
	if q != nil {
		if q.Search != "" {
			r.SetQueryParam("search", q.Search)
		}
		if q.CategoryID != 0 {
			r.SetQueryParam("category_id", strconv.FormatInt(q.CategoryID, 10))
		}
		if q.Latitude != 0 || q.Longitude != 0 {
			r.SetQueryParam("latitude", strconv.FormatFloat(q.Latitude, 'f', -1, 64))
			r.SetQueryParam("longitude", strconv.FormatFloat(q.Longitude, 'f', -1, 64))
		}
	}
	resp, err := r.Get("/places")
	if err := check(resp, err, token != ""); err != nil {
		return nil, err
	}
	return out.Places, nil
}

func (c *RESTClient) Place(ctx context.Context, token string, id int64) (*models.Place, error) {
	var out struct {
		Place *models.Place `json:"place"`
	}
	resp, err := c.req(ctx, token).SetResult(&out).
		Get(fmt.Sprintf("/places/%d", id))
	if err := check(resp, err, token != ""); err != nil {
		return nil, err
	}
	if out.Place == nil {
		return nil, &Error{StatusCode: resp.StatusCode(), Message: "malformed place response"}
	}
	return out.Place, nil
}

func (c *RESTClient) Categories(ctx context.Context) ([]models.Category, error) {
	var out struct {
		Categories []models.Category `json:"categories"`
	}
	resp, err := c.req(ctx, "").SetResult(&out).Get("/categories")
	if err := check(resp, err, false); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *RESTClient) MyPlaces(ctx context.Context, token string) ([]models.Place, error) {
	var out struct {
		Places []models.Place `json:"places"`
	}
	resp, err := c.req(ctx, token).SetResult(&out).Get("/my-added-places")
	if err := check(resp, err, true); err != nil {
		return nil, err
	}
	return out.Places, nil
}

func (c *RESTClient) CreatePlace(ctx context.Context, token string, in *PlaceInput) (*models.Place, error) {
	var out struct {
		Place *models.Place `json:"place"`
	}
	resp, err := c.req(ctx, token).SetBody(in).SetResult(&out).Post("/places")
	if err := check(resp, err, true); err != nil {
		return nil, err
	}
	return out.Place, nil
}

func (c *RESTClient) UpdatePlace(ctx context.Context, token string, id int64, in *PlaceInput) (*models.Place, error) {
	var out struct {
		Place *models.Place `json:"place"`
	}
	resp, err := c.req(ctx, token).SetBody(in).SetResult(&out).
		Put(fmt.Sprintf("/places/%d", id))
	if err := check(resp, err, true); err != nil {
		return nil, err
	}
	return out.Place, nil
}

func (c *RESTClient) DeletePlace(ctx context.Context, token string, id int64) error {
	resp, err := c.req(ctx, token).Delete(fmt.Sprintf("/places/%d", id))
	return check(resp, err, true)
}

func (c *RESTClient) Favorites(ctx context.Context, token string) ([]models.Place, error) {
	var out struct {
		Favorites []models.Place `json:"favorites"`
	}
	resp, err := c.req(ctx, token).SetResult(&out).Get("/favorites")
	if err := check(resp, err, true); err != nil {
		return nil, err
	}
	return out.Favorites, nil
}

func (c *RESTClient) ToggleFavorite(ctx context.Context, token string, placeID int64) error {
	resp, err := c.req(ctx, token).
		Post(fmt.Sprintf("/places/%d/toggle-favorite", placeID))
	return check(resp, err, true)
}

func (c *RESTClient) PlaceReviews(ctx context.Context, placeID int64) ([]models.Review, error) {
	var out struct {
		Reviews []models.Review `json:"reviews"`
	}
	resp, err := c.req(ctx, "").SetResult(&out).
		SetQueryParam("place_id", strconv.FormatInt(placeID, 10)).
		Get("/reviews")
	if err := check(resp, err, false); err != nil {
		return nil, err
	}
	return out.Reviews, nil
}

func (c *RESTClient) MyReviews(ctx context.Context, token string) ([]models.Review, error) {
	var out struct {
		Reviews []models.Review `json:"reviews"`
	}
	resp, err := c.req(ctx, token).SetResult(&out).Get("/my-reviews")
	if err := check(resp, err, true); err != nil {
		return nil, err
	}
	return out.Reviews, nil
}

func (c *RESTClient) SubmitReview(ctx context.Context, token string, in *ReviewInput) (*models.Review, error) {
	var out struct {
		Review *models.Review `json:"review"`
	}
	resp, err := c.req(ctx, token).SetBody(in).SetResult(&out).Post("/reviews")
	if err := check(resp, err, true); err != nil {
		return nil, err
	}
	return out.Review, nil
}

func (c *RESTClient) UpdateReview(ctx context.Context, token string, id int64, in *ReviewInput) (*models.Review, error) {
	var out struct {
		Review *models.Review `json:"review"`
	}
	resp, err := c.req(ctx, token).SetBody(in).SetResult(&out).
		Put(fmt.Sprintf("/reviews/%d", id))
	if err := check(resp, err, true); err != nil {
		return nil, err
	}
	return out.Review, nil
}

func (c *RESTClient) DeleteReview(ctx context.Context, token string, id int64) error {
	resp, err := c.req(ctx, token).Delete(fmt.Sprintf("/reviews/%d", id))
	return check(resp, err, true)
}

// Ping checks reachability. The API exposes no health endpoint, so the
// cheapest public call is used.
func (c *RESTClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp, err := c.req(ctx, "").Get("/categories")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return ErrUnavailable
	}
	return nil
}
