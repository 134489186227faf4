package circle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type MemberClient interface {
	// Token exchanges a member email for a short-lived member API token via
	// headless auth. Tokens are not cached; every page load pays this call.
	Token(ctx context.Context, email string) (*MemberToken, error)
	GetSpace(ctx context.Context, accessToken string, spaceID int64) (*Space, error)
	ListPosts(ctx context.Context, accessToken string, spaceID int64, page, perPage int) (*PostsPage, error)
}

type memberClient struct {
	adminToken string
	baseURL    string
	httpClient *http.Client
}

func NewMemberClient(adminToken, baseURL string) MemberClient {
	return &memberClient{
		adminToken: adminToken,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

func (c *memberClient) Token(ctx context.Context, email string) (*MemberToken, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("email is required")
	}

	payload := map[string]any{"email": email}
	body, err := doRequest(ctx, c.httpClient, http.MethodPost, c.baseURL+"/auth_token", c.adminToken, payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.isNotFound() {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	var token MemberToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("headless auth returned empty access_token")
	}
	return &token, nil
}

func (c *memberClient) GetSpace(ctx context.Context, accessToken string, spaceID int64) (*Space, error) {
	endpoint := c.baseURL + "/spaces/" + strconv.FormatInt(spaceID, 10)
	body, err := doRequest(ctx, c.httpClient, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}

	var space Space
	if err := json.Unmarshal(body, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

func (c *memberClient) ListPosts(ctx context.Context, accessToken string, spaceID int64, page, perPage int) (*PostsPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	endpoint := c.baseURL + "/spaces/" + strconv.FormatInt(spaceID, 10) + "/posts?" + query.Encode()

	body, err := doRequest(ctx, c.httpClient, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}

	var posts PostsPage
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, err
	}
	return &posts, nil
}
