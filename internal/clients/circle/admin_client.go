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

type AdminClient interface {
	SearchMemberByEmail(ctx context.Context, email string) (*Member, error)
	CreateMember(ctx context.Context, params CreateMemberParams) (*Member, error)
	AddSpaceMember(ctx context.Context, memberID, spaceID int64) error
	RemoveSpaceMember(ctx context.Context, email string, spaceID int64) error
	GetSpace(ctx context.Context, spaceID int64) (*Space, error)
}

type adminClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewAdminClient(token, baseURL string) AdminClient {
	return &adminClient{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

// SearchMemberByEmail resolves a member in the community directory. A miss is
// ErrMemberNotFound regardless of how the platform phrased it.
func (c *adminClient) SearchMemberByEmail(ctx context.Context, email string) (*Member, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("email is required")
	}

	endpoint := c.baseURL + "/community_members/search?email=" + url.QueryEscape(email)
	body, err := doRequest(ctx, c.httpClient, http.MethodGet, endpoint, c.token, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.isNotFound() {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	var member Member
	if err := json.Unmarshal(body, &member); err != nil {
		return nil, err
	}
	if member.ID == 0 {
		return nil, ErrMemberNotFound
	}
	return &member, nil
}

func (c *adminClient) CreateMember(ctx context.Context, params CreateMemberParams) (*Member, error) {
	payload := map[string]any{
		"email":           params.Email,
		"name":            params.Name,
		"skip_invitation": params.SkipInvitation,
	}

	body, err := doRequest(ctx, c.httpClient, http.MethodPost, c.baseURL+"/community_members", c.token, payload)
	if err != nil {
		return nil, err
	}

	var member Member
	if err := json.Unmarshal(body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// AddSpaceMember attaches an existing member to a space. An attach that the
// platform reports as redundant comes back as ErrAlreadyMember.
func (c *adminClient) AddSpaceMember(ctx context.Context, memberID, spaceID int64) error {
	payload := map[string]any{
		"community_member_id": memberID,
		"space_id":            spaceID,
	}

	_, err := doRequest(ctx, c.httpClient, http.MethodPost, c.baseURL+"/space_members", c.token, payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.isAlreadyMember() {
			return ErrAlreadyMember
		}
		return err
	}
	return nil
}

// RemoveSpaceMember revokes space access. The platform keys removal by email,
// not member id. A member already absent from the space is ErrMemberNotFound.
func (c *adminClient) RemoveSpaceMember(ctx context.Context, email string, spaceID int64) error {
	endpoint := c.baseURL + "/space_members?email=" + url.QueryEscape(email) +
		"&space_id=" + strconv.FormatInt(spaceID, 10)

	_, err := doRequest(ctx, c.httpClient, http.MethodDelete, endpoint, c.token, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.isNotFound() {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

func (c *adminClient) GetSpace(ctx context.Context, spaceID int64) (*Space, error) {
	endpoint := c.baseURL + "/spaces/" + strconv.FormatInt(spaceID, 10)
	body, err := doRequest(ctx, c.httpClient, http.MethodGet, endpoint, c.token, nil)
	if err != nil {
		return nil, err
	}

	var space Space
	if err := json.Unmarshal(body, &space); err != nil {
		return nil, err
	}
	return &space, nil
}
