package services

import (
	"context"
	"errors"
	"log/slog"

	"portico/internal/clients/circle"
	"portico/internal/models/response_models"
	"portico/pkg/utils"
)

const spacePostsPerPage = 20

type SpaceServiceInterface interface {
	// GetSpaceFeed fetches space details plus one page of posts on behalf of
	// the signed-in member. Every call exchanges the member's email for a
	// fresh member API token; tokens are short-lived and deliberately not
	// cached here.
	GetSpaceFeed(ctx context.Context, email string, spaceID int64, page int) (response_models.SpaceFeedResponse, error)
}

func NewSpaceService(members circle.MemberClient) SpaceServiceInterface {
	return &SpaceService{
		members: members,
	}
}

type SpaceService struct {
	members circle.MemberClient
}

func (s *SpaceService) GetSpaceFeed(ctx context.Context, email string, spaceID int64, page int) (response_models.SpaceFeedResponse, error) {
	var zero response_models.SpaceFeedResponse

	token, err := s.members.Token(ctx, email)
	if err != nil {
		if errors.Is(err, circle.ErrMemberNotFound) {
			return zero, utils.ErrMemberAccess
		}
		slog.Error("member token exchange failed", "email", email, "error", err)
		return zero, err
	}

	space, err := s.members.GetSpace(ctx, token.AccessToken, spaceID)
	if err != nil {
		slog.Error("space fetch failed", "space_id", spaceID, "error", err)
		return zero, utils.ErrSpaceUnavailable
	}

	posts, err := s.members.ListPosts(ctx, token.AccessToken, spaceID, page, spacePostsPerPage)
	if err != nil {
		slog.Error("posts fetch failed", "space_id", spaceID, "page", page, "error", err)
		return zero, utils.ErrSpaceUnavailable
	}

	feed := response_models.SpaceFeedResponse{
		Space: response_models.SpaceInfo{
			ID:          space.ID,
			Name:        space.Name,
			Slug:        space.Slug,
			URL:         space.URL,
			MemberCount: space.MemberCount,
		},
		Posts:       make([]response_models.PostInfo, 0, len(posts.Records)),
		Page:        posts.Page,
		PerPage:     posts.PerPage,
		Count:       posts.Count,
		HasNextPage: posts.HasNextPage,
	}
	for _, post := range posts.Records {
		feed.Posts = append(feed.Posts, response_models.PostInfo{
			ID:        post.ID,
			Title:     post.Name,
			Body:      post.Body,
			URL:       post.URL,
			CreatedAt: post.CreatedAt,
		})
	}

	return feed, nil
}
