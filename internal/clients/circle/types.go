package circle

type Member struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Space struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	MemberCount int    `json:"member_count"`
}

type Post struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	AuthorID  int64  `json:"author_id"`
	CreatedAt string `json:"created_at"`
}

type PostsPage struct {
	Page        int    `json:"page"`
	PerPage     int    `json:"per_page"`
	Count       int    `json:"count"`
	HasNextPage bool   `json:"has_next_page"`
	Records     []Post `json:"records"`
}

type MemberToken struct {
	AccessToken       string `json:"access_token"`
	ExpiresAt         string `json:"access_token_expires_at"`
	CommunityMemberID int64  `json:"community_member_id"`
}

type CreateMemberParams struct {
	Email          string
	Name           string
	SkipInvitation bool
}
