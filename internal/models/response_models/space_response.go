package response_models

type SpaceInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	MemberCount int    `json:"member_count"`
}

type PostInfo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

type SpaceFeedResponse struct {
	Space       SpaceInfo  `json:"space"`
	Posts       []PostInfo `json:"posts"`
	Page        int        `json:"page"`
	PerPage     int        `json:"per_page"`
	Count       int        `json:"count"`
	HasNextPage bool       `json:"has_next_page"`
}
