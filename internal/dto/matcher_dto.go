package dto

type AddUserRequest struct {
	SourceId    string   `json:"source_id"`
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Description string   `json:"description"`
	Interests   []string `json:"interests"`
	Skills      []string `json:"skills"`
	Profession  string   `json:"profession"`
	Location    string   `json:"location"`
}

type AddUserResponse struct {
	UserId     int64    `json:"user_id"`
	Skills     []string `json:"skills"`
	Profession string   `json:"profession"`
}

type AddNetworkRequest struct {
	NetworkId   string   `json:"network_id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Interests   []string `json:"interests"`
	Location    string   `json:"location"`
}

type AddNetworkResponse struct {
	Id         int64    `json:"id"`
	Skills     []string `json:"skills"`
	Profession string   `json:"profession"`
}

type PopulateUsersResponse struct {
	AddedCount int `json:"added_count"`
	UserCount  int `json:"user_count"`
}

type RecommendRequest struct {
	Query         string `json:"query" validate:"required"`
	TopN          int    `json:"top_n"`
	NetworkFilter string `json:"network_filter"`
}

type RecommendationSummary struct {
	UserId      int64    `json:"user_id"`
	Name        string   `json:"name"`
	Profession  string   `json:"profession"`
	Skills      []string `json:"skills"`
	Interests   []string `json:"interests"`
	Location    string   `json:"location,omitempty"`
	Similarity  float64  `json:"similarity"`
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation"`
}

type RecommendResponse struct {
	QuerySkills     []string                 `json:"query_skills"`
	QueryProfession string                   `json:"query_profession"`
	Recommendations []*RecommendationSummary `json:"recommendations"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	UserCount    int    `json:"user_count"`
	NetworkCount int    `json:"network_count"`
}

// ProfileChangedMessage is the internal bus payload that triggers a
// snapshot save for the named scope ("users" or "networks").
type ProfileChangedMessage struct {
	Scope      string `json:"scope"`
	InternalId int64  `json:"internal_id"`
}
