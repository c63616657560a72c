package dto

type CategoryRequest struct {
	ID           uint   `json:"id,omitempty"`
	Name         string `json:"name"`
	Productivity int    `json:"productivity"`
}

type CategoryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Productivity int    `json:"productivity"`
}

type RuleRequest struct {
	ID         uint   `json:"id,omitempty"`
	Pattern    string `json:"pattern"`
	MatchKind  string `json:"match_kind"`
	CategoryID uint   `json:"category_id"`
	Priority   int    `json:"priority"`
}

type RuleResponse struct {
	ID         uint   `json:"id"`
	Pattern    string `json:"pattern"`
	MatchKind  string `json:"match_kind"`
	CategoryID uint   `json:"category_id"`
	Priority   int    `json:"priority"`
}

type DeleteRequest struct {
	ID uint `json:"id"`
}
