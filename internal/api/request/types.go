package request

// SubmitScoreRequest is the request body for submitting a round score
type SubmitScoreRequest struct {
	FID         int64  `json:"fid"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Score       int    `json:"score"`
}
