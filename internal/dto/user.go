package dto

// ── 用户资料 ──

// UpsertProfileRequest 更新用户资料
type UpsertProfileRequest struct {
	Email            string `json:"email"             binding:"omitempty,email"`
	Name             string `json:"name"              binding:"omitempty,max=100"`
	School           string `json:"school"            binding:"omitempty,max=200"`
	GradeLevel       string `json:"grade_level"       binding:"omitempty,max=50"`
	IndustryInterest string `json:"industry_interest" binding:"omitempty,max=200"`
}

// ProfileResponse 用户资料响应
type ProfileResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	School           string `json:"school,omitempty"`
	GradeLevel       string `json:"grade_level,omitempty"`
	IndustryInterest string `json:"industry_interest,omitempty"`
	CreatedAt        string `json:"created_at"`
}
