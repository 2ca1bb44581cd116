package dto

// ── 课程 ──

// CreateClassRequest 添加课程请求
type CreateClassRequest struct {
	Name       string   `json:"name"        binding:"required,max=200"`
	DaysOfWeek []string `json:"days_of_week" binding:"required,min=1,dive,weekday"`
	StartTime  string   `json:"start_time"  binding:"required,hhmm"`
	EndTime    string   `json:"end_time"    binding:"omitempty,hhmm"`
	ClassType  string   `json:"class_type"  binding:"omitempty,max=50"`
}

// ClassResponse 课程响应
type ClassResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	DaysOfWeek []string `json:"days_of_week"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time,omitempty"`
	ClassType  string   `json:"class_type,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

// ImportICSResponse ICS 导入响应
type ImportICSResponse struct {
	ImportedCount int             `json:"imported_count"`
	Classes       []ClassResponse `json:"classes"`
}

// ── 作业 / 待办 ──

// CreateAssignmentRequest 添加作业请求
type CreateAssignmentRequest struct {
	Name              string `json:"name"               binding:"required,max=200"`
	DueDate           string `json:"due_date"           binding:"required,isotime"`
	ClassName         string `json:"class_name"         binding:"omitempty,max=200"`
	Description       string `json:"description"        binding:"omitempty,max=2000"`
	AnticipatedLength string `json:"anticipated_length" binding:"omitempty,max=50"`
}

// AssignmentResponse 作业响应
type AssignmentResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DueDate           string `json:"due_date"`
	ClassName         string `json:"class_name,omitempty"`
	Description       string `json:"description,omitempty"`
	AnticipatedLength string `json:"anticipated_length,omitempty"`
	Completed         bool   `json:"completed"`
}

// CreateTaskRequest 添加待办请求
type CreateTaskRequest struct {
	Name              string `json:"name"               binding:"required,max=200"`
	DueDate           string `json:"due_date"           binding:"required,isotime"`
	Description       string `json:"description"        binding:"omitempty,max=2000"`
	AnticipatedLength string `json:"anticipated_length" binding:"omitempty,max=50"`
}

// TaskResponse 待办响应
type TaskResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DueDate           string `json:"due_date"`
	Description       string `json:"description,omitempty"`
	AnticipatedLength string `json:"anticipated_length,omitempty"`
	Completed         bool   `json:"completed"`
}

// SetCompletionRequest 设置完成状态
type SetCompletionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}
