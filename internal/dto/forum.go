package dto

// ── 社区问答 ──

// AskQuestionRequest 提问请求
type AskQuestionRequest struct {
	Question string `json:"question" binding:"required,max=1000"`
}

// QuestionResponse 问题响应
type QuestionResponse struct {
	ID          string `json:"id"`
	CommunityID string `json:"community_id"`
	Question    string `json:"question"`
	Answered    bool   `json:"answered"`
	Upvotes     int    `json:"upvotes"`
	Downvotes   int    `json:"downvotes"`
	ResponseMID string `json:"response_mid,omitempty"`
}

// VoteQuestionRequest 问题投票；undo=true 撤销此前的同向投票
type VoteQuestionRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
	Undo      bool   `json:"undo"`
}

// VoteQuestionResponse 投票结果；removed=true 表示问题已因踩数过多被删除
type VoteQuestionResponse struct {
	Question *QuestionResponse `json:"question,omitempty"`
	Removed  bool              `json:"removed"`
}

// MarkAnsweredRequest 标记已解答
type MarkAnsweredRequest struct {
	Answered    *bool  `json:"answered"     binding:"required"`
	ResponseMID string `json:"response_mid" binding:"omitempty"`
}

// PostMessageRequest 回复请求
type PostMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// MessageResponse 回复响应
type MessageResponse struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Message    string `json:"message"`
	Likes      int    `json:"likes"`
	Dislikes   int    `json:"dislikes"`
}

// VoteMessageRequest 回复点赞 / 点踩
type VoteMessageRequest struct {
	Direction string `json:"direction" binding:"required,oneof=like dislike"`
	Undo      bool   `json:"undo"`
}

// SeedQuestionsResponse 初始化问题结果
type SeedQuestionsResponse struct {
	Seeded int `json:"seeded"`
}

// CommunityResponse 社区响应
type CommunityResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
