package validator

import (
	"time"

	"github.com/scolink/community-service/internal/models"
)

// RegisterRequest is the payload for account creation
type RegisterRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=6,max=100"`
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Role          string  `json:"role" validate:"required,user_role"`
	BranchID      *string `json:"branch_id"`
	LevelID       *string `json:"level_id"`
	Filiere       *string `json:"filiere"`
	Establishment *string `json:"establishment"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest carries the fields users may change themselves.
// Role, validation state and password never come through here.
type ProfileUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=100"`
	AvatarURL     *string `json:"avatar_url" validate:"omitempty,max=500"`
	Bio           *string `json:"bio" validate:"omitempty,max=1000"`
	Establishment *string `json:"establishment" validate:"omitempty,max=200"`
	Objectives    *string `json:"objectives" validate:"omitempty,max=1000"`
	BranchID      *string `json:"branch_id"`
	LevelID       *string `json:"level_id"`
	Filiere       *string `json:"filiere"`
}

// BranchCreateRequest creates a taxonomy branch
type BranchCreateRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	NameEn string `json:"name_en" validate:"omitempty,max=100"`
}

// LevelCreateRequest creates a level within a branch
type LevelCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	NameEn   string `json:"name_en" validate:"omitempty,max=100"`
	BranchID string `json:"branch_id" validate:"required"`
}

// SubjectCreateRequest creates a subject
type SubjectCreateRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	NameEn   string  `json:"name_en" validate:"omitempty,max=100"`
	BranchID *string `json:"branch_id"`
	LevelID  *string `json:"level_id"`
}

// TeacherSubjectRequest links a teacher to a subject they teach
type TeacherSubjectRequest struct {
	SubjectID string `json:"subject_id" validate:"required"`
}

// TopicCreateRequest creates a forum topic
type TopicCreateRequest struct {
	Title      string  `json:"title" validate:"required,min=3,max=200"`
	Content    string  `json:"content" validate:"required,min=1"`
	BranchID   string  `json:"branch_id" validate:"required"`
	LevelID    string  `json:"level_id" validate:"required"`
	SubjectID  *string `json:"subject_id"`
	Visibility string  `json:"visibility" validate:"omitempty,topic_visibility"`
}

// PostCreateRequest replies to a topic
type PostCreateRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// QuestionCreateRequest is one question inside an assignment
type QuestionCreateRequest struct {
	QuestionType  string   `json:"question_type" validate:"required,question_type"`
	QuestionText  string   `json:"question_text" validate:"required,min=1,max=2000"`
	Options       []string `json:"options" validate:"omitempty,max=10,dive,max=500"`
	CorrectAnswer string   `json:"correct_answer" validate:"required,max=500"`
	Points        int      `json:"points" validate:"omitempty,min=1,max=100"`
}

// AssignmentCreateRequest publishes an assignment for a level
type AssignmentCreateRequest struct {
	Title          string                  `json:"title" validate:"required,min=3,max=200"`
	Description    string                  `json:"description" validate:"omitempty,max=5000"`
	SubjectID      string                  `json:"subject_id" validate:"required"`
	BranchID       string                  `json:"branch_id" validate:"required"`
	LevelID        string                  `json:"level_id" validate:"required"`
	DueDate        *time.Time              `json:"due_date"`
	AssignmentType string                  `json:"assignment_type" validate:"omitempty,assignment_type"`
	AllowFiles     bool                    `json:"allow_files"`
	Questions      []QuestionCreateRequest `json:"questions" validate:"omitempty,dive"`
}

// AnswerItem is one answer within a submission
type AnswerItem struct {
	QuestionID  string `json:"question_id" validate:"required"`
	AnswerValue string `json:"answer_value" validate:"required"`
}

// AnswersSubmitRequest submits a student's answers for an assignment
type AnswersSubmitRequest struct {
	Answers []AnswerItem `json:"answers" validate:"required,min=1,dive"`
}

// NotificationSettingsRequest updates per-category delivery toggles
type NotificationSettingsRequest struct {
	NewPosts       *bool `json:"new_posts"`
	ForumReplies   *bool `json:"forum_replies"`
	NewAssignments *bool `json:"new_assignments"`
	NewFollowers   *bool `json:"new_followers"`
}

// BannerCreateRequest creates an ad banner
type BannerCreateRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	ImageURL string `json:"image_url" validate:"required,max=500"`
	LinkURL  string `json:"link_url" validate:"omitempty,max=500"`
	IsActive *bool  `json:"is_active"`
}

// BannerUpdateRequest updates an ad banner
type BannerUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
	ImageURL *string `json:"image_url" validate:"omitempty,max=500"`
	LinkURL  *string `json:"link_url" validate:"omitempty,max=500"`
	IsActive *bool   `json:"is_active"`
}

// DefaultVisibility returns the topic visibility for a create request.
func (r *TopicCreateRequest) DefaultVisibility() models.TopicVisibility {
	if r.Visibility == "" {
		return models.VisibilityPublic
	}
	return models.TopicVisibility(r.Visibility)
}

// DefaultAssignmentType returns the assignment type for a create request.
func (r *AssignmentCreateRequest) DefaultAssignmentType() models.AssignmentType {
	if r.AssignmentType == "" {
		return models.AssignmentQuiz
	}
	return models.AssignmentType(r.AssignmentType)
}
