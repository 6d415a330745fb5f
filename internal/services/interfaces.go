package services

import (
	"context"
	"io"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
	"github.com/scolink/community-service/internal/validator"
)

// ===== RESPONSE STRUCTS =====

// AuthResponse is returned after register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// TopicDetail is a topic with its replies
type TopicDetail struct {
	Topic *models.Topic  `json:"topic"`
	Posts []*models.Post `json:"posts"`
}

// AssignmentDetail is an assignment with its questions. Correct answers
// are blanked when a student requests it.
type AssignmentDetail struct {
	Assignment *models.Assignment `json:"assignment"`
	Questions  []*models.Question `json:"questions"`
}

// SubmissionResult summarizes an auto-graded submission
type SubmissionResult struct {
	AssignmentID string                  `json:"assignment_id"`
	TotalScore   int                     `json:"total_score"`
	MaxScore     int                     `json:"max_score"`
	GradedCount  int                     `json:"graded_count"`
	Answers      []*models.StudentAnswer `json:"answers"`
}

// StudentResult is one student's aggregate for an assignment
type StudentResult struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	TotalScore  int    `json:"total_score"`
	AnswerCount int    `json:"answer_count"`
}

// AdminStats is the admin dashboard payload
type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalStudents    int64 `json:"total_students"`
	TotalTeachers    int64 `json:"total_teachers"`
	PendingTeachers  int64 `json:"pending_teachers"`
	TotalTopics      int64 `json:"total_topics"`
	TotalPosts       int64 `json:"total_posts"`
	TotalAssignments int64 `json:"total_assignments"`
	TotalBranches    int64 `json:"total_branches"`
}

// TeacherStats is the teacher dashboard payload
type TeacherStats struct {
	TotalAssignments int64 `json:"total_assignments"`
	TotalTopics      int64 `json:"total_topics"`
	TotalFollowers   int64 `json:"total_followers"`
}

// StudentStats is the student dashboard payload
type StudentStats struct {
	TotalAssignments     int64   `json:"total_assignments"`
	CompletedAssignments int64   `json:"completed_assignments"`
	AverageScore         float64 `json:"average_score"`
	Following            int64   `json:"following"`
}

// ===== SERVICE INTERFACES =====

// AuthService handles registration and login
type AuthService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error)
	// GetUser loads a user by id, for the auth middleware.
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// UserService handles profiles, search and teacher validation
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.User, req *validator.ProfileUpdateRequest) (*models.User, error)
	Search(ctx context.Context, query string, role *models.UserRole) ([]*models.User, error)
	ListPendingTeachers(ctx context.Context, actor *models.User) ([]*models.User, error)
	ValidateTeacher(ctx context.Context, actor *models.User, teacherID string) error
}

// TaxonomyService manages the branch, level and subject catalog
type TaxonomyService interface {
	CreateBranch(ctx context.Context, actor *models.User, req *validator.BranchCreateRequest) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]*models.Branch, error)
	CreateLevel(ctx context.Context, actor *models.User, req *validator.LevelCreateRequest) (*models.Level, error)
	ListLevels(ctx context.Context, branchID *string) ([]*models.Level, error)
	CreateSubject(ctx context.Context, actor *models.User, req *validator.SubjectCreateRequest) (*models.Subject, error)
	ListSubjects(ctx context.Context, branchID, levelID *string) ([]*models.Subject, error)
	AssignSubject(ctx context.Context, actor *models.User, req *validator.TeacherSubjectRequest) error
	RemoveSubject(ctx context.Context, actor *models.User, subjectID string) error
	ListMySubjects(ctx context.Context, actor *models.User) ([]*models.Subject, error)
}

// ForumService manages topics, posts and visibility
type ForumService interface {
	CreateTopic(ctx context.Context, actor *models.User, req *validator.TopicCreateRequest) (*models.Topic, error)
	GetTopic(ctx context.Context, actor *models.User, topicID string) (*TopicDetail, error)
	ListTopics(ctx context.Context, actor *models.User, filters repositories.TopicFilters) ([]*models.Topic, error)
	DeleteTopic(ctx context.Context, actor *models.User, topicID string) error
	CreatePost(ctx context.Context, actor *models.User, topicID string, req *validator.PostCreateRequest) (*models.Post, error)
}

// AssignmentService manages assignments and auto-graded submissions
type AssignmentService interface {
	Create(ctx context.Context, actor *models.User, req *validator.AssignmentCreateRequest) (*models.Assignment, error)
	Get(ctx context.Context, actor *models.User, assignmentID string) (*AssignmentDetail, error)
	List(ctx context.Context, actor *models.User, filters repositories.AssignmentFilters) ([]*models.Assignment, error)
	AddQuestion(ctx context.Context, actor *models.User, assignmentID string, req *validator.QuestionCreateRequest) (*models.Question, error)
	ListQuestions(ctx context.Context, actor *models.User, assignmentID string) ([]*models.Question, error)
	Delete(ctx context.Context, actor *models.User, assignmentID string) error
	SubmitAnswers(ctx context.Context, actor *models.User, assignmentID string, req *validator.AnswersSubmitRequest) (*SubmissionResult, error)
	MyResults(ctx context.Context, actor *models.User, assignmentID string) (*SubmissionResult, error)
	Results(ctx context.Context, actor *models.User, assignmentID string) ([]*StudentResult, error)
}

// SocialService manages the follow graph
type SocialService interface {
	Follow(ctx context.Context, actor *models.User, targetID string) error
	Unfollow(ctx context.Context, actor *models.User, targetID string) error
	IsFollowing(ctx context.Context, actor *models.User, targetID string) (bool, error)
	Following(ctx context.Context, userID string) ([]*models.User, error)
	Followers(ctx context.Context, userID string) ([]*models.User, error)
}

// NotificationService delivers and lists notifications
type NotificationService interface {
	List(ctx context.Context, actor *models.User) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, actor *models.User) (int64, error)
	MarkRead(ctx context.Context, actor *models.User, notificationID string) error
	MarkAllRead(ctx context.Context, actor *models.User) error
	GetSettings(ctx context.Context, actor *models.User) (*models.NotificationSettings, error)
	UpdateSettings(ctx context.Context, actor *models.User, req *validator.NotificationSettingsRequest) (*models.NotificationSettings, error)

	// Notify writes a notification for a user unless their settings
	// suppress the category. Failures are logged, never propagated.
	Notify(ctx context.Context, userID string, notificationType models.NotificationType, params NotifyParams)
}

// NotifyParams carries the values interpolated into notification text.
type NotifyParams struct {
	ActorName      string
	TopicTitle     string
	AssignmentName string
	Link           string
}

// DashboardService aggregates per-role statistics
type DashboardService interface {
	AdminStats(ctx context.Context, actor *models.User) (*AdminStats, error)
	TeacherStats(ctx context.Context, actor *models.User) (*TeacherStats, error)
	StudentStats(ctx context.Context, actor *models.User) (*StudentStats, error)
}

// BannerService manages ad banners
type BannerService interface {
	ListActive(ctx context.Context) ([]*models.AdBanner, error)
	ListAll(ctx context.Context, actor *models.User) ([]*models.AdBanner, error)
	Create(ctx context.Context, actor *models.User, req *validator.BannerCreateRequest) (*models.AdBanner, error)
	Update(ctx context.Context, actor *models.User, bannerID string, req *validator.BannerUpdateRequest) (*models.AdBanner, error)
	Delete(ctx context.Context, actor *models.User, bannerID string) error
}

// UploadService stores files and their metadata
type UploadService interface {
	Upload(ctx context.Context, actor *models.User, originalName, contentType string, size int64, r io.Reader) (*models.FileUpload, error)
	Get(ctx context.Context, storedName string) (*models.FileUpload, error)
}

// ExportService produces spreadsheet exports
type ExportService interface {
	// AssignmentResults renders the per-student results of an assignment
	// as an xlsx workbook and returns its bytes with a file name.
	AssignmentResults(ctx context.Context, actor *models.User, assignmentID string) ([]byte, string, error)
}

// ServiceManager provides access to all services
type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Taxonomy() TaxonomyService
	Forum() ForumService
	Assignment() AssignmentService
	Social() SocialService
	Notification() NotificationService
	Dashboard() DashboardService
	Banner() BannerService
	Upload() UploadService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
