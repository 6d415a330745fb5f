package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

// fakeRepo is an in-memory repositories.Repository used by the service
// tests. Not-found and duplicate conditions surface as the same gorm
// errors the postgres implementations translate to.
type fakeRepo struct {
	users    map[string]*models.User
	branches map[string]*models.Branch
	levels   map[string]*models.Level
	subjects map[string]*models.Subject
	teaching []*models.TeacherSubject

	topics map[string]*models.Topic
	posts  []*models.Post

	assignments map[string]*models.Assignment
	questions   []*models.Question
	answers     []*models.StudentAnswer

	follows []*models.Follow

	notifications []*models.Notification
	settings      map[string]*models.NotificationSettings

	banners map[string]*models.AdBanner
	uploads map[string]*models.FileUpload
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:       map[string]*models.User{},
		branches:    map[string]*models.Branch{},
		levels:      map[string]*models.Level{},
		subjects:    map[string]*models.Subject{},
		topics:      map[string]*models.Topic{},
		assignments: map[string]*models.Assignment{},
		settings:    map[string]*models.NotificationSettings{},
		banners:     map[string]*models.AdBanner{},
		uploads:     map[string]*models.FileUpload{},
	}
}

func (f *fakeRepo) User() repositories.UserRepository                 { return (*fakeUserRepo)(f) }
func (f *fakeRepo) Taxonomy() repositories.TaxonomyRepository         { return (*fakeTaxonomyRepo)(f) }
func (f *fakeRepo) Forum() repositories.ForumRepository               { return (*fakeForumRepo)(f) }
func (f *fakeRepo) Assignment() repositories.AssignmentRepository     { return (*fakeAssignmentRepo)(f) }
func (f *fakeRepo) Social() repositories.SocialRepository             { return (*fakeSocialRepo)(f) }
func (f *fakeRepo) Notification() repositories.NotificationRepository { return (*fakeNotificationRepo)(f) }
func (f *fakeRepo) Banner() repositories.BannerRepository             { return (*fakeBannerRepo)(f) }
func (f *fakeRepo) Upload() repositories.UploadRepository             { return (*fakeUploadRepo)(f) }
func (f *fakeRepo) Stats() repositories.StatsRepository               { return (*fakeStatsRepo)(f) }

func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}
func (f *fakeRepo) Ping(ctx context.Context) error { return nil }
func (f *fakeRepo) Close() error                   { return nil }

// ===== Users =====

type fakeUserRepo fakeRepo

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.User, error) {
	out := []*models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, id string, updates map[string]interface{}) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := updates["bio"]; ok {
		s := v.(string)
		u.Bio = &s
	}
	return nil
}

func (f *fakeUserRepo) Search(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range f.users {
		if filters.Query != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filters.Query)) {
			continue
		}
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListStudentsByLevel(ctx context.Context, tx *gorm.DB, levelID string) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range f.users {
		if u.Role == models.RoleStudent && u.LevelID != nil && *u.LevelID == levelID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) SetValidation(ctx context.Context, tx *gorm.DB, id string, validated bool) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsValidated = validated
	return nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// ===== Taxonomy =====

type fakeTaxonomyRepo fakeRepo

func (f *fakeTaxonomyRepo) CreateBranch(ctx context.Context, tx *gorm.DB, branch *models.Branch) error {
	if branch.ID == "" {
		branch.ID = uuid.NewString()
	}
	f.branches[branch.ID] = branch
	return nil
}

func (f *fakeTaxonomyRepo) GetBranch(ctx context.Context, tx *gorm.DB, id string) (*models.Branch, error) {
	if b, ok := f.branches[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaxonomyRepo) ListBranches(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*models.Branch, error) {
	out := []*models.Branch{}
	for _, b := range f.branches {
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeTaxonomyRepo) CreateLevel(ctx context.Context, tx *gorm.DB, level *models.Level) error {
	if level.ID == "" {
		level.ID = uuid.NewString()
	}
	f.levels[level.ID] = level
	return nil
}

func (f *fakeTaxonomyRepo) GetLevel(ctx context.Context, tx *gorm.DB, id string) (*models.Level, error) {
	if l, ok := f.levels[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaxonomyRepo) ListLevels(ctx context.Context, tx *gorm.DB, branchID *string) ([]*models.Level, error) {
	out := []*models.Level{}
	for _, l := range f.levels {
		if branchID != nil && l.BranchID != *branchID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeTaxonomyRepo) CreateSubject(ctx context.Context, tx *gorm.DB, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	f.subjects[subject.ID] = subject
	return nil
}

func (f *fakeTaxonomyRepo) GetSubject(ctx context.Context, tx *gorm.DB, id string) (*models.Subject, error) {
	if s, ok := f.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaxonomyRepo) ListSubjects(ctx context.Context, tx *gorm.DB, filters repositories.SubjectFilters) ([]*models.Subject, error) {
	out := []*models.Subject{}
	for _, s := range f.subjects {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeTaxonomyRepo) AssignTeacherSubject(ctx context.Context, tx *gorm.DB, ts *models.TeacherSubject) error {
	if ts.ID == "" {
		ts.ID = uuid.NewString()
	}
	f.teaching = append(f.teaching, ts)
	return nil
}

func (f *fakeTaxonomyRepo) RemoveTeacherSubject(ctx context.Context, tx *gorm.DB, teacherID, subjectID string) error {
	for i, ts := range f.teaching {
		if ts.TeacherID == teacherID && ts.SubjectID == subjectID {
			f.teaching = append(f.teaching[:i], f.teaching[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeTaxonomyRepo) ListTeacherSubjects(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Subject, error) {
	out := []*models.Subject{}
	for _, ts := range f.teaching {
		if ts.TeacherID == teacherID {
			if s, ok := f.subjects[ts.SubjectID]; ok {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (f *fakeTaxonomyRepo) TeachesSubject(ctx context.Context, tx *gorm.DB, teacherID, subjectID string) (bool, error) {
	for _, ts := range f.teaching {
		if ts.TeacherID == teacherID && ts.SubjectID == subjectID {
			return true, nil
		}
	}
	return false, nil
}

// ===== Forum =====

type fakeForumRepo fakeRepo

func (f *fakeForumRepo) CreateTopic(ctx context.Context, tx *gorm.DB, topic *models.Topic) error {
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	topic.CreatedAt = time.Now()
	f.topics[topic.ID] = topic
	return nil
}

func (f *fakeForumRepo) GetTopic(ctx context.Context, tx *gorm.DB, id string) (*models.Topic, error) {
	if t, ok := f.topics[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeForumRepo) ListTopics(ctx context.Context, tx *gorm.DB, filters repositories.TopicFilters) ([]*models.Topic, error) {
	out := []*models.Topic{}
	for _, t := range f.topics {
		if filters.BranchID != nil && t.BranchID != *filters.BranchID {
			continue
		}
		if filters.AuthorID != nil && t.AuthorID != *filters.AuthorID {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeForumRepo) DeleteTopic(ctx context.Context, tx *gorm.DB, id string) error {
	if _, ok := f.topics[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.topics, id)
	return nil
}

func (f *fakeForumRepo) IncrementViews(ctx context.Context, tx *gorm.DB, topicID string) error {
	t, ok := f.topics[topicID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.ViewsCount++
	return nil
}

func (f *fakeForumRepo) CreatePost(ctx context.Context, tx *gorm.DB, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.CreatedAt = time.Now()
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakeForumRepo) ListPosts(ctx context.Context, tx *gorm.DB, topicID string) ([]*models.Post, error) {
	out := []*models.Post{}
	for _, p := range f.posts {
		if p.TopicID == topicID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeForumRepo) IncrementReplies(ctx context.Context, tx *gorm.DB, topicID string) error {
	t, ok := f.topics[topicID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.RepliesCount++
	return nil
}

func (f *fakeForumRepo) CountTopicsByAuthor(ctx context.Context, tx *gorm.DB, authorID string) (int64, error) {
	var n int64
	for _, t := range f.topics {
		if t.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// ===== Assignments =====

type fakeAssignmentRepo fakeRepo

func (f *fakeAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment, questions []*models.Question) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	assignment.CreatedAt = time.Now()
	f.assignments[assignment.ID] = assignment
	for _, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.AssignmentID = assignment.ID
		f.questions = append(f.questions, q)
	}
	return nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Assignment, error) {
	if a, ok := f.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssignmentRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.AssignmentFilters) ([]*models.Assignment, error) {
	out := []*models.Assignment{}
	for _, a := range f.assignments {
		if filters.LevelID != nil && a.LevelID != *filters.LevelID {
			continue
		}
		if filters.TeacherID != nil && a.TeacherID != *filters.TeacherID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if _, ok := f.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentRepo) ListQuestions(ctx context.Context, tx *gorm.DB, assignmentID string) ([]*models.Question, error) {
	out := []*models.Question{}
	for _, q := range f.questions {
		if q.AssignmentID == assignmentID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) CreateQuestion(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	f.questions = append(f.questions, question)
	return nil
}

func (f *fakeAssignmentRepo) GetQuestionsByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Question, error) {
	out := []*models.Question{}
	for _, q := range f.questions {
		for _, id := range ids {
			if q.ID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) CreateAnswers(ctx context.Context, tx *gorm.DB, answers []*models.StudentAnswer) error {
	for _, a := range answers {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		a.CreatedAt = time.Now()
		f.answers = append(f.answers, a)
	}
	return nil
}

func (f *fakeAssignmentRepo) ListAnswers(ctx context.Context, tx *gorm.DB, assignmentID, studentID string) ([]*models.StudentAnswer, error) {
	out := []*models.StudentAnswer{}
	for _, a := range f.answers {
		if a.AssignmentID == assignmentID && a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ListAnswersForAssignment(ctx context.Context, tx *gorm.DB, assignmentID string) ([]*models.StudentAnswer, error) {
	out := []*models.StudentAnswer{}
	for _, a := range f.answers {
		if a.AssignmentID == assignmentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ListAnswersByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.StudentAnswer, error) {
	out := []*models.StudentAnswer{}
	for _, a := range f.answers {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) HasSubmitted(ctx context.Context, tx *gorm.DB, assignmentID, studentID string) (bool, error) {
	for _, a := range f.answers {
		if a.AssignmentID == assignmentID && a.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssignmentRepo) CompletedAssignmentIDs(ctx context.Context, tx *gorm.DB, studentID string, levelID *string) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, a := range f.answers {
		if a.StudentID != studentID || seen[a.AssignmentID] {
			continue
		}
		if levelID != nil {
			assignment, ok := f.assignments[a.AssignmentID]
			if !ok || assignment.LevelID != *levelID {
				continue
			}
		}
		seen[a.AssignmentID] = true
		out = append(out, a.AssignmentID)
	}
	return out, nil
}

func (f *fakeAssignmentRepo) CountByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) (int64, error) {
	var n int64
	for _, a := range f.assignments {
		if a.TeacherID == teacherID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAssignmentRepo) CountByLevel(ctx context.Context, tx *gorm.DB, levelID string) (int64, error) {
	var n int64
	for _, a := range f.assignments {
		if a.LevelID == levelID {
			n++
		}
	}
	return n, nil
}

// ===== Social =====

type fakeSocialRepo fakeRepo

func (f *fakeSocialRepo) Create(ctx context.Context, tx *gorm.DB, follow *models.Follow) error {
	for _, fl := range f.follows {
		if fl.FollowerID == follow.FollowerID && fl.FollowedID == follow.FollowedID {
			return gorm.ErrDuplicatedKey
		}
	}
	if follow.ID == "" {
		follow.ID = uuid.NewString()
	}
	f.follows = append(f.follows, follow)
	return nil
}

func (f *fakeSocialRepo) Delete(ctx context.Context, tx *gorm.DB, followerID, followedID string) error {
	for i, fl := range f.follows {
		if fl.FollowerID == followerID && fl.FollowedID == followedID {
			f.follows = append(f.follows[:i], f.follows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeSocialRepo) Exists(ctx context.Context, tx *gorm.DB, followerID, followedID string) (bool, error) {
	for _, fl := range f.follows {
		if fl.FollowerID == followerID && fl.FollowedID == followedID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSocialRepo) ListFollowing(ctx context.Context, tx *gorm.DB, followerID string) ([]*models.Follow, error) {
	out := []*models.Follow{}
	for _, fl := range f.follows {
		if fl.FollowerID == followerID {
			out = append(out, fl)
		}
	}
	return out, nil
}

func (f *fakeSocialRepo) ListFollowers(ctx context.Context, tx *gorm.DB, followedID string) ([]*models.Follow, error) {
	out := []*models.Follow{}
	for _, fl := range f.follows {
		if fl.FollowedID == followedID {
			out = append(out, fl)
		}
	}
	return out, nil
}

func (f *fakeSocialRepo) CountFollowers(ctx context.Context, tx *gorm.DB, followedID string) (int64, error) {
	var n int64
	for _, fl := range f.follows {
		if fl.FollowedID == followedID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSocialRepo) CountFollowing(ctx context.Context, tx *gorm.DB, followerID string) (int64, error) {
	var n int64
	for _, fl := range f.follows {
		if fl.FollowerID == followerID {
			n++
		}
	}
	return n, nil
}

// ===== Notifications =====

type fakeNotificationRepo fakeRepo

func (f *fakeNotificationRepo) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	notification.CreatedAt = time.Now()
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*models.Notification, error) {
	out := []*models.Notification{}
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].UserID == userID {
			out = append(out, f.notifications[i])
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, id, userID string) error {
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, userID string) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var cnt int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeNotificationRepo) GetSettings(ctx context.Context, tx *gorm.DB, userID string) (*models.NotificationSettings, error) {
	if s, ok := f.settings[userID]; ok {
		row := *s
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) CreateSettings(ctx context.Context, tx *gorm.DB, settings *models.NotificationSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}
	f.settings[settings.UserID] = settings
	return nil
}

func (f *fakeNotificationRepo) UpdateSettings(ctx context.Context, tx *gorm.DB, settings *models.NotificationSettings) error {
	stored, ok := f.settings[settings.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// Copy the toggle columns one by one, like the database update does.
	stored.NewPosts = settings.NewPosts
	stored.ForumReplies = settings.ForumReplies
	stored.NewAssignments = settings.NewAssignments
	stored.NewFollowers = settings.NewFollowers
	return nil
}

// ===== Banners =====

type fakeBannerRepo fakeRepo

func (f *fakeBannerRepo) Create(ctx context.Context, tx *gorm.DB, banner *models.AdBanner) error {
	if banner.ID == "" {
		banner.ID = uuid.NewString()
	}
	f.banners[banner.ID] = banner
	return nil
}

func (f *fakeBannerRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.AdBanner, error) {
	if b, ok := f.banners[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBannerRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*models.AdBanner, error) {
	out := []*models.AdBanner{}
	for _, b := range f.banners {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBannerRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*models.AdBanner, error) {
	out := []*models.AdBanner{}
	for _, b := range f.banners {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBannerRepo) Update(ctx context.Context, tx *gorm.DB, id string, updates map[string]interface{}) error {
	b, ok := f.banners[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["title"]; ok {
		b.Title = v.(string)
	}
	if v, ok := updates["is_active"]; ok {
		b.IsActive = v.(bool)
	}
	return nil
}

func (f *fakeBannerRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if _, ok := f.banners[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.banners, id)
	return nil
}

// ===== Uploads =====

type fakeUploadRepo fakeRepo

func (f *fakeUploadRepo) Create(ctx context.Context, tx *gorm.DB, upload *models.FileUpload) error {
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	f.uploads[upload.StoredName] = upload
	return nil
}

func (f *fakeUploadRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.FileUpload, error) {
	for _, u := range f.uploads {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUploadRepo) GetByStoredName(ctx context.Context, tx *gorm.DB, name string) (*models.FileUpload, error) {
	if u, ok := f.uploads[name]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ===== Stats =====

type fakeStatsRepo fakeRepo

func (f *fakeStatsRepo) PlatformCounts(ctx context.Context, tx *gorm.DB) (*repositories.PlatformCounts, error) {
	counts := &repositories.PlatformCounts{
		TotalUsers:       int64(len(f.users)),
		TotalTopics:      int64(len(f.topics)),
		TotalPosts:       int64(len(f.posts)),
		TotalAssignments: int64(len(f.assignments)),
		TotalBranches:    int64(len(f.branches)),
	}
	for _, u := range f.users {
		switch u.Role {
		case models.RoleStudent:
			counts.TotalStudents++
		case models.RoleTeacher:
			counts.TotalTeachers++
			if !u.IsValidated {
				counts.PendingTeachers++
			}
		}
	}
	return counts, nil
}

func (f *fakeStatsRepo) TeacherCounts(ctx context.Context, tx *gorm.DB, teacherID string) (*repositories.TeacherCounts, error) {
	counts := &repositories.TeacherCounts{}
	for _, a := range f.assignments {
		if a.TeacherID == teacherID {
			counts.TotalAssignments++
		}
	}
	for _, t := range f.topics {
		if t.AuthorID == teacherID {
			counts.TotalTopics++
		}
	}
	for _, fl := range f.follows {
		if fl.FollowedID == teacherID {
			counts.TotalFollowers++
		}
	}
	return counts, nil
}

// ===== Shared test fixtures =====

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func topicFilters() repositories.TopicFilters {
	return repositories.TopicFilters{}
}

func containsTopic(topics []*models.Topic, id string) bool {
	for _, t := range topics {
		if t.ID == id {
			return true
		}
	}
	return false
}

func seedUser(t *testing.T, repo *fakeRepo, role models.UserRole, name string) *models.User {
	t.Helper()
	user := &models.User{
		ID:          uuid.NewString(),
		Email:       strings.ToLower(name) + "@example.com",
		Password:    "hashed",
		Name:        name,
		Role:        role,
		IsValidated: role != models.RoleTeacher,
	}
	repo.users[user.ID] = user
	return user
}
