package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/events"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
	"github.com/scolink/community-service/internal/validator"
)

type assignmentService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	validator     *validator.Validator
	notifications NotificationService
	publisher     events.EventPublisher
}

func NewAssignmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, notifications NotificationService, publisher events.EventPublisher) AssignmentService {
	return &assignmentService{
		repo:          repo,
		db:            db,
		logger:        logger,
		validator:     v,
		notifications: notifications,
		publisher:     publisher,
	}
}

// Create publishes an assignment with its questions and notifies every
// student of the target level.
func (s *assignmentService) Create(ctx context.Context, actor *models.User, req *validator.AssignmentCreateRequest) (*models.Assignment, error) {
	if err := Authorize(actor, OpCreateAssignment); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	if _, err := s.repo.Taxonomy().GetSubject(ctx, nil, req.SubjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	if _, err := s.repo.Taxonomy().GetLevel(ctx, nil, req.LevelID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to get level: %w", err)
	}

	assignment := &models.Assignment{
		Title:          req.Title,
		Description:    req.Description,
		SubjectID:      req.SubjectID,
		BranchID:       req.BranchID,
		LevelID:        req.LevelID,
		TeacherID:      actor.ID,
		DueDate:        req.DueDate,
		AssignmentType: req.DefaultAssignmentType(),
		AllowFiles:     req.AllowFiles,
	}

	questions := make([]*models.Question, 0, len(req.Questions))
	for i := range req.Questions {
		question, err := buildQuestion(&req.Questions[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	if err := s.repo.Assignment().Create(ctx, nil, assignment, questions); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("assignment created", "assignment_id", assignment.ID, "teacher_id", actor.ID, "level_id", assignment.LevelID, "questions", len(questions))

	s.fanOutToLevel(ctx, actor, assignment)

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventAssignmentPublished, map[string]string{
		"assignment_id": assignment.ID,
		"teacher_id":    actor.ID,
		"level_id":      assignment.LevelID,
	})); err != nil {
		s.logger.Warn("failed to publish assignment event", "error", err, "assignment_id", assignment.ID)
	}

	return assignment, nil
}

// fanOutToLevel writes one notification per student of the assignment's
// level. Delivery is best effort.
func (s *assignmentService) fanOutToLevel(ctx context.Context, teacher *models.User, assignment *models.Assignment) {
	students, err := s.repo.User().ListStudentsByLevel(ctx, nil, assignment.LevelID)
	if err != nil {
		s.logger.Warn("failed to list students for assignment fan-out", "error", err, "level_id", assignment.LevelID)
		return
	}
	for _, student := range students {
		s.notifications.Notify(ctx, student.ID, models.NotificationNewAssignment, NotifyParams{
			ActorName:      teacher.Name,
			AssignmentName: assignment.Title,
			Link:           "/assignments/" + assignment.ID,
		})
	}
}

func buildQuestion(q *validator.QuestionCreateRequest) (*models.Question, error) {
	question := &models.Question{
		QuestionType:  models.QuestionType(q.QuestionType),
		QuestionText:  q.QuestionText,
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
	}
	if question.Points <= 0 {
		question.Points = 1
	}
	if len(q.Options) > 0 {
		raw, err := json.Marshal(q.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode question options: %w", err)
		}
		question.Options = raw
	}
	return question, nil
}

// AddQuestion appends a question to a teacher's own assignment.
func (s *assignmentService) AddQuestion(ctx context.Context, actor *models.User, assignmentID string, req *validator.QuestionCreateRequest) (*models.Question, error) {
	if err := Authorize(actor, OpCreateQuestion); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, nil, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment.TeacherID != actor.ID {
		return nil, NewPermissionError(actor.ID, "add questions to", "assignment")
	}

	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	question.AssignmentID = assignmentID

	if err := s.repo.Assignment().CreateQuestion(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info("question added", "assignment_id", assignmentID, "question_id", question.ID, "teacher_id", actor.ID)
	return question, nil
}

// ListQuestions returns an assignment's questions. Students never see
// the correct answers.
func (s *assignmentService) ListQuestions(ctx context.Context, actor *models.User, assignmentID string) ([]*models.Question, error) {
	if _, err := s.repo.Assignment().GetByID(ctx, nil, assignmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	questions, err := s.repo.Assignment().ListQuestions(ctx, nil, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if actor.Role == models.RoleStudent {
		for _, q := range questions {
			q.CorrectAnswer = ""
		}
	}
	return questions, nil
}

// Get returns the assignment with its questions. Students never see the
// correct answers.
func (s *assignmentService) Get(ctx context.Context, actor *models.User, assignmentID string) (*AssignmentDetail, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, nil, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	questions, err := s.repo.Assignment().ListQuestions(ctx, nil, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	if actor.Role == models.RoleStudent {
		for _, q := range questions {
			q.CorrectAnswer = ""
		}
	}

	return &AssignmentDetail{Assignment: assignment, Questions: questions}, nil
}

func (s *assignmentService) List(ctx context.Context, actor *models.User, filters repositories.AssignmentFilters) ([]*models.Assignment, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	assignments, err := s.repo.Assignment().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) Delete(ctx context.Context, actor *models.User, assignmentID string) error {
	assignment, err := s.repo.Assignment().GetByID(ctx, nil, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if err := Authorize(actor, OpDeleteAssignment); err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && assignment.TeacherID != actor.ID {
		return NewPermissionError(actor.ID, "delete", "assignment")
	}

	if err := s.repo.Assignment().Delete(ctx, nil, assignmentID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("assignment deleted", "assignment_id", assignmentID, "actor_id", actor.ID)
	return nil
}

// SubmitAnswers grades a quiz submission in one pass. Comparison is
// case-insensitive and ignores surrounding whitespace. An answer whose
// question disappeared stays ungraded rather than failing the submission.
func (s *assignmentService) SubmitAnswers(ctx context.Context, actor *models.User, assignmentID string, req *validator.AnswersSubmitRequest) (*SubmissionResult, error) {
	if err := Authorize(actor, OpSubmitAnswers); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	if _, err := s.repo.Assignment().GetByID(ctx, nil, assignmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	submitted, err := s.repo.Assignment().HasSubmitted(ctx, nil, assignmentID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check submission: %w", err)
	}
	if submitted {
		return nil, ErrAlreadySubmitted
	}

	questions, err := s.repo.Assignment().ListQuestions(ctx, nil, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	byID := make(map[string]*models.Question, len(questions))
	maxScore := 0
	for _, q := range questions {
		byID[q.ID] = q
		maxScore += q.Points
	}

	result := &SubmissionResult{AssignmentID: assignmentID, MaxScore: maxScore}
	answers := make([]*models.StudentAnswer, 0, len(req.Answers))
	for _, item := range req.Answers {
		answer := &models.StudentAnswer{
			AssignmentID: assignmentID,
			QuestionID:   item.QuestionID,
			StudentID:    actor.ID,
			AnswerValue:  item.AnswerValue,
		}
		if question, ok := byID[item.QuestionID]; ok {
			correct := normalizeAnswer(item.AnswerValue) == normalizeAnswer(question.CorrectAnswer)
			score := 0
			if correct {
				score = question.Points
			}
			answer.IsCorrect = &correct
			answer.Score = &score
			result.TotalScore += score
			result.GradedCount++
		}
		answers = append(answers, answer)
	}

	if err := s.repo.Assignment().CreateAnswers(ctx, nil, answers); err != nil {
		return nil, fmt.Errorf("failed to save answers: %w", err)
	}
	result.Answers = answers

	s.logger.Info("answers submitted", "assignment_id", assignmentID, "student_id", actor.ID, "score", result.TotalScore, "max_score", result.MaxScore)

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventAnswersSubmitted, map[string]interface{}{
		"assignment_id": assignmentID,
		"student_id":    actor.ID,
		"total_score":   result.TotalScore,
	})); err != nil {
		s.logger.Warn("failed to publish submission event", "error", err, "assignment_id", assignmentID)
	}

	return result, nil
}

// MyResults returns the caller's own graded submission.
func (s *assignmentService) MyResults(ctx context.Context, actor *models.User, assignmentID string) (*SubmissionResult, error) {
	answers, err := s.repo.Assignment().ListAnswers(ctx, nil, assignmentID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	if len(answers) == 0 {
		return nil, ErrSubmissionNotFound
	}

	questions, err := s.repo.Assignment().ListQuestions(ctx, nil, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	maxScore := 0
	for _, q := range questions {
		maxScore += q.Points
	}

	result := &SubmissionResult{AssignmentID: assignmentID, MaxScore: maxScore, Answers: answers}
	for _, a := range answers {
		if a.Score != nil {
			result.TotalScore += *a.Score
			result.GradedCount++
		}
	}
	return result, nil
}

// Results aggregates every student's submission for a teacher's own
// assignment. Admins may read any assignment's results.
func (s *assignmentService) Results(ctx context.Context, actor *models.User, assignmentID string) ([]*StudentResult, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, nil, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment.TeacherID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actor.ID, "read results of", "assignment")
	}

	answers, err := s.repo.Assignment().ListAnswersForAssignment(ctx, nil, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	totals := make(map[string]*StudentResult)
	order := make([]string, 0)
	for _, a := range answers {
		entry, ok := totals[a.StudentID]
		if !ok {
			entry = &StudentResult{StudentID: a.StudentID}
			totals[a.StudentID] = entry
			order = append(order, a.StudentID)
		}
		entry.AnswerCount++
		if a.Score != nil {
			entry.TotalScore += *a.Score
		}
	}

	if len(order) > 0 {
		users, err := s.repo.User().GetByIDs(ctx, nil, order)
		if err != nil {
			return nil, fmt.Errorf("failed to load students: %w", err)
		}
		names := make(map[string]string, len(users))
		for _, u := range users {
			names[u.ID] = u.Name
		}
		for id, entry := range totals {
			entry.StudentName = names[id]
		}
	}

	results := make([]*StudentResult, 0, len(order))
	for _, id := range order {
		results = append(results, totals[id])
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return results[i].StudentName < results[j].StudentName
	})
	return results, nil
}

func normalizeAnswer(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
