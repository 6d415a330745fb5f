package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type exportService struct {
	repo        repositories.Repository
	db          *gorm.DB
	logger      *slog.Logger
	assignments AssignmentService
}

func NewExportService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, assignments AssignmentService) ExportService {
	return &exportService{repo: repo, db: db, logger: logger, assignments: assignments}
}

// AssignmentResults renders one row per student, ordered by score. The
// ownership check is the same as the JSON results endpoint.
func (s *exportService) AssignmentResults(ctx context.Context, actor *models.User, assignmentID string) ([]byte, string, error) {
	if err := Authorize(actor, OpExportResults); err != nil {
		return nil, "", err
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, nil, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrAssignmentNotFound
		}
		return nil, "", fmt.Errorf("failed to get assignment: %w", err)
	}

	results, err := s.assignments.Results(ctx, actor, assignmentID)
	if err != nil {
		return nil, "", err
	}

	questions, err := s.repo.Assignment().ListQuestions(ctx, nil, assignmentID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list questions: %w", err)
	}
	maxScore := 0
	for _, q := range questions {
		maxScore += q.Points
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 36)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "E", 14)

	headers := []string{"Student ID", "Student Name", "Score", "Max Score", "Answers"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, col+"1", h)
	}

	for i, r := range results {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheetName, "A"+row, r.StudentID)
		f.SetCellValue(sheetName, "B"+row, r.StudentName)
		f.SetCellValue(sheetName, "C"+row, r.TotalScore)
		f.SetCellValue(sheetName, "D"+row, maxScore)
		f.SetCellValue(sheetName, "E"+row, r.AnswerCount)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("results_%s_%s.xlsx", assignment.ID, time.Now().Format("2006-01-02"))
	s.logger.Info("results exported", "assignment_id", assignmentID, "actor_id", actor.ID, "students", len(results))
	return buf.Bytes(), filename, nil
}
