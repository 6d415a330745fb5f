package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/validator"
)

func TestExportService_AssignmentResults(t *testing.T) {
	ctx := context.Background()
	repo, assignments, _ := newAssignmentFixture(t)
	seedTaxonomy(repo)
	service := NewExportService(repo, nil, testLogger(), assignments)

	teacher := seedUser(t, repo, models.RoleTeacher, "Prof")
	teacher.IsValidated = true
	student := seedUser(t, repo, models.RoleStudent, "Alice")

	assignment, err := assignments.Create(ctx, teacher, createQuizRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	questions, _ := repo.Assignment().ListQuestions(ctx, nil, assignment.ID)
	if _, err := assignments.SubmitAnswers(ctx, student, assignment.ID, &validator.AnswersSubmitRequest{
		Answers: []validator.AnswerItem{{QuestionID: questions[0].ID, AnswerValue: "4"}},
	}); err != nil {
		t.Fatalf("SubmitAnswers failed: %v", err)
	}

	data, filename, err := service.AssignmentResults(ctx, teacher, assignment.ID)
	if err != nil {
		t.Fatalf("AssignmentResults failed: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("expected an xlsx filename, got %q", filename)
	}

	// The workbook must open and carry the student's row.
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
	if rows[1][1] != student.Name {
		t.Errorf("expected student name %q, got %q", student.Name, rows[1][1])
	}

	t.Run("foreign teacher is refused", func(t *testing.T) {
		rival := seedUser(t, repo, models.RoleTeacher, "Rival")
		rival.IsValidated = true
		if _, _, err := service.AssignmentResults(ctx, rival, assignment.ID); !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})
}
