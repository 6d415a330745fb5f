package services

import (
	"context"
	"testing"

	"github.com/scolink/community-service/internal/models"
)

func TestDashboardService_AdminStats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	service := NewDashboardService(repo, nil, testLogger())

	admin := seedUser(t, repo, models.RoleAdmin, "Admin")
	seedUser(t, repo, models.RoleStudent, "Alice")
	seedUser(t, repo, models.RoleStudent, "Bob")
	seedUser(t, repo, models.RoleTeacher, "Pending")

	stats, err := service.AdminStats(ctx, admin)
	if err != nil {
		t.Fatalf("AdminStats failed: %v", err)
	}
	if stats.TotalUsers != 4 || stats.TotalStudents != 2 || stats.TotalTeachers != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.PendingTeachers != 1 {
		t.Errorf("expected 1 pending teacher, got %d", stats.PendingTeachers)
	}

	t.Run("non-admin is refused", func(t *testing.T) {
		student := seedUser(t, repo, models.RoleStudent, "Carol")
		if _, err := service.AdminStats(ctx, student); !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})
}

func TestDashboardService_TeacherStats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	service := NewDashboardService(repo, nil, testLogger())

	teacher := seedUser(t, repo, models.RoleTeacher, "Prof")
	student := seedUser(t, repo, models.RoleStudent, "Alice")

	repo.assignments["a1"] = &models.Assignment{ID: "a1", TeacherID: teacher.ID}
	repo.topics["t1"] = &models.Topic{ID: "t1", AuthorID: teacher.ID}
	repo.follows = append(repo.follows, &models.Follow{ID: "f1", FollowerID: student.ID, FollowedID: teacher.ID})

	stats, err := service.TeacherStats(ctx, teacher)
	if err != nil {
		t.Fatalf("TeacherStats failed: %v", err)
	}
	if stats.TotalAssignments != 1 || stats.TotalTopics != 1 || stats.TotalFollowers != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
}

func TestDashboardService_StudentStats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	service := NewDashboardService(repo, nil, testLogger())

	levelID := "level-1"
	student := seedUser(t, repo, models.RoleStudent, "Alice")
	student.LevelID = &levelID
	teacher := seedUser(t, repo, models.RoleTeacher, "Prof")

	repo.assignments["a1"] = &models.Assignment{ID: "a1", TeacherID: teacher.ID, LevelID: levelID}
	repo.assignments["a2"] = &models.Assignment{ID: "a2", TeacherID: teacher.ID, LevelID: levelID}

	score2, score0 := 2, 0
	yes, no := true, false
	repo.answers = append(repo.answers,
		&models.StudentAnswer{ID: "ans1", AssignmentID: "a1", QuestionID: "q1", StudentID: student.ID, IsCorrect: &yes, Score: &score2},
		&models.StudentAnswer{ID: "ans2", AssignmentID: "a1", QuestionID: "q2", StudentID: student.ID, IsCorrect: &no, Score: &score0},
	)
	repo.follows = append(repo.follows, &models.Follow{ID: "f1", FollowerID: student.ID, FollowedID: teacher.ID})

	stats, err := service.StudentStats(ctx, student)
	if err != nil {
		t.Fatalf("StudentStats failed: %v", err)
	}
	if stats.TotalAssignments != 2 {
		t.Errorf("expected 2 assignments for level, got %d", stats.TotalAssignments)
	}
	if stats.CompletedAssignments != 1 {
		t.Errorf("expected 1 completed assignment, got %d", stats.CompletedAssignments)
	}
	// 2 points across 2 answered questions scales to 100.
	if stats.AverageScore != 100 {
		t.Errorf("expected average 100, got %v", stats.AverageScore)
	}
	if stats.Following != 1 {
		t.Errorf("expected following 1, got %d", stats.Following)
	}

	t.Run("ungraded answers count as zero", func(t *testing.T) {
		other := seedUser(t, repo, models.RoleStudent, "Bob")
		other.LevelID = &levelID
		score1 := 1
		graded := true
		repo.answers = append(repo.answers,
			&models.StudentAnswer{ID: "ans3", AssignmentID: "a1", QuestionID: "q1", StudentID: other.ID, IsCorrect: &graded, Score: &score1},
			&models.StudentAnswer{ID: "ans4", AssignmentID: "a1", QuestionID: "q3", StudentID: other.ID},
		)

		stats, err := service.StudentStats(ctx, other)
		if err != nil {
			t.Fatalf("StudentStats failed: %v", err)
		}
		if stats.AverageScore != 50 {
			t.Errorf("expected average 50, got %v", stats.AverageScore)
		}
	})

	t.Run("completed ignores other levels", func(t *testing.T) {
		repo.assignments["a3"] = &models.Assignment{ID: "a3", TeacherID: teacher.ID, LevelID: "level-2"}
		score0 := 0
		wrong := false
		repo.answers = append(repo.answers,
			&models.StudentAnswer{ID: "ans5", AssignmentID: "a3", QuestionID: "q1", StudentID: student.ID, IsCorrect: &wrong, Score: &score0},
		)

		stats, err := service.StudentStats(ctx, student)
		if err != nil {
			t.Fatalf("StudentStats failed: %v", err)
		}
		if stats.CompletedAssignments != 1 {
			t.Errorf("expected completed to stay at 1, got %d", stats.CompletedAssignments)
		}
		if stats.CompletedAssignments > stats.TotalAssignments {
			t.Error("completed must never exceed the level total")
		}
	})

	t.Run("no answers means zero average", func(t *testing.T) {
		fresh := seedUser(t, repo, models.RoleStudent, "Newbie")
		stats, err := service.StudentStats(ctx, fresh)
		if err != nil {
			t.Fatalf("StudentStats failed: %v", err)
		}
		if stats.AverageScore != 0 {
			t.Errorf("expected 0 average, got %v", stats.AverageScore)
		}
	})
}
