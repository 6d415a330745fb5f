package validator

import (
	"testing"
)

func TestValidate_RegisterRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid student",
			req: RegisterRequest{
				Email:    "amina@example.com",
				Password: "secret1",
				Name:     "Amina",
				Role:     "student",
			},
			wantErr: false,
		},
		{
			name: "invalid email",
			req: RegisterRequest{
				Email:    "not-an-email",
				Password: "secret1",
				Name:     "Amina",
				Role:     "student",
			},
			wantErr: true,
		},
		{
			name: "short password",
			req: RegisterRequest{
				Email:    "amina@example.com",
				Password: "abc",
				Name:     "Amina",
				Role:     "student",
			},
			wantErr: true,
		},
		{
			name: "unknown role",
			req: RegisterRequest{
				Email:    "amina@example.com",
				Password: "secret1",
				Name:     "Amina",
				Role:     "superuser",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if got := errs.HasErrors(); got != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v (errors: %v)", got, tt.wantErr, errs)
			}
		})
	}
}

func TestValidate_TopicVisibility(t *testing.T) {
	v := New()

	valid := TopicCreateRequest{
		Title:      "Limites et continuité",
		Content:    "Question sur le chapitre 3",
		BranchID:   "b1",
		LevelID:    "l1",
		Visibility: "followers_only",
	}
	if errs := v.Validate(&valid); errs.HasErrors() {
		t.Errorf("unexpected errors: %v", errs)
	}

	invalid := valid
	invalid.Visibility = "friends"
	if errs := v.Validate(&invalid); !errs.HasErrors() {
		t.Error("expected visibility error")
	}

	// empty visibility defaults to public
	empty := valid
	empty.Visibility = ""
	if errs := v.Validate(&empty); errs.HasErrors() {
		t.Errorf("empty visibility should pass: %v", errs)
	}
	if empty.DefaultVisibility() != "public" {
		t.Errorf("DefaultVisibility() = %v, want public", empty.DefaultVisibility())
	}
}

func TestValidate_QuestionType(t *testing.T) {
	v := New()

	req := AssignmentCreateRequest{
		Title:     "Devoir 1",
		SubjectID: "s1",
		BranchID:  "b1",
		LevelID:   "l1",
		Questions: []QuestionCreateRequest{
			{QuestionType: "mcq", QuestionText: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		},
	}
	if errs := v.Validate(&req); errs.HasErrors() {
		t.Errorf("unexpected errors: %v", errs)
	}

	req.Questions[0].QuestionType = "essay"
	if errs := v.Validate(&req); !errs.HasErrors() {
		t.Error("expected question_type error")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "Email", Message: "Email is required"},
		{Field: "Name", Message: "Name is required"},
	}
	if errs.Error() != "Email is required; Name is required" {
		t.Errorf("unexpected message: %q", errs.Error())
	}

	var none ValidationErrors
	if none.HasErrors() {
		t.Error("empty collection should report no errors")
	}
}
