package services

import (
	"github.com/scolink/community-service/internal/models"
)

// Operation identifies an action subject to role checks.
type Operation string

const (
	OpManageTaxonomy    Operation = "taxonomy.manage"
	OpValidateTeacher   Operation = "user.validate_teacher"
	OpCreateTopic       Operation = "forum.create_topic"
	OpDeleteTopic       Operation = "forum.delete_topic"
	OpCreateAssignment  Operation = "assignment.create"
	OpCreateQuestion    Operation = "assignment.create_question"
	OpDeleteAssignment  Operation = "assignment.delete"
	OpSubmitAnswers     Operation = "assignment.submit_answers"
	OpExportResults     Operation = "assignment.export_results"
	OpFollowUser        Operation = "social.follow"
	OpManageBanners     Operation = "banner.manage"
	OpViewAdminStats    Operation = "stats.admin"
	OpViewTeacherStats  Operation = "stats.teacher"
	OpViewStudentStats  Operation = "stats.student"
	OpAssignSubject     Operation = "taxonomy.assign_subject"
)

// rule describes who may perform an operation. RequireValidated only
// applies to teachers; admins and students are never gated on it.
type rule struct {
	roles            map[models.UserRole]bool
	requireValidated bool
}

var authorizationRules = map[Operation]rule{
	OpManageTaxonomy:  {roles: map[models.UserRole]bool{models.RoleAdmin: true}},
	OpValidateTeacher: {roles: map[models.UserRole]bool{models.RoleAdmin: true}},
	OpCreateTopic: {roles: map[models.UserRole]bool{
		models.RoleAdmin: true, models.RoleTeacher: true, models.RoleStudent: true,
	}},
	OpDeleteTopic: {roles: map[models.UserRole]bool{models.RoleAdmin: true}},
	OpCreateAssignment: {
		roles:            map[models.UserRole]bool{models.RoleTeacher: true},
		requireValidated: true,
	},
	OpCreateQuestion: {roles: map[models.UserRole]bool{models.RoleTeacher: true}},
	OpDeleteAssignment: {roles: map[models.UserRole]bool{
		models.RoleAdmin: true, models.RoleTeacher: true,
	}},
	OpSubmitAnswers: {roles: map[models.UserRole]bool{models.RoleStudent: true}},
	OpExportResults: {
		roles:            map[models.UserRole]bool{models.RoleAdmin: true, models.RoleTeacher: true},
		requireValidated: true,
	},
	OpFollowUser: {roles: map[models.UserRole]bool{
		models.RoleAdmin: true, models.RoleTeacher: true, models.RoleStudent: true,
	}},
	OpManageBanners:    {roles: map[models.UserRole]bool{models.RoleAdmin: true}},
	OpViewAdminStats:   {roles: map[models.UserRole]bool{models.RoleAdmin: true}},
	OpViewTeacherStats: {roles: map[models.UserRole]bool{models.RoleTeacher: true, models.RoleAdmin: true}},
	OpViewStudentStats: {roles: map[models.UserRole]bool{models.RoleStudent: true}},
	OpAssignSubject: {
		roles:            map[models.UserRole]bool{models.RoleTeacher: true},
		requireValidated: true,
	},
}

// Authorize checks whether the user may perform the operation. It
// returns a PermissionError describing the refusal, or nil.
func Authorize(user *models.User, op Operation) error {
	r, ok := authorizationRules[op]
	if !ok {
		return NewPermissionError(user.ID, string(op), "unknown operation")
	}
	if !r.roles[user.Role] {
		return NewPermissionError(user.ID, string(op), "requires role "+allowedRoles(r))
	}
	if r.requireValidated && user.Role == models.RoleTeacher && !user.IsValidated {
		return ErrTeacherNotValid
	}
	return nil
}

func allowedRoles(r rule) string {
	out := ""
	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleTeacher, models.RoleStudent} {
		if r.roles[role] {
			if out != "" {
				out += "|"
			}
			out += string(role)
		}
	}
	return out
}
