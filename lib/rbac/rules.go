package rbac

import (
	"hire-backend/models"
)

var (
	EmployerRoleSet  = []models.UserRole{models.EmployerRole}
	JobSeekerRoleSet = []models.UserRole{models.JobSeekerRole}
	AdminRoleSet     = []models.UserRole{models.AdminRole}
	ChatRoleSet      = []models.UserRole{models.EmployerRole, models.JobSeekerRole}
	AllRoles         = []models.UserRole{models.EmployerRole, models.JobSeekerRole, models.AdminRole}

	// ContactReviewRoleSet may read contact requests: admins all of them, freelancers their approved ones
	ContactReviewRoleSet = []models.UserRole{models.JobSeekerRole, models.AdminRole}
)

func (i *impl) initRules() {
	i.jobs()
	i.applications()
	i.employers()
	i.moderation()
	i.freelancers()
	i.chats()
	i.notifications()
}

func (i *impl) mustRegister(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) {
	if err := i.RegisterRule(module, permission, roles, swaggerPattern); err != nil {
		panic(err.Error())
	}
}

func (i *impl) jobs() {
	// CREATE/EDIT, ownership is checked by the job registry
	i.mustRegister(models.JobModule, models.CreatePermission, EmployerRoleSet, "/api/v1/jobs [post]")
	i.mustRegister(models.JobModule, models.EditPermission, EmployerRoleSet, "/api/v1/jobs/mine [get]")
	i.mustRegister(models.JobModule, models.EditPermission, EmployerRoleSet, "/api/v1/jobs/{id} [put]")
	i.mustRegister(models.JobModule, models.EditPermission, EmployerRoleSet, "/api/v1/jobs/{id}/close [put]")
	i.mustRegister(models.JobModule, models.EditPermission, EmployerRoleSet, "/api/v1/jobs/{id} [delete]")
	// SAVED
	i.mustRegister(models.JobModule, models.ApplyPermission, JobSeekerRoleSet, "/api/v1/jobs/saved [get]")
	i.mustRegister(models.JobModule, models.ApplyPermission, JobSeekerRoleSet, "/api/v1/jobs/{id}/save [post]")
	i.mustRegister(models.JobModule, models.ApplyPermission, JobSeekerRoleSet, "/api/v1/jobs/{id}/save [delete]")
	// REPORT
	i.mustRegister(models.ReportModule, models.CreatePermission, AllRoles, "/api/v1/jobs/{id}/report [post]")
}

func (i *impl) applications() {
	i.mustRegister(models.ApplicationModule, models.ApplyPermission, JobSeekerRoleSet, "/api/v1/jobs/{id}/apply [post]")
	i.mustRegister(models.ApplicationModule, models.ViewPermission, EmployerRoleSet, "/api/v1/jobs/{id}/applications [get]")
	i.mustRegister(models.ApplicationModule, models.ViewPermission, JobSeekerRoleSet, "/api/v1/applications/me [get]")
	i.mustRegister(models.ApplicationModule, models.ViewPermission, AllRoles, "/api/v1/applications/{id} [get]")
	i.mustRegister(models.ApplicationModule, models.ManagePermission, EmployerRoleSet, "/api/v1/applications/{id}/status [put]")
}

func (i *impl) employers() {
	i.mustRegister(models.EmployerModule, models.EditPermission, EmployerRoleSet, "/api/v1/employers/profile [post]")
	i.mustRegister(models.EmployerModule, models.ViewPermission, EmployerRoleSet, "/api/v1/employers/profile [get]")
	i.mustRegister(models.EmployerModule, models.EditPermission, EmployerRoleSet, "/api/v1/employers/profile [put]")
}

func (i *impl) moderation() {
	i.mustRegister(models.ModerationModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin/employers [get]")
	i.mustRegister(models.ModerationModule, models.ModeratePermission, AdminRoleSet, "/api/v1/admin/employers/{id}/verify [put]")
	i.mustRegister(models.ModerationModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin/jobs [get]")
	i.mustRegister(models.ModerationModule, models.ModeratePermission, AdminRoleSet, "/api/v1/admin/jobs/{id}/approve [put]")
	i.mustRegister(models.ModerationModule, models.ModeratePermission, AdminRoleSet, "/api/v1/admin/jobs/{id} [delete]")
	i.mustRegister(models.ModerationModule, models.ModeratePermission, AdminRoleSet, "/api/v1/admin/freelancers/{id}/verify [put]")
	i.mustRegister(models.ModerationModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin/applications [get]")
	i.mustRegister(models.ModerationModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin/reports [get]")
	i.mustRegister(models.ModerationModule, models.ModeratePermission, AdminRoleSet, "/api/v1/admin/reports/{id} [put]")
}

func (i *impl) freelancers() {
	i.mustRegister(models.FreelancerModule, models.EditPermission, JobSeekerRoleSet, "/api/v1/freelancers [post]")
	i.mustRegister(models.FreelancerModule, models.ViewPermission, JobSeekerRoleSet, "/api/v1/freelancers/me [get]")
	i.mustRegister(models.FreelancerModule, models.EditPermission, JobSeekerRoleSet, "/api/v1/freelancers/me [put]")
	i.mustRegister(models.FreelancerModule, models.EditPermission, JobSeekerRoleSet, "/api/v1/freelancers/me [delete]")
	i.mustRegister(models.FreelancerModule, models.ViewPermission, ContactReviewRoleSet, "/api/v1/freelancers/contact-requests [get]")
	i.mustRegister(models.ModerationModule, models.ModeratePermission, AdminRoleSet, "/api/v1/freelancers/contact-requests/{id} [put]")
	i.mustRegister(models.FreelancerModule, models.CreatePermission, AllRoles, "/api/v1/freelancers/{id}/contact [post]")
}

func (i *impl) chats() {
	i.mustRegister(models.ChatModule, models.CreatePermission, ChatRoleSet, "/api/v1/chats/application/{id} [post]")
	i.mustRegister(models.ChatModule, models.ViewPermission, ChatRoleSet, "/api/v1/chats [get]")
	i.mustRegister(models.ChatModule, models.ViewPermission, ChatRoleSet, "/api/v1/chats/{id} [get]")
	i.mustRegister(models.ChatModule, models.ViewPermission, ChatRoleSet, "/api/v1/chats/{id}/messages [get]")
	i.mustRegister(models.ReportModule, models.CreatePermission, ChatRoleSet, "/api/v1/chats/{id}/report [post]")
	i.mustRegister(models.ChatModule, models.ViewPermission, ChatRoleSet, "/api/v1/ws [get]")
	i.mustRegister(models.ChatModule, models.ViewPermission, AllRoles, "/api/v1/files/{folder}/{name} [get]")
}

func (i *impl) notifications() {
	i.mustRegister(models.NotificationModule, models.ViewPermission, AllRoles, "/api/v1/notifications [get]")
	i.mustRegister(models.NotificationModule, models.ViewPermission, AllRoles, "/api/v1/notifications/unread_count [get]")
	i.mustRegister(models.NotificationModule, models.EditPermission, AllRoles, "/api/v1/notifications/{id}/read [put]")
	i.mustRegister(models.NotificationModule, models.EditPermission, AllRoles, "/api/v1/notifications/read_all [put]")
	i.mustRegister(models.NotificationModule, models.ViewPermission, AllRoles, "/api/v1/me/permissions [get]")
}
