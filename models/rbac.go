package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	JobModule          Module = "JOB"
	ApplicationModule  Module = "APPLICATION"
	EmployerModule     Module = "EMPLOYER"
	ModerationModule   Module = "MODERATION"
	ChatModule         Module = "CHAT"
	NotificationModule Module = "NOTIFICATION"
	ReportModule       Module = "REPORT"
	FreelancerModule   Module = "FREELANCER"
)

type Permission string

const (
	CreatePermission   Permission = "CREATE"
	EditPermission     Permission = "EDIT"
	ViewPermission     Permission = "VIEW"
	ApplyPermission    Permission = "APPLY"
	ManagePermission   Permission = "MANAGE"
	ModeratePermission Permission = "MODERATE"
)
