package models

type UserRole string

const (
	EmployerRole  UserRole = "employer"
	JobSeekerRole UserRole = "job_seeker"
	AdminRole     UserRole = "admin"
)

var roleHumanName = map[UserRole]string{
	EmployerRole:  "Employer",
	JobSeekerRole: "Job seeker",
	AdminRole:     "Administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

func (r UserRole) IsKnown() bool {
	_, ok := roleHumanName[r]
	return ok
}
