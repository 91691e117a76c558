package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	"hire-backend/models"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/jobs/{id}/apply [post]")
		require.Nil(t, err)
		require.Equal(t, POST, method)
		r1 := pathToRegex(path)

		require.True(t, r1.MatchString("/api/v1/jobs/123-321/apply"))
		require.False(t, r1.MatchString("/api/v1/jobs/apply"))

		path, method, err = parseSwaggerPattern("/api/v1/admin/jobs/{id}/approve [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r2 := pathToRegex(path)
		require.True(t, r2.MatchString("/api/v1/admin/jobs/qwe-ewr123-wr-12/approve"))
		require.False(t, r2.MatchString("/api/v1/admin/jobs/approve"))

		_, _, err = parseSwaggerPattern("/api/v1/jobs")
		require.Error(t, err)
	})

	t.Run(`route rules`, func(t *testing.T) {
		NewHandler()

		rule, found := Instance.GetRuleFunc("post", "/api/v1/jobs")
		require.True(t, found)
		require.True(t, rule("u1", models.EmployerRole, "/api/v1/jobs"))
		require.False(t, rule("u1", models.JobSeekerRole, "/api/v1/jobs"))

		rule, found = Instance.GetRuleFunc("POST", "/api/v1/jobs/abc/apply/")
		require.True(t, found)
		require.True(t, rule("u1", models.JobSeekerRole, ""))
		require.False(t, rule("u1", models.EmployerRole, ""))

		rule, found = Instance.GetRuleFunc("PUT", "/api/v1/admin/jobs/abc/approve")
		require.True(t, found)
		require.True(t, rule("u1", models.AdminRole, ""))
		require.False(t, rule("u1", models.EmployerRole, ""))

		rule, found = Instance.GetRuleFunc("DELETE", "/api/v1/admin/jobs/abc")
		require.True(t, found)
		require.True(t, rule("u1", models.AdminRole, ""))
		require.False(t, rule("u1", models.EmployerRole, ""))

		_, found = Instance.GetRuleFunc("GET", "/api/v1/jobs")
		require.False(t, found, "public listing has no rule")

		rule, found = Instance.GetRuleFunc("GET", "/api/v1/freelancers/me")
		require.True(t, found)
		require.True(t, rule("u1", models.JobSeekerRole, ""))
		require.False(t, rule("u1", models.EmployerRole, ""))
		_, found = Instance.GetRuleFunc("GET", "/api/v1/freelancers/abc")
		require.False(t, found, "freelancer details are public")

		rule, found = Instance.GetRuleFunc("GET", "/api/v1/freelancers/contact-requests")
		require.True(t, found)
		require.True(t, rule("u1", models.AdminRole, ""))
		require.True(t, rule("u1", models.JobSeekerRole, ""))
		require.False(t, rule("u1", models.EmployerRole, ""))
		rule, found = Instance.GetRuleFunc("PUT", "/api/v1/freelancers/contact-requests/abc")
		require.True(t, found)
		require.False(t, rule("u1", models.JobSeekerRole, ""))

		permissions := Instance.GetPermissions(models.JobSeekerRole)
		require.Contains(t, permissions[models.ApplicationModule], models.ApplyPermission)
		require.NotContains(t, permissions, models.ModerationModule)
	})

	t.Run(`component guard`, func(t *testing.T) {
		employer := identity.New("employer-1", models.EmployerRole)
		other := identity.New("employer-2", models.EmployerRole)
		admin := identity.New("admin-1", models.AdminRole)

		require.True(t, errs.Is(Check(identity.Identity{}, "close job", nil, nil), errs.KindForbidden))
		require.NoError(t, RequireRole(employer, "create job", models.EmployerRole))
		require.True(t, errs.Is(RequireRole(admin, "create job", models.EmployerRole), errs.KindForbidden))

		owns := OwnedBy("employer-1")
		require.NoError(t, Check(employer, "close job", EmployerRoleSet, owns))
		require.True(t, errs.Is(Check(other, "close job", EmployerRoleSet, owns), errs.KindForbidden))
		require.NoError(t, Check(admin, "view application", nil, OrAdmin(owns)))
		require.NoError(t, RequireAdmin(admin, "approve job"))
		require.Error(t, RequireAdmin(employer, "approve job"))
	})
}
