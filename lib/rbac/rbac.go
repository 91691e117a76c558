package rbac

import (
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"hire-backend/models"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	i := &impl{
		routes:      map[HTTPMethod]*methodRoutes{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	Instance = i
}

type impl struct {
	routes      map[HTTPMethod]*methodRoutes
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	table, ok := i.routes[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil, false
	}
	path = cleanPath(path)
	if allow, ok := table.literal[path]; ok {
		return allow, true
	}
	for _, route := range table.params {
		if route.re.MatchString(path) {
			return route.allow, true
		}
	}
	return nil, false
}

func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	i.grant(module, permission, roles)

	table := i.routes[method]
	if table == nil {
		table = &methodRoutes{literal: map[string]models.RbacFunc{}}
		i.routes[method] = table
	}
	allow := allowRoles(roles)
	if !strings.Contains(path, "{") {
		table.literal[path] = allow
		return nil
	}
	for _, route := range table.params {
		if route.source == path {
			return errors.Errorf("rule for %s %s registered twice", method, path)
		}
	}
	table.params = append(table.params, paramRoute{
		source: path,
		re:     pathToRegex(path),
		allow:  allow,
	})
	return nil
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

// grant records the permission for the map served by /me/permissions.
func (i *impl) grant(module models.Module, permission models.Permission, roles []models.UserRole) {
	for _, role := range roles {
		byModule, ok := i.permissions[role]
		if !ok {
			byModule = map[models.Module][]models.Permission{}
			i.permissions[role] = byModule
		}
		if !slices.Contains(byModule[module], permission) {
			byModule[module] = append(byModule[module], permission)
		}
	}
}

func allowRoles(roles []models.UserRole) models.RbacFunc {
	allowed := slices.Clone(roles)
	return func(_ string, role models.UserRole, _ string) bool {
		return slices.Contains(allowed, role)
	}
}

// pathToRegex turns "/api/v1/jobs/{id}/apply" into a regexp where each {param} matches one segment.
func pathToRegex(path string) *regexp.Regexp {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for idx, segment := range segments {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segments[idx] = `[^/]+`
			continue
		}
		segments[idx] = regexp.QuoteMeta(segment)
	}
	return regexp.MustCompile("^/" + strings.Join(segments, "/") + "$")
}

// parseSwaggerPattern splits "/api/v1/jobs/{id} [put]" into path and method.
func parseSwaggerPattern(pattern string) (string, HTTPMethod, error) {
	open := strings.LastIndex(pattern, "[")
	end := strings.LastIndex(pattern, "]")
	if open == -1 || end < open {
		return "", "", errors.Errorf("method not provided for pattern %q", pattern)
	}
	method := HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[open+1 : end])))
	if method == "" {
		return "", "", errors.Errorf("method not provided for pattern %q", pattern)
	}
	return cleanPath(strings.TrimSpace(pattern[:open])), method, nil
}

func cleanPath(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	return "/" + strings.Join(parts, "/")
}
