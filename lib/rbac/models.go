package rbac

import (
	"regexp"

	"hire-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
)

// methodRoutes holds the rules of one HTTP method.
// Literal paths are looked up first, parameterised ones in registration order.
type methodRoutes struct {
	literal map[string]models.RbacFunc
	params  []paramRoute
}

type paramRoute struct {
	source string
	re     *regexp.Regexp
	allow  models.RbacFunc
}
