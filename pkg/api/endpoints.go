package api

import (
	"fmt"
	"net/url"
)

// DefaultBaseURL is the API root the dashboard talks to by default.
const DefaultBaseURL = "http://localhost:3000/api/v1"

// Routes relative to the base URL.
const (
	PathRegister = "/auth/register"
	PathLogin    = "/auth/login"
	PathCredits  = "/user/currency"
	PathModules  = "/user/modules"
	PathDeploy   = "/module/deploy"
	pathDelete   = "/module/delete/%d"
	pathCallFunc = "/function/call/%d/%s"
)

// DeleteModulePath returns the route deleting the module with the given id.
func DeleteModulePath(id int64) string {
	return fmt.Sprintf(pathDelete, id)
}

// CallFunctionPath returns the route calling function name of module id.
func CallFunctionPath(id int64, name string) string {
	return fmt.Sprintf(pathCallFunc, id, url.PathEscape(name))
}
