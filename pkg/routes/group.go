package routes

import "net/http"

// Group organizes routes under a common prefix. Children inherit the
// accumulated prefix of their parents.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	walk("", groups, func(pattern string, route Route) {
		mux.HandleFunc(pattern, route.Handler)
	})
}

// Patterns returns the mux patterns the groups register, in registration order.
func Patterns(groups ...Group) []string {
	var patterns []string
	walk("", groups, func(pattern string, _ Route) {
		patterns = append(patterns, pattern)
	})
	return patterns
}

func walk(parentPrefix string, groups []Group, visit func(string, Route)) {
	for _, group := range groups {
		fullPrefix := parentPrefix + group.Prefix
		for _, route := range group.Routes {
			visit(route.Method+" "+fullPrefix+route.Pattern, route)
		}
		walk(fullPrefix, group.Children, visit)
	}
}
