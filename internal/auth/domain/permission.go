package domain

import (
	"slices"
	"strings"
)

// Resources exposed by the marketing API, each with a read and write
// permission.
var Resources = []string{"contacts", "campaigns", "emails", "data_events", "assets"}

// Actions available on every resource.
var Actions = []string{"read", "write"}

// PermissionInfo describes one entry of the catalogue.
type PermissionInfo struct {
	Permission  string `json:"permission"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// Permission builds the "resource:action" string.
func Permission(resource, action string) string {
	return resource + ":" + action
}

// Catalogue lists every permission the API understands, ordered by resource
// then action.
func Catalogue() []PermissionInfo {
	out := make([]PermissionInfo, 0, len(Resources)*len(Actions))
	for _, res := range Resources {
		for _, act := range Actions {
			out = append(out, PermissionInfo{
				Permission:  Permission(res, act),
				Resource:    res,
				Action:      act,
				Description: describe(res, act),
			})
		}
	}
	return out
}

// IsKnownPermission reports whether p is in the catalogue.
func IsKnownPermission(p string) bool {
	res, act, ok := strings.Cut(p, ":")
	return ok && slices.Contains(Resources, res) && slices.Contains(Actions, act)
}

func describe(resource, action string) string {
	noun := strings.ReplaceAll(resource, "_", " ")
	if action == "read" {
		return "Read " + noun
	}
	return "Create, update and delete " + noun
}
