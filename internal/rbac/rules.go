package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"exam:view",
		"exam:take",
		"result:view-own",
		"certificate:view-own",
		"dashboard:view",
	},
	"admin": {
		"*", // everything
	},
}
