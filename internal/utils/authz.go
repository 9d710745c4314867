package utils

// The authorization policy is a single table consulted before each handler,
// rather than role lists scattered across route wiring. A nil role slice
// means any authenticated user.
var policy = map[string]map[string][]string{
	"tickets": {
		"create":        {"customer", "channel_partner", "system_integrator"},
		"list":          {"service_team", "epr_team", "channel_partner", "system_integrator"},
		"update":        {"service_team", "epr_team"},
		"upload_photos": nil,
	},
	"partner_requests": {
		"list":   {"channel_partner", "epr_team"},
		"create": {"channel_partner"},
		"update": {"channel_partner", "service_team", "epr_team"},
	},
	"integrator_projects": {
		"list":        {"system_integrator", "epr_team"},
		"fault_stats": {"system_integrator", "epr_team"},
		"create":      {"system_integrator"},
		"add_devices": {"system_integrator"},
	},
	"notifications": {
		"update_status": {"service_team", "epr_team"},
		"test":          {"service_team", "epr_team"},
	},
	"profile": {
		"read":  nil,
		"write": nil,
	},
}

func PolicyFor(resource, action string) ([]string, bool) {
	actions, ok := policy[resource]
	if !ok {
		return nil, false
	}
	roles, ok := actions[action]
	return roles, ok
}
