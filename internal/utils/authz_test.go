package utils

import (
	"reflect"
	"testing"
)

func TestPolicyFor(t *testing.T) {
	roles, ok := PolicyFor("tickets", "update")
	if !ok {
		t.Fatal("tickets/update has no policy")
	}
	if !reflect.DeepEqual(roles, []string{"service_team", "epr_team"}) {
		t.Errorf("tickets/update roles = %v", roles)
	}

	roles, ok = PolicyFor("profile", "read")
	if !ok || roles != nil {
		t.Errorf("profile/read = %v, %v; want nil (any authenticated), true", roles, ok)
	}

	if _, ok := PolicyFor("tickets", "delete"); ok {
		t.Error("undefined action must not resolve")
	}
	if _, ok := PolicyFor("bogus", "read"); ok {
		t.Error("undefined resource must not resolve")
	}
}
