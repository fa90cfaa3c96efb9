package rbac

import "testing"

func TestCheckerHas(t *testing.T) {
	c := NewChecker(nil)

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"student", "exam:view", true},
		{"student", "exam:take", true},
		{"student", "exam:create", false},
		{"student", "result:view-own", true},
		{"admin", "exam:create", true},
		{"admin", "anything:at-all", true},
		{"", "exam:view", false},
		{"ghost", "exam:view", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q,%q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestCheckerWildcardPrefix(t *testing.T) {
	c := NewChecker(map[string][]string{"auditor": {"result:*"}})
	if !c.Has("auditor", "result:view-own") {
		t.Fatal("prefix wildcard should match")
	}
	if c.Has("auditor", "exam:view") {
		t.Fatal("prefix wildcard must not match other namespaces")
	}
}
