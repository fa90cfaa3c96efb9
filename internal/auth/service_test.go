package auth

import "testing"

func TestIssueAndParse(t *testing.T) {
	svc := NewService("test-secret")
	tok, err := svc.IssueJWT("user-1", "Ada Lovelace", "student")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Sub != "user-1" || claims.Name != "Ada Lovelace" || claims.Role != "student" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewService("secret-a").IssueJWT("user-1", "Ada", "student")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewService("secret-b").Parse(tok); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	svc := NewService("test-secret")
	tok, _ := svc.IssueJWT("user-1", "Ada", "admin")
	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q", claims.Role)
	}
}
