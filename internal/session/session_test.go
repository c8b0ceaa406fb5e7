package session

import (
	"testing"
	"time"

	"github.com/cixicommerce/cixi-admin/internal/domain"
)

func testManager() *Manager {
	return NewManager("test-secret", "cixi_session", 1)
}

func TestIssueReturnsResolvedIdentity(t *testing.T) {
	m := testManager()
	user := &domain.SysUser{ID: 42, Username: "ana", Email: "ana@cixi.shop", Role: domain.RoleAdmin}

	token, ident, err := m.Issue(user)
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	// the exchange resolves the identity directly, callers never wait for
	// propagation
	if ident.UserID != 42 || ident.Role != domain.RoleAdmin || !ident.IsAdmin() {
		t.Fatalf("identity = %+v", ident)
	}
}

func TestParseRoundTrip(t *testing.T) {
	m := testManager()
	user := &domain.SysUser{ID: 7, Username: "luis", Email: "luis@cixi.shop", Role: domain.RoleCustomer}
	token, _, err := m.Issue(user)
	if err != nil {
		t.Fatal(err)
	}

	ident, err := m.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if ident.UserID != 7 || ident.Email != "luis@cixi.shop" || ident.IsAdmin() {
		t.Fatalf("identity = %+v", ident)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := testManager()
	token, _, err := m.Issue(&domain.SysUser{ID: 1, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	other := NewManager("other-secret", "cixi_session", 1)
	if _, err := other.Parse(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	m := testManager()
	m.TTL = -time.Minute
	token, _, err := m.Issue(&domain.SysUser{ID: 1, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expired token must not parse")
	}
}
