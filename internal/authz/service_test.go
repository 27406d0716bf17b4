package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("curator", "/admin/posts/:id", "PATCH"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetAdminRoles(1, []string{"curator"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/posts/42", "patch")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}
	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/posts/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("curator", "/admin/posts", "GET"); err != nil {
		t.Fatalf("grant curator policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("taxonomist", "/admin/categories", "POST"); err != nil {
		t.Fatalf("grant taxonomist policy failed: %v", err)
	}
	if err := svc.SetAdminRoles(2, []string{"curator"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	if err := svc.SetAdminRoles(2, []string{"taxonomist"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:taxonomist" {
		t.Fatalf("roles want [role:taxonomist], got=%v", roles)
	}
	if allow, _ := svc.EnforceAdmin(2, "/admin/posts", "GET"); allow {
		t.Fatalf("expected old role permission removed")
	}
	if allow, _ := svc.EnforceAdmin(2, "/admin/categories", "POST"); !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("curator", "/admin/comments/:id", "DELETE"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	removed, err := svc.RevokeRolePolicy("curator", "/api/v1/admin/comments/:id", "delete")
	if err != nil || !removed {
		t.Fatalf("revoke want removed, got removed=%v err=%v", removed, err)
	}
	policies, err := svc.GetRolePolicies("curator")
	if err != nil {
		t.Fatalf("get policies failed: %v", err)
	}
	if len(policies) != 0 {
		t.Fatalf("policies want empty, got=%v", policies)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/posts/:id", want: "/admin/posts/:id"},
		{in: "/admin/posts/:id", want: "/admin/posts/:id"},
		{in: "admin/categories", want: "/admin/categories"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		if got := NormalizeObject(item.in); got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestNormalizeRoleRejectsReserved(t *testing.T) {
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatalf("expected empty role rejected")
	}
	if _, err := NormalizeRole("__anchor__"); err == nil {
		t.Fatalf("expected anchor role rejected")
	}
	if got, _ := NormalizeRole("chief editor"); got != "role:chief_editor" {
		t.Fatalf("unexpected normalized role: %s", got)
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap should be idempotent: %v", err)
	}
	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := map[string]bool{"role:readonly_auditor": true, "role:moderator": true, "role:editor": true}
	for _, role := range roles {
		delete(want, role)
	}
	if len(want) != 0 {
		t.Fatalf("builtin roles missing: %v", want)
	}

	if err := svc.SetAdminRoles(3, []string{RoleModerator}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	cases := []struct {
		obj, act string
		want     bool
	}{
		{"/admin/moderation-logs", "GET", true},
		{"/admin/posts/7", "PATCH", true},
		{"/admin/comments/9", "DELETE", true},
		{"/admin/categories", "POST", false},
		{"/admin/comment-counts/sweep", "POST", false},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceAdmin(3, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.act, tc.obj, err)
		}
		if allow != tc.want {
			t.Fatalf("moderator %s %s want=%v got=%v", tc.act, tc.obj, tc.want, allow)
		}
	}

	if err := svc.SetAdminRoles(4, []string{RoleEditor}); err != nil {
		t.Fatalf("set editor role failed: %v", err)
	}
	if allow, _ := svc.EnforceAdmin(4, "/admin/categories/5", "PUT"); !allow {
		t.Fatalf("editor should manage categories")
	}
	if allow, _ := svc.EnforceAdmin(4, "/admin/posts/5", "DELETE"); !allow {
		t.Fatalf("editor should inherit moderator permissions")
	}
}
