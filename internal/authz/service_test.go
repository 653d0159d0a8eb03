package authz

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newAuthzService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:authz_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service: %v", err)
	}
	return svc
}

func TestBootstrapGrantsInheritedReadAccess(t *testing.T) {
	svc := newAuthzService(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if err := svc.SetAdminRoles(7, []string{"support"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}

	ok, err := svc.EnforceAdmin(7, "/api/v1/admin/products", "GET")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if !ok {
		t.Fatal("support should inherit auditor read access")
	}

	ok, err = svc.EnforceAdmin(7, "/api/v1/admin/products", "POST")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if ok {
		t.Fatal("support must not create products")
	}

	ok, err = svc.EnforceAdmin(7, "/api/v1/admin/orders/42/status", "PATCH")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if !ok {
		t.Fatal("support should update order status")
	}
}

func TestCatalogManagerWildcardActions(t *testing.T) {
	svc := newAuthzService(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := svc.SetAdminRoles(3, []string{"catalog_manager"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}

	for _, action := range []string{"GET", "POST"} {
		ok, err := svc.EnforceAdmin(3, "/admin/products", action)
		if err != nil {
			t.Fatalf("enforce %s: %v", action, err)
		}
		if !ok {
			t.Fatalf("catalog_manager should allow %s on products", action)
		}
	}

	ok, err := svc.EnforceAdmin(3, "/admin/users/9/status", "PATCH")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if ok {
		t.Fatal("catalog_manager must not manage users")
	}
}

func TestSetAdminRolesReplacesAssignment(t *testing.T) {
	svc := newAuthzService(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if err := svc.SetAdminRoles(5, []string{"catalog_manager"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}
	if err := svc.SetAdminRoles(5, []string{"support"}); err != nil {
		t.Fatalf("replace roles: %v", err)
	}

	roles, err := svc.GetAdminRoles(5)
	if err != nil {
		t.Fatalf("get roles: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:support" {
		t.Fatalf("expected single support role, got %v", roles)
	}

	ok, err := svc.EnforceAdmin(5, "/admin/products", "POST")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if ok {
		t.Fatal("old catalog_manager grant should be gone")
	}
}

func TestGrantRevokeRoundTrip(t *testing.T) {
	svc := newAuthzService(t)

	if err := svc.Grant("ops", Policy{Object: "/admin/banners", Action: "post"}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := svc.SetAdminRoles(11, []string{"ops"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}

	ok, err := svc.EnforceAdmin(11, "/admin/banners", "POST")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if !ok {
		t.Fatal("granted policy should allow access")
	}

	if err := svc.Revoke("ops", Policy{Object: "/admin/banners", Action: "POST"}); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = svc.EnforceAdmin(11, "/admin/banners", "POST")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if ok {
		t.Fatal("revoked policy should deny access")
	}
}

func TestNormalizeHelpers(t *testing.T) {
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatal("blank role must be rejected")
	}
	role, err := NormalizeRole("Role:Support")
	if err != nil {
		t.Fatalf("normalize role: %v", err)
	}
	if role != "role:support" {
		t.Fatalf("unexpected role %q", role)
	}
	if got := NormalizeObject("/api/v1/admin/orders"); got != "/admin/orders" {
		t.Fatalf("unexpected object %q", got)
	}
	if got := NormalizeObject("admin/orders"); got != "/admin/orders" {
		t.Fatalf("unexpected object %q", got)
	}
	if got := NormalizeAction(" patch "); got != "PATCH" {
		t.Fatalf("unexpected action %q", got)
	}
}
