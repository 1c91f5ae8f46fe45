package role

import (
	"reflect"
	"testing"
)

func TestPolicyTruthTable(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		wantManage bool
		wantDelete bool
		wantEdit   bool
	}{
		{name: "superadmin", role: SuperAdmin, wantManage: true, wantDelete: true, wantEdit: true},
		{name: "admin", role: Admin, wantManage: false, wantDelete: true, wantEdit: true},
		{name: "editor", role: Editor, wantManage: false, wantDelete: false, wantEdit: true},
		{name: "empty", role: "", wantManage: false, wantDelete: false, wantEdit: false},
		{name: "lowercase", role: "superadmin", wantManage: false, wantDelete: false, wantEdit: false},
		{name: "unknown", role: "OWNER", wantManage: false, wantDelete: false, wantEdit: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageUsers(tt.role); got != tt.wantManage {
				t.Fatalf("CanManageUsers(%q) = %v, want %v", tt.role, got, tt.wantManage)
			}
			if got := CanDelete(tt.role); got != tt.wantDelete {
				t.Fatalf("CanDelete(%q) = %v, want %v", tt.role, got, tt.wantDelete)
			}
			if got := CanEdit(tt.role); got != tt.wantEdit {
				t.Fatalf("CanEdit(%q) = %v, want %v", tt.role, got, tt.wantEdit)
			}
		})
	}
}

func TestAllowLists(t *testing.T) {
	if got, want := EditorRoles(), []Role{SuperAdmin, Admin, Editor}; !reflect.DeepEqual(got, want) {
		t.Fatalf("EditorRoles() = %v, want %v", got, want)
	}
	if got, want := DeleterRoles(), []Role{SuperAdmin, Admin}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DeleterRoles() = %v, want %v", got, want)
	}

	// callers must not be able to mutate the shared list
	l := EditorRoles()
	l[0] = "HACKED"
	if EditorRoles()[0] != SuperAdmin {
		t.Fatalf("EditorRoles returned a shared slice")
	}
}

func TestAllowListsAgreeWithPredicates(t *testing.T) {
	for _, r := range []Role{SuperAdmin, Admin, Editor, "", "VIEWER"} {
		if Has(EditorRoles(), r) != CanEdit(r) {
			t.Fatalf("EditorRoles membership disagrees with CanEdit for %q", r)
		}
		if Has(DeleterRoles(), r) != CanDelete(r) {
			t.Fatalf("DeleterRoles membership disagrees with CanDelete for %q", r)
		}
	}
}

func TestParse(t *testing.T) {
	if r, ok := Parse("ADMIN"); !ok || r != Admin {
		t.Fatalf("Parse(ADMIN) = %q, %v", r, ok)
	}
	if _, ok := Parse("admin"); ok {
		t.Fatalf("Parse should be case sensitive")
	}
}
