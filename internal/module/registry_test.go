// SPDX-License-Identifier: MPL-2.0

package module

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func names(mods []*Module) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.Name()
	}
	return out
}

func TestRegistry_AllAndActive(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(
		entry("Blog", map[string]any{"active": true}),
		entry("Shop", map[string]any{"active": false}),
		entry("Forum", nil),
	)
	r := NewRegistry(cfg, t.TempDir())

	all := r.All()
	if got := names(all); !slices.Equal(got, []string{"Blog", "Shop", "Forum"}) {
		t.Errorf("All() = %v", got)
	}

	active := r.Active()
	if got := names(active); !slices.Equal(got, []string{"Blog", "Forum"}) {
		t.Errorf("Active() = %v", got)
	}
	for _, m := range active {
		if !slices.Contains(all, m) {
			t.Errorf("active module %s not in All()", m.Name())
		}
		if v, ok := m.Options()["active"]; ok && v == false {
			t.Errorf("active module %s has active=false", m.Name())
		}
	}
}

func TestRegistry_MemoizesModules(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(entry("Blog", nil))
	r := NewRegistry(cfg, t.TempDir())

	first, _ := r.Find("Blog")
	cfg.Modules = append(cfg.Modules, entry("Shop", nil))
	second, _ := r.Find("Blog")

	if first != second {
		t.Error("Find() returned different instances across calls")
	}
	if r.Exists("Shop") {
		t.Error("registry recomputed after first access")
	}
}

func TestRegistry_FindNormalizesName(t *testing.T) {
	t.Parallel()

	r := NewRegistry(newTestConfig(entry("Blog", nil), entry("UserProfile", nil)), "")

	tests := []struct {
		input string
		want  string
	}{
		{"blog", "Blog"},
		{"Blog", "Blog"},
		{"user_profile", "UserProfile"},
		{"user-profile", "UserProfile"},
		{"userProfile", "UserProfile"},
	}
	for _, tt := range tests {
		m, ok := r.Find(tt.input)
		if !ok {
			t.Errorf("Find(%q) not found", tt.input)
			continue
		}
		if m.Name() != tt.want {
			t.Errorf("Find(%q) = %s, want %s", tt.input, m.Name(), tt.want)
		}
	}

	if r.Exists("shop") {
		t.Error("Exists(shop) = true")
	}
	_, err := r.MustFind("shop")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Name != "Shop" || !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("MustFind(shop) error = %v", err)
	}
}

func TestRegistry_Filters(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	modules := filepath.Join(base, "app", "Modules")
	touch(t, filepath.Join(modules, "Blog", "BlogServiceProvider.php"))
	touch(t, filepath.Join(modules, "Blog", "routes", "api.php"))
	touch(t, filepath.Join(modules, "Shop", "ShopServiceProvider.php"))
	touch(t, filepath.Join(modules, "Shop", "Database", "Factories", "ShopModelFactory.php"))
	touch(t, filepath.Join(modules, "Forum", "ForumServiceProvider.php"))

	cfg := newTestConfig(
		entry("Blog", map[string]any{"routes": true}),
		entry("Shop", map[string]any{"active": false}),
		entry("Forum", map[string]any{"provider": false, "seeder": true}),
	)
	r := NewRegistry(cfg, base)

	if got := names(r.WithServiceProviders()); !slices.Equal(got, []string{"Blog"}) {
		t.Errorf("WithServiceProviders() = %v", got)
	}
	if got := names(r.WithRoutes("web")); !slices.Equal(got, []string{"Blog"}) {
		t.Errorf("WithRoutes(web) = %v", got)
	}
	if got := names(r.WithFactories()); len(got) != 0 {
		t.Errorf("WithFactories() = %v, inactive Shop must be excluded", got)
	}
	if got := names(r.WithSeeders()); !slices.Equal(got, []string{"Forum"}) {
		t.Errorf("WithSeeders() = %v", got)
	}

	wantPaths := []string{
		filepath.Join(modules, "Blog", "Database", "Migrations"),
		filepath.Join(modules, "Forum", "Database", "Migrations"),
	}
	if got := r.MigrationPaths(); !slices.Equal(got, wantPaths) {
		t.Errorf("MigrationPaths() = %v, want %v", got, wantPaths)
	}
	if got := r.ServiceProviderClasses(); !slices.Equal(got, []string{`App\Modules\Blog\BlogServiceProvider`}) {
		t.Errorf("ServiceProviderClasses() = %v", got)
	}
}

func TestRegistry_Empty(t *testing.T) {
	t.Parallel()

	r := NewRegistry(newTestConfig(), t.TempDir())
	if len(r.All()) != 0 || len(r.Active()) != 0 || len(r.WithServiceProviders()) != 0 {
		t.Error("empty registry returned modules")
	}
	if r.Config() == nil {
		t.Error("Config() = nil")
	}
}
