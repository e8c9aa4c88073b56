// SPDX-License-Identifier: MPL-2.0

package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modkit/modkit/internal/config"
)

func touch(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestConfig(entries ...config.ModuleEntry) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Modules = entries
	return cfg
}

func entry(name string, opts map[string]any) config.ModuleEntry {
	return config.ModuleEntry{Name: config.ModuleName(name), Options: opts}
}

func TestModule_Paths(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	m := New("Blog", nil, newTestConfig(), base)

	if got, want := m.RelativeDirectory(), "app/Modules/Blog"; got != want {
		t.Errorf("RelativeDirectory() = %q, want %q", got, want)
	}
	if got, want := m.Directory(), filepath.Join(base, "app", "Modules", "Blog"); got != want {
		t.Errorf("Directory() = %q, want %q", got, want)
	}
	if got := m.MigrationsPath(true); got != "Database/Migrations" {
		t.Errorf("MigrationsPath(true) = %q", got)
	}
	if got, want := m.MigrationsPath(false), filepath.Join(base, "app", "Modules", "Blog", "Database", "Migrations"); got != want {
		t.Errorf("MigrationsPath(false) = %q, want %q", got, want)
	}
	if got, want := m.FilePath(config.FileCheckRoute, "api"), filepath.Join(m.Directory(), "routes", "api.php"); got != want {
		t.Errorf("FilePath(Route, api) = %q, want %q", got, want)
	}
}

func TestModule_ClassNames(t *testing.T) {
	t.Parallel()

	m := New("Blog", nil, newTestConfig(), t.TempDir())

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"service provider", m.ServiceProviderClass(), `App\Modules\Blog\BlogServiceProvider`},
		{"seeder", m.SeederClass(""), `App\Modules\Blog\Database\Seeds\BlogDatabaseSeeder`},
		{"seeder override", m.SeederClass("CommentDatabaseSeeder"), `App\Modules\Blog\Database\Seeds\CommentDatabaseSeeder`},
		{"controllers", m.RoutingControllerNamespace(), `App\Modules\Blog\Http\Controllers`},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestModule_Active(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig()
	tests := []struct {
		opts map[string]any
		want bool
	}{
		{nil, true},
		{map[string]any{"active": true}, true},
		{map[string]any{"active": false}, false},
		{map[string]any{"routes": false}, true},
	}
	for _, tt := range tests {
		if got := New("Blog", tt.opts, cfg, "").Active(); got != tt.want {
			t.Errorf("Active() with %v = %v, want %v", tt.opts, got, tt.want)
		}
	}
}

func TestModule_HasResourcePrecedence(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	cfg := newTestConfig()
	dir := filepath.Join(base, "app", "Modules", "Blog")
	touch(t, filepath.Join(dir, "BlogServiceProvider.php"))
	touch(t, filepath.Join(dir, "routes", "web.php"))
	touch(t, filepath.Join(dir, "Database", "Seeds", "BlogDatabaseSeeder.php"))

	tests := []struct {
		name  string
		opts  map[string]any
		check func(*Module) bool
		want  bool
	}{
		{"provider probed present", nil, (*Module).HasServiceProvider, true},
		{"provider option false beats file", map[string]any{"provider": false}, (*Module).HasServiceProvider, false},
		{"factory probed absent", nil, (*Module).HasFactory, false},
		{"factory option true skips probe", map[string]any{"factory": true}, (*Module).HasFactory, true},
		{"seeder probed present", nil, (*Module).HasSeeder, true},
		{"seeder option false", map[string]any{"seeder": false}, (*Module).HasSeeder, false},
		{"web routes probed", nil, func(m *Module) bool { return m.HasRoutes("") }, true},
		{"api routes probed absent", nil, func(m *Module) bool { return m.HasRoutes("api") }, false},
		{"routes false suppresses file", map[string]any{"routes": false}, func(m *Module) bool { return m.HasRoutes("web") }, false},
		{"routes true covers api", map[string]any{"routes": true}, func(m *Module) bool { return m.HasRoutes("api") }, true},
		{"typed option beats routes", map[string]any{"routes": true, "routes_api": false}, func(m *Module) bool { return m.HasRoutes("api") }, false},
		{"typed option leaves other types", map[string]any{"routes_api": true}, func(m *Module) bool { return m.HasRoutes("web") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := New("Blog", tt.opts, cfg, base)
			if got := tt.check(m); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModule_OptionsIsCopy(t *testing.T) {
	t.Parallel()

	m := New("Blog", map[string]any{"active": true}, newTestConfig(), "")
	opts := m.Options()
	opts["active"] = false

	if !m.Active() {
		t.Error("mutating Options() changed the module")
	}
}
