package artifact

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyFactoryAndCommandsImportDrivers ensures that artifact store
// backends stay behind the core.Store interface. Only this factory package,
// the backends themselves and the command tree may name a concrete driver;
// everything else accepts a core.Store. Test binaries are exempt so tests
// can build fixtures on the in-memory driver.
func TestOnlyFactoryAndCommandsImportDrivers(t *testing.T) {
	driverPrefix := "culturecore/internal/infra/artifact"
	allowedPrefixes := []string{
		"culturecore/internal/infra/artifact",
		"culturecore/cmd",
	}

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "culturecore/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		if strings.Contains(pkg.ID, ".test") {
			continue
		}
		if hasAnyPrefix(pkg.PkgPath, allowedPrefixes) {
			continue
		}
		for importPath := range pkg.Imports {
			if importPath == driverPrefix || strings.HasPrefix(importPath, driverPrefix+"/") {
				seen[pkg.PkgPath+": "+importPath] = struct{}{}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of artifact driver package: %s", v)
		}
		t.Fatalf("found %d forbidden imports of artifact driver packages", len(violations))
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
