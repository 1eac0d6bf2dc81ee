package memory

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyInfraAndCommandsImportManifestBackends keeps manifest persistence
// behind domain.ManifestStore. The runtime packages must accept the
// interface; only the command tree picks a concrete backend. Test binaries
// are exempt so tests can assemble fixtures on this in-memory store.
func TestOnlyInfraAndCommandsImportManifestBackends(t *testing.T) {
	backendPrefix := "culturecore/internal/infra/persistence"
	allowedPrefixes := []string{
		"culturecore/internal/infra/persistence",
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
		allowed := false
		for _, p := range allowedPrefixes {
			if pkg.PkgPath == p || strings.HasPrefix(pkg.PkgPath, p+"/") {
				allowed = true
				break
			}
		}
		if allowed {
			continue
		}
		for importPath := range pkg.Imports {
			if importPath == backendPrefix || strings.HasPrefix(importPath, backendPrefix+"/") {
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
			t.Errorf("forbidden import of manifest backend package: %s", v)
		}
		t.Fatalf("found %d forbidden imports of manifest backend packages", len(violations))
	}
}
