package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hydrosignals/econet-linker/internal/logging"
	"github.com/hydrosignals/econet-linker/model"
)

func TestBuiltin_ArizonaSet(t *testing.T) {
	cat := Builtin()
	if len(cat.Contaminants) != 4 {
		t.Fatalf("builtin has %d contaminants, want 4", len(cat.Contaminants))
	}

	pfbs, ok := cat.Contaminant("PFBS")
	if !ok {
		t.Fatalf("PFBS missing from builtin catalog")
	}
	if pfbs.Cref != 4.0 || pfbs.Unit != model.NanogramsPerLitre {
		t.Errorf("PFBS = %+v", pfbs)
	}

	ecoli, _ := cat.Contaminant("Ecoli")
	if ecoli.Weight != 3.0 || ecoli.Cref != 235.0 {
		t.Errorf("Ecoli = %+v", ecoli)
	}

	if cat.Defaults.CrefDefault != 5.0 || cat.Defaults.LambdaCLF != 10.0 || cat.Defaults.MuCBF != 100.0 {
		t.Errorf("defaults = %+v", cat.Defaults)
	}
}

func TestLoad_OverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	src := `
defaults:
  cref_default: 2.5
  lambda_clf: 1
  mu_cbf: 2
contaminants:
  - id: Nitrate
    weight: 1.5
    cref: 10
    unit: mg/L
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write temp catalog: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cat.Defaults.CrefDefault != 2.5 {
		t.Errorf("CrefDefault = %v", cat.Defaults.CrefDefault)
	}
	if len(cat.Contaminants) != 1 || cat.Contaminants[0].ID != "Nitrate" {
		t.Errorf("contaminants = %+v", cat.Contaminants)
	}
	if _, ok := cat.Contaminant("PFBS"); ok {
		t.Errorf("file catalog still exposes builtin PFBS")
	}
}

func TestLoad_KeepsBuiltinDefaultsWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	src := `
contaminants:
  - id: Nitrate
    weight: 1
    cref: 10
    unit: mg/L
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write temp catalog: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cat.Defaults != Builtin().Defaults {
		t.Fatalf("defaults = %+v, want builtin", cat.Defaults)
	}
}

func TestLoadOrBuiltin_MissingFileFallsBack(t *testing.T) {
	cat := LoadOrBuiltin("does/not/exist.yaml", logging.Noop())
	if len(cat.Contaminants) != len(Builtin().Contaminants) {
		t.Fatalf("fallback catalog = %+v", cat)
	}
}

func TestContaminantConfigs_PreservesOrder(t *testing.T) {
	cfgs := Builtin().ContaminantConfigs()
	if cfgs[0].ID != "PFBS" || cfgs[3].ID != "SalinityTDS" {
		t.Fatalf("order = %v, %v", cfgs[0].ID, cfgs[3].ID)
	}
}
