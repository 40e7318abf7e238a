package plants

import "testing"

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	if len(catalog.All()) == 0 {
		t.Fatal("default catalog must not be empty")
	}

	p, ok := catalog.Get("lirio-acuatico")
	if !ok {
		t.Fatal("expected lirio-acuatico in the default catalog")
	}
	if p.ScientificName != "Eichhornia crassipes" {
		t.Errorf("unexpected scientific name %q", p.ScientificName)
	}
	if p.Severity != SeverityExtreme {
		t.Errorf("unexpected severity %q", p.Severity)
	}

	if _, ok := catalog.Get("no-such-plant"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestCatalog_TaxonIDs(t *testing.T) {
	catalog := DefaultCatalog()
	ids := catalog.TaxonIDs()

	// Only plants mapped to an iNaturalist taxon contribute.
	expected := []int{962637, 64017}
	if len(ids) != len(expected) {
		t.Fatalf("expected %d taxon IDs, got %d", len(expected), len(ids))
	}
	for i, want := range expected {
		if ids[i] != want {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want)
		}
	}
}
