// SPDX-License-Identifier: MPL-2.0

package sorter

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"flsorter/internal/group"
	"flsorter/internal/plugindb"
)

// fixture holds a complete plugin database layout plus an effect registry.
type fixture struct {
	base   string
	db     *plugindb.Database
	regDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	base := t.TempDir()
	for _, dir := range []string{
		"Effects",
		"Generators",
		filepath.Join("Installed", "Effects", "VST3"),
		filepath.Join("Installed", "Effects", "VST"),
		filepath.Join("Installed", "Generators", "VST3"),
		filepath.Join("Installed", "Generators", "VST"),
	} {
		if err := os.MkdirAll(filepath.Join(base, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	db, err := plugindb.New(base)
	if err != nil {
		t.Fatalf("plugindb.New() failed: %v", err)
	}

	return &fixture{base: base, db: db, regDir: t.TempDir()}
}

// install writes an installed VST3 shim for the plugin.
func (f *fixture) install(t *testing.T, pluginName string) {
	t.Helper()

	path := filepath.Join(f.base, "Installed", "Effects", "VST3", pluginName+plugindb.ShimExt)
	if err := os.WriteFile(path, []byte(pluginName), 0o644); err != nil {
		t.Fatalf("write shim: %v", err)
	}
}

// registry saves the given groups and loads an effect registry over them.
func (f *fixture) registry(t *testing.T, groups map[string]group.PluginGroup) *group.Registry {
	t.Helper()

	reg, err := group.LoadRegistry(f.regDir, group.CategoryEffect)
	if err != nil {
		t.Fatalf("LoadRegistry() failed: %v", err)
	}
	for id, g := range groups {
		if err := reg.Save(id, g); err != nil {
			t.Fatalf("Save(%s) failed: %v", id, err)
		}
	}

	reg, err = group.LoadRegistry(f.regDir, group.CategoryEffect)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	return reg
}

// listDir returns the sorted entry names of a directory.
func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestSortCopiesResolvedAndSkipsMissing(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Real")

	reg := f.registry(t, map[string]group.PluginGroup{
		"mix": group.NewPluginGroup("Mix", []string{"Real", "Ghost"}),
	})

	result, err := New(f.db).Sort(reg)
	if err != nil {
		t.Fatalf("Sort() failed: %v", err)
	}

	if result.Plugins != 1 {
		t.Errorf("Plugins = %d, want 1", result.Plugins)
	}
	if result.Folders != 1 {
		t.Errorf("Folders = %d, want 1 (folder counts even with misses)", result.Folders)
	}
	want := []MissingPlugin{{Group: "Mix", Plugin: "Ghost"}}
	if !reflect.DeepEqual(result.Missing, want) {
		t.Errorf("Missing = %v, want %v", result.Missing, want)
	}

	dest := filepath.Join(f.base, "Effects", "Mix")
	if got := listDir(t, dest); !reflect.DeepEqual(got, []string{"Real.fst"}) {
		t.Errorf("destination contains %v, want [Real.fst]", got)
	}
}

func TestSortIdempotent(t *testing.T) {
	f := newFixture(t)
	f.install(t, "ValhallaRoom")
	f.install(t, "FabFilterProQ")

	reg := f.registry(t, map[string]group.PluginGroup{
		"reverb_rack": group.NewPluginGroup("Reverb Rack", []string{"ValhallaRoom", "FabFilterProQ"}),
	})

	engine := New(f.db)
	first, err := engine.Sort(reg)
	if err != nil {
		t.Fatalf("first Sort() failed: %v", err)
	}
	second, err := engine.Sort(reg)
	if err != nil {
		t.Fatalf("second Sort() failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between runs: %+v vs %+v", first, second)
	}

	dest := filepath.Join(f.base, "Effects", "Reverb Rack")
	want := []string{"FabFilterProQ.fst", "ValhallaRoom.fst"}
	if got := listDir(t, dest); !reflect.DeepEqual(got, want) {
		t.Errorf("destination contains %v, want %v (no duplicates)", got, want)
	}
}

func TestSortEmptyGroupSkipped(t *testing.T) {
	f := newFixture(t)

	reg := f.registry(t, map[string]group.PluginGroup{
		"empty": group.NewPluginGroup("Empty", nil),
	})

	result, err := New(f.db).Sort(reg)
	if err != nil {
		t.Fatalf("Sort() failed: %v", err)
	}

	if result.Folders != 0 || result.Plugins != 0 {
		t.Errorf("empty group must not count: %+v", result)
	}
	if !reflect.DeepEqual(result.SkippedGroups, []string{"Empty"}) {
		t.Errorf("SkippedGroups = %v, want [Empty]", result.SkippedGroups)
	}
	if dirExists(filepath.Join(f.base, "Effects", "Empty")) {
		t.Error("no folder may be created for an empty group")
	}
}

func TestSortCopiesPerGroupWithoutCache(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Shared")

	reg := f.registry(t, map[string]group.PluginGroup{
		"one": group.NewPluginGroup("One", []string{"Shared"}),
		"two": group.NewPluginGroup("Two", []string{"Shared"}),
	})

	result, err := New(f.db).Sort(reg)
	if err != nil {
		t.Fatalf("Sort() failed: %v", err)
	}

	if result.Plugins != 2 || result.Folders != 2 {
		t.Errorf("expected one copy per group, got %+v", result)
	}
}

func TestSortUnsortInverse(t *testing.T) {
	f := newFixture(t)
	f.install(t, "ValhallaRoom")
	f.install(t, "FabFilterProQ")

	reg := f.registry(t, map[string]group.PluginGroup{
		"reverb_rack": group.NewPluginGroup("Reverb Rack", []string{"ValhallaRoom", "FabFilterProQ"}),
	})

	engine := New(f.db)
	if _, err := engine.Sort(reg); err != nil {
		t.Fatalf("Sort() failed: %v", err)
	}

	dest := filepath.Join(f.base, "Effects", "Reverb Rack")
	want := []string{"FabFilterProQ.fst", "ValhallaRoom.fst"}
	if got := listDir(t, dest); !reflect.DeepEqual(got, want) {
		t.Fatalf("after sort destination contains %v, want %v", got, want)
	}

	result, err := engine.Unsort(reg)
	if err != nil {
		t.Fatalf("Unsort() failed: %v", err)
	}
	if result.Removed != 2 {
		t.Errorf("Removed = %d, want 2", result.Removed)
	}
	if result.NoGroups {
		t.Error("NoGroups must be false when groups are defined")
	}
	if dirExists(dest) {
		t.Error("emptied destination folder must be removed")
	}
}

func TestUnsortPreservesUnrelatedFiles(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Tracked")

	reg := f.registry(t, map[string]group.PluginGroup{
		"mix": group.NewPluginGroup("Mix", []string{"Tracked"}),
	})

	engine := New(f.db)
	if _, err := engine.Sort(reg); err != nil {
		t.Fatalf("Sort() failed: %v", err)
	}

	dest := filepath.Join(f.base, "Effects", "Mix")
	unrelated := filepath.Join(dest, "notes.txt")
	if err := os.WriteFile(unrelated, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}

	result, err := engine.Unsort(reg)
	if err != nil {
		t.Fatalf("Unsort() failed: %v", err)
	}

	if result.Removed != 1 {
		t.Errorf("Removed = %d, want 1", result.Removed)
	}
	if got := listDir(t, dest); !reflect.DeepEqual(got, []string{"notes.txt"}) {
		t.Errorf("destination contains %v, want the unrelated file only", got)
	}
}

func TestUnsortNoGroups(t *testing.T) {
	f := newFixture(t)

	reg := f.registry(t, nil)

	result, err := New(f.db).Unsort(reg)
	if err != nil {
		t.Fatalf("Unsort() failed: %v", err)
	}
	if !result.NoGroups || result.Removed != 0 {
		t.Errorf("expected NoGroups with zero removals, got %+v", result)
	}
}

func TestUnsortNothingSorted(t *testing.T) {
	f := newFixture(t)

	reg := f.registry(t, map[string]group.PluginGroup{
		"mix": group.NewPluginGroup("Mix", []string{"Never"}),
	})

	result, err := New(f.db).Unsort(reg)
	if err != nil {
		t.Fatalf("Unsort() failed: %v", err)
	}
	if result.NoGroups {
		t.Error("zero removals must not be reported as NoGroups")
	}
	if result.Removed != 0 {
		t.Errorf("Removed = %d, want 0", result.Removed)
	}
}

func TestUnsortToleratesChangedDefinition(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Kept")

	reg := f.registry(t, map[string]group.PluginGroup{
		"mix": group.NewPluginGroup("Mix", []string{"Kept"}),
	})

	engine := New(f.db)
	if _, err := engine.Sort(reg); err != nil {
		t.Fatalf("Sort() failed: %v", err)
	}

	// Definition gains a plugin that was never sorted; its absence on disk
	// is not an error.
	changed := f.registry(t, map[string]group.PluginGroup{
		"mix": group.NewPluginGroup("Mix", []string{"Kept", "AddedLater"}),
	})

	result, err := engine.Unsort(changed)
	if err != nil {
		t.Fatalf("Unsort() failed: %v", err)
	}
	if result.Removed != 1 {
		t.Errorf("Removed = %d, want 1", result.Removed)
	}
}
