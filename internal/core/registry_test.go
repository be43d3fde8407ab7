package core

import (
	"testing"
)

// resetRegistry empties the registry for the duration of a test.
func resetRegistry(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)
}

func TestRegister(t *testing.T) {
	resetRegistry(t)

	Register(SubsetDefinition{
		Info:    SubsetInfo{Key: "g", Group: GroupStellar},
		Include: TeffBand(5300, 6000),
	})

	def, ok := Get("g")
	if !ok {
		t.Fatal("Get(g) not found after Register")
	}
	if def.Info.Label != "g" {
		t.Errorf("Label = %q, want key as default label", def.Info.Label)
	}
	if SubsetCount() != 1 {
		t.Errorf("SubsetCount() = %d, want 1", SubsetCount())
	}
	if _, ok := Get("missing"); ok {
		t.Error("Get(missing) found, want not found")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	resetRegistry(t)

	def := SubsetDefinition{Info: SubsetInfo{Key: "k"}, Include: TeffBand(3800, 5300)}
	Register(def)

	defer func() {
		if recover() == nil {
			t.Error("Register(duplicate) did not panic")
		}
	}()
	Register(def)
}

func TestRegister_NilInclude(t *testing.T) {
	resetRegistry(t)

	defer func() {
		if recover() == nil {
			t.Error("Register(nil include) did not panic")
		}
	}()
	Register(SubsetDefinition{Info: SubsetInfo{Key: "broken"}})
}

func TestAllAndGroups(t *testing.T) {
	resetRegistry(t)

	for _, info := range []SubsetInfo{
		{Key: "k", Group: GroupStellar},
		{Key: "tess", Group: GroupDiscoverer},
		{Key: "goodmass", Group: GroupMass},
		{Key: "g", Group: GroupStellar},
		{Key: "kepler", Group: GroupDiscoverer},
	} {
		Register(SubsetDefinition{Info: info, Include: HasGoodMass})
	}

	var keys []string
	for _, def := range All() {
		keys = append(keys, def.Info.Key)
	}
	assertNames(t, "All() keys", keys, []string{"kepler", "tess", "goodmass", "g", "k"})

	assertNames(t, "Groups()", Groups(), []string{GroupDiscoverer, GroupMass, GroupStellar})

	var stellar []string
	for _, def := range ByGroup(GroupStellar) {
		stellar = append(stellar, def.Info.Key)
	}
	assertNames(t, "ByGroup(stellar)", stellar, []string{"g", "k"})
}
