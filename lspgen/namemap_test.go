package lspgen

import "testing"

func TestBuildNameMapIsInjective(t *testing.T) {
	names := []string{"Foo", "Foo-Bar", "Foo.Bar", "123Bar", "_Bar"}
	nameMap := BuildNameMap(names)

	seen := map[string]string{}
	for original, mapped := range nameMap {
		if other, ok := seen[mapped]; ok && other != original {
			t.Errorf("name map is not injective: both %q and %q map to %q", original, other, mapped)
		}
		seen[mapped] = original
	}
	if len(nameMap) != len(names) {
		t.Fatalf("len(nameMap) = %d, want %d entries (one per input name)", len(nameMap), len(names))
	}
}

func TestBuildNameMapIsDeterministicRegardlessOfInputOrder(t *testing.T) {
	a := BuildNameMap([]string{"Zed", "Alpha", "Zed_"})
	b := BuildNameMap([]string{"Zed_", "Zed", "Alpha"})

	for name, mapped := range a {
		if b[name] != mapped {
			t.Errorf("BuildNameMap order-dependence: %q -> %q in one call, %q -> %q in the other", name, mapped, name, b[name])
		}
	}
}

func TestResolveNameFallsBackForUnregisteredNames(t *testing.T) {
	nameMap := BuildNameMap([]string{"Known"})
	got := resolveName(nameMap, "Unregistered")
	if got == "" {
		t.Error("resolveName fallback returned empty string")
	}
	if got2 := resolveName(nameMap, "Known"); got2 != nameMap["Known"] {
		t.Errorf("resolveName(Known) = %q, want %q", got2, nameMap["Known"])
	}
}
