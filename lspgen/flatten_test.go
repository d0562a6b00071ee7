package lspgen

import "testing"

func TestIsTypeSubtypeReflexive(t *testing.T) {
	types := []TypeExpr{base("string"), ref("Foo"), arr(base("integer")), or(base("string"), base("null"))}
	for _, ty := range types {
		if !isTypeSubtype(ty, ty) {
			t.Errorf("isTypeSubtype(%v, %v) = false, want true (reflexive)", ty, ty)
		}
	}
}

func TestIsTypeSubtypeOrNarrowing(t *testing.T) {
	parent := or(base("string"), base("integer"), base("null"))
	child := or(base("string"), base("null"))
	if !isTypeSubtype(child, parent) {
		t.Error("isTypeSubtype(narrower or, wider or) = false, want true")
	}
	if isTypeSubtype(parent, child) {
		t.Error("isTypeSubtype(wider or, narrower or) = true, want false")
	}
}

func TestIsTypeSubtypeDifferentBaseKindsAreNotSubtypes(t *testing.T) {
	if isTypeSubtype(base("integer"), base("string")) {
		t.Error("isTypeSubtype(integer, string) = true, want false")
	}
}

func TestCollectStructMembersSafeOverrideNarrows(t *testing.T) {
	model := newEmptyModel()
	model.Structures["Parent"] = &StructDef{
		Name: "Parent",
		Properties: []PropertyDef{
			prop("kind", or(base("string"), base("integer")), false),
		},
	}
	model.Structures["Child"] = &StructDef{
		Name:    "Child",
		Parents: []string{"Parent"},
		Properties: []PropertyDef{
			prop("kind", base("string"), false),
		},
	}
	nameMap := BuildNameMap([]string{"Parent", "Child"})
	g := NewGenerator(model, nameMap)

	members := g.collectStructMembers("Child")
	if len(members) != 1 {
		t.Fatalf("collectStructMembers(Child) = %d members, want 1 (safe override keeps a single member)", len(members))
	}
	if !g.Diagnostics().Empty() {
		t.Errorf("Diagnostics() = %+v, want empty for a safe override", g.Diagnostics())
	}
}

func TestCollectStructMembersUnsafeOverrideIsFlagged(t *testing.T) {
	model := newEmptyModel()
	model.Structures["Parent"] = &StructDef{
		Name: "Parent",
		Properties: []PropertyDef{
			prop("value", base("string"), false),
		},
	}
	model.Structures["Child"] = &StructDef{
		Name:    "Child",
		Parents: []string{"Parent"},
		Properties: []PropertyDef{
			prop("value", base("integer"), false),
		},
	}
	nameMap := BuildNameMap([]string{"Parent", "Child"})
	g := NewGenerator(model, nameMap)

	g.collectStructMembers("Child")
	if len(g.Diagnostics().UnsafeOverrides) == 0 {
		t.Error("Diagnostics().UnsafeOverrides is empty, want at least one entry for an incompatible override")
	}
}

func TestUniqueMemberNameSuffixesCollisions(t *testing.T) {
	model := newEmptyModel()
	g := NewGenerator(model, map[string]string{})
	used := map[string]int{}

	first := g.uniqueMemberName("S", "value", used)
	second := g.uniqueMemberName("S", "value", used)
	third := g.uniqueMemberName("S", "value", used)

	if first == second || second == third || first == third {
		t.Errorf("uniqueMemberName produced non-unique names: %q, %q, %q", first, second, third)
	}
	if len(g.Diagnostics().MemberCollisions) == 0 {
		t.Error("Diagnostics().MemberCollisions is empty, want at least one entry")
	}
}

func TestCollectStructMembersMultiParentFlattenOrder(t *testing.T) {
	model := newEmptyModel()
	model.Structures["A"] = &StructDef{Name: "A", Properties: []PropertyDef{prop("a", base("string"), false)}}
	model.Structures["B"] = &StructDef{Name: "B", Properties: []PropertyDef{prop("b", base("string"), false)}}
	model.Structures["C"] = &StructDef{
		Name:       "C",
		Parents:    []string{"A", "B"},
		Properties: []PropertyDef{prop("c", base("string"), false)},
	}
	nameMap := BuildNameMap([]string{"A", "B", "C"})
	g := NewGenerator(model, nameMap)

	members := g.collectStructMembers("C")
	if len(members) == 0 {
		t.Fatal("collectStructMembers(C) returned no members")
	}
	want := []string{"flatten<A>", "flatten<B>", "string"}
	if len(members) != len(want) {
		t.Fatalf("collectStructMembers(C) = %d members, want %d", len(members), len(want))
	}
	for i, w := range want {
		if members[i].CxxType != w {
			t.Errorf("members[%d].CxxType = %q, want %q", i, members[i].CxxType, w)
		}
	}
}
