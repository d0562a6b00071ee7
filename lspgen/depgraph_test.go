package lspgen

import "testing"

func TestTopologicalOrderRespectsDependencies(t *testing.T) {
	model := newEmptyModel()
	model.Structures["Leaf"] = &StructDef{Name: "Leaf", Properties: []PropertyDef{prop("x", base("string"), false)}}
	model.Structures["Root"] = &StructDef{Name: "Root", Properties: []PropertyDef{prop("leaf", ref("Leaf"), false)}}
	nameMap := BuildNameMap([]string{"Leaf", "Root"})
	g := NewGenerator(model, nameMap)

	order := g.buildNodeOrder()
	leafIndex, rootIndex := -1, -1
	for i, n := range order {
		if n.Name == "Leaf" {
			leafIndex = i
		}
		if n.Name == "Root" {
			rootIndex = i
		}
	}
	if leafIndex == -1 || rootIndex == -1 {
		t.Fatalf("order missing nodes: %+v", order)
	}
	if leafIndex >= rootIndex {
		t.Errorf("Leaf (index %d) must precede Root (index %d)", leafIndex, rootIndex)
	}
}

func TestTopologicalOrderIsDeterministicAcrossRuns(t *testing.T) {
	model := newEmptyModel()
	for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta"} {
		model.Structures[name] = &StructDef{Name: name}
	}
	nameMap := BuildNameMap([]string{"Alpha", "Beta", "Gamma", "Delta"})

	g1 := NewGenerator(model, nameMap)
	order1 := g1.buildNodeOrder()

	g2 := NewGenerator(model, nameMap)
	order2 := g2.buildNodeOrder()

	if len(order1) != len(order2) {
		t.Fatalf("order lengths differ: %d vs %d", len(order1), len(order2))
	}
	for i := range order1 {
		if order1[i] != order2[i] {
			t.Errorf("order differs at index %d: %v vs %v", i, order1[i], order2[i])
		}
	}
}

func TestTopologicalOrderExcludesRecursiveAliases(t *testing.T) {
	model := newEmptyModel()
	model.Aliases["LSPAny"] = &AliasDef{Name: "LSPAny", TypeExpr: base("string")}
	model.Aliases["DocumentUri"] = &AliasDef{Name: "DocumentUri", TypeExpr: base("string")}
	nameMap := BuildNameMap([]string{"LSPAny", "DocumentUri"})
	g := NewGenerator(model, nameMap)

	order := g.buildNodeOrder()
	for _, n := range order {
		if n.Name == "LSPAny" {
			t.Error("buildNodeOrder() included the recursive alias LSPAny, want it excluded")
		}
	}
}

func TestTopologicalOrderFlagsCycleAsGraphAnomaly(t *testing.T) {
	model := newEmptyModel()
	model.Structures["A"] = &StructDef{Name: "A", Properties: []PropertyDef{prop("b", ref("B"), false)}}
	model.Structures["B"] = &StructDef{Name: "B", Properties: []PropertyDef{prop("a", ref("A"), false)}}
	nameMap := BuildNameMap([]string{"A", "B"})
	g := NewGenerator(model, nameMap)

	order := g.buildNodeOrder()
	if len(order) != 2 {
		t.Fatalf("buildNodeOrder() returned %d nodes, want 2 (both still emitted despite the cycle)", len(order))
	}
	if len(g.Diagnostics().GraphAnomalies) == 0 {
		t.Error("Diagnostics().GraphAnomalies is empty, want at least one entry for an unresolved cycle")
	}
}

func TestNodeLessOrdersByKindThenName(t *testing.T) {
	a := Node{KindEnum, "A"}
	b := Node{KindStruct, "Z"}
	if !a.Less(b) {
		t.Error("Node{KindEnum, A}.Less(Node{KindStruct, Z}) = false, want true ('E' < 'S')")
	}
	c := Node{KindStruct, "A"}
	d := Node{KindStruct, "B"}
	if !c.Less(d) {
		t.Error("Node{KindStruct, A}.Less(Node{KindStruct, B}) = false, want true")
	}
}
