package lspgen

// Diagnostics accumulates the non-fatal warnings a generation pass
// produces, threaded explicitly through the emitters that discover them
// rather than held in a package-level variable, so that two runs of
// Generate in the same process never observe each other's diagnostics.
type Diagnostics struct {
	KeywordHits         []string
	BoolDefaultWarnings []string
	UnsafeOverrides     []string
	MemberCollisions    []string
	GraphAnomalies      []string
}

// AddKeywordHit records that a schema identifier collided with a C++
// keyword and was escaped.
func (d *Diagnostics) AddKeywordHit(msg string) {
	d.KeywordHits = append(d.KeywordHits, msg)
}

// AddBoolDefaultWarning records an optional boolean field whose
// documentation suggests it defaults to true, which optional_bool's
// false zero-value would silently contradict.
func (d *Diagnostics) AddBoolDefaultWarning(msg string) {
	d.BoolDefaultWarnings = append(d.BoolDefaultWarnings, msg)
}

// AddUnsafeOverride records a single-inheritance property collision that
// could not be resolved as a safe narrowing.
func (d *Diagnostics) AddUnsafeOverride(msg string) {
	d.UnsafeOverrides = append(d.UnsafeOverrides, msg)
}

// AddMemberCollision records a struct member name that collided with an
// already-emitted member and was suffixed to stay unique.
func (d *Diagnostics) AddMemberCollision(msg string) {
	d.MemberCollisions = append(d.MemberCollisions, msg)
}

// AddGraphAnomaly records that the dependency graph still had unresolved
// nodes after Kahn's algorithm drained every zero-indegree node — a cycle
// (or a dangling cross-reference into the node set) that a well-formed
// metaModel should never produce.
func (d *Diagnostics) AddGraphAnomaly(msg string) {
	d.GraphAnomalies = append(d.GraphAnomalies, msg)
}

// Empty reports whether no diagnostics of any kind were recorded.
func (d *Diagnostics) Empty() bool {
	return len(d.KeywordHits) == 0 && len(d.BoolDefaultWarnings) == 0 &&
		len(d.UnsafeOverrides) == 0 && len(d.MemberCollisions) == 0 &&
		len(d.GraphAnomalies) == 0
}
