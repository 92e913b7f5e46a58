package terminator

// TerminationGroup is a set of one or more AutoScaling Groups
// sharing a budget of one terminated instance per pass.
type TerminationGroup struct {
	Key GroupKey

	// Names of the member AutoScaling Groups.
	AutoScalingGroups []string

	// Candidates from all members, in member order.
	Candidates []Candidate
}

// BuildGroups partitions eligible AutoScaling Groups into termination
// groups. Groups are returned in the order their key was first seen.
// Ineligible entries are ignored.
func BuildGroups(es []Eligibility) []*TerminationGroup {
	var out []*TerminationGroup
	byKey := make(map[GroupKey]*TerminationGroup)
	for _, e := range es {
		if e.Skipped() {
			continue
		}
		g, ok := byKey[e.Key]
		if !ok {
			g = &TerminationGroup{Key: e.Key}
			byKey[e.Key] = g
			out = append(out, g)
		}
		g.AutoScalingGroups = append(g.AutoScalingGroups, e.Name)
		g.Candidates = append(g.Candidates, e.Candidates...)
	}
	return out
}

// candidateIDs returns the instance IDs of every candidate in gs.
// IDs are in group order and may repeat.
func candidateIDs(gs []*TerminationGroup) []string {
	var ids []string
	for _, g := range gs {
		for _, c := range g.Candidates {
			ids = append(ids, c.InstanceID)
		}
	}
	return ids
}
