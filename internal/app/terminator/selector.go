package terminator

import (
	"time"
)

// Selection is the instance picked for termination in a group.
type Selection struct {
	Group      *TerminationGroup
	Candidate  Candidate
	LaunchTime time.Time
}

// SelectOldest picks the candidate of g with the earliest launch time.
// Candidates missing from launchTimes are ignored. If two candidates
// were launched at the same time, the one listed first wins.
// Returns false if no candidate has a known launch time.
func SelectOldest(g *TerminationGroup, launchTimes map[string]time.Time) (Selection, bool) {
	var (
		sel   Selection
		found bool
	)
	for _, c := range g.Candidates {
		t, ok := launchTimes[c.InstanceID]
		if !ok {
			continue
		}
		if !found || t.Before(sel.LaunchTime) {
			sel = Selection{Group: g, Candidate: c, LaunchTime: t}
			found = true
		}
	}
	return sel, found
}
