package terminator

import (
	"testing"

	"github.com/stretchr/testify/assert" // Test assertions e.g. equality.
)

func TestBuildGroups(t *testing.T) {
	c := func(asg, id string) Candidate {
		return Candidate{InstanceID: id, AutoScalingGroupName: asg}
	}
	input := []Eligibility{
		{
			Name:       "my-asg",
			Key:        ExplicitGroup("my-test-group"),
			Candidates: []Candidate{c("my-asg", "i-1"), c("my-asg", "i-2")},
		},
		{
			Name:       "skipped-asg",
			Key:        ImplicitGroup("skipped-asg"),
			SkipReason: ResultTooFewInstances,
		},
		{
			Name:       "lone-asg",
			Key:        ImplicitGroup("lone-asg"),
			Candidates: []Candidate{c("lone-asg", "i-3"), c("lone-asg", "i-4")},
		},
		{
			Name:       "another-asg",
			Key:        ExplicitGroup("my-test-group"),
			Candidates: []Candidate{c("another-asg", "i-5"), c("another-asg", "i-6")},
		},
		{
			// Same name as the explicit group, but a different key.
			Name:       "my-test-group",
			Key:        ImplicitGroup("my-test-group"),
			Candidates: []Candidate{c("my-test-group", "i-7"), c("my-test-group", "i-8")},
		},
	}

	got := BuildGroups(input)
	want := []*TerminationGroup{
		{
			Key:               ExplicitGroup("my-test-group"),
			AutoScalingGroups: []string{"my-asg", "another-asg"},
			Candidates: []Candidate{
				c("my-asg", "i-1"), c("my-asg", "i-2"),
				c("another-asg", "i-5"), c("another-asg", "i-6"),
			},
		},
		{
			Key:               ImplicitGroup("lone-asg"),
			AutoScalingGroups: []string{"lone-asg"},
			Candidates:        []Candidate{c("lone-asg", "i-3"), c("lone-asg", "i-4")},
		},
		{
			Key:               ImplicitGroup("my-test-group"),
			AutoScalingGroups: []string{"my-test-group"},
			Candidates:        []Candidate{c("my-test-group", "i-7"), c("my-test-group", "i-8")},
		},
	}
	assert.Equal(t, want, got)

	assert.Equal(t,
		[]string{"i-1", "i-2", "i-5", "i-6", "i-3", "i-4", "i-7", "i-8"},
		candidateIDs(got))
}

func TestBuildGroups_empty(t *testing.T) {
	assert.Empty(t, BuildGroups(nil))
	assert.Empty(t, candidateIDs(nil))
}
