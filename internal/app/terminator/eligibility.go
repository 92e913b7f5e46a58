package terminator

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
)

// minInstances is the smallest number of configured, and of
// healthy, instances a group must have before one of its
// instances may be terminated.
const minInstances = 2

const healthStatusHealthy = "Healthy"

// Candidate is an instance that may be picked for termination.
type Candidate struct {
	InstanceID string

	// Name of the AutoScaling Group the instance belongs to.
	AutoScalingGroupName string
}

// Eligibility is the outcome of checking one AutoScaling Group.
type Eligibility struct {
	// Name of the AutoScaling Group.
	Name string

	// Termination group the AutoScaling Group belongs to.
	Key GroupKey

	// Set if the group was rejected. One of ResultTooFewInstances
	// or ResultNotEnoughHealthy. Empty if the group is eligible,
	// or was skipped without a reason worth reporting.
	SkipReason string

	// InService and Healthy instances of an eligible group.
	Candidates []Candidate
}

// Skipped returns true if the AutoScaling Group contributes no candidates.
func (e Eligibility) Skipped() bool {
	return len(e.Candidates) == 0
}

// SkipResult returns the report entry for a rejected group,
// and false if there's nothing to report.
func (e Eligibility) SkipResult() (Result, bool) {
	if e.SkipReason == "" {
		return Result{}, false
	}
	// Skips are always reported against the AutoScaling Group
	// itself, even if it belongs to a named termination group.
	return Result{Group: ImplicitGroup(e.Name), Result: e.SkipReason}, true
}

// CheckEligibility checks whether instances of an AutoScaling Group may be
// terminated. The second return value is false if the group isn't tagged
// for termination at all, in which case it should be ignored entirely.
func CheckEligibility(g types.AutoScalingGroup) (Eligibility, bool) {
	tags := ParseTags(g.Tags)
	if !tags.Eligible {
		return Eligibility{}, false
	}

	name := aws.ToString(g.AutoScalingGroupName)
	e := Eligibility{
		Name: name,
		Key:  GroupKeyFor(name, tags),
	}

	// Check configured size before looking at live instances.
	size := aws.ToInt32(g.DesiredCapacity)
	switch {
	case size <= 0:
		return e, true
	case size < minInstances:
		e.SkipReason = ResultTooFewInstances
		return e, true
	}

	healthy := healthyInstances(g)
	if len(healthy) < minInstances {
		e.SkipReason = ResultNotEnoughHealthy
		return e, true
	}

	e.Candidates = make([]Candidate, len(healthy))
	for i, id := range healthy {
		e.Candidates[i] = Candidate{InstanceID: id, AutoScalingGroupName: name}
	}
	return e, true
}

// healthyInstances returns the IDs of the InService and Healthy
// instances of an AutoScaling Group, in the order AWS listed them.
func healthyInstances(g types.AutoScalingGroup) []string {
	var ids []string
	for _, i := range g.Instances {
		if i.InstanceId == nil {
			continue
		}
		if i.LifecycleState != types.LifecycleStateInService {
			continue
		}
		if aws.ToString(i.HealthStatus) != healthStatusHealthy {
			continue
		}
		ids = append(ids, *i.InstanceId)
	}
	return ids
}
