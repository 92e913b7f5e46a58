package terminator

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
)

const (
	// TagCanBeTerminated marks an AutoScaling Group as eligible for
	// instance rotation when its value is exactly "true".
	TagCanBeTerminated = "can-be-terminated"

	// TagGroup names a termination group shared by several
	// AutoScaling Groups. At most one instance is terminated
	// per termination group per pass.
	TagGroup = "instance-terminator-group"
)

// GroupKey identifies a termination group. It is either an explicit
// group named by the TagGroup tag, or an implicit group made of a
// single AutoScaling Group.
type GroupKey struct {
	Name     string
	Explicit bool
}

// ExplicitGroup returns the GroupKey for a group named by the TagGroup tag.
func ExplicitGroup(name string) GroupKey {
	return GroupKey{Name: name, Explicit: true}
}

// ImplicitGroup returns the GroupKey for an AutoScaling Group
// that isn't tagged as part of a named group.
func ImplicitGroup(asgName string) GroupKey {
	return GroupKey{Name: asgName}
}

// String implements fmt.Stringer.
func (k GroupKey) String() string {
	if k.Explicit {
		return "group/" + k.Name
	}
	return "asg/" + k.Name
}

// Tags holds the instance-terminator tags of an AutoScaling Group.
type Tags struct {
	// True if the group may have instances terminated.
	Eligible bool

	// Value of the TagGroup tag, if any.
	Group    string
	HasGroup bool
}

// ParseTags extracts the instance-terminator tags from
// an AutoScaling Group's tag set.
func ParseTags(tags []types.TagDescription) Tags {
	var t Tags
	for _, tag := range tags {
		if tag.Key == nil {
			continue
		}
		switch *tag.Key {
		case TagCanBeTerminated:
			t.Eligible = tag.Value != nil && *tag.Value == "true"
		case TagGroup:
			// An empty group name is treated as no group.
			if v := aws.ToString(tag.Value); v != "" {
				t.Group = v
				t.HasGroup = true
			}
		}
	}
	return t
}

// GroupKeyFor returns the termination group an AutoScaling Group belongs to.
func GroupKeyFor(asgName string, t Tags) GroupKey {
	if t.HasGroup {
		return ExplicitGroup(t.Group)
	}
	return ImplicitGroup(asgName)
}
