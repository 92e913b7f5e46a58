package terminator

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	astypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert" // Test assertions e.g. equality.
	"github.com/stretchr/testify/mock"   // Mocking for tests.

	"github.com/mintel/instance-terminator/internal/app/terminator/mocks"
)

var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// testInstance describes an instance in a test AutoScaling Group.
type testInstance struct {
	id     string
	state  astypes.LifecycleState
	health string
}

func healthy(id string) testInstance {
	return testInstance{id: id, state: astypes.LifecycleStateInService, health: "Healthy"}
}

func unhealthy(id string) testInstance {
	return testInstance{id: id, state: astypes.LifecycleStateInService, health: "Unhealthy"}
}

func pending(id string) testInstance {
	return testInstance{id: id, state: astypes.LifecycleStatePending, health: "Healthy"}
}

// tag returns an AutoScaling Group tag.
func tag(k, v string) astypes.TagDescription {
	return astypes.TagDescription{Key: aws.String(k), Value: aws.String(v)}
}

// testASG returns an AutoScaling Group with the given desired capacity,
// instances, and tags.
func testASG(name string, desired int32, instances []testInstance, tags ...astypes.TagDescription) astypes.AutoScalingGroup {
	g := astypes.AutoScalingGroup{
		AutoScalingGroupName: aws.String(name),
		DesiredCapacity:      aws.Int32(desired),
		Tags:                 tags,
	}
	for _, i := range instances {
		g.Instances = append(g.Instances, astypes.Instance{
			InstanceId:     aws.String(i.id),
			LifecycleState: i.state,
			HealthStatus:   aws.String(i.health),
		})
	}
	return g
}

// terminatable returns the tag marking a group as eligible.
func terminatable() astypes.TagDescription {
	return tag(TagCanBeTerminated, "true")
}

// describeInstancesOutput returns a DescribeInstances response
// with one reservation per instance. launchDays is the number
// of days after epoch each instance was launched.
func describeInstancesOutput(launchDays map[string]int) *ec2.DescribeInstancesOutput {
	out := &ec2.DescribeInstancesOutput{}
	for id, d := range launchDays {
		out.Reservations = append(out.Reservations, ec2types.Reservation{
			Instances: []ec2types.Instance{
				{
					InstanceId: aws.String(id),
					LaunchTime: aws.Time(epoch.AddDate(0, 0, d)),
				},
			},
		})
	}
	return out
}

// describeInstancesInput returns the DescribeInstances request
// for a batch of instance IDs.
func describeInstancesInput(ids ...string) *ec2.DescribeInstancesInput {
	return &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("instance-id"),
				Values: ids,
			},
		},
	}
}

// newFailingAutoScaling returns a mock AutoScaling client
// that fails to list AutoScaling Groups.
func newFailingAutoScaling(t *testing.T) *mocks.AutoScaling {
	m := &mocks.AutoScaling{}
	m.Test(t)
	m.On("DescribeAutoScalingGroups", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).
		Once()
	return m
}
