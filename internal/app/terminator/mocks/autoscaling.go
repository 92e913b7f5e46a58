package mocks

import (
	"context"

	"github.com/stretchr/testify/mock" // Mocking for tests.

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
)

// AutoScaling is a mock AutoScaling client.
// Calls are matched on the context and input only.
type AutoScaling struct {
	mock.Mock
}

func (m *AutoScaling) DescribeAutoScalingGroups(ctx context.Context, params *autoscaling.DescribeAutoScalingGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	ret := m.Called(ctx, params)
	var out *autoscaling.DescribeAutoScalingGroupsOutput
	if v := ret.Get(0); v != nil {
		out = v.(*autoscaling.DescribeAutoScalingGroupsOutput)
	}
	return out, ret.Error(1)
}

func (m *AutoScaling) TerminateInstanceInAutoScalingGroup(ctx context.Context, params *autoscaling.TerminateInstanceInAutoScalingGroupInput, _ ...func(*autoscaling.Options)) (*autoscaling.TerminateInstanceInAutoScalingGroupOutput, error) {
	ret := m.Called(ctx, params)
	var out *autoscaling.TerminateInstanceInAutoScalingGroupOutput
	if v := ret.Get(0); v != nil {
		out = v.(*autoscaling.TerminateInstanceInAutoScalingGroupOutput)
	}
	return out, ret.Error(1)
}
