package mocks

import (
	"context"

	"github.com/stretchr/testify/mock" // Mocking for tests.

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// EC2 is a mock EC2 client.
type EC2 struct {
	mock.Mock
}

func (m *EC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	ret := m.Called(ctx, params)
	var out *ec2.DescribeInstancesOutput
	if v := ret.Get(0); v != nil {
		out = v.(*ec2.DescribeInstancesOutput)
	}
	return out, ret.Error(1)
}
