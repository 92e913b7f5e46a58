package terminator

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mintel/instance-terminator/pkg/ctxlog"
	"github.com/mintel/instance-terminator/pkg/str"
)

// describeInstancesBatchSize is the max number of values
// EC2 accepts for a single filter.
const describeInstancesBatchSize = 200

// InstanceEnricher looks up the launch time of EC2 instances.
type InstanceEnricher struct {
	client EC2API
}

// NewInstanceEnricher returns a new InstanceEnricher.
func NewInstanceEnricher(client EC2API) *InstanceEnricher {
	return &InstanceEnricher{client: client}
}

// LaunchTimes returns the launch time of each of the given instances,
// keyed by instance ID. Instances EC2 doesn't know about (for example
// because they were just terminated) are left out of the result.
//
// The IDs are looked up with a filter rather than by ID, so that
// unknown IDs don't fail the whole request.
func (e *InstanceEnricher) LaunchTimes(ctx context.Context, ids []string) (map[string]time.Time, error) {
	ids = str.Uniq(ids...)
	out := make(map[string]time.Time, len(ids))
	for _, batch := range str.Chunk(ids, describeInstancesBatchSize) {
		p := ec2.NewDescribeInstancesPaginator(e.client, &ec2.DescribeInstancesInput{
			Filters: []types.Filter{
				{
					Name:   aws.String("instance-id"),
					Values: batch,
				},
			},
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, errors.Wrap(err, "error describing EC2 instances")
			}
			for _, r := range page.Reservations {
				for _, i := range r.Instances {
					if i.InstanceId == nil || i.LaunchTime == nil {
						continue
					}
					out[*i.InstanceId] = *i.LaunchTime
				}
			}
		}
	}

	if missing := len(ids) - len(out); missing > 0 {
		ctxlog.L(ctx).Debug("some candidate instances not found in EC2",
			zap.Int("missing", missing))
	}

	return out, nil
}
