package terminator

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mintel/instance-terminator/pkg/ctxlog"
)

// Pass runs one round of instance rotation over every tagged
// AutoScaling Group in the account and region.
type Pass struct {
	autoScaling AutoScalingAPI
	enricher    *InstanceEnricher
	terminator  *Terminator
}

// NewPass returns a new Pass.
func NewPass(as AutoScalingAPI, ec2 EC2API, dryRun bool, concurrency int) *Pass {
	return &Pass{
		autoScaling: as,
		enricher:    NewInstanceEnricher(ec2),
		terminator:  NewTerminator(as, dryRun, concurrency),
	}
}

// Run terminates at most one instance per termination group and returns
// a report of what happened. An error is returned, and no report, if the
// AutoScaling Groups or EC2 instances couldn't be described.
func (p *Pass) Run(ctx context.Context) ([]Result, error) {
	logger := ctxlog.L(ctx)
	results := make([]Result, 0)

	asgs, err := p.listAutoScalingGroups(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []Eligibility
	for _, g := range asgs {
		e, ok := CheckEligibility(g)
		if !ok {
			continue
		}
		if r, ok := e.SkipResult(); ok {
			logger.Info("skipping autoscaling group",
				zap.String("autoscaling_group", e.Name),
				zap.String("reason", e.SkipReason))
			results = append(results, r)
			continue
		}
		eligible = append(eligible, e)
	}

	groups := BuildGroups(eligible)
	if len(groups) == 0 {
		logger.Debug("no termination groups have candidate instances")
		return results, nil
	}

	launchTimes, err := p.enricher.LaunchTimes(ctx, candidateIDs(groups))
	if err != nil {
		return nil, err
	}

	sels := make([]Selection, 0, len(groups))
	for _, g := range groups {
		s, ok := SelectOldest(g, launchTimes)
		if !ok {
			logger.Warn("no candidate instances found in EC2",
				zap.Stringer("termination_group", g.Key))
			continue
		}
		sels = append(sels, s)
	}

	results = append(results, p.terminator.Terminate(ctx, sels)...)
	return results, nil
}

// listAutoScalingGroups returns every AutoScaling Group tagged as eligible
// for termination. The tag is checked again by CheckEligibility.
func (p *Pass) listAutoScalingGroups(ctx context.Context) ([]types.AutoScalingGroup, error) {
	var out []types.AutoScalingGroup
	pages := autoscaling.NewDescribeAutoScalingGroupsPaginator(p.autoScaling, &autoscaling.DescribeAutoScalingGroupsInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("tag:" + TagCanBeTerminated),
				Values: []string{"true"},
			},
		},
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "error describing autoscaling groups")
		}
		out = append(out, page.AutoScalingGroups...)
	}
	return out, nil
}
