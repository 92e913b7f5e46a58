package terminator

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mintel/instance-terminator/pkg/ctxlog"
)

// Terminator terminates selected instances through their AutoScaling Group,
// leaving the group's desired capacity unchanged so the instance is replaced.
type Terminator struct {
	client      AutoScalingAPI
	dryRun      bool
	concurrency int
}

// NewTerminator returns a new Terminator. At most concurrency terminations
// are requested at once; concurrency <= 0 means no limit. If dryRun is true
// no instances are actually terminated.
func NewTerminator(client AutoScalingAPI, dryRun bool, concurrency int) *Terminator {
	return &Terminator{
		client:      client,
		dryRun:      dryRun,
		concurrency: concurrency,
	}
}

// Terminate terminates the instance of each selection, and returns one
// Result per selection in the same order. A failure to terminate one
// instance is reported in its Result and doesn't stop the others.
func (t *Terminator) Terminate(ctx context.Context, sels []Selection) []Result {
	results := make([]Result, len(sels))
	var eg errgroup.Group
	if t.concurrency > 0 {
		eg.SetLimit(t.concurrency)
	}
	for i, s := range sels {
		i, s := i, s
		eg.Go(func() error {
			results[i] = t.terminate(ctx, s)
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

func (t *Terminator) terminate(ctx context.Context, s Selection) Result {
	r := Result{
		Group:      s.Group.Key,
		InstanceID: s.Candidate.InstanceID,
	}
	ctx = ctxlog.WithFields(ctx,
		zap.Stringer("termination_group", s.Group.Key),
		zap.String("autoscaling_group", s.Candidate.AutoScalingGroupName),
		zap.String("instance_id", s.Candidate.InstanceID),
		zap.Time("launch_time", s.LaunchTime),
	)
	logger := ctxlog.L(ctx)

	if t.dryRun {
		logger.Info("dry run, not terminating instance")
		r.Result = ResultDryRunNotTerminated
		return r
	}

	_, err := t.client.TerminateInstanceInAutoScalingGroup(ctx, &autoscaling.TerminateInstanceInAutoScalingGroupInput{
		InstanceId:                     aws.String(s.Candidate.InstanceID),
		ShouldDecrementDesiredCapacity: aws.Bool(false),
	})
	if err != nil {
		logger.Error("error terminating instance",
			zap.String("error_code", apiErrorCode(err)),
			zap.Error(err))
		r.Result = ResultTerminationFailed
		r.Error = err.Error()
		return r
	}

	logger.Info("terminated instance")
	r.Result = ResultInstanceTerminated
	return r
}

// apiErrorCode returns the AWS error code of err, if it has one.
func apiErrorCode(err error) string {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return ae.ErrorCode()
	}
	return ""
}
