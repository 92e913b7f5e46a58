package terminator

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert" // Test assertions e.g. equality.
	"github.com/stretchr/testify/mock"   // Mocking for tests.
	"github.com/stretchr/testify/require"

	"github.com/mintel/instance-terminator/internal/pkg/testutil"
)

func TestNewApp_parse(t *testing.T) {
	app, err := NewApp(prometheus.NewRegistry())
	require.NoError(t, err)

	command, err := app.Parse([]string{
		"run",
		"--dry-run",
		"--concurrency", "3",
		"--aws.region", "eu-west-1",
		"--log.level", "DEBUG",
	})
	require.NoError(t, err)
	assert.Equal(t, CommandRun, command)
	assert.True(t, app.flags.DryRun)
	assert.Equal(t, 3, app.flags.Concurrency)
	assert.Equal(t, "eu-west-1", app.flags.Region)
	assert.NotNil(t, app.clients.AutoScaling)
	assert.NotNil(t, app.clients.EC2)
	assert.NotNil(t, app.pass)
	assert.True(t, app.health.AWSSessionCreated.Load())
}

func TestNewApp_serveFlags(t *testing.T) {
	app, err := NewApp(prometheus.NewRegistry())
	require.NoError(t, err)

	command, err := app.Parse([]string{
		"serve",
		"--interval", "5m",
		"--serve.port", "9090",
		"--aws.region", "eu-west-1",
	})
	require.NoError(t, err)
	assert.Equal(t, CommandServe, command)
	assert.Equal(t, 5*time.Minute, app.serveFlags.Interval)
	assert.Equal(t, uint16(9090), app.serveFlags.Port)
	assert.False(t, app.flags.DryRun)
	assert.Equal(t, defaultConcurrency, app.flags.Concurrency)
}

func TestNewApp_defaultCommand(t *testing.T) {
	t.Setenv(lambdaRuntimeEnv, "127.0.0.1:9001")
	app, err := NewApp(prometheus.NewRegistry())
	require.NoError(t, err)
	command, err := app.Parse([]string{"--aws.region", "eu-west-1"})
	require.NoError(t, err)
	assert.Equal(t, CommandLambda, command)
}

// newTestApp returns an App whose pass uses mock AWS clients.
func newTestApp(t *testing.T, m passMocks) (*App, *prometheus.Registry) {
	r := prometheus.NewRegistry()
	app, err := NewApp(r)
	require.NoError(t, err)
	logger, teardown := testutil.TestLogger(t)
	t.Cleanup(teardown)
	app.logger = logger
	app.g = r
	app.pass = NewPass(m.as, m.ec2, false, 2)
	return app, r
}

func singleGroupMocks(t *testing.T) passMocks {
	m := newPassMocks(t,
		testASG("my-asg", 2, []testInstance{
			healthy("i-instance-1"),
			healthy("i-instance-2"),
		}, terminatable()),
	)
	m.ec2.On("DescribeInstances", mock.Anything, describeInstancesInput("i-instance-1", "i-instance-2")).
		Return(launchedAt(t, map[string]string{
			"i-instance-1": "2018-01-11T11:55:22Z",
			"i-instance-2": "2018-01-11T09:56:50Z",
		}), nil).
		Once()
	m.expectTerminate("i-instance-2")
	return m
}

func TestApp_Handle(t *testing.T) {
	m := singleGroupMocks(t)
	app, _ := newTestApp(t, m)

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID: "c6af9ac6-7b61-11e6-9a41-93e812345678",
	})
	got, err := app.Handle(ctx, json.RawMessage(`{
		"version": "0",
		"id": "89d1a02d-5ec7-412e-82f5-13505f849b41",
		"detail-type": "Scheduled Event",
		"source": "aws.events",
		"time": "2016-12-30T18:44:49Z",
		"resources": ["arn:aws:events:eu-west-1:123456789012:rule/instance-terminator"],
		"detail": {}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []Result{
		{Group: ImplicitGroup("my-asg"), Result: ResultInstanceTerminated, InstanceID: "i-instance-2"},
	}, got)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(app.inst.Results.WithLabelValues(ResultInstanceTerminated)))
	assert.Greater(t, promtestutil.ToFloat64(app.inst.LastSuccess), 0.0)
	assert.False(t, app.health.LastPassFailed.Load())
	m.assertExpectations(t)
}

func TestApp_Handle_error(t *testing.T) {
	m := passMocks{as: newFailingAutoScaling(t), ec2: nil}
	app, _ := newTestApp(t, m)

	got, err := app.Handle(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, app.health.LastPassFailed.Load())
	assert.Equal(t, 0.0, promtestutil.ToFloat64(app.inst.LastSuccess))
	m.as.AssertExpectations(t)
}

func TestApp_mainRun(t *testing.T) {
	m := singleGroupMocks(t)
	app, _ := newTestApp(t, m)
	var buf bytes.Buffer
	app.out = &buf

	require.NoError(t, app.mainRun())
	assert.JSONEq(t,
		`[{"autoscalingGroupName":"my-asg","result":"instance terminated","instanceId":"i-instance-2"}]`,
		buf.String())
	m.assertExpectations(t)
}

func TestApp_mainRun_empty(t *testing.T) {
	m := newPassMocks(t)
	app, _ := newTestApp(t, m)
	var buf bytes.Buffer
	app.out = &buf

	require.NoError(t, app.mainRun())
	assert.JSONEq(t, `[]`, buf.String())
	m.assertExpectations(t)
}

func TestApp_pushMetrics(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := newPassMocks(t)
	app, _ := newTestApp(t, m)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	app.flags.Pushgateway = u

	_, err = app.Handle(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "/metrics/job/instanceterminator", path)
}
