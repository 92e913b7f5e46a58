package metrics

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/prometheus/client_golang/prometheus"
)

const awsMiddlewareID = "PrometheusInstrumentation"

// InstrumentAWS adds Prometheus metrics to every AWS client
// created from cfg.
//
// A Gauge is observed for in-flight requests with labels
// for AWS region, service, operation name, and HTTP method.
//
// A duration histogram is observed for each AWS API request with
// the same labels plus the returned HTTP status code.
//
// If the AWS clients retry on error, each attempt counts as a separate sample.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	InstrumentAWS(&cfg, prometheus.DefaultRegisterer, "", nil)
func InstrumentAWS(cfg *aws.Config, reg prometheus.Registerer, namespace string, constLabels map[string]string) error {
	i := newAWSInstrumentation(namespace, constLabels)
	if err := reg.Register(i); err != nil {
		return err
	}
	cfg.APIOptions = append(cfg.APIOptions, i.addMiddleware)
	return nil
}

type awsInstrumentation struct {
	duration *prometheus.HistogramVec
	inflight *prometheus.GaugeVec
}

func newAWSInstrumentation(namespace string, constLabels map[string]string) *awsInstrumentation {
	return &awsInstrumentation{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   "aws",
				Name:        "request_duration_seconds",
				Help:        "A histogram of AWS API request latencies.",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{LabelRegion, LabelService, LabelOperation, LabelMethod, LabelStatusCode},
		),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "aws",
			Name:        "in_flight_requests",
			Help:        "A gauge of in-flight AWS API requests.",
			ConstLabels: constLabels,
		}, []string{LabelRegion, LabelService, LabelOperation, LabelMethod}),
	}
}

// Describe implements prometheus.Collector interface.
func (i *awsInstrumentation) Describe(c chan<- *prometheus.Desc) {
	i.duration.Describe(c)
	i.inflight.Describe(c)
}

// Collect implements prometheus.Collector interface.
func (i *awsInstrumentation) Collect(c chan<- prometheus.Metric) {
	i.duration.Collect(c)
	i.inflight.Collect(c)
}

// addMiddleware adds the instrumentation to the end of the deserialize
// step, which runs once per attempt, just around the HTTP round trip.
func (i *awsInstrumentation) addMiddleware(stack *middleware.Stack) error {
	return stack.Deserialize.Add(
		middleware.DeserializeMiddlewareFunc(awsMiddlewareID, i.handleDeserialize),
		middleware.After,
	)
}

func (i *awsInstrumentation) handleDeserialize(ctx context.Context, in middleware.DeserializeInput, next middleware.DeserializeHandler) (middleware.DeserializeOutput, middleware.Metadata, error) {
	labels := prometheus.Labels{
		LabelRegion:    awsmiddleware.GetRegion(ctx),
		LabelService:   awsmiddleware.GetServiceID(ctx),
		LabelOperation: awsmiddleware.GetOperationName(ctx),
		LabelMethod:    "",
	}
	if req, ok := in.Request.(*smithyhttp.Request); ok {
		labels[LabelMethod] = req.Method
	}

	timer := NewVecTimer(i.duration)
	inflight := i.inflight.With(labels)
	inflight.Inc()

	out, md, err := next.HandleDeserialize(ctx, in)

	inflight.Dec()
	var code string
	if resp, ok := out.RawResponse.(*smithyhttp.Response); ok && resp.Response != nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	observed := make(prometheus.Labels, len(labels)+1)
	for k, v := range labels {
		observed[k] = v
	}
	observed[LabelStatusCode] = code
	timer.ObserveWith(observed)

	return out, md, err
}
