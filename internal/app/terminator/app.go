package terminator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"            // AWS Lambda runtime.
	"github.com/aws/aws-lambda-go/lambdacontext"     // Lambda invocation metadata.
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/google/uuid"                         // Run IDs.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"go.uber.org/zap"                                // Logging.
	"golang.org/x/sync/errgroup"                     // Cancel multiple goroutines if one fails.
	kingpin "gopkg.in/alecthomas/kingpin.v2"         // Command line flag parsing.

	"github.com/mintel/instance-terminator/internal/pkg/cmd"     // Common command line app tools.
	"github.com/mintel/instance-terminator/internal/pkg/metrics" // Prometheus metrics tools.
	"github.com/mintel/instance-terminator/pkg/ctxlog"           // Logger in context.
	"github.com/mintel/instance-terminator/pkg/events"           // AWS CloudWatch Events.
)

const (
	Name  = "instance-terminator"
	Usage = "Terminate the oldest instance of each tagged AWS AutoScaling Group, so that groups are slowly refreshed."

	// Commands.
	CommandLambda = "lambda"
	CommandRun    = "run"
	CommandServe  = "serve"

	// lambdaRuntimeEnv is set by AWS inside the Lambda execution environment.
	lambdaRuntimeEnv = "AWS_LAMBDA_RUNTIME_API"
)

// App holds application state.
type App struct {
	*kingpin.Application

	flags      *Flags           // Command line flags
	serveFlags *ServeFlags      // serve command flags
	health     *Healthchecks    // healthchecks HTTP handler
	inst       *Instrumentation // App-specific Prometheus metrics

	// API clients.
	clients struct {
		AutoScaling AutoScalingAPI
		EC2         EC2API
	}

	pass   *Pass
	logger *zap.Logger
	g      prometheus.Gatherer
	out    io.Writer // Where the run command writes its report.
}

// NewApp returns a new App.
func NewApp(r prometheus.Registerer) (*App, error) {
	namespace := cmd.Namespace

	app := &App{
		Application: kingpin.New(Name, Usage),
		health:      NewHealthchecks(r, namespace),
		logger:      zap.NewNop(),
		out:         os.Stdout,
	}
	app.flags = NewFlags(app.Application)
	app.inst = NewInstrumentation(namespace)
	if err := r.Register(app.inst); err != nil {
		return nil, err
	}

	lambdaCmd := app.Command(CommandLambda, "Run as an AWS Lambda function, doing one pass per invocation.")
	runCmd := app.Command(CommandRun, "Do one pass and print the report as JSON.")
	serveCmd := app.Command(CommandServe, "Do a pass every interval, serving healthchecks and Prometheus metrics.")
	app.serveFlags = NewServeFlags(serveCmd)
	if _, ok := os.LookupEnv(lambdaRuntimeEnv); ok {
		lambdaCmd.Default()
	} else {
		runCmd.Default()
	}

	// Add action to set up AWS client(s) after
	// flags are parsed. This should only return an error
	// if that error is related to user input in some way,
	// since kingpin prints the error as if it were a usage error.
	app.Action(func(*kingpin.ParseContext) error {
		cfg, err := app.flags.AWSConfig(context.Background())
		if err != nil {
			return err
		}
		if err := metrics.InstrumentAWS(&cfg, r, namespace, nil); err != nil {
			panic("error instrumenting AWS config: " + err.Error())
		}
		app.clients.AutoScaling = autoscaling.NewFromConfig(cfg)
		app.clients.EC2 = ec2.NewFromConfig(cfg)
		app.pass = NewPass(app.clients.AutoScaling, app.clients.EC2, app.flags.DryRun, app.flags.Concurrency)
		app.health.AWSSessionCreated.Store(true)
		return nil
	})

	return app, nil
}

// Main is the main method of App and should be called
// in main.main() after flag parsing, with the command
// returned by Parse.
func (app *App) Main(command string, g prometheus.Gatherer) {
	logger := app.flags.NewLogger()
	defer func() { _ = logger.Sync() }()
	defer cmd.SetGlobalLogger(logger)()
	app.logger = logger
	app.g = g

	if app.flags.DryRun {
		logger.Info("dry run, no instances will be terminated")
	}

	switch command {
	case CommandLambda:
		lambda.Start(app.Handle)
	case CommandRun:
		if err := app.mainRun(); err != nil {
			logger.Fatal("error running pass", zap.Error(err))
		}
	case CommandServe:
		if err := app.mainServe(); err != nil {
			logger.Fatal("error serving", zap.Error(err))
		}
	default:
		logger.Panic("unknown command", zap.String("command", command))
	}
}

// Handle is the AWS Lambda handler. It does one pass and returns
// the report. The invocation event is only logged.
func (app *App) Handle(ctx context.Context, payload json.RawMessage) ([]Result, error) {
	runID := uuid.New().String()
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		runID = lc.AwsRequestID
	}

	e, err := events.Parse(payload)
	switch {
	case err != nil:
		app.logger.Debug("invoked with unrecognized event", zap.Error(err))
	case e != nil:
		app.logger.Info("invoked by event",
			zap.String("run_id", runID),
			zap.String("event_id", e.ID),
			zap.String("source", e.Source),
			zap.String("detail_type", e.DetailType),
			zap.String("rule", e.Rule()),
			zap.Time("event_time", e.Time))
	}

	results, err := app.RunPass(ctx, runID)
	app.pushMetrics()
	return results, err
}

// RunPass does one pass, logging with the given run ID,
// and records its outcome in metrics and healthchecks.
func (app *App) RunPass(ctx context.Context, runID string) (results []Result, err error) {
	logger := app.logger.With(zap.String("run_id", runID))
	ctx = ctxlog.WithLogger(ctx, logger)

	timer := metrics.NewVecTimer(app.inst.PassDuration)
	defer func() { timer.ObserveErr(err) }()

	logger.Debug("starting pass")
	results, err = app.pass.Run(ctx)
	if err != nil {
		app.health.LastPassFailed.Store(true)
		logger.Error("pass failed", zap.Error(err))
		return nil, err
	}
	app.health.LastPassFailed.Store(false)
	app.inst.LastSuccess.SetToCurrentTime()
	app.inst.ObserveResults(results)
	logger.Info("pass complete", zap.Int("results", len(results)))
	return results, nil
}

// mainRun does a single pass and writes the report to app.out.
func (app *App) mainRun() error {
	ctx, cancel := cmd.WithInterrupt(context.Background())
	defer cancel()

	results, err := app.RunPass(ctx, uuid.New().String())
	app.pushMetrics()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// mainServe does a pass every interval until interrupted,
// serving healthchecks and Prometheus metrics meanwhile.
// Failed passes are logged and retried at the next interval.
func (app *App) mainServe() error {
	ctx, cancel := cmd.WithInterrupt(context.Background())
	defer cancel()

	mux := app.serveFlags.ConfigureMux(nil, app.health.Handler, app.g)
	srv := app.serveFlags.NewServer(mux)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		return app.serveFlags.Shutdown(srv)
	})

	eg.Go(func() error {
		ticker := time.NewTicker(app.serveFlags.Interval)
		defer ticker.Stop()
		for {
			// Errors are logged by RunPass.
			_, _ = app.RunPass(ctx, uuid.New().String())
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	return eg.Wait()
}

// pushMetrics pushes metrics to the Pushgateway, if one is configured.
func (app *App) pushMetrics() {
	if app.flags.Pushgateway == nil || app.g == nil {
		return
	}
	u := app.flags.Pushgateway.String()
	if err := metrics.Push(u, cmd.Namespace, app.g); err != nil {
		app.logger.Warn("error pushing metrics", zap.Error(err))
	}
}
