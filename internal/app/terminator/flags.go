package terminator

import (
	"net/url"
	"strconv"
	"time"

	kingpin "gopkg.in/alecthomas/kingpin.v2" // Command line flag parsing.

	"github.com/mintel/instance-terminator/internal/pkg/cmd" // Common command line app tools.
)

const (
	defaultPort          = 8080
	defaultLogLevel      = "INFO"
	defaultAWSMaxRetries = 5
	defaultConcurrency   = 10
)

// Flags holds the command line flags common to every
// instance-terminator command.
type Flags struct {
	// If true, log and report which instances would be
	// terminated without terminating them.
	DryRun bool

	// Max number of termination requests in flight at once.
	Concurrency int

	// URL of a Prometheus Pushgateway to push metrics to after
	// each pass of the lambda and run commands. Optional.
	Pushgateway *url.URL

	*cmd.AWSFlags
	*cmd.LoggingFlags
}

// NewFlags returns a new Flags.
func NewFlags(app *kingpin.Application) *Flags {
	var f Flags

	app.Flag("dry-run", "Report which instances would be terminated without terminating them.").
		Envar("DRY_RUN").
		BoolVar(&f.DryRun)

	app.Flag("concurrency", "Max number of instances to terminate at once.").
		Short('c').
		Envar("CONCURRENCY").
		Default(strconv.Itoa(defaultConcurrency)).
		IntVar(&f.Concurrency)

	app.Flag("metrics.pushgateway", "URL of a Prometheus Pushgateway to push metrics to after each pass.").
		Envar("PUSHGATEWAY_URL").
		PlaceHolder("URL").
		URLVar(&f.Pushgateway)

	f.AWSFlags = cmd.NewAWSFlags(app, defaultAWSMaxRetries)
	f.LoggingFlags = cmd.NewLoggingFlags(app, defaultLogLevel)

	return &f
}

// ServeFlags holds command line flags for the serve command.
type ServeFlags struct {
	// The interval between passes.
	Interval time.Duration

	*cmd.ServerFlags
}

// NewServeFlags returns a new ServeFlags.
func NewServeFlags(c *kingpin.CmdClause) *ServeFlags {
	var f ServeFlags

	c.Flag("interval", "The interval between passes.").
		Short('i').
		Envar("INTERVAL").
		Default("15m").
		DurationVar(&f.Interval)

	f.ServerFlags = cmd.NewServerFlags(c, defaultPort)

	return &f
}
