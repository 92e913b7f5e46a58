package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	kingpin "gopkg.in/alecthomas/kingpin.v2"         // Command line flag parsing.

	"github.com/mintel/instance-terminator/internal/app/terminator" // App implementation.
)

func main() {
	app, err := terminator.NewApp(prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	app.Main(command, prometheus.DefaultGatherer)
}
