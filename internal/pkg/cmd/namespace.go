package cmd

// Namespace is the namespace used for Prometheus
// metrics throughout instance-terminator.
const Namespace = "instanceterminator"
