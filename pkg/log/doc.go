/*
Package log provides structured logging for stitch using zerolog.

The package keeps a single global zerolog.Logger that library packages log
through, plus helpers that derive child loggers carrying context fields. The
global logger discards everything until Init is called, so importing the
builder from a test or another program produces no output unless asked to.

# Configuration

	log.Init(log.Config{
		Level:      log.DebugLevel,
		JSONOutput: false,
		Output:     os.Stderr,
	})

Output defaults to stderr because the CLI writes artifacts to stdout; keeping
the streams apart lets `stitch compile etcd > artifact.json` work with logging
enabled.

# Context Loggers

  - WithComponent: component=compose, component=cli
  - WithNamespace: namespace of the deployment being built
  - WithLabel: label the message is about
  - WithRevision: stored revision id

	logger := log.WithLabel("etcd")
	logger.Debug().Int("containers", 3).Msg("label created")

# Levels

The builder logs label creation and registration at debug, vet failures at
warn and the canonicalization summary at info. Storage logs saves at info.
*/
package log
