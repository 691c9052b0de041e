// Package anyconf assembles a parser registry application on top of Uber Fx.
//
// NewApp wires structured logging, a Prometheus registry, the metrics
// collector and a *registry.Registry built from the builtin backends plus any
// configured sources. A manifest file adds alias types and is watched for
// changes. Named inspectors expose the registry over HTTP:
//
//	app := anyconf.NewApp(
//		anyconf.WithManifest("/etc/anyconf/aliases.yaml"),
//		anyconf.WithInspector("inspect", listener.WithAddress("127.0.0.1:9464")),
//	)
//	app.Run()
//
// The registry is also provided as config.Resolver so config.Provider
// constructors can be used directly in Fx modules.
package anyconf
