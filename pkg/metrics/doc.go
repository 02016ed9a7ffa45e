/*
Package metrics provides Prometheus metrics for the stitch builder, storage and
CLI.

All metrics are package variables registered with the default Prometheus
registry at init, following the usual client_golang layout. The builder updates
them synchronously as specifications are evaluated. The CLI is short-lived, so
instead of serving them it writes a snapshot with WriteFile when --metrics-file
is set.

# Metrics

Builder:

	stitch_containers_created_total              counter
	stitch_labels_created_total                  counter
	stitch_entities_deployed_total{kind}         counter  kind=machine|label
	stitch_assertions_total{form}                counter  form=reach|between|...
	stitch_vet_failures_total{reason}            counter  reason=connection|placement|
	                                                      invalid_placement|nil_container|
	                                                      duplicate_label|duplicate_container

Canonicalization:

	stitch_canonicalize_duration_seconds         histogram

Storage:

	stitch_revisions_saved_total{result}         counter  result=created|unchanged

# Timing Operations

	timer := metrics.NewTimer()
	artifact, err := d.Canonicalize()
	timer.ObserveDuration(metrics.CanonicalizeDuration)

# Exposition

	if err := metrics.WriteFile("/var/lib/node_exporter/stitch.prom"); err != nil {
		return err
	}
*/
package metrics
