package prom

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Export delivers the metrics of a finished batch run.
// Runs are too short lived to be scraped, so metrics are pushed to a Pushgateway and/or
// written to a node-exporter textfile. Empty targets are skipped.
func Export(gatherer prometheus.Gatherer, pushgateway, job, textfile string) error {
	if pushgateway != "" {
		err := push.New(pushgateway, job).Gatherer(gatherer).Push()
		if err != nil {
			return fmt.Errorf("failed to push metrics to %s: %w", pushgateway, err)
		}
	}
	if textfile != "" {
		err := prometheus.WriteToTextfile(textfile, gatherer)
		if err != nil {
			return fmt.Errorf("failed to write metrics textfile %s: %w", textfile, err)
		}
	}
	return nil
}
