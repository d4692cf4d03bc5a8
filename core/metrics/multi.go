package metrics

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlanResult forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPlanResult(res PlanResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlanResult(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordRejection forwards rejections to sinks that support them.
func (m *MultiSink) RecordRejection(ev RejectionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RejectionRecorder); ok {
			if err := rec.RecordRejection(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordSetpointFailure forwards setpoint failures to sinks that support them.
func (m *MultiSink) RecordSetpointFailure(ev SetpointFailureEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SetpointFailureRecorder); ok {
			if err := rec.RecordSetpointFailure(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
