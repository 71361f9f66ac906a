package metric

import "time"

type (
	Metrics interface {
		With(labels Labels) Metrics
		Increment(key string)
		Duration(key string, duration time.Duration)
	}

	Labels map[string]string
)
