package config

import "time"

const (
	defaultPort      = 8080
	defaultPprofPort = 0
)

var defaultDelivery = Delivery{
	ExpiryThreshold: 30 * time.Minute,
	SweepInterval:   30 * time.Second,
}

var defaultMatching = Matching{
	Strategy: "first_free",
}

var defaultKafka = Kafka{
	Topic: "order-events",
}

var defaultRateLimit = RateLimit{
	Rate:  0,
	Burst: 0,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultPprofPort returns the default pprof port (0 keeps pprof off).
func DefaultPprofPort() int {
	return defaultPprofPort
}

// DefaultDelivery returns the default delivery settings.
func DefaultDelivery() Delivery {
	return defaultDelivery
}

// DefaultMatching returns the default matching settings.
func DefaultMatching() Matching {
	return defaultMatching
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default rate limit settings (disabled).
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
