package mongodb

import "time"

type Option func(*Mongo)

func ConnAttempts(attempts int) Option {
	return func(m *Mongo) {
		m.connAttempts = attempts
	}
}

func ConnTimeout(timeout time.Duration) Option {
	return func(m *Mongo) {
		m.connTimeout = timeout
	}
}

// PingTimeout bounds each connectivity check.
func PingTimeout(timeout time.Duration) Option {
	return func(m *Mongo) {
		m.pingTimeout = timeout
	}
}

func MaxPoolSize(size uint64) Option {
	return func(m *Mongo) {
		m.maxPoolSize = size
	}
}
