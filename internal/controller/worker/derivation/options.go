package derivation

import "time"

type Option func(*Pool)

// Workers sets the goroutine count. Zero or less keeps runtime.NumCPU().
func Workers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

func QueueSize(n int) Option {
	return func(p *Pool) {
		if n >= 0 {
			p.queueSize = n
		}
	}
}

func ProcessTimeout(timeout time.Duration) Option {
	return func(p *Pool) {
		if timeout > 0 {
			p.processTimeout = timeout
		}
	}
}
