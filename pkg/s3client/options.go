package s3client

import "time"

type Option func(c *S3Client)

// ConnAttempts sets how many times New probes the endpoint before giving up.
func ConnAttempts(attempts int) Option {
	return func(c *S3Client) {
		c.connAttempts = attempts
	}
}

// ConnTimeout sets the pause between connection attempts.
func ConnTimeout(timeout time.Duration) Option {
	return func(c *S3Client) {
		c.connTimeout = timeout
	}
}

// Region is used for request signing. MinIO accepts any value.
func Region(region string) Option {
	return func(c *S3Client) {
		if region != "" {
			c.region = region
		}
	}
}

func UsePathStyle(use bool) Option {
	return func(c *S3Client) {
		c.usePathStyle = use
	}
}
