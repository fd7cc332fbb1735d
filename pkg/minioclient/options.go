package minioclient

import "time"

type Option func(c *MinioClient)

func ConnAttempts(attempts int) Option {
	return func(c *MinioClient) {
		c.connAttempts = attempts
	}
}

func ConnTimeout(timeout time.Duration) Option {
	return func(c *MinioClient) {
		c.connTimeout = timeout
	}
}

func Region(region string) Option {
	return func(c *MinioClient) {
		c.region = region
	}
}

func Secure(secure bool) Option {
	return func(c *MinioClient) {
		c.secure = secure
	}
}
