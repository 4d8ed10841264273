package dynamoclient

import "time"

type Option func(c *DynamoClient)

func ConnAttempts(attempts int) Option {
	return func(c *DynamoClient) {
		c.connAttempts = attempts
	}
}

func ConnTimeout(timeout time.Duration) Option {
	return func(c *DynamoClient) {
		c.connTimeout = timeout
	}
}

func Region(region string) Option {
	return func(c *DynamoClient) {
		c.region = region
	}
}
