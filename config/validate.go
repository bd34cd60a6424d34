package config

import (
	"errors"
	"fmt"
)

var ErrInvalidProxySource = errors.New("invalid proxy source")

// Validate checks the admin listener address if it is enabled.
func (c AdminConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	return c.HttpConfig.Validate()
}

// Validate checks the proxy source.
func (c LambdaConfig) Validate() error {
	switch c.ProxySource {
	case ProxySourceApiGatewayV1, ProxySourceApiGatewayV2, ProxySourceAlb:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidProxySource, c.ProxySource)
	}
}
