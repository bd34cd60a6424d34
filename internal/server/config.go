package server

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/multierr"
)

var (
	ErrInvalidHost = errors.New("invalid host")
	ErrInvalidPort = errors.New("invalid port")
)

type HttpConfig struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`
	H2c  bool   `conf:"h2c"`

	// ReadHeaderTimeout bounds the time to read request headers.
	// Zero means no timeout.
	ReadHeaderTimeout time.Duration `conf:"read_header_timeout"`
}

// Address returns the host:port pair to listen on.
func (c HttpConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the listen address.
func (c HttpConfig) Validate() error {
	return multierr.Combine(
		ValidateHost(c.Host),
		ValidatePort(c.Port),
	)
}

// ValidateHost checks that host is a literal IPv4 or IPv6 address.
func ValidateHost(host string) error {
	if net.ParseIP(host) == nil {
		return fmt.Errorf("%w '%s': must be a valid IP address", ErrInvalidHost, host)
	}

	return nil
}

// ValidatePort checks that port is in the range 1-65535.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w '%d': must be a number between 1 and 65535", ErrInvalidPort, port)
	}

	return nil
}
