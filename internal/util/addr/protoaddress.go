package addr

import (
	"io"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// ProtoAddress is a combination of network type and address of the scanning daemon.
type ProtoAddress struct {
	Network string `json:"network" yaml:"network"`
	Address string `json:"address" yaml:"address"`
}

// String will combine the network with address in format <network>://<address>
func (p *ProtoAddress) String() string {
	return p.Network + "://" + p.Address
}

// UnmarshalFlag parses a command-line value such as 'tcp://localhost:3310' or
// 'unix:///run/clamav/clamd.ctl'.
func (p *ProtoAddress) UnmarshalFlag(value string) error {
	parsed, err := ParseAddress(value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalFlag is the reverse of UnmarshalFlag.
func (p ProtoAddress) MarshalFlag() (string, error) {
	return p.String(), nil
}

// UnmarshalText lets the address be given as a plain string in YAML configuration.
func (p *ProtoAddress) UnmarshalText(text []byte) error {
	return p.UnmarshalFlag(string(text))
}

// ParseAddress does the reverse of ProtoAddress.String -- it will take a string and convert it
// to an address.
func ParseAddress(a string) (ProtoAddress, error) {
	a = strings.TrimSpace(a)

	parts := strings.SplitN(a, "://", 2)
	if len(parts) != 2 {
		return ProtoAddress{}, errors.Errorf("Invalid address format: %v", a)
	}

	switch parts[0] {
	case "tcp", "unix":
	default:
		return ProtoAddress{}, errors.Errorf("Unsupported network '%v' in address: %v", parts[0], a)
	}

	return ProtoAddress{
		Network: parts[0], Address: parts[1],
	}, nil
}

// Dial acquires the duplex byte channel to the daemon at this address.
func (p *ProtoAddress) Dial() (io.ReadWriteCloser, error) {
	c, err := net.Dial(p.Network, p.Address)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not connect to %v", p)
	}
	return c, nil
}
