package valueobjects

import (
	"errors"
	"regexp"
)

// Network is the settlement chain for a crypto payout.
type Network string

const (
	NetworkBEP20 Network = "BEP-20"
	NetworkTRC20 Network = "TRC-20"
)

var (
	ErrUnsupportedNetwork = errors.New("unsupported withdrawal network")
	ErrInvalidAddress     = errors.New("address does not match network format")

	bep20AddressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	trc20AddressRe = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
)

func (n Network) IsValid() bool {
	switch n {
	case NetworkBEP20, NetworkTRC20:
		return true
	default:
		return false
	}
}

// ValidateAddress checks a destination address against the network's format.
func (n Network) ValidateAddress(address string) error {
	switch n {
	case NetworkBEP20:
		if !bep20AddressRe.MatchString(address) {
			return ErrInvalidAddress
		}
	case NetworkTRC20:
		if !trc20AddressRe.MatchString(address) {
			return ErrInvalidAddress
		}
	default:
		return ErrUnsupportedNetwork
	}
	return nil
}

func (n Network) String() string {
	return string(n)
}
