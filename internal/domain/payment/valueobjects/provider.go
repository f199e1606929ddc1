package valueobjects

// Provider identifies the external gateway that owns a transaction leg.
type Provider string

const (
	ProviderPayme     Provider = "payme"
	ProviderClick     Provider = "click"
	ProviderCryptopay Provider = "cryptopay"

	// ProviderInternal covers legs we settle ourselves, withdrawals and
	// admin adjustments.
	ProviderInternal Provider = "internal"
)

func (p Provider) IsValid() bool {
	switch p {
	case ProviderPayme, ProviderClick, ProviderCryptopay, ProviderInternal:
		return true
	default:
		return false
	}
}

func (p Provider) IsExternal() bool {
	return p.IsValid() && p != ProviderInternal
}

func (p Provider) String() string {
	return string(p)
}
