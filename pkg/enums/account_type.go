package enums

import "fmt"

// AccountType distinguishes buyer accounts from seller accounts.
type AccountType string

const (
	AccountTypeBuyer  AccountType = "BUYER"
	AccountTypeSeller AccountType = "SELLER"
)

var validAccountTypes = []AccountType{
	AccountTypeBuyer,
	AccountTypeSeller,
}

// IsValid reports whether the value matches the canonical account type enum.
func (a AccountType) IsValid() bool {
	for _, candidate := range validAccountTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAccountType converts the raw string to AccountType.
func ParseAccountType(value string) (AccountType, error) {
	for _, candidate := range validAccountTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid account type %q", value)
}

func (a AccountType) String() string {
	return string(a)
}
