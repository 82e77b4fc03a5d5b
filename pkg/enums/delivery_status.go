package enums

import "fmt"

// DeliveryStatus tracks the fulfillment stage of an order.
type DeliveryStatus string

const (
	DeliveryStatusPending  DeliveryStatus = "PENDING"
	DeliveryStatusPacking  DeliveryStatus = "PACKING"
	DeliveryStatusShipping DeliveryStatus = "SHIPPING"
	DeliveryStatusArriving DeliveryStatus = "ARRIVING"
	DeliveryStatusSuccess  DeliveryStatus = "SUCCESS"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusPacking,
	DeliveryStatusShipping,
	DeliveryStatusArriving,
	DeliveryStatusSuccess,
}

// IsValid reports whether the value matches the canonical delivery status enum.
func (d DeliveryStatus) IsValid() bool {
	for _, candidate := range validDeliveryStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryStatus converts the raw string to DeliveryStatus.
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery status %q", value)
}

func (d DeliveryStatus) String() string {
	return string(d)
}
