package enums

import "testing"

func TestParseAccountType(t *testing.T) {
	if got, err := ParseAccountType("SELLER"); err != nil || got != AccountTypeSeller {
		t.Fatalf("ParseAccountType(SELLER) = %v, %v", got, err)
	}
	if _, err := ParseAccountType("seller"); err == nil {
		t.Fatal("expected parse failure for lowercase value")
	}
}

func TestDeliveryStatusValidity(t *testing.T) {
	for _, s := range validDeliveryStatuses {
		if !s.IsValid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if DeliveryStatus("DELIVERED").IsValid() {
		t.Fatal("DELIVERED is not part of the enum")
	}
}

func TestPaymentStatusValidity(t *testing.T) {
	if !PaymentStatusSuccessful.IsValid() {
		t.Fatal("expected SUCCESSFUL to be valid")
	}
	if _, err := ParsePaymentStatus("PAID"); err == nil {
		t.Fatal("expected parse failure for PAID")
	}
}
