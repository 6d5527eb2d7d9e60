package pos

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
)

var validPayment = map[PaymentMethod]bool{
	PaymentCash: true,
	PaymentQRIS: true,
}

func (m PaymentMethod) Valid() bool { return validPayment[m] }

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", Validationf("unknown payment method %q", s)
	}
	return m, nil
}
