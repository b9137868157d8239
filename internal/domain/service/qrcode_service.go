package service

// QRCodeService defines the interface for generating QR codes.
type QRCodeService interface {
	// GeneratePaymentQR renders a PNG QR code encoding the payment reference
	// so a client app can hand it to the (mock) provider.
	GeneratePaymentQR(reference string) ([]byte, error)
}
