// Package qrcode renders payment references as QR codes for the mock provider.
package qrcode

import (
	"encoding/json"
	"fmt"

	"novacommerce/config"
	"novacommerce/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	Reference string `json:"reference"`
	Type      string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultQRSize
	correction := ""
	if cfg.Payment != nil {
		if cfg.Payment.QRSize > 0 {
			size = cfg.Payment.QRSize
		}
		correction = cfg.Payment.ErrorCorrectionLevel
	}

	// Set error correction level
	var level qrcode.RecoveryLevel
	switch correction {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePaymentQR generates a PNG QR code encoding the payment reference.
func (s *qrcodeService) GeneratePaymentQR(reference string) ([]byte, error) {
	data := QRCodeData{
		Reference: reference,
		Type:      "payment",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
