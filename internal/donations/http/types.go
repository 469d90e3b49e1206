package http

import "github.com/onemeal-app/onemeal-backend/internal/donations/domain"

type createRequest struct {
	FoodItem string             `json:"food_item"`
	Quantity string             `json:"quantity"`
	Address  string             `json:"address"`
	Phone    string             `json:"phone"`
	Location *domain.Coordinate `json:"location,omitempty"`
	// Photo as base64 (no data: prefix) plus its MIME type; the AI food
	// check runs on it before anything is stored.
	ImageBase64 string `json:"image_base64"`
	ImageMIME   string `json:"image_mime"`
}

type verifyRequest struct {
	Code string `json:"code"`
}

type reportRequest struct {
	// Confirm is the explicit gesture guarding against accidental reports.
	Confirm bool `json:"confirm"`
}
