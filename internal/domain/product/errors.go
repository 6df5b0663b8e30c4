package product

import "errors"

var (
	ErrTooManyPhotos   = errors.New("at most 3 product photos are allowed")
	ErrPhotoTooLarge   = errors.New("product photo exceeds the 8MB limit")
	ErrNoPhotos        = errors.New("at least one product photo is required")
	ErrNoDetail        = errors.New("no product detail loaded")
	ErrNoSellerContact = errors.New("seller has no contact phone")
)
