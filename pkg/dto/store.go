package dto

// StoreRead is a read-optimized view of a store row.
type StoreRead struct {
	ID        uint
	UserID    uint
	StoreName string
}

// StoreCreate carries the store-details form fields. All four are
// required; the audit snapshot and the store row are written together.
type StoreCreate struct {
	Username  string `validate:"required"`
	StoreName string `validate:"required"`
	StoreType string `validate:"required"`
	OwnerName string `validate:"required"`
}
