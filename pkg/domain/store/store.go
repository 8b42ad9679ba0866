// Package store holds the store (tenant) entity and its audit record.
package store

// Store is a tenant/business unit owning its own ledger data. Every
// store belongs to exactly one user.
type Store struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	StoreName string `json:"store_name"`
}

// Details is the denormalized snapshot recorded when a store is
// created. It is append-only and not foreign-keyed to Store or User.
type Details struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	StoreName string `json:"storename"`
	StoreType string `json:"storetype"`
	OwnerName string `json:"ownername"`
}
