package dto

// UserRead is a read-optimized view of a user row. The password hash
// never leaves the repository layer through this type.
type UserRead struct {
	ID        uint
	Username  string
	Email     string
	BirthDate string
}

// UserCreate carries registration input before policy checks.
type UserCreate struct {
	Username  string `validate:"required"`
	Password  string `validate:"required"`
	Email     string `validate:"required,email"`
	BirthDate string `validate:"required,datetime=2006-01-02"`
}
