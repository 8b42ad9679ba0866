package repository

// GORM models mirror the live schema, including columns that were added
// after initial release. Late-added columns carry no NOT NULL tag so
// the migrator can add them to a legacy table as nullable.

// User represents a user record in the database.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null;size:50"`
	Password  string `gorm:"not null"`
	Email     string
	BirthDate string `gorm:"column:birth_date"`
}

func (User) TableName() string { return "users" }

// Store represents a store record, owned by exactly one user.
type Store struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	StoreName string
}

func (Store) TableName() string { return "stores" }

// StoreDetails is the append-only audit snapshot written at store
// creation. Deliberately not foreign-keyed to Store or User.
type StoreDetails struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"not null"`
	StoreName string `gorm:"column:storename;not null"`
	StoreType string `gorm:"column:storetype;not null"`
	OwnerName string `gorm:"column:ownername;not null"`
}

func (StoreDetails) TableName() string { return "store_details" }

// Capital is one capital contribution row.
type Capital struct {
	ID          uint   `gorm:"primaryKey"`
	Date        string `gorm:"not null"`
	Amount      float64
	Description string
	StoreID     *uint `gorm:"column:store_id;index"`
}

func (Capital) TableName() string { return "capital" }

// Income is one income row.
type Income struct {
	ID          uint   `gorm:"primaryKey"`
	Date        string `gorm:"not null"`
	Amount      float64
	Category    string
	Description string
	StoreID     *uint `gorm:"column:store_id;index"`
}

func (Income) TableName() string { return "income" }

// Expense is one expense row.
type Expense struct {
	ID       uint   `gorm:"primaryKey"`
	Date     string `gorm:"not null"`
	Amount   float64
	Category string
	StoreID  *uint `gorm:"column:store_id;index"`
}

func (Expense) TableName() string { return "expenses" }

// Asset is one asset row; its monetary column is "value".
type Asset struct {
	ID          uint   `gorm:"primaryKey"`
	Date        string `gorm:"not null"`
	AssetName   string `gorm:"column:asset_name;not null"`
	Value       float64
	Category    string
	Description string
	StoreID     *uint `gorm:"column:store_id;index"`
}

func (Asset) TableName() string { return "assets" }

// Liability is one liability row.
type Liability struct {
	ID            uint   `gorm:"primaryKey"`
	Date          string `gorm:"not null"`
	LiabilityName string `gorm:"column:liability_name;not null"`
	Amount        float64
	Category      string
	Description   string
	StoreID       *uint `gorm:"column:store_id;index"`
}

func (Liability) TableName() string { return "liabilities" }
