package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Repositories never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&memberRecord{},
		&itemRecord{},
		&deliveryRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&orderIdempotencyRecord{},
	)
}

type addressColumns struct {
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
}

// Member schema mirrors the members Postgres adapter. The unique name index
// is what serialises concurrent registrations.
type memberRecord struct {
	ID        int64          `gorm:"primaryKey;column:id"`
	Name      string         `gorm:"column:name;not null;uniqueIndex:idx_members_name"`
	Address   addressColumns `gorm:"embedded;embeddedPrefix:address_"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (memberRecord) TableName() string { return "members" }

// Item schema mirrors the items Postgres adapter.
type itemRecord struct {
	ID            int64          `gorm:"primaryKey;column:id"`
	Name          string         `gorm:"column:name;not null"`
	Price         int            `gorm:"column:price"`
	StockQuantity int            `gorm:"column:stock_quantity"`
	Categories    pq.StringArray `gorm:"column:categories;type:text[]"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "items" }

type deliveryRecord struct {
	ID      int64          `gorm:"primaryKey;column:id"`
	Address addressColumns `gorm:"embedded;embeddedPrefix:address_"`
	Status  string         `gorm:"column:status;type:varchar(16)"`
}

func (deliveryRecord) TableName() string { return "deliveries" }

type orderRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	MemberID   int64     `gorm:"column:member_id;not null;index"`
	DeliveryID int64     `gorm:"column:delivery_id;not null;uniqueIndex"`
	OrderDate  time.Time `gorm:"column:order_date"`
	Status     string    `gorm:"column:status;type:varchar(16);index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID         int64 `gorm:"primaryKey;column:id"`
	OrderID    int64 `gorm:"column:order_id;not null;index"`
	ItemID     int64 `gorm:"column:item_id;not null;index"`
	OrderPrice int   `gorm:"column:order_price"`
	Count      int   `gorm:"column:count"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:64;not null"`
	OrderID     int64     `gorm:"column:order_id;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
