package postgres

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	itemdomain "github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	memberdomain "github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. To-one associations
// are read through joins; order lines through a second batched query so
// paging only ever counts root orders.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type addressColumns struct {
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
}

type memberRow struct {
	ID      int64          `gorm:"primaryKey;column:id"`
	Name    string         `gorm:"column:name"`
	Address addressColumns `gorm:"embedded;embeddedPrefix:address_"`
}

func (memberRow) TableName() string { return "members" }

type itemRow struct {
	ID            int64          `gorm:"primaryKey;column:id"`
	Name          string         `gorm:"column:name"`
	Price         int            `gorm:"column:price"`
	StockQuantity int            `gorm:"column:stock_quantity"`
	Categories    pq.StringArray `gorm:"column:categories;type:text[]"`
}

func (itemRow) TableName() string { return "items" }

type deliveryRecord struct {
	ID      int64          `gorm:"primaryKey;column:id"`
	Address addressColumns `gorm:"embedded;embeddedPrefix:address_"`
	Status  string         `gorm:"column:status"`
}

func (deliveryRecord) TableName() string { return "deliveries" }

type orderItemRecord struct {
	ID         int64   `gorm:"primaryKey;column:id"`
	OrderID    int64   `gorm:"column:order_id"`
	ItemID     int64   `gorm:"column:item_id"`
	Item       itemRow `gorm:"foreignKey:ItemID"`
	OrderPrice int     `gorm:"column:order_price"`
	Count      int     `gorm:"column:count"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type orderRecord struct {
	ID         int64             `gorm:"primaryKey;column:id"`
	MemberID   int64             `gorm:"column:member_id"`
	Member     memberRow         `gorm:"foreignKey:MemberID"`
	DeliveryID int64             `gorm:"column:delivery_id"`
	Delivery   deliveryRecord    `gorm:"foreignKey:DeliveryID"`
	Items      []orderItemRecord `gorm:"foreignKey:OrderID"`
	OrderDate  time.Time         `gorm:"column:order_date"`
	Status     string            `gorm:"column:status"`
	CreatedAt  time.Time         `gorm:"column:created_at"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts a new order with its delivery and lines, or updates the order
// and delivery status of an existing one.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	db := platformpostgres.Conn(ctx, r.db)
	record := toRecord(order)
	if record.ID == 0 {
		if err := db.Create(&record.Delivery).Error; err != nil {
			return nil, err
		}
		record.DeliveryID = record.Delivery.ID
		if err := db.Omit(clause.Associations).Create(&record).Error; err != nil {
			return nil, err
		}
		for i := range record.Items {
			record.Items[i].OrderID = record.ID
		}
		if len(record.Items) > 0 {
			if err := db.Omit(clause.Associations).Create(&record.Items).Error; err != nil {
				return nil, err
			}
		}
		return r.GetByID(ctx, record.ID)
	}

	result := db.Model(&orderRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"status":     record.Status,
		"updated_at": gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	if err := db.Model(&deliveryRecord{}).Where("id = ?", record.DeliveryID).Update("status", record.Delivery.Status).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID loads one order with member, delivery and order lines.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := withItems(withToOne(platformpostgres.Conn(ctx, r.db))).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Search compiles the search filters into one joined query capped at
// domain.MaxSearchResults rows.
func (r *Repository) Search(ctx context.Context, search domain.OrderSearch) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query, err := searchQuery(platformpostgres.Conn(ctx, r.db), search)
	if err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ListWithMemberDelivery(ctx context.Context, page domain.Page) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := paged(withToOne(platformpostgres.Conn(ctx, r.db)), page).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ListWithItems(ctx context.Context, page domain.Page) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := paged(withItems(withToOne(platformpostgres.Conn(ctx, r.db))), page).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func searchQuery(db *gorm.DB, search domain.OrderSearch) (*gorm.DB, error) {
	exprs, err := compileFilters(search.Filters())
	if err != nil {
		return nil, err
	}
	query := db.Model(&orderRecord{}).InnerJoins(memberAlias).Joins(deliveryAlias)
	if len(exprs) > 0 {
		query = query.Clauses(clause.Where{Exprs: exprs})
	}
	return query.Order(orderByID).Limit(domain.MaxSearchResults), nil
}

func withToOne(db *gorm.DB) *gorm.DB {
	return db.Model(&orderRecord{}).InnerJoins(memberAlias).Joins(deliveryAlias)
}

// withItems preloads order lines and their items in batched follow-up
// queries keyed by the root order ids.
func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Item")
}

func paged(db *gorm.DB, page domain.Page) *gorm.DB {
	page = page.Normalize()
	return db.Order(orderByID).Offset(page.Offset).Limit(page.Limit)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		ID:         order.ID,
		MemberID:   order.Member.ID,
		DeliveryID: order.Delivery.ID,
		Delivery: deliveryRecord{
			ID:      order.Delivery.ID,
			Address: toAddressColumns(order.Delivery.Address),
			Status:  string(order.Delivery.Status),
		},
		OrderDate: order.OrderDate,
		Status:    string(order.Status),
	}
	for _, line := range order.Items {
		record.Items = append(record.Items, orderItemRecord{
			ID:         line.ID,
			OrderID:    order.ID,
			ItemID:     line.Item.ID,
			OrderPrice: line.OrderPrice,
			Count:      line.Count,
		})
	}
	return record
}

func toAddressColumns(address memberdomain.Address) addressColumns {
	return addressColumns{City: address.City, Street: address.Street, Zipcode: address.Zipcode}
}

func (a addressColumns) toDomain() memberdomain.Address {
	return memberdomain.Address{City: a.City, Street: a.Street, Zipcode: a.Zipcode}
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID: r.ID,
		Member: memberdomain.Member{
			ID:      r.Member.ID,
			Name:    r.Member.Name,
			Address: r.Member.Address.toDomain(),
		},
		Delivery: domain.Delivery{
			ID:      r.Delivery.ID,
			Address: r.Delivery.Address.toDomain(),
			Status:  domain.DeliveryStatus(r.Delivery.Status),
		},
		OrderDate: r.OrderDate,
		Status:    domain.Status(r.Status),
	}
	for _, line := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID: line.ID,
			Item: itemdomain.Item{
				ID:            line.Item.ID,
				Name:          line.Item.Name,
				Price:         line.Item.Price,
				StockQuantity: line.Item.StockQuantity,
				Categories:    slices.Clone([]string(line.Item.Categories)),
			},
			OrderPrice: line.OrderPrice,
			Count:      line.Count,
		})
	}
	return order
}

func toDomainList(records []orderRecord) []*domain.Order {
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders
}
