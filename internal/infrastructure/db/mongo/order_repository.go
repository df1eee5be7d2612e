package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

const ordersCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type mongoOrderItem struct {
	ProductRef   string  `bson:"product_ref"`
	Quantity     int     `bson:"quantity"`
	PriceAtOrder float64 `bson:"price_at_order"`
}

type mongoOrder struct {
	ID     string           `bson:"id"`
	Date   time.Time        `bson:"date"`
	UserID string           `bson:"user_id"`
	Items  []mongoOrderItem `bson:"items"`
	Total  float64          `bson:"total"`
}

func (o mongoOrder) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, domain.OrderItem{
			ProductRef:   it.ProductRef,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}
	return domain.Order{
		ID:     o.ID,
		Date:   o.Date,
		UserID: o.UserID,
		Items:  items,
		Total:  o.Total,
	}
}

func (r *OrderRepository) Append(ctx context.Context, order *domain.Order) error {
	items := make([]mongoOrderItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, mongoOrderItem{
			ProductRef:   it.ProductRef,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}
	doc := mongoOrder{
		ID:     order.ID,
		Date:   order.Date,
		UserID: order.UserID,
		Items:  items,
		Total:  order.Total,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepository) ListByUser(ctx context.Context, username string) ([]domain.Order, error) {
	return r.list(ctx, bson.M{"user_id": username})
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	orders := []domain.Order{}
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, mo.toDomain())
	}
	return orders, cur.Err()
}
