package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderCreatedEvent struct {
	OrderID    string      `json:"order_id"`
	BillID     string      `json:"bill_id"`
	ClientID   string      `json:"client_id"`
	PuntoVenta string      `json:"punto_venta"`
	Products   []OrderItem `json:"products"`
	Total      float64     `json:"total"`
	Timestamp  time.Time   `json:"timestamp"`
}

type OrderStatusEvent struct {
	EventType string     `json:"event_type"`
	OrderID   string     `json:"order_id"`
	OldState  OrderState `json:"old_state"`
	NewState  OrderState `json:"new_state"`
	ActorID   string     `json:"actor_id"`
	Timestamp time.Time  `json:"timestamp"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderStatusAudit is the persisted trail of lifecycle transitions, written by
// the status worker off the event queue.
type OrderStatusAudit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   string             `bson:"order_id" json:"order_id"`
	EventType string             `bson:"event_type" json:"event_type"`
	OldState  OrderState         `bson:"old_state" json:"old_state"`
	NewState  OrderState         `bson:"new_state" json:"new_state"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
