package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderState string

const (
	StatePending  OrderState = "pending"
	StateAccepted OrderState = "accepted"
	StateReady    OrderState = "ready"
	StateClaimed  OrderState = "claimed"
	StateRejected OrderState = "rejected"
)

type OrderEvent string

const (
	EventConfirm     OrderEvent = "confirm"
	EventReject      OrderEvent = "reject"
	EventMarkReady   OrderEvent = "mark-ready"
	EventMarkClaimed OrderEvent = "mark-claimed"
)

var ErrInvalidTransition = errors.New("invalid order state transition")

// transitions is the full lifecycle table. rejected and claimed are terminal,
// so they have no outgoing edges.
var transitions = map[OrderState]map[OrderEvent]OrderState{
	StatePending: {
		EventConfirm: StateAccepted,
		EventReject:  StateRejected,
	},
	StateAccepted: {
		EventMarkReady: StateReady,
	},
	StateReady: {
		EventMarkClaimed: StateClaimed,
	},
}

// Transition returns the state reached by applying event to current. Illegal
// combinations, including anything out of a terminal state, return
// ErrInvalidTransition. The caller's current state is never trusted blindly:
// the store re-checks it on write.
func Transition(current OrderState, event OrderEvent) (OrderState, error) {
	next, ok := transitions[current][event]
	if !ok {
		return "", ErrInvalidTransition
	}

	return next, nil
}

// EventForState maps a requested target state back to the lifecycle event
// driving it. Used by the PUT /orders/{id} handler, which receives the desired
// state rather than an event name.
func EventForState(target OrderState) (OrderEvent, error) {
	switch target {
	case StateAccepted:
		return EventConfirm, nil
	case StateRejected:
		return EventReject, nil
	case StateReady:
		return EventMarkReady, nil
	case StateClaimed:
		return EventMarkClaimed, nil
	}

	return "", ErrInvalidTransition
}

func (s OrderState) IsTerminal() bool {
	return s == StateClaimed || s == StateRejected
}

func (s OrderState) IsValid() bool {
	switch s {
	case StatePending, StateAccepted, StateReady, StateClaimed, StateRejected:
		return true
	}

	return false
}

// ActiveStates are the states shown in restaurant work queues; terminal states
// belong to history views.
func ActiveStates() []OrderState {
	return []OrderState{StatePending, StateAccepted, StateReady}
}

func HistoryStates() []OrderState {
	return []OrderState{StateClaimed, StateRejected}
}

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID   string             `bson:"client_id" json:"client_id"`
	PuntoVenta string             `bson:"punto_venta" json:"punto_venta"`
	Products   []OrderItem        `bson:"products" json:"products"`
	State      OrderState         `bson:"state" json:"state"`
	Date       time.Time          `bson:"date" json:"date"`
}
