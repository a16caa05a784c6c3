package main

import (
	"context"

	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/go-foreman/cqrs/config"
	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/runtime/scheme"
)

const shopGroup scheme.Group = "shop"

func init() {
	scheme.KnownTypesRegistryInstance.AddKnownTypes(shopGroup,
		&PlaceOrder{},
		&ChargeCard{},
		&OrderPlaced{},
		&CardCharged{},
	)
}

type PlaceOrder struct {
	message.ObjectMeta
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
}

type ChargeCard struct {
	message.ObjectMeta
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
}

type OrderPlaced struct {
	message.ObjectMeta
	OrderID string `json:"order_id"`
}

type CardCharged struct {
	message.ObjectMeta
	OrderID string `json:"order_id"`
}

type ordersHandler struct{}

func (h *ordersHandler) Commands() []message.Object {
	return []message.Object{&PlaceOrder{}}
}

func (h *ordersHandler) Handle(ctx context.Context, cmd message.Object) error {
	return nil
}

type billingHandler struct{}

func (h *billingHandler) Commands() []message.Object {
	return []message.Object{&ChargeCard{}}
}

func (h *billingHandler) Handle(ctx context.Context, cmd message.Object) error {
	return nil
}

// salesProjection counts placed orders
type salesProjection struct {
	placed int
}

func (p *salesProjection) Events() []message.Object {
	return []message.Object{&OrderPlaced{}}
}

func (p *salesProjection) Handle(ctx context.Context, ev message.Object) error {
	if _, ok := ev.(*OrderPlaced); ok {
		p.placed++
	}

	return nil
}

func catalog() config.Catalog {
	return config.Catalog{
		CommandsHandlers: map[string]boundedcontext.CommandsHandler{
			"orders":  &ordersHandler{},
			"billing": &billingHandler{},
		},
		Projections: map[string]boundedcontext.EventsListener{
			"sales": &salesProjection{},
		},
	}
}
