package commands_test

import (
	"context"
	"sync"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/application/usecases/commands"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/payment"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// fixedClock keeps handler timestamps deterministic.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// memStore is a concurrency-safe in-memory database shared by every unit of
// work a test creates. Writes land immediately; the per-order lock in the
// handlers provides the serialization the real row locks would.
type memStore struct {
	mu       sync.Mutex
	orders   map[string]*order.Order
	couriers map[string]*courier.Courier
	payments map[string]*payment.Payment
}

func newMemStore() *memStore {
	return &memStore{
		orders:   make(map[string]*order.Order),
		couriers: make(map[string]*courier.Courier),
		payments: make(map[string]*payment.Payment),
	}
}

func (s *memStore) putOrder(o *order.Order)       { s.orders[o.ID().String()] = o }
func (s *memStore) putCourier(c *courier.Courier) { s.couriers[c.ID().String()] = c }
func (s *memStore) putPayment(p *payment.Payment) { s.payments[p.ID().String()] = p }

type memOrderRepo struct{ store *memStore }

func (r memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.putOrder(o)
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.putOrder(o)
	return nil
}

func (r memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return o, nil
}

func (r memOrderRepo) GetAllPending(_ context.Context) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*order.Order
	for _, o := range r.store.orders {
		if o.Status() == order.Pending {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r memOrderRepo) GetAllActiveByClient(_ context.Context, clientID kernel.UUID) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*order.Order
	for _, o := range r.store.orders {
		if o.ClientID().IsEqual(clientID) && !o.Status().IsTerminal() {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r memOrderRepo) CountActiveByCourier(_ context.Context, courierID kernel.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, o := range r.store.orders {
		if o.Courier() == nil || !o.Courier().IsEqual(courierID) {
			continue
		}
		switch o.Status() {
		case order.Assigned, order.PickedUp, order.InTransit:
			count++
		}
	}
	return count, nil
}

type memCourierRepo struct{ store *memStore }

func (r memCourierRepo) Add(_ context.Context, c *courier.Courier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.putCourier(c)
	return nil
}

func (r memCourierRepo) Update(_ context.Context, c *courier.Courier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.putCourier(c)
	return nil
}

func (r memCourierRepo) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.couriers[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courierID", id)
	}
	return c, nil
}

func (r memCourierRepo) GetAllAvailable(_ context.Context) ([]*courier.Courier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*courier.Courier
	for _, c := range r.store.couriers {
		if c.IsAvailable() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memCourierRepo) GetAvailableWithin(_ context.Context, center kernel.GeoPoint, radiusKm float64) ([]*courier.Courier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*courier.Courier
	for _, c := range r.store.couriers {
		if !c.IsAvailable() || c.Position() == nil {
			continue
		}
		if center.DistanceKmTo(*c.Position()) <= radiusKm {
			out = append(out, c)
		}
	}
	return out, nil
}

type memPaymentRepo struct{ store *memStore }

func (r memPaymentRepo) Add(_ context.Context, p *payment.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.putPayment(p)
	return nil
}

func (r memPaymentRepo) Update(_ context.Context, p *payment.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.putPayment(p)
	return nil
}

func (r memPaymentRepo) Get(_ context.Context, id kernel.UUID) (*payment.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.payments[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("paymentID", id)
	}
	return p, nil
}

func (r memPaymentRepo) GetAllByOrder(_ context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*payment.Payment
	for _, p := range r.store.payments {
		if p.OrderID().IsEqual(orderID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memPaymentRepo) GetByProviderTxID(_ context.Context, providerTxID string) (*payment.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.payments {
		if p.ProviderTxID() == providerTxID {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("providerTxID", providerTxID)
}

// memUoW satisfies every narrow unit-of-work interface the handlers cut.
type memUoW struct{ store *memStore }

func (u memUoW) Begin(context.Context) error               { return nil }
func (u memUoW) Commit(context.Context) error              { return nil }
func (u memUoW) Rollback(context.Context) error            { return nil }
func (u memUoW) OrderRepository() ports.OrderRepository    { return memOrderRepo{u.store} }
func (u memUoW) CourierRepository() ports.CourierRepository {
	return memCourierRepo{u.store}
}
func (u memUoW) PaymentRepository() ports.PaymentRepository {
	return memPaymentRepo{u.store}
}

type memUoWFactory struct{ store *memStore }

func (f memUoWFactory) Create() commands.UoW { return memUoW{f.store} }

type memOrderUoWFactory struct{ store *memStore }

func (f memOrderUoWFactory) Create() commands.OrderUoW { return memUoW{f.store} }

type memCourierUoWFactory struct{ store *memStore }

func (f memCourierUoWFactory) Create() commands.CourierUoW { return memUoW{f.store} }

type memPaymentUoWFactory struct{ store *memStore }

func (f memPaymentUoWFactory) Create() commands.PaymentUoW { return memUoW{f.store} }

// recordingPublisher collects published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...ports.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Name()
	}
	return out
}
