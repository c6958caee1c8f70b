package storage

import "p2p-delivery/internal/domain"

// Orders is the order entity store.
type Orders struct {
	*Store[domain.Order]
}

// NewOrders creates an empty order store.
func NewOrders() *Orders {
	return &Orders{Store: New[domain.Order]()}
}

// Couriers is the courier entity store.
type Couriers struct {
	*Store[domain.Courier]
}

// NewCouriers creates an empty courier store.
func NewCouriers() *Couriers {
	return &Couriers{Store: New[domain.Courier]()}
}

// FreeSnapshot returns copies of all couriers currently FREE.
func (c *Couriers) FreeSnapshot() []domain.Courier {
	all := c.All()
	out := all[:0]
	for _, cr := range all {
		if cr.Free() {
			out = append(out, cr)
		}
	}
	return out
}

// Customers is the customer profile store.
type Customers = Store[domain.Customer]

// NewCustomers creates an empty customer store.
func NewCustomers() *Customers {
	return New[domain.Customer]()
}

// Payments is the payment transaction store.
type Payments = Store[domain.Payment]

// NewPayments creates an empty payment store.
func NewPayments() *Payments {
	return New[domain.Payment]()
}
