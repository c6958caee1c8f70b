package domain

type (
	// OrderStatus represents the lifecycle state of an order.
	OrderStatus string
	// CourierStatus represents the availability of a courier.
	CourierStatus string
	// ItemCategory represents the category of the ordered item.
	ItemCategory string
	// PaymentMode represents how an order is paid.
	PaymentMode string
)

// Order lifecycle states. PENDING -> ASSIGNED -> PICKED_UP -> DELIVERED,
// with CANCELLED reachable from PENDING and ASSIGNED only.
const (
	OrderPending   OrderStatus = "PENDING"
	OrderAssigned  OrderStatus = "ASSIGNED"
	OrderPickedUp  OrderStatus = "PICKED_UP"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Courier availability states.
const (
	CourierFree CourierStatus = "FREE"
	CourierBusy CourierStatus = "BUSY"
)

// Payment modes.
const (
	PayCash   PaymentMode = "CASH"
	PayUPI    PaymentMode = "UPI"
	PayWallet PaymentMode = "WALLET"
)

// Built-in item categories. The allowed set for placement comes from
// configuration and may be a subset of these.
const (
	ItemFood        ItemCategory = "FOOD"
	ItemElectronics ItemCategory = "ELECTRONICS"
	ItemBooks       ItemCategory = "BOOKS"
	ItemDocuments   ItemCategory = "DOCUMENTS"
	ItemClothing    ItemCategory = "CLOTHING"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderAssigned, OrderPickedUp, OrderDelivered, OrderCancelled,
}

var allowedPaymentModes = [...]PaymentMode{
	PayCash, PayUPI, PayWallet,
}

// Valid checks if the OrderStatus is one of the known states.
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanCancel reports whether an order in this status may still be cancelled.
// Once picked up, an order cannot be cancelled.
func (s OrderStatus) CanCancel() bool {
	return s == OrderPending || s == OrderAssigned
}

// Valid checks if the PaymentMode is one of the supported modes.
func (m PaymentMode) Valid() bool {
	for _, v := range allowedPaymentModes {
		if m == v {
			return true
		}
	}
	return false
}

// DefaultItemCategories returns the full built-in category set.
func DefaultItemCategories() []ItemCategory {
	return []ItemCategory{ItemFood, ItemElectronics, ItemBooks, ItemDocuments, ItemClothing}
}
