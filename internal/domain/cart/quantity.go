package cart

import (
	"fmt"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

// Outcome names the result of a quantity transition.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	// OutcomeAtCapacity: increment at q == stock. Carries feedback.
	OutcomeAtCapacity Outcome = "at_capacity"
	// OutcomeAtMinimum: decrement at q == 1. Silent; the control should be disabled.
	OutcomeAtMinimum Outcome = "at_minimum"
	// OutcomeBelowMinimum: SetDirect(v) with v < 1. Silent no-op.
	OutcomeBelowMinimum Outcome = "below_minimum"
	// OutcomeInsufficientStock: SetDirect(v) with v > stock. Carries feedback.
	OutcomeInsufficientStock Outcome = "insufficient_stock"
	// OutcomeOutOfStock: stock == 0, nothing is selectable.
	OutcomeOutOfStock Outcome = "out_of_stock"
)

// Transition is the result of one controller operation. Quantity is the
// state after the operation (unchanged on rejection).
type Transition struct {
	Quantity int     `json:"quantity"`
	Outcome  Outcome `json:"outcome"`
	Message  string  `json:"message,omitempty"`
}

func (t Transition) Accepted() bool { return t.Outcome == OutcomeAccepted }

// HasFeedback reports whether the caller should surface Message to the user.
func (t Transition) HasFeedback() bool { return t.Message != "" }

// QuantityController bounds a selected quantity to [1, stock] for a single
// product view. It knows nothing about carts or orders.
type QuantityController struct {
	stock    int
	quantity int
}

// NewQuantityController starts at 1, or in the disabled state when stock is 0.
func NewQuantityController(stock int) *QuantityController {
	if stock < 0 {
		stock = 0
	}
	q := 1
	if stock == 0 {
		q = 0
	}
	return &QuantityController{stock: stock, quantity: q}
}

// RestoreQuantityController rebuilds a controller from a quantity held by the
// client. current must already satisfy the [1, stock] invariant.
func RestoreQuantityController(stock, current int) (*QuantityController, error) {
	qc := NewQuantityController(stock)
	if qc.Disabled() {
		return qc, nil
	}
	if current < 1 || current > qc.stock {
		return nil, aggregates.NewError(aggregates.CodeValidation, "RestoreQuantityController",
			fmt.Sprintf("quantity %d outside [1, %d]", current, qc.stock), nil)
	}
	qc.quantity = current
	return qc, nil
}

func (qc *QuantityController) Quantity() int { return qc.quantity }
func (qc *QuantityController) Stock() int    { return qc.stock }

// Disabled is true when there is no valid quantity; callers must disable
// every quantity and purchase action.
func (qc *QuantityController) Disabled() bool { return qc.stock == 0 }

func (qc *QuantityController) CanIncrement() bool { return !qc.Disabled() && qc.quantity < qc.stock }
func (qc *QuantityController) CanDecrement() bool { return !qc.Disabled() && qc.quantity > 1 }

func (qc *QuantityController) Increment() Transition {
	if qc.Disabled() {
		return qc.outOfStock()
	}
	if qc.quantity >= qc.stock {
		return qc.reject(OutcomeAtCapacity, fmt.Sprintf("Sorry, only %d items in stock", qc.stock))
	}
	qc.quantity++
	return qc.accept()
}

func (qc *QuantityController) Decrement() Transition {
	if qc.Disabled() {
		return qc.outOfStock()
	}
	if qc.quantity <= 1 {
		return qc.reject(OutcomeAtMinimum, "")
	}
	qc.quantity--
	return qc.accept()
}

func (qc *QuantityController) SetDirect(value int) Transition {
	if qc.Disabled() {
		return qc.outOfStock()
	}
	if value < 1 {
		return qc.reject(OutcomeBelowMinimum, "")
	}
	if value > qc.stock {
		return qc.reject(OutcomeInsufficientStock, fmt.Sprintf("Insufficient stock: only %d available", qc.stock))
	}
	qc.quantity = value
	return qc.accept()
}

func (qc *QuantityController) accept() Transition {
	return Transition{Quantity: qc.quantity, Outcome: OutcomeAccepted}
}

func (qc *QuantityController) reject(o Outcome, msg string) Transition {
	return Transition{Quantity: qc.quantity, Outcome: o, Message: msg}
}

func (qc *QuantityController) outOfStock() Transition {
	return qc.reject(OutcomeOutOfStock, "This product is out of stock")
}
