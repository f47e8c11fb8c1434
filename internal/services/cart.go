package services

import (
	"context"
	"strings"
	"time"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/cart"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

const checkoutPath = "/checkout"

// CartResult is the outcome of a cart command. OK false with a Reason is a
// refused request, not an error.
type CartResult struct {
	OK       bool         `json:"ok"`
	Reason   cart.Outcome `json:"reason,omitempty"`
	Message  string       `json:"message,omitempty"`
	Quantity int          `json:"quantity"`
	Next     string       `json:"next,omitempty"`
}

type QuantityAction string

const (
	QuantityIncrement QuantityAction = "increment"
	QuantityDecrement QuantityAction = "decrement"
	QuantitySet       QuantityAction = "set"
)

// QuantityState is a quantity selector after one transition.
type QuantityState struct {
	cart.Transition
	Stock        int  `json:"stock"`
	Disabled     bool `json:"disabled"`
	CanIncrement bool `json:"can_increment"`
	CanDecrement bool `json:"can_decrement"`
}

type CartService interface {
	// ApplyQuantity runs one selector transition for a product starting from current.
	ApplyQuantity(ctx context.Context, productID string, current int, action QuantityAction, value int) (*QuantityState, error)
	// AddToCart validates quantity against stock and adds it to the caller's cart.
	AddToCart(ctx context.Context, productID string, quantity int) (*CartResult, error)
	// BuyNow is AddToCart followed by a redirect to checkout.
	BuyNow(ctx context.Context, productID string, quantity int) (*CartResult, error)
	// QuickAdd adds one unit from a product list and confirms by title.
	QuickAdd(ctx context.Context, productID string) (*CartResult, error)
}

type cartService struct {
	log      *logger.Logger
	products ProductSource
	sink     CartSink
	metrics  *observability.Metrics
	timeout  time.Duration
}

func NewCartService(log *logger.Logger, products ProductSource, sink CartSink, metrics *observability.Metrics, timeout time.Duration) CartService {
	if timeout <= 0 {
		timeout = defaultCollaboratorTimeout
	}
	return &cartService{
		log:      log.With("service", "CartService"),
		products: products,
		sink:     sink,
		metrics:  metrics,
		timeout:  timeout,
	}
}

func (s *cartService) loadProduct(ctx context.Context, op, productID string) (*catalog.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, aggregates.NewError(aggregates.CodeValidation, op, "product id is required", nil)
	}
	p, err := callCollaborator(ctx, s.metrics, "product", s.timeout,
		func(ctx context.Context) (*catalog.Product, error) { return s.products.GetProductByID(ctx, productID) })
	if err != nil && !aggregates.IsCode(err, aggregates.CodeNotFound) {
		return nil, aggregates.Unavailable(op, err)
	}
	if p == nil {
		return nil, aggregates.NotFound(op, "product "+productID+" not found")
	}
	return p, nil
}

func (s *cartService) ApplyQuantity(ctx context.Context, productID string, current int, action QuantityAction, value int) (*QuantityState, error) {
	const op = "Cart.ApplyQuantity"
	p, err := s.loadProduct(ctx, op, productID)
	if err != nil {
		return nil, err
	}
	qc, err := cart.RestoreQuantityController(p.Stock, current)
	if err != nil {
		return nil, err
	}

	var tr cart.Transition
	switch action {
	case QuantityIncrement:
		tr = qc.Increment()
	case QuantityDecrement:
		tr = qc.Decrement()
	case QuantitySet:
		tr = qc.SetDirect(value)
	default:
		return nil, aggregates.NewError(aggregates.CodeValidation, op, "unknown action "+string(action), nil)
	}
	if tr.HasFeedback() {
		s.metrics.IncQuantityRejection(string(tr.Outcome))
	}
	return &QuantityState{
		Transition:   tr,
		Stock:        qc.Stock(),
		Disabled:     qc.Disabled(),
		CanIncrement: qc.CanIncrement(),
		CanDecrement: qc.CanDecrement(),
	}, nil
}

func quantityConfirmation(_ *catalog.Product, quantity int) string { return cart.AddedMessage(quantity) }

func titleConfirmation(p *catalog.Product, _ int) string { return cart.AddedProductMessage(p.Title) }

func (s *cartService) AddToCart(ctx context.Context, productID string, quantity int) (*CartResult, error) {
	return s.add(ctx, "Cart.Add", "add", productID, quantity, quantityConfirmation)
}

func (s *cartService) QuickAdd(ctx context.Context, productID string) (*CartResult, error) {
	return s.add(ctx, "Cart.QuickAdd", "quick_add", productID, 1, titleConfirmation)
}

func (s *cartService) BuyNow(ctx context.Context, productID string, quantity int) (*CartResult, error) {
	res, err := s.add(ctx, "Cart.BuyNow", "buy_now", productID, quantity, quantityConfirmation)
	if err != nil || !res.OK {
		return res, err
	}
	res.Next = checkoutPath
	return res, nil
}

func (s *cartService) add(
	ctx context.Context,
	op, mode, productID string,
	quantity int,
	confirm func(p *catalog.Product, quantity int) string,
) (*CartResult, error) {
	userID := ctxutil.UserID(ctx)
	if userID == "" {
		return nil, aggregates.NewError(aggregates.CodeUnauthenticated, op, "sign in to add items to your cart", nil)
	}
	p, err := s.loadProduct(ctx, op, productID)
	if err != nil {
		return nil, err
	}

	// Validate against a fresh selector: the request must be a quantity the
	// selector itself would accept.
	qc := cart.NewQuantityController(p.Stock)
	tr := qc.SetDirect(quantity)
	if !tr.Accepted() {
		s.metrics.IncCartAdd(mode, string(tr.Outcome))
		if tr.HasFeedback() {
			s.metrics.IncQuantityRejection(string(tr.Outcome))
		}
		return &CartResult{OK: false, Reason: tr.Outcome, Message: tr.Message, Quantity: quantity}, nil
	}

	if err := s.sink.AddItem(ctx, userID, p.ID, tr.Quantity); err != nil {
		s.metrics.IncCartAdd(mode, "error")
		s.log.Error("cart add failed", "user_id", userID, "product_id", p.ID, "error", err)
		if aggregates.IsCode(err, aggregates.CodeValidation) {
			return nil, err
		}
		return nil, aggregates.Unavailable(op, err)
	}
	s.metrics.IncCartAdd(mode, "ok")
	s.log.Info("cart item added", "user_id", userID, "product_id", p.ID, "quantity", tr.Quantity)
	return &CartResult{OK: true, Message: confirm(p, tr.Quantity), Quantity: tr.Quantity}, nil
}
