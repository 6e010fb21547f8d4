// Package orchestrate drives one order through fetch, compute, and effect
// application. Write effects are classified critical or optional: critical
// failures aggregate into the operation's failure, optional failures go to
// the observability sink and never block success.
package orchestrate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minhph/orderflow/internal/core/domain"
	"github.com/minhph/orderflow/internal/core/effect"
	"github.com/minhph/orderflow/internal/core/pricing"
	"github.com/minhph/orderflow/internal/orchestrate/retry"
)

// Orchestrator coordinates order processing against a fixed set of
// capabilities. Safe for concurrent use; all per-order state is local to
// a ProcessOrder call.
type Orchestrator struct {
	caps     *Capabilities
	policies retry.Table
	sink     Sink
	cacheTTL time.Duration
	log      *slog.Logger

	optional sync.WaitGroup
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithPolicies overrides the retry policy table.
func WithPolicies(t retry.Table) Option {
	return func(o *Orchestrator) { o.policies = t }
}

// WithSink sets the observability sink for effect outcomes.
func WithSink(s Sink) Option {
	return func(o *Orchestrator) { o.sink = s }
}

// WithCacheTTL sets the TTL for cached processed orders.
func WithCacheTTL(d time.Duration) Option {
	return func(o *Orchestrator) { o.cacheTTL = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New creates an orchestrator over the given capabilities.
func New(caps *Capabilities, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		caps:     caps,
		policies: retry.DefaultTable(),
		sink:     NopSink{},
		cacheTTL: time.Hour,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessOrder runs the full pipeline for one order. On success the
// ProcessedOrder is returned and optional effects continue in the
// background; on failure the error is a *Failure with ordered causes.
func (o *Orchestrator) ProcessOrder(ctx context.Context, orderID string) (*domain.ProcessedOrder, error) {
	in, failure := o.fetchInputs(ctx, orderID)
	if failure != nil {
		return nil, failure
	}

	result, missing := pricing.Compute(in.order, in.customer, in.products, in.rules)
	if len(missing) > 0 {
		o.log.Warn("products missing from catalog",
			"order_id", orderID, "product_ids", missing)
	}

	critical, optional := o.plan(in, result, missing)

	if failure := o.applyCritical(ctx, critical); failure != nil {
		return nil, failure
	}

	// Success is decided here. Optional effects run detached from the
	// caller's context and report to the sink only.
	o.applyOptional(context.WithoutCancel(ctx), optional)

	o.log.Info("order processed",
		"order_id", orderID,
		"customer_id", in.customer.ID,
		"total", result.Total,
		"loyalty_points", result.LoyaltyPoints)

	return result, nil
}

// Wait blocks until all in-flight optional effects have completed. Used by
// shutdown and tests; callers of ProcessOrder never need it.
func (o *Orchestrator) Wait() {
	o.optional.Wait()
}

type inputs struct {
	order    *domain.Order
	customer *domain.Customer
	products map[string]*domain.Product
	rules    []domain.DiscountRule
}

// fetchInputs gathers remote state. Order and customer reads gate everything
// and short-circuit on absence; products and rules have no dependency on
// each other and run concurrently.
func (o *Orchestrator) fetchInputs(ctx context.Context, orderID string) (*inputs, *Failure) {
	storePolicy := o.policies[effect.GroupStore]
	pricingPolicy := o.policies[effect.GroupExternalAPI]

	var order *domain.Order
	res := retry.Do(ctx, storePolicy, func(ctx context.Context) error {
		var err error
		order, err = o.caps.Orders.GetByID(ctx, orderID)
		return err
	})
	if res.Err != nil {
		return nil, singleFailure(fmt.Sprintf("fetch order %s: %v", orderID, res.Err))
	}
	if order == nil {
		return nil, singleFailure(fmt.Sprintf("Order %s not found", orderID))
	}

	var customer *domain.Customer
	res = retry.Do(ctx, storePolicy, func(ctx context.Context) error {
		var err error
		customer, err = o.caps.Customers.GetByID(ctx, order.CustomerID)
		return err
	})
	if res.Err != nil {
		return nil, singleFailure(fmt.Sprintf("fetch customer %s: %v", order.CustomerID, res.Err))
	}
	if customer == nil {
		return nil, singleFailure(fmt.Sprintf("Customer %s not found", order.CustomerID))
	}

	var (
		products    map[string]*domain.Product
		rules       []domain.DiscountRule
		productsErr error
		rulesErr    error
		wg          sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		res := retry.Do(ctx, storePolicy, func(ctx context.Context) error {
			var err error
			products, err = o.caps.Products.GetByIDs(ctx, order.ProductIDs())
			return err
		})
		productsErr = res.Err
	}()
	go func() {
		defer wg.Done()
		res := retry.Do(ctx, pricingPolicy, func(ctx context.Context) error {
			var err error
			rules, err = o.caps.Pricing.GetDiscountRules(ctx)
			return err
		})
		rulesErr = res.Err
	}()
	wg.Wait()

	if productsErr != nil {
		return nil, singleFailure(fmt.Sprintf("fetch products: %v", productsErr))
	}
	if rulesErr != nil {
		return nil, singleFailure(fmt.Sprintf("fetch discount rules: %v", rulesErr))
	}

	return &inputs{order: order, customer: customer, products: products, rules: rules}, nil
}

// plannedEffect pairs an effect kind with its bound invocation.
type plannedEffect struct {
	kind effect.Kind
	call func(context.Context) error
}

// plan derives every effect from the computed result and partitions them
// by the classifier. Alert dispatch is planned only when products were
// missing.
func (o *Orchestrator) plan(
	in *inputs,
	result *domain.ProcessedOrder,
	missing []string,
) (critical, optional []plannedEffect) {
	deltas := pricing.StockDeltas(result)
	subject, body := pricing.ConfirmationEmail(result)
	event := pricing.ProcessedEvent(uuid.NewString(), result, in.customer.Tier)

	planned := []plannedEffect{
		{effect.KindUpdateInventory, func(ctx context.Context) error {
			return o.caps.Products.UpdateInventory(ctx, deltas)
		}},
		{effect.KindUpdateTotalPurchases, func(ctx context.Context) error {
			return o.caps.Customers.UpdateTotalPurchases(ctx, in.customer.ID, result.Total)
		}},
		{effect.KindCacheResult, func(ctx context.Context) error {
			return o.caps.Cache.Set(ctx, pricing.CacheKey(result.OrderID), result, o.cacheTTL)
		}},
		{effect.KindSendEmail, func(ctx context.Context) error {
			return o.caps.Mail.SendEmail(ctx, in.customer.Email, subject, body)
		}},
		{effect.KindTrackEvent, func(ctx context.Context) error {
			return o.caps.Analytics.TrackEvent(ctx, event)
		}},
	}

	if len(missing) > 0 {
		alerts := pricing.MissingProductAlerts(result.OrderID, missing, result.ProcessedAt)
		planned = append(planned, plannedEffect{
			effect.KindSendAlerts, func(ctx context.Context) error {
				return o.caps.Alerts.SendAlerts(ctx, alerts)
			},
		})
	}

	for _, p := range planned {
		if effect.Classify(p.kind) == effect.Critical {
			critical = append(critical, p)
		} else {
			optional = append(optional, p)
		}
	}
	return critical, optional
}

// applyCritical dispatches all critical effects concurrently, awaits them
// all, and aggregates every failure in dispatch order. It never
// short-circuits: a single report should surface every broken collaborator.
func (o *Orchestrator) applyCritical(ctx context.Context, planned []plannedEffect) *Failure {
	outcomes := make([]effect.Outcome, len(planned))

	var wg sync.WaitGroup
	for i, p := range planned {
		wg.Add(1)
		go func(i int, p plannedEffect) {
			defer wg.Done()
			outcomes[i] = o.invoke(ctx, p)
		}(i, p)
	}
	wg.Wait()

	var causes []string
	for _, out := range outcomes {
		o.sink.Observe(out)
		if out.Failed() {
			causes = append(causes, fmt.Sprintf("%s: %v", out.Kind, out.Err))
		}
	}
	if len(causes) > 0 {
		return &Failure{Causes: causes}
	}
	return nil
}

// applyOptional dispatches optional effects in the background. The return
// path does not wait; each outcome, success or failure, is delivered to
// the sink.
func (o *Orchestrator) applyOptional(ctx context.Context, planned []plannedEffect) {
	for _, p := range planned {
		o.optional.Add(1)
		go func(p plannedEffect) {
			defer o.optional.Done()
			out := o.invoke(ctx, p)
			if out.Failed() {
				o.log.Warn("optional effect failed",
					"effect", out.Kind, "attempts", out.Attempts, "error", out.Err)
			}
			o.sink.Observe(out)
		}(p)
	}
}

// invoke runs one effect through its retry policy.
func (o *Orchestrator) invoke(ctx context.Context, p plannedEffect) effect.Outcome {
	res := retry.Do(ctx, o.policies.ForKind(p.kind), p.call)
	return effect.Outcome{
		Kind:     p.kind,
		Err:      res.Err,
		Attempts: res.Attempts,
		Duration: res.Duration,
	}
}
