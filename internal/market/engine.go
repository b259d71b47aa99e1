package market

import (
	"github.com/filswan/go-swan-lib/logs"
	"github.com/flexicompute/go-rental-provider/internal/models"
)

// DeployDispatcher hands a passing deployment decision to the out-of-scope
// executor. The engine never waits on the execution.
type DeployDispatcher interface {
	DispatchTemplateDeploy(orderId, deviceId, templateId string)
}

// Engine is the rental market core: device registry, order state machine,
// pricing, compatibility and billing behind one boundary. Callers never
// mutate records directly.
type Engine struct {
	Registry *DeviceRegistry
	Orders   *OrderManager
	Catalog  *TemplateCatalog
	Billing  *BillingAggregator
	Policy   PricingPolicy

	dispatcher DeployDispatcher
}

func NewEngine(store *Store, policy PricingPolicy) (*Engine, error) {
	registry, err := NewDeviceRegistry(store)
	if err != nil {
		return nil, err
	}
	orders, err := NewOrderManager(registry, store)
	if err != nil {
		return nil, err
	}
	catalog, err := NewTemplateCatalog(store)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Registry: registry,
		Orders:   orders,
		Catalog:  catalog,
		Billing:  NewBillingAggregator(orders),
		Policy:   policy,
	}, nil
}

// SetDispatcher wires the async deploy executor; nil keeps dispatch off
// (decisions are still recorded on the order).
func (e *Engine) SetDispatcher(d DeployDispatcher) {
	e.dispatcher = d
}

// CheckCompatibility resolves both ids and runs the requirement check.
func (e *Engine) CheckCompatibility(deviceId, templateId string) (CompatResult, error) {
	device, err := e.Registry.Get(deviceId)
	if err != nil {
		return CompatResult{}, err
	}
	template, err := e.Catalog.Get(templateId)
	if err != nil {
		return CompatResult{}, err
	}
	return CheckCompatibility(device, template), nil
}

// DeployTemplate attaches the template to the order after a passing
// compatibility check against the order's device, then dispatches the deploy
// to the executor.
func (e *Engine) DeployTemplate(orderId, templateId string) (*models.RentalOrder, error) {
	order, err := e.Orders.Get(orderId)
	if err != nil {
		return nil, err
	}
	compat, err := e.CheckCompatibility(order.DeviceId, templateId)
	if err != nil {
		return nil, err
	}
	order, err = e.Orders.AttachTemplate(orderId, templateId, compat)
	if err != nil {
		return nil, err
	}
	if e.dispatcher != nil {
		e.dispatcher.DispatchTemplateDeploy(order.Id, order.DeviceId, templateId)
	}
	return order, nil
}

// DeleteTemplate removes a catalog entry unless a running rental still has
// it deployed.
func (e *Engine) DeleteTemplate(templateId string) error {
	if e.Orders.TemplateAttachedToActiveOrder(templateId) {
		return ErrInvalidOrderState
	}
	return e.Catalog.Delete(templateId)
}

var engine *Engine

// InitEngine sets the process-wide engine the HTTP handlers serve.
func InitEngine(e *Engine) {
	engine = e
	logs.GetLogger().Info("rental market engine initialized")
}

func GetEngine() *Engine {
	return engine
}
