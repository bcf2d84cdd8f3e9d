// Package temporalsupplier runs supplier orders as Temporal workflows.
//
// The API process starts RestockWorkflow and waits for its result; the
// worker process hosts the workflow and its single activity, which calls the
// real supplier. The activity is attempted once so a restock never orders
// twice.
package temporalsupplier

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain/models"
	"github.com/ghuser/supermarket/services/product/domain/repositories"
)

// RestockWorkflowName is the registered workflow type.
const RestockWorkflowName = "RestockWorkflow"

const orderActivityTimeout = 30 * time.Second

// RestockInput is the workflow and activity argument.
type RestockInput struct {
	ProductID    int    `json:"product_id"`
	Manufacturer string `json:"manufacturer"`
	Quantity     uint   `json:"quantity"`
}

// RestockWorkflow orders in.Quantity units from the supplier and returns the
// units it will deliver.
func RestockWorkflow(ctx workflow.Context, in RestockInput) (uint, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: orderActivityTimeout,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})

	var a *Activities
	var ordered uint
	if err := workflow.ExecuteActivity(ctx, a.OrderStock, in).Get(ctx, &ordered); err != nil {
		return 0, err
	}
	workflow.GetLogger(ctx).Info("restock ordered",
		"product_id", in.ProductID, "requested", in.Quantity, "ordered", ordered)
	return ordered, nil
}

// Activities holds the dependencies of the restock activity.
type Activities struct {
	Supplier repositories.Supplier
}

// OrderStock places the order with the wrapped supplier.
func (a *Activities) OrderStock(ctx context.Context, in RestockInput) (uint, error) {
	manufacturer := models.NewManufacturerName(result.Some(in.Manufacturer))
	if manufacturer.IsFailure() {
		return 0, temporal.NewNonRetryableApplicationError(
			manufacturer.Err().Error(), "InvalidManufacturer", manufacturer.Err())
	}

	activity.GetLogger(ctx).Debug("ordering stock", "product_id", in.ProductID, "quantity", in.Quantity)
	return a.Supplier.Order(ctx, in.ProductID, manufacturer.Value(), in.Quantity)
}

// Register adds the restock workflow and activities to w.
func Register(w worker.Registry, acts *Activities) {
	w.RegisterWorkflowWithOptions(RestockWorkflow, workflow.RegisterOptions{Name: RestockWorkflowName})
	w.RegisterActivity(acts)
}
