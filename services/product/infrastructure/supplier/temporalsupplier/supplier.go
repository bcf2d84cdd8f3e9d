package temporalsupplier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/ghuser/supermarket/services/product/domain/models"
)

// WorkflowStarter is the part of client.Client the supplier needs.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow any, args ...any) (client.WorkflowRun, error)
}

// Supplier implements repositories.Supplier by running RestockWorkflow and
// blocking until it completes.
type Supplier struct {
	starter   WorkflowStarter
	taskQueue string
}

// New returns a Supplier starting workflows on taskQueue.
func New(starter WorkflowStarter, taskQueue string) *Supplier {
	return &Supplier{starter: starter, taskQueue: taskQueue}
}

// Order runs one restock workflow for productID.
func (s *Supplier) Order(ctx context.Context, productID int, manufacturer models.ManufacturerName, requested uint) (uint, error) {
	run, err := s.starter.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        fmt.Sprintf("restock-%d-%s", productID, uuid.NewString()),
		TaskQueue: s.taskQueue,
	}, RestockWorkflowName, RestockInput{
		ProductID:    productID,
		Manufacturer: manufacturer.String(),
		Quantity:     requested,
	})
	if err != nil {
		return 0, fmt.Errorf("start restock workflow: %w", err)
	}

	var ordered uint
	if err := run.Get(ctx, &ordered); err != nil {
		return 0, fmt.Errorf("restock workflow %s: %w", run.GetID(), err)
	}
	return ordered, nil
}
