package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	memberdomain "github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	ordertypes "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-shop-server/internal/platform/temporal/activities/orders"
)

type countingService struct {
	orderports.Service
	calls int
	err   error
}

func (s *countingService) PlaceOrder(_ context.Context, input ordertypes.PlaceOrderInput) (*orderdomain.Order, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &orderdomain.Order{
		ID:        7,
		Member:    memberdomain.Member{ID: input.MemberID, Name: "Kim"},
		Delivery:  orderdomain.NewDelivery(memberdomain.NewAddress("Seoul", "1", "06000")),
		OrderDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Status:    orderdomain.StatusOrdered,
	}, nil
}

func newEnv(t *testing.T, svc orderports.Service) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	activities := orderactivities.NewActivities(svc)
	env.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	return env
}

func TestOrderPlacementWorkflowReturnsOrder(t *testing.T) {
	svc := &countingService{}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{
		Command: ordertypes.PlaceOrderInput{MemberID: 3, ItemID: 4, Count: 1},
		TraceID: "trace",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var order orderdomain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	require.Equal(t, int64(7), order.ID)
	require.Equal(t, int64(3), order.Member.ID)
	require.Equal(t, orderdomain.StatusOrdered, order.Status)
	require.Equal(t, 1, svc.calls)
}

func TestOrderPlacementWorkflowDoesNotRetryPlacement(t *testing.T) {
	svc := &countingService{err: errors.New("not enough stock")}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{
		Command: ordertypes.PlaceOrderInput{MemberID: 3, ItemID: 4, Count: 100},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.Equal(t, 1, svc.calls)
}
