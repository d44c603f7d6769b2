package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/circlecare/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
const ExpenseServiceName = "circlecare.v1.ExpenseService"

const (
	ExpenseServiceCreateExpenseProcedure            = "/circlecare.v1.ExpenseService/CreateExpense"
	ExpenseServiceAddMultipleExpensesProcedure      = "/circlecare.v1.ExpenseService/AddMultipleExpenses"
	ExpenseServiceUpdateExpenseDescriptionProcedure = "/circlecare.v1.ExpenseService/UpdateExpenseDescription"
	ExpenseServiceGetExpenseProcedure               = "/circlecare.v1.ExpenseService/GetExpense"
	ExpenseServiceListCircleExpensesProcedure       = "/circlecare.v1.ExpenseService/ListCircleExpenses"
	ExpenseServiceGetBalanceProcedure               = "/circlecare.v1.ExpenseService/GetBalance"
	ExpenseServiceGetNetBalanceProcedure            = "/circlecare.v1.ExpenseService/GetNetBalance"
	ExpenseServiceGetSuggestedSettlementsProcedure  = "/circlecare.v1.ExpenseService/GetSuggestedSettlements"
)

// ExpenseServiceHandler is implemented by the expense and balance service.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	AddMultipleExpenses(context.Context, *connect.Request[api.AddMultipleExpensesRequest]) (*connect.Response[api.AddMultipleExpensesResponse], error)
	UpdateExpenseDescription(context.Context, *connect.Request[api.UpdateExpenseDescriptionRequest]) (*connect.Response[api.Empty], error)
	GetExpense(context.Context, *connect.Request[api.ExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListCircleExpenses(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.ListCircleExpensesResponse], error)
	GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error)
	GetNetBalance(context.Context, *connect.Request[api.GetNetBalanceRequest]) (*connect.Response[api.GetNetBalanceResponse], error)
	GetSuggestedSettlements(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.GetSuggestedSettlementsResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ExpenseServiceName + "/", serviceMux(map[string]http.Handler{
		ExpenseServiceCreateExpenseProcedure:            connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceAddMultipleExpensesProcedure:      connect.NewUnaryHandler(ExpenseServiceAddMultipleExpensesProcedure, svc.AddMultipleExpenses, opts...),
		ExpenseServiceUpdateExpenseDescriptionProcedure: connect.NewUnaryHandler(ExpenseServiceUpdateExpenseDescriptionProcedure, svc.UpdateExpenseDescription, opts...),
		ExpenseServiceGetExpenseProcedure:               connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceListCircleExpensesProcedure:       connect.NewUnaryHandler(ExpenseServiceListCircleExpensesProcedure, svc.ListCircleExpenses, opts...),
		ExpenseServiceGetBalanceProcedure:               connect.NewUnaryHandler(ExpenseServiceGetBalanceProcedure, svc.GetBalance, opts...),
		ExpenseServiceGetNetBalanceProcedure:            connect.NewUnaryHandler(ExpenseServiceGetNetBalanceProcedure, svc.GetNetBalance, opts...),
		ExpenseServiceGetSuggestedSettlementsProcedure:  connect.NewUnaryHandler(ExpenseServiceGetSuggestedSettlementsProcedure, svc.GetSuggestedSettlements, opts...),
	})
}

// ExpenseServiceClient is a client for the circlecare.v1.ExpenseService service.
type ExpenseServiceClient interface {
	ExpenseServiceHandler
}

type expenseServiceClient struct {
	createExpense            *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	addMultipleExpenses      *connect.Client[api.AddMultipleExpensesRequest, api.AddMultipleExpensesResponse]
	updateExpenseDescription *connect.Client[api.UpdateExpenseDescriptionRequest, api.Empty]
	getExpense               *connect.Client[api.ExpenseRequest, api.GetExpenseResponse]
	listCircleExpenses       *connect.Client[api.CircleRequest, api.ListCircleExpensesResponse]
	getBalance               *connect.Client[api.GetBalanceRequest, api.GetBalanceResponse]
	getNetBalance            *connect.Client[api.GetNetBalanceRequest, api.GetNetBalanceResponse]
	getSuggestedSettlements  *connect.Client[api.CircleRequest, api.GetSuggestedSettlementsResponse]
}

// NewExpenseServiceClient constructs a client for the circlecare.v1.ExpenseService service.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &expenseServiceClient{
		createExpense:            connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		addMultipleExpenses:      connect.NewClient[api.AddMultipleExpensesRequest, api.AddMultipleExpensesResponse](httpClient, baseURL+ExpenseServiceAddMultipleExpensesProcedure, opts...),
		updateExpenseDescription: connect.NewClient[api.UpdateExpenseDescriptionRequest, api.Empty](httpClient, baseURL+ExpenseServiceUpdateExpenseDescriptionProcedure, opts...),
		getExpense:               connect.NewClient[api.ExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listCircleExpenses:       connect.NewClient[api.CircleRequest, api.ListCircleExpensesResponse](httpClient, baseURL+ExpenseServiceListCircleExpensesProcedure, opts...),
		getBalance:               connect.NewClient[api.GetBalanceRequest, api.GetBalanceResponse](httpClient, baseURL+ExpenseServiceGetBalanceProcedure, opts...),
		getNetBalance:            connect.NewClient[api.GetNetBalanceRequest, api.GetNetBalanceResponse](httpClient, baseURL+ExpenseServiceGetNetBalanceProcedure, opts...),
		getSuggestedSettlements:  connect.NewClient[api.CircleRequest, api.GetSuggestedSettlementsResponse](httpClient, baseURL+ExpenseServiceGetSuggestedSettlementsProcedure, opts...),
	}
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) AddMultipleExpenses(ctx context.Context, req *connect.Request[api.AddMultipleExpensesRequest]) (*connect.Response[api.AddMultipleExpensesResponse], error) {
	return c.addMultipleExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpenseDescription(ctx context.Context, req *connect.Request[api.UpdateExpenseDescriptionRequest]) (*connect.Response[api.Empty], error) {
	return c.updateExpenseDescription.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.ExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListCircleExpenses(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.ListCircleExpensesResponse], error) {
	return c.listCircleExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	return c.getBalance.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetNetBalance(ctx context.Context, req *connect.Request[api.GetNetBalanceRequest]) (*connect.Response[api.GetNetBalanceResponse], error) {
	return c.getNetBalance.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetSuggestedSettlements(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.GetSuggestedSettlementsResponse], error) {
	return c.getSuggestedSettlements.CallUnary(ctx, req)
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceCreateExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) AddMultipleExpenses(context.Context, *connect.Request[api.AddMultipleExpensesRequest]) (*connect.Response[api.AddMultipleExpensesResponse], error) {
	return nil, unimplemented(ExpenseServiceAddMultipleExpensesProcedure)
}

func (UnimplementedExpenseServiceHandler) UpdateExpenseDescription(context.Context, *connect.Request[api.UpdateExpenseDescriptionRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(ExpenseServiceUpdateExpenseDescriptionProcedure)
}

func (UnimplementedExpenseServiceHandler) GetExpense(context.Context, *connect.Request[api.ExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceGetExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) ListCircleExpenses(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.ListCircleExpensesResponse], error) {
	return nil, unimplemented(ExpenseServiceListCircleExpensesProcedure)
}

func (UnimplementedExpenseServiceHandler) GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	return nil, unimplemented(ExpenseServiceGetBalanceProcedure)
}

func (UnimplementedExpenseServiceHandler) GetNetBalance(context.Context, *connect.Request[api.GetNetBalanceRequest]) (*connect.Response[api.GetNetBalanceResponse], error) {
	return nil, unimplemented(ExpenseServiceGetNetBalanceProcedure)
}

func (UnimplementedExpenseServiceHandler) GetSuggestedSettlements(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.GetSuggestedSettlementsResponse], error) {
	return nil, unimplemented(ExpenseServiceGetSuggestedSettlementsProcedure)
}
