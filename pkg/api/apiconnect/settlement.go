package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/circlecare/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService service.
const SettlementServiceName = "circlecare.v1.SettlementService"

const (
	SettlementServiceSettleDebtProcedure            = "/circlecare.v1.SettlementService/SettleDebt"
	SettlementServiceSettleMultipleDebtsProcedure   = "/circlecare.v1.SettlementService/SettleMultipleDebts"
	SettlementServiceSettleExpenseProcedure         = "/circlecare.v1.SettlementService/SettleExpense"
	SettlementServiceContributeToTreasuryProcedure  = "/circlecare.v1.SettlementService/ContributeToTreasury"
	SettlementServiceGetSettlementProcedure         = "/circlecare.v1.SettlementService/GetSettlement"
	SettlementServiceListCircleSettlementsProcedure = "/circlecare.v1.SettlementService/ListCircleSettlements"
)

// SettlementServiceHandler is implemented by the settlement service.
type SettlementServiceHandler interface {
	SettleDebt(context.Context, *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error)
	SettleMultipleDebts(context.Context, *connect.Request[api.SettleMultipleDebtsRequest]) (*connect.Response[api.SettleMultipleDebtsResponse], error)
	SettleExpense(context.Context, *connect.Request[api.SettleExpenseRequest]) (*connect.Response[api.Empty], error)
	ContributeToTreasury(context.Context, *connect.Request[api.ContributeToTreasuryRequest]) (*connect.Response[api.Empty], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ListCircleSettlements(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.ListCircleSettlementsResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SettlementServiceName + "/", serviceMux(map[string]http.Handler{
		SettlementServiceSettleDebtProcedure:            connect.NewUnaryHandler(SettlementServiceSettleDebtProcedure, svc.SettleDebt, opts...),
		SettlementServiceSettleMultipleDebtsProcedure:   connect.NewUnaryHandler(SettlementServiceSettleMultipleDebtsProcedure, svc.SettleMultipleDebts, opts...),
		SettlementServiceSettleExpenseProcedure:         connect.NewUnaryHandler(SettlementServiceSettleExpenseProcedure, svc.SettleExpense, opts...),
		SettlementServiceContributeToTreasuryProcedure:  connect.NewUnaryHandler(SettlementServiceContributeToTreasuryProcedure, svc.ContributeToTreasury, opts...),
		SettlementServiceGetSettlementProcedure:         connect.NewUnaryHandler(SettlementServiceGetSettlementProcedure, svc.GetSettlement, opts...),
		SettlementServiceListCircleSettlementsProcedure: connect.NewUnaryHandler(SettlementServiceListCircleSettlementsProcedure, svc.ListCircleSettlements, opts...),
	})
}

// SettlementServiceClient is a client for the circlecare.v1.SettlementService service.
type SettlementServiceClient interface {
	SettlementServiceHandler
}

type settlementServiceClient struct {
	settleDebt            *connect.Client[api.SettleDebtRequest, api.SettleDebtResponse]
	settleMultipleDebts   *connect.Client[api.SettleMultipleDebtsRequest, api.SettleMultipleDebtsResponse]
	settleExpense         *connect.Client[api.SettleExpenseRequest, api.Empty]
	contributeToTreasury  *connect.Client[api.ContributeToTreasuryRequest, api.Empty]
	getSettlement         *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	listCircleSettlements *connect.Client[api.CircleRequest, api.ListCircleSettlementsResponse]
}

// NewSettlementServiceClient constructs a client for the circlecare.v1.SettlementService service.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &settlementServiceClient{
		settleDebt:            connect.NewClient[api.SettleDebtRequest, api.SettleDebtResponse](httpClient, baseURL+SettlementServiceSettleDebtProcedure, opts...),
		settleMultipleDebts:   connect.NewClient[api.SettleMultipleDebtsRequest, api.SettleMultipleDebtsResponse](httpClient, baseURL+SettlementServiceSettleMultipleDebtsProcedure, opts...),
		settleExpense:         connect.NewClient[api.SettleExpenseRequest, api.Empty](httpClient, baseURL+SettlementServiceSettleExpenseProcedure, opts...),
		contributeToTreasury:  connect.NewClient[api.ContributeToTreasuryRequest, api.Empty](httpClient, baseURL+SettlementServiceContributeToTreasuryProcedure, opts...),
		getSettlement:         connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](httpClient, baseURL+SettlementServiceGetSettlementProcedure, opts...),
		listCircleSettlements: connect.NewClient[api.CircleRequest, api.ListCircleSettlementsResponse](httpClient, baseURL+SettlementServiceListCircleSettlementsProcedure, opts...),
	}
}

func (c *settlementServiceClient) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error) {
	return c.settleDebt.CallUnary(ctx, req)
}

func (c *settlementServiceClient) SettleMultipleDebts(ctx context.Context, req *connect.Request[api.SettleMultipleDebtsRequest]) (*connect.Response[api.SettleMultipleDebtsResponse], error) {
	return c.settleMultipleDebts.CallUnary(ctx, req)
}

func (c *settlementServiceClient) SettleExpense(ctx context.Context, req *connect.Request[api.SettleExpenseRequest]) (*connect.Response[api.Empty], error) {
	return c.settleExpense.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ContributeToTreasury(ctx context.Context, req *connect.Request[api.ContributeToTreasuryRequest]) (*connect.Response[api.Empty], error) {
	return c.contributeToTreasury.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListCircleSettlements(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.ListCircleSettlementsResponse], error) {
	return c.listCircleSettlements.CallUnary(ctx, req)
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) SettleDebt(context.Context, *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error) {
	return nil, unimplemented(SettlementServiceSettleDebtProcedure)
}

func (UnimplementedSettlementServiceHandler) SettleMultipleDebts(context.Context, *connect.Request[api.SettleMultipleDebtsRequest]) (*connect.Response[api.SettleMultipleDebtsResponse], error) {
	return nil, unimplemented(SettlementServiceSettleMultipleDebtsProcedure)
}

func (UnimplementedSettlementServiceHandler) SettleExpense(context.Context, *connect.Request[api.SettleExpenseRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(SettlementServiceSettleExpenseProcedure)
}

func (UnimplementedSettlementServiceHandler) ContributeToTreasury(context.Context, *connect.Request[api.ContributeToTreasuryRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(SettlementServiceContributeToTreasuryProcedure)
}

func (UnimplementedSettlementServiceHandler) GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return nil, unimplemented(SettlementServiceGetSettlementProcedure)
}

func (UnimplementedSettlementServiceHandler) ListCircleSettlements(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.ListCircleSettlementsResponse], error) {
	return nil, unimplemented(SettlementServiceListCircleSettlementsProcedure)
}
