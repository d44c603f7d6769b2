package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/circlecare/pkg/api"
)

// CircleServiceName is the fully-qualified name of the CircleService service.
const CircleServiceName = "circlecare.v1.CircleService"

const (
	CircleServiceCreateCircleProcedure         = "/circlecare.v1.CircleService/CreateCircle"
	CircleServiceAddMemberProcedure            = "/circlecare.v1.CircleService/AddMember"
	CircleServiceAddMultipleMembersProcedure   = "/circlecare.v1.CircleService/AddMultipleMembers"
	CircleServiceRemoveMemberProcedure         = "/circlecare.v1.CircleService/RemoveMember"
	CircleServicePauseCircleProcedure          = "/circlecare.v1.CircleService/PauseCircle"
	CircleServiceUnpauseCircleProcedure        = "/circlecare.v1.CircleService/UnpauseCircle"
	CircleServiceDeactivateCircleProcedure     = "/circlecare.v1.CircleService/DeactivateCircle"
	CircleServiceSetCreationFeeProcedure       = "/circlecare.v1.CircleService/SetCreationFee"
	CircleServiceSetMaxCirclesPerUserProcedure = "/circlecare.v1.CircleService/SetMaxCirclesPerUser"
	CircleServiceGetCircleProcedure            = "/circlecare.v1.CircleService/GetCircle"
	CircleServiceGetMemberInfoProcedure        = "/circlecare.v1.CircleService/GetMemberInfo"
	CircleServiceGetCircleMembersProcedure     = "/circlecare.v1.CircleService/GetCircleMembers"
	CircleServiceGetMemberAtIndexProcedure     = "/circlecare.v1.CircleService/GetMemberAtIndex"
	CircleServiceIsCircleMemberProcedure       = "/circlecare.v1.CircleService/IsCircleMember"
	CircleServiceGetUserCirclesProcedure       = "/circlecare.v1.CircleService/GetUserCircles"
	CircleServiceGetCircleStatsProcedure       = "/circlecare.v1.CircleService/GetCircleStats"
	CircleServiceGetLedgerInfoProcedure        = "/circlecare.v1.CircleService/GetLedgerInfo"
)

// CircleServiceHandler is implemented by the circle membership service.
type CircleServiceHandler interface {
	CreateCircle(context.Context, *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.Empty], error)
	AddMultipleMembers(context.Context, *connect.Request[api.AddMultipleMembersRequest]) (*connect.Response[api.Empty], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.Empty], error)
	PauseCircle(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error)
	UnpauseCircle(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error)
	DeactivateCircle(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error)
	SetCreationFee(context.Context, *connect.Request[api.SetCreationFeeRequest]) (*connect.Response[api.Empty], error)
	SetMaxCirclesPerUser(context.Context, *connect.Request[api.SetMaxCirclesPerUserRequest]) (*connect.Response[api.Empty], error)
	GetCircle(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleResponse], error)
	GetMemberInfo(context.Context, *connect.Request[api.MemberRequest]) (*connect.Response[api.GetMemberInfoResponse], error)
	GetCircleMembers(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleMembersResponse], error)
	GetMemberAtIndex(context.Context, *connect.Request[api.GetMemberAtIndexRequest]) (*connect.Response[api.GetMemberAtIndexResponse], error)
	IsCircleMember(context.Context, *connect.Request[api.MemberRequest]) (*connect.Response[api.IsCircleMemberResponse], error)
	GetUserCircles(context.Context, *connect.Request[api.GetUserCirclesRequest]) (*connect.Response[api.GetUserCirclesResponse], error)
	GetCircleStats(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleStatsResponse], error)
	GetLedgerInfo(context.Context, *connect.Request[api.GetLedgerInfoRequest]) (*connect.Response[api.GetLedgerInfoResponse], error)
}

// NewCircleServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewCircleServiceHandler(svc CircleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + CircleServiceName + "/", serviceMux(map[string]http.Handler{
		CircleServiceCreateCircleProcedure:         connect.NewUnaryHandler(CircleServiceCreateCircleProcedure, svc.CreateCircle, opts...),
		CircleServiceAddMemberProcedure:            connect.NewUnaryHandler(CircleServiceAddMemberProcedure, svc.AddMember, opts...),
		CircleServiceAddMultipleMembersProcedure:   connect.NewUnaryHandler(CircleServiceAddMultipleMembersProcedure, svc.AddMultipleMembers, opts...),
		CircleServiceRemoveMemberProcedure:         connect.NewUnaryHandler(CircleServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
		CircleServicePauseCircleProcedure:          connect.NewUnaryHandler(CircleServicePauseCircleProcedure, svc.PauseCircle, opts...),
		CircleServiceUnpauseCircleProcedure:        connect.NewUnaryHandler(CircleServiceUnpauseCircleProcedure, svc.UnpauseCircle, opts...),
		CircleServiceDeactivateCircleProcedure:     connect.NewUnaryHandler(CircleServiceDeactivateCircleProcedure, svc.DeactivateCircle, opts...),
		CircleServiceSetCreationFeeProcedure:       connect.NewUnaryHandler(CircleServiceSetCreationFeeProcedure, svc.SetCreationFee, opts...),
		CircleServiceSetMaxCirclesPerUserProcedure: connect.NewUnaryHandler(CircleServiceSetMaxCirclesPerUserProcedure, svc.SetMaxCirclesPerUser, opts...),
		CircleServiceGetCircleProcedure:            connect.NewUnaryHandler(CircleServiceGetCircleProcedure, svc.GetCircle, opts...),
		CircleServiceGetMemberInfoProcedure:        connect.NewUnaryHandler(CircleServiceGetMemberInfoProcedure, svc.GetMemberInfo, opts...),
		CircleServiceGetCircleMembersProcedure:     connect.NewUnaryHandler(CircleServiceGetCircleMembersProcedure, svc.GetCircleMembers, opts...),
		CircleServiceGetMemberAtIndexProcedure:     connect.NewUnaryHandler(CircleServiceGetMemberAtIndexProcedure, svc.GetMemberAtIndex, opts...),
		CircleServiceIsCircleMemberProcedure:       connect.NewUnaryHandler(CircleServiceIsCircleMemberProcedure, svc.IsCircleMember, opts...),
		CircleServiceGetUserCirclesProcedure:       connect.NewUnaryHandler(CircleServiceGetUserCirclesProcedure, svc.GetUserCircles, opts...),
		CircleServiceGetCircleStatsProcedure:       connect.NewUnaryHandler(CircleServiceGetCircleStatsProcedure, svc.GetCircleStats, opts...),
		CircleServiceGetLedgerInfoProcedure:        connect.NewUnaryHandler(CircleServiceGetLedgerInfoProcedure, svc.GetLedgerInfo, opts...),
	})
}

// CircleServiceClient is a client for the circlecare.v1.CircleService service.
type CircleServiceClient interface {
	CircleServiceHandler
}

type circleServiceClient struct {
	createCircle         *connect.Client[api.CreateCircleRequest, api.CreateCircleResponse]
	addMember            *connect.Client[api.AddMemberRequest, api.Empty]
	addMultipleMembers   *connect.Client[api.AddMultipleMembersRequest, api.Empty]
	removeMember         *connect.Client[api.RemoveMemberRequest, api.Empty]
	pauseCircle          *connect.Client[api.CircleRequest, api.Empty]
	unpauseCircle        *connect.Client[api.CircleRequest, api.Empty]
	deactivateCircle     *connect.Client[api.CircleRequest, api.Empty]
	setCreationFee       *connect.Client[api.SetCreationFeeRequest, api.Empty]
	setMaxCirclesPerUser *connect.Client[api.SetMaxCirclesPerUserRequest, api.Empty]
	getCircle            *connect.Client[api.CircleRequest, api.GetCircleResponse]
	getMemberInfo        *connect.Client[api.MemberRequest, api.GetMemberInfoResponse]
	getCircleMembers     *connect.Client[api.CircleRequest, api.GetCircleMembersResponse]
	getMemberAtIndex     *connect.Client[api.GetMemberAtIndexRequest, api.GetMemberAtIndexResponse]
	isCircleMember       *connect.Client[api.MemberRequest, api.IsCircleMemberResponse]
	getUserCircles       *connect.Client[api.GetUserCirclesRequest, api.GetUserCirclesResponse]
	getCircleStats       *connect.Client[api.CircleRequest, api.GetCircleStatsResponse]
	getLedgerInfo        *connect.Client[api.GetLedgerInfoRequest, api.GetLedgerInfoResponse]
}

// NewCircleServiceClient constructs a client for the circlecare.v1.CircleService
// service. baseURL is the server's root, e.g. http://localhost:8080.
func NewCircleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CircleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &circleServiceClient{
		createCircle:         connect.NewClient[api.CreateCircleRequest, api.CreateCircleResponse](httpClient, baseURL+CircleServiceCreateCircleProcedure, opts...),
		addMember:            connect.NewClient[api.AddMemberRequest, api.Empty](httpClient, baseURL+CircleServiceAddMemberProcedure, opts...),
		addMultipleMembers:   connect.NewClient[api.AddMultipleMembersRequest, api.Empty](httpClient, baseURL+CircleServiceAddMultipleMembersProcedure, opts...),
		removeMember:         connect.NewClient[api.RemoveMemberRequest, api.Empty](httpClient, baseURL+CircleServiceRemoveMemberProcedure, opts...),
		pauseCircle:          connect.NewClient[api.CircleRequest, api.Empty](httpClient, baseURL+CircleServicePauseCircleProcedure, opts...),
		unpauseCircle:        connect.NewClient[api.CircleRequest, api.Empty](httpClient, baseURL+CircleServiceUnpauseCircleProcedure, opts...),
		deactivateCircle:     connect.NewClient[api.CircleRequest, api.Empty](httpClient, baseURL+CircleServiceDeactivateCircleProcedure, opts...),
		setCreationFee:       connect.NewClient[api.SetCreationFeeRequest, api.Empty](httpClient, baseURL+CircleServiceSetCreationFeeProcedure, opts...),
		setMaxCirclesPerUser: connect.NewClient[api.SetMaxCirclesPerUserRequest, api.Empty](httpClient, baseURL+CircleServiceSetMaxCirclesPerUserProcedure, opts...),
		getCircle:            connect.NewClient[api.CircleRequest, api.GetCircleResponse](httpClient, baseURL+CircleServiceGetCircleProcedure, opts...),
		getMemberInfo:        connect.NewClient[api.MemberRequest, api.GetMemberInfoResponse](httpClient, baseURL+CircleServiceGetMemberInfoProcedure, opts...),
		getCircleMembers:     connect.NewClient[api.CircleRequest, api.GetCircleMembersResponse](httpClient, baseURL+CircleServiceGetCircleMembersProcedure, opts...),
		getMemberAtIndex:     connect.NewClient[api.GetMemberAtIndexRequest, api.GetMemberAtIndexResponse](httpClient, baseURL+CircleServiceGetMemberAtIndexProcedure, opts...),
		isCircleMember:       connect.NewClient[api.MemberRequest, api.IsCircleMemberResponse](httpClient, baseURL+CircleServiceIsCircleMemberProcedure, opts...),
		getUserCircles:       connect.NewClient[api.GetUserCirclesRequest, api.GetUserCirclesResponse](httpClient, baseURL+CircleServiceGetUserCirclesProcedure, opts...),
		getCircleStats:       connect.NewClient[api.CircleRequest, api.GetCircleStatsResponse](httpClient, baseURL+CircleServiceGetCircleStatsProcedure, opts...),
		getLedgerInfo:        connect.NewClient[api.GetLedgerInfoRequest, api.GetLedgerInfoResponse](httpClient, baseURL+CircleServiceGetLedgerInfoProcedure, opts...),
	}
}

func (c *circleServiceClient) CreateCircle(ctx context.Context, req *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	return c.createCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.Empty], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *circleServiceClient) AddMultipleMembers(ctx context.Context, req *connect.Request[api.AddMultipleMembersRequest]) (*connect.Response[api.Empty], error) {
	return c.addMultipleMembers.CallUnary(ctx, req)
}

func (c *circleServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.Empty], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *circleServiceClient) PauseCircle(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error) {
	return c.pauseCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) UnpauseCircle(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error) {
	return c.unpauseCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) DeactivateCircle(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error) {
	return c.deactivateCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) SetCreationFee(ctx context.Context, req *connect.Request[api.SetCreationFeeRequest]) (*connect.Response[api.Empty], error) {
	return c.setCreationFee.CallUnary(ctx, req)
}

func (c *circleServiceClient) SetMaxCirclesPerUser(ctx context.Context, req *connect.Request[api.SetMaxCirclesPerUserRequest]) (*connect.Response[api.Empty], error) {
	return c.setMaxCirclesPerUser.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetCircle(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleResponse], error) {
	return c.getCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetMemberInfo(ctx context.Context, req *connect.Request[api.MemberRequest]) (*connect.Response[api.GetMemberInfoResponse], error) {
	return c.getMemberInfo.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetCircleMembers(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleMembersResponse], error) {
	return c.getCircleMembers.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetMemberAtIndex(ctx context.Context, req *connect.Request[api.GetMemberAtIndexRequest]) (*connect.Response[api.GetMemberAtIndexResponse], error) {
	return c.getMemberAtIndex.CallUnary(ctx, req)
}

func (c *circleServiceClient) IsCircleMember(ctx context.Context, req *connect.Request[api.MemberRequest]) (*connect.Response[api.IsCircleMemberResponse], error) {
	return c.isCircleMember.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetUserCircles(ctx context.Context, req *connect.Request[api.GetUserCirclesRequest]) (*connect.Response[api.GetUserCirclesResponse], error) {
	return c.getUserCircles.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetCircleStats(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleStatsResponse], error) {
	return c.getCircleStats.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetLedgerInfo(ctx context.Context, req *connect.Request[api.GetLedgerInfoRequest]) (*connect.Response[api.GetLedgerInfoResponse], error) {
	return c.getLedgerInfo.CallUnary(ctx, req)
}

// UnimplementedCircleServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCircleServiceHandler struct{}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(strings.TrimPrefix(procedure, "/")+" is not implemented"))
}

func (UnimplementedCircleServiceHandler) CreateCircle(context.Context, *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	return nil, unimplemented(CircleServiceCreateCircleProcedure)
}

func (UnimplementedCircleServiceHandler) AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(CircleServiceAddMemberProcedure)
}

func (UnimplementedCircleServiceHandler) AddMultipleMembers(context.Context, *connect.Request[api.AddMultipleMembersRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(CircleServiceAddMultipleMembersProcedure)
}

func (UnimplementedCircleServiceHandler) RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(CircleServiceRemoveMemberProcedure)
}

func (UnimplementedCircleServiceHandler) PauseCircle(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(CircleServicePauseCircleProcedure)
}

func (UnimplementedCircleServiceHandler) UnpauseCircle(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(CircleServiceUnpauseCircleProcedure)
}

func (UnimplementedCircleServiceHandler) DeactivateCircle(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(CircleServiceDeactivateCircleProcedure)
}

func (UnimplementedCircleServiceHandler) SetCreationFee(context.Context, *connect.Request[api.SetCreationFeeRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(CircleServiceSetCreationFeeProcedure)
}

func (UnimplementedCircleServiceHandler) SetMaxCirclesPerUser(context.Context, *connect.Request[api.SetMaxCirclesPerUserRequest]) (*connect.Response[api.Empty], error) {
	return nil, unimplemented(CircleServiceSetMaxCirclesPerUserProcedure)
}

func (UnimplementedCircleServiceHandler) GetCircle(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleResponse], error) {
	return nil, unimplemented(CircleServiceGetCircleProcedure)
}

func (UnimplementedCircleServiceHandler) GetMemberInfo(context.Context, *connect.Request[api.MemberRequest]) (*connect.Response[api.GetMemberInfoResponse], error) {
	return nil, unimplemented(CircleServiceGetMemberInfoProcedure)
}

func (UnimplementedCircleServiceHandler) GetCircleMembers(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleMembersResponse], error) {
	return nil, unimplemented(CircleServiceGetCircleMembersProcedure)
}

func (UnimplementedCircleServiceHandler) GetMemberAtIndex(context.Context, *connect.Request[api.GetMemberAtIndexRequest]) (*connect.Response[api.GetMemberAtIndexResponse], error) {
	return nil, unimplemented(CircleServiceGetMemberAtIndexProcedure)
}

func (UnimplementedCircleServiceHandler) IsCircleMember(context.Context, *connect.Request[api.MemberRequest]) (*connect.Response[api.IsCircleMemberResponse], error) {
	return nil, unimplemented(CircleServiceIsCircleMemberProcedure)
}

func (UnimplementedCircleServiceHandler) GetUserCircles(context.Context, *connect.Request[api.GetUserCirclesRequest]) (*connect.Response[api.GetUserCirclesResponse], error) {
	return nil, unimplemented(CircleServiceGetUserCirclesProcedure)
}

func (UnimplementedCircleServiceHandler) GetCircleStats(context.Context, *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleStatsResponse], error) {
	return nil, unimplemented(CircleServiceGetCircleStatsProcedure)
}

func (UnimplementedCircleServiceHandler) GetLedgerInfo(context.Context, *connect.Request[api.GetLedgerInfoRequest]) (*connect.Response[api.GetLedgerInfoResponse], error) {
	return nil, unimplemented(CircleServiceGetLedgerInfoProcedure)
}
