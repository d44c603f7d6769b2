package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/circlecare/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "circlecare.v1.AuthService"

const (
	AuthServiceLoginProcedure  = "/circlecare.v1.AuthService/Login"
	AuthServiceWhoAmIProcedure = "/circlecare.v1.AuthService/WhoAmI"
)

// AuthServiceHandler is implemented by the session token service.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	WhoAmI(context.Context, *connect.Request[api.WhoAmIRequest]) (*connect.Response[api.WhoAmIResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + AuthServiceName + "/", serviceMux(map[string]http.Handler{
		AuthServiceLoginProcedure:  connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceWhoAmIProcedure: connect.NewUnaryHandler(AuthServiceWhoAmIProcedure, svc.WhoAmI, opts...),
	})
}

// AuthServiceClient is a client for the circlecare.v1.AuthService service.
type AuthServiceClient interface {
	AuthServiceHandler
}

type authServiceClient struct {
	login  *connect.Client[api.LoginRequest, api.LoginResponse]
	whoAmI *connect.Client[api.WhoAmIRequest, api.WhoAmIResponse]
}

// NewAuthServiceClient constructs a client for the circlecare.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		login:  connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		whoAmI: connect.NewClient[api.WhoAmIRequest, api.WhoAmIResponse](httpClient, baseURL+AuthServiceWhoAmIProcedure, opts...),
	}
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) WhoAmI(ctx context.Context, req *connect.Request[api.WhoAmIRequest]) (*connect.Response[api.WhoAmIResponse], error) {
	return c.whoAmI.CallUnary(ctx, req)
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, unimplemented(AuthServiceLoginProcedure)
}

func (UnimplementedAuthServiceHandler) WhoAmI(context.Context, *connect.Request[api.WhoAmIRequest]) (*connect.Response[api.WhoAmIResponse], error) {
	return nil, unimplemented(AuthServiceWhoAmIProcedure)
}
