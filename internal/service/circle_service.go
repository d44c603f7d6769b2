package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/circlecare/internal/ledger"
	"github.com/mmynk/circlecare/pkg/api"
	"github.com/mmynk/circlecare/pkg/api/apiconnect"
)

// CircleService implements the Connect CircleService
type CircleService struct {
	apiconnect.UnimplementedCircleServiceHandler
	ledger *ledger.Ledger
}

// NewCircleService creates a new CircleService backed by the given ledger.
func NewCircleService(l *ledger.Ledger) *CircleService {
	return &CircleService{ledger: l}
}

// CreateCircle creates a circle with the caller as creator and first member.
func (s *CircleService) CreateCircle(ctx context.Context, req *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateCircle request received", "caller", caller, "name", req.Msg.Name)

	id, err := s.ledger.CreateCircle(ctx, caller, req.Msg.Name, req.Msg.Nickname)
	if err != nil {
		return nil, fail("CreateCircle", err, "caller", caller)
	}

	slog.Info("Circle created", "circle_id", id)
	return connect.NewResponse(&api.CreateCircleResponse{CircleID: id}), nil
}

// AddMember admits one member. Creator only.
func (s *CircleService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.Empty], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddMember request received", "circle_id", req.Msg.CircleID, "member", req.Msg.Address)

	if err := s.ledger.AddMember(ctx, caller, req.Msg.CircleID, req.Msg.Address, req.Msg.Nickname); err != nil {
		return nil, fail("AddMember", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// AddMultipleMembers admits a batch of members atomically.
func (s *CircleService) AddMultipleMembers(ctx context.Context, req *connect.Request[api.AddMultipleMembersRequest]) (*connect.Response[api.Empty], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddMultipleMembers request received",
		"circle_id", req.Msg.CircleID,
		"members_count", len(req.Msg.Members),
	)

	members := make([]ledger.NewMember, len(req.Msg.Members))
	for i, m := range req.Msg.Members {
		members[i] = ledger.NewMember{Address: m.Address, Nickname: m.Nickname}
	}
	if err := s.ledger.AddMultipleMembers(ctx, caller, req.Msg.CircleID, members); err != nil {
		return nil, fail("AddMultipleMembers", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// RemoveMember removes a member whose balances are all zero. Creator only.
func (s *CircleService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.Empty], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveMember request received", "circle_id", req.Msg.CircleID, "member", req.Msg.Address)

	if err := s.ledger.RemoveMember(ctx, caller, req.Msg.CircleID, req.Msg.Address); err != nil {
		return nil, fail("RemoveMember", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

func (s *CircleService) PauseCircle(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error) {
	return s.lifecycle(ctx, "PauseCircle", req.Msg.CircleID, s.ledger.PauseCircle)
}

func (s *CircleService) UnpauseCircle(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error) {
	return s.lifecycle(ctx, "UnpauseCircle", req.Msg.CircleID, s.ledger.UnpauseCircle)
}

func (s *CircleService) DeactivateCircle(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.Empty], error) {
	return s.lifecycle(ctx, "DeactivateCircle", req.Msg.CircleID, s.ledger.DeactivateCircle)
}

func (s *CircleService) lifecycle(ctx context.Context, name string, circleID uint64, fn func(context.Context, string, uint64) error) (*connect.Response[api.Empty], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info(name+" request received", "circle_id", circleID)

	if err := fn(ctx, caller, circleID); err != nil {
		return nil, fail(name, err, "circle_id", circleID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// SetCreationFee sets the fee charged for new circles. Owner only.
func (s *CircleService) SetCreationFee(ctx context.Context, req *connect.Request[api.SetCreationFeeRequest]) (*connect.Response[api.Empty], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SetCreationFee request received", "fee", req.Msg.Fee)

	if err := s.ledger.SetCreationFee(ctx, caller, req.Msg.Fee); err != nil {
		return nil, fail("SetCreationFee", err, "caller", caller)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// SetMaxCirclesPerUser sets the per-principal membership limit. Owner only.
func (s *CircleService) SetMaxCirclesPerUser(ctx context.Context, req *connect.Request[api.SetMaxCirclesPerUserRequest]) (*connect.Response[api.Empty], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SetMaxCirclesPerUser request received", "max", req.Msg.Max)

	if err := s.ledger.SetMaxCirclesPerUser(ctx, caller, req.Msg.Max); err != nil {
		return nil, fail("SetMaxCirclesPerUser", err, "caller", caller)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

func (s *CircleService) GetCircle(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleResponse], error) {
	c, err := s.ledger.GetCircle(ctx, req.Msg.CircleID)
	if err != nil {
		return nil, fail("GetCircle", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.GetCircleResponse{Circle: circleToAPI(c)}), nil
}

func (s *CircleService) GetMemberInfo(ctx context.Context, req *connect.Request[api.MemberRequest]) (*connect.Response[api.GetMemberInfoResponse], error) {
	m, err := s.ledger.GetMemberInfo(ctx, req.Msg.CircleID, req.Msg.Address)
	if err != nil {
		return nil, fail("GetMemberInfo", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.GetMemberInfoResponse{Member: memberToAPI(m)}), nil
}

func (s *CircleService) GetCircleMembers(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleMembersResponse], error) {
	members, err := s.ledger.GetCircleMembers(ctx, req.Msg.CircleID)
	if err != nil {
		return nil, fail("GetCircleMembers", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.GetCircleMembersResponse{Members: members}), nil
}

func (s *CircleService) GetMemberAtIndex(ctx context.Context, req *connect.Request[api.GetMemberAtIndexRequest]) (*connect.Response[api.GetMemberAtIndexResponse], error) {
	addr, err := s.ledger.GetMemberAtIndex(ctx, req.Msg.CircleID, req.Msg.Index)
	if err != nil {
		return nil, fail("GetMemberAtIndex", err, "circle_id", req.Msg.CircleID, "index", req.Msg.Index)
	}
	return connect.NewResponse(&api.GetMemberAtIndexResponse{Address: addr}), nil
}

func (s *CircleService) IsCircleMember(ctx context.Context, req *connect.Request[api.MemberRequest]) (*connect.Response[api.IsCircleMemberResponse], error) {
	ok, err := s.ledger.IsCircleMember(ctx, req.Msg.CircleID, req.Msg.Address)
	if err != nil {
		return nil, fail("IsCircleMember", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.IsCircleMemberResponse{IsMember: ok}), nil
}

// GetUserCircles lists the circles of an address, defaulting to the caller.
func (s *CircleService) GetUserCircles(ctx context.Context, req *connect.Request[api.GetUserCirclesRequest]) (*connect.Response[api.GetUserCirclesResponse], error) {
	addr := req.Msg.Address
	if addr == "" {
		caller, err := callerOf(ctx)
		if err != nil {
			return nil, err
		}
		addr = caller
	}
	ids, err := s.ledger.GetUserCircles(ctx, addr)
	if err != nil {
		return nil, fail("GetUserCircles", err, "address", addr)
	}
	return connect.NewResponse(&api.GetUserCirclesResponse{CircleIDs: ids}), nil
}

func (s *CircleService) GetCircleStats(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.GetCircleStatsResponse], error) {
	stats, err := s.ledger.GetCircleStats(ctx, req.Msg.CircleID)
	if err != nil {
		return nil, fail("GetCircleStats", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.GetCircleStatsResponse{Stats: statsToAPI(stats)}), nil
}

// GetLedgerInfo reports the deployment-wide counters and settings.
func (s *CircleService) GetLedgerInfo(ctx context.Context, req *connect.Request[api.GetLedgerInfoRequest]) (*connect.Response[api.GetLedgerInfoResponse], error) {
	info := &api.GetLedgerInfoResponse{
		Owner:       s.ledger.Owner(),
		BlockHeight: s.ledger.BlockHeight(),
	}
	var err error
	if info.NextCircleID, err = s.ledger.GetNextCircleID(ctx); err != nil {
		return nil, fail("GetLedgerInfo", err)
	}
	if info.TotalCircles, err = s.ledger.GetTotalCircles(ctx); err != nil {
		return nil, fail("GetLedgerInfo", err)
	}
	if info.CreationFee, err = s.ledger.GetCreationFee(ctx); err != nil {
		return nil, fail("GetLedgerInfo", err)
	}
	if info.MaxCirclesPerUser, err = s.ledger.GetMaxCirclesPerUser(ctx); err != nil {
		return nil, fail("GetLedgerInfo", err)
	}
	return connect.NewResponse(info), nil
}
