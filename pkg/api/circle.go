package api

type CreateCircleRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

type CreateCircleResponse struct {
	CircleID uint64 `json:"circle_id"`
}

type MemberInput struct {
	Address  string `json:"address"`
	Nickname string `json:"nickname"`
}

type AddMemberRequest struct {
	CircleID uint64 `json:"circle_id"`
	Address  string `json:"address"`
	Nickname string `json:"nickname"`
}

type AddMultipleMembersRequest struct {
	CircleID uint64        `json:"circle_id"`
	Members  []MemberInput `json:"members"`
}

type RemoveMemberRequest struct {
	CircleID uint64 `json:"circle_id"`
	Address  string `json:"address"`
}

// CircleRequest addresses a circle by id.
type CircleRequest struct {
	CircleID uint64 `json:"circle_id"`
}

type SetCreationFeeRequest struct {
	Fee uint64 `json:"fee"`
}

type SetMaxCirclesPerUserRequest struct {
	Max uint64 `json:"max"`
}

type GetCircleResponse struct {
	Circle Circle `json:"circle"`
}

type MemberRequest struct {
	CircleID uint64 `json:"circle_id"`
	Address  string `json:"address"`
}

type GetMemberInfoResponse struct {
	Member Member `json:"member"`
}

type GetCircleMembersResponse struct {
	Members []string `json:"members"`
}

type GetMemberAtIndexRequest struct {
	CircleID uint64 `json:"circle_id"`
	Index    uint32 `json:"index"`
}

type GetMemberAtIndexResponse struct {
	Address string `json:"address"`
}

type IsCircleMemberResponse struct {
	IsMember bool `json:"is_member"`
}

type GetUserCirclesRequest struct {
	Address string `json:"address"`
}

type GetUserCirclesResponse struct {
	CircleIDs []uint64 `json:"circle_ids"`
}

type GetCircleStatsResponse struct {
	Stats CircleStats `json:"stats"`
}

type GetLedgerInfoRequest struct{}

// GetLedgerInfoResponse reports deployment-wide counters and settings.
type GetLedgerInfoResponse struct {
	Owner             string `json:"owner"`
	BlockHeight       uint64 `json:"block_height"`
	NextCircleID      uint64 `json:"next_circle_id"`
	TotalCircles      uint64 `json:"total_circles"`
	CreationFee       uint64 `json:"creation_fee"`
	MaxCirclesPerUser uint64 `json:"max_circles_per_user"`
}
