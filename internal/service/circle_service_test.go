package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/circlecare/pkg/api"
)

// createCircle has alice create a circle and admit bob and carol.
func createCircle(t *testing.T, ts *testServer) uint64 {
	t.Helper()
	ctx := context.Background()
	alice := ts.as(t, ts.alice)

	resp, err := alice.circles.CreateCircle(ctx, connect.NewRequest(&api.CreateCircleRequest{
		Name:     "Roommates",
		Nickname: "Alice",
	}))
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}
	id := resp.Msg.CircleID

	_, err = alice.circles.AddMultipleMembers(ctx, connect.NewRequest(&api.AddMultipleMembersRequest{
		CircleID: id,
		Members: []api.MemberInput{
			{Address: ts.bob, Nickname: "Bob"},
			{Address: ts.carol, Nickname: "Carol"},
		},
	}))
	if err != nil {
		t.Fatalf("AddMultipleMembers failed: %v", err)
	}
	return id
}

func TestCreateCircle(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	id := createCircle(t, ts)

	if id != 1 {
		t.Errorf("expected circle id 1, got %d", id)
	}

	c := ts.as(t, ts.bob)
	resp, err := c.circles.GetCircle(ctx, connect.NewRequest(&api.CircleRequest{CircleID: id}))
	if err != nil {
		t.Fatalf("GetCircle failed: %v", err)
	}
	circle := resp.Msg.Circle
	if circle.Name != "Roommates" {
		t.Errorf("expected name 'Roommates', got '%s'", circle.Name)
	}
	if circle.Creator != ts.alice {
		t.Errorf("expected creator %s, got %s", ts.alice, circle.Creator)
	}
	if circle.MemberCount != 3 {
		t.Errorf("expected 3 members, got %d", circle.MemberCount)
	}
	if !circle.Active || circle.Paused {
		t.Errorf("expected active unpaused circle, got %+v", circle)
	}

	members, err := c.circles.GetCircleMembers(ctx, connect.NewRequest(&api.CircleRequest{CircleID: id}))
	if err != nil {
		t.Fatalf("GetCircleMembers failed: %v", err)
	}
	want := []string{ts.alice, ts.bob, ts.carol}
	if len(members.Msg.Members) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(members.Msg.Members))
	}
	for i, m := range want {
		if members.Msg.Members[i] != m {
			t.Errorf("member %d: expected %s, got %s", i, m, members.Msg.Members[i])
		}
	}

	at, err := c.circles.GetMemberAtIndex(ctx, connect.NewRequest(&api.GetMemberAtIndexRequest{CircleID: id, Index: 1}))
	if err != nil {
		t.Fatalf("GetMemberAtIndex failed: %v", err)
	}
	if at.Msg.Address != ts.bob {
		t.Errorf("expected bob at index 1, got %s", at.Msg.Address)
	}

	info, err := c.circles.GetMemberInfo(ctx, connect.NewRequest(&api.MemberRequest{CircleID: id, Address: ts.carol}))
	if err != nil {
		t.Fatalf("GetMemberInfo failed: %v", err)
	}
	if info.Msg.Member.Nickname != "Carol" || info.Msg.Member.JoinedAt != 1000 {
		t.Errorf("unexpected member info: %+v", info.Msg.Member)
	}

	is, err := c.circles.IsCircleMember(ctx, connect.NewRequest(&api.MemberRequest{CircleID: id, Address: ts.mallory}))
	if err != nil {
		t.Fatalf("IsCircleMember failed: %v", err)
	}
	if is.Msg.IsMember {
		t.Error("expected mallory not to be a member")
	}

	circles, err := c.circles.GetUserCircles(ctx, connect.NewRequest(&api.GetUserCirclesRequest{}))
	if err != nil {
		t.Fatalf("GetUserCircles failed: %v", err)
	}
	if len(circles.Msg.CircleIDs) != 1 || circles.Msg.CircleIDs[0] != id {
		t.Errorf("expected bob in circle %d, got %v", id, circles.Msg.CircleIDs)
	}
}

func TestCreateCircleValidation(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.as(t, ts.alice)

	tests := []struct {
		name       string
		req        *api.CreateCircleRequest
		ledgerCode uint32
	}{
		{"empty name", &api.CreateCircleRequest{Name: "", Nickname: "Alice"}, 101},
		{"empty nickname", &api.CreateCircleRequest{Name: "Trip", Nickname: ""}, 102},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alice.circles.CreateCircle(context.Background(), connect.NewRequest(tt.req))
			expectLedgerError(t, err, connect.CodeInvalidArgument, tt.ledgerCode)
		})
	}
}

func TestCircleServiceRequiresAuth(t *testing.T) {
	ts := setupTestServer(t)
	anon := ts.clients()

	_, err := anon.circles.CreateCircle(context.Background(), connect.NewRequest(&api.CreateCircleRequest{
		Name:     "Roommates",
		Nickname: "Alice",
	}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected CodeUnauthenticated, got %v", err)
	}
}

func TestMembershipErrors(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	id := createCircle(t, ts)

	alice := ts.as(t, ts.alice)
	bob := ts.as(t, ts.bob)

	_, err := alice.circles.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{
		CircleID: id, Address: ts.bob, Nickname: "Bobby",
	}))
	expectLedgerError(t, err, connect.CodeAlreadyExists, 209)

	_, err = bob.circles.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{
		CircleID: id, Address: ts.mallory, Nickname: "Mal",
	}))
	expectLedgerError(t, err, connect.CodePermissionDenied, 200)

	_, err = alice.circles.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{
		CircleID: id, Address: "not-a-principal", Nickname: "Nobody",
	}))
	expectLedgerError(t, err, connect.CodeInvalidArgument, 203)

	_, err = alice.circles.GetCircle(ctx, connect.NewRequest(&api.CircleRequest{CircleID: 999}))
	expectLedgerError(t, err, connect.CodeNotFound, 212)

	if _, err := alice.circles.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{
		CircleID: id, Address: ts.carol,
	})); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	_, err = alice.circles.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{
		CircleID: id, Address: ts.carol,
	}))
	expectLedgerError(t, err, connect.CodeNotFound, 206)
}

func TestCircleLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	id := createCircle(t, ts)
	alice := ts.as(t, ts.alice)

	if _, err := alice.circles.PauseCircle(ctx, connect.NewRequest(&api.CircleRequest{CircleID: id})); err != nil {
		t.Fatalf("PauseCircle failed: %v", err)
	}

	_, err := alice.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		CircleID: id,
		ExpenseInput: api.ExpenseInput{
			Description:  "Dinner",
			Amount:       300,
			Participants: []string{ts.alice, ts.bob, ts.carol},
		},
	}))
	expectLedgerError(t, err, connect.CodeFailedPrecondition, 208)

	if _, err := alice.circles.UnpauseCircle(ctx, connect.NewRequest(&api.CircleRequest{CircleID: id})); err != nil {
		t.Fatalf("UnpauseCircle failed: %v", err)
	}
	if _, err := alice.circles.DeactivateCircle(ctx, connect.NewRequest(&api.CircleRequest{CircleID: id})); err != nil {
		t.Fatalf("DeactivateCircle failed: %v", err)
	}

	stats, err := alice.circles.GetCircleStats(ctx, connect.NewRequest(&api.CircleRequest{CircleID: id}))
	if err != nil {
		t.Fatalf("GetCircleStats failed: %v", err)
	}
	if stats.Msg.Stats.Active {
		t.Error("expected circle to be inactive")
	}

	_, err = alice.circles.PauseCircle(ctx, connect.NewRequest(&api.CircleRequest{CircleID: id}))
	expectLedgerError(t, err, connect.CodeFailedPrecondition, 207)
}

func TestOwnerSettings(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	owner := ts.as(t, ts.owner)
	alice := ts.as(t, ts.alice)

	_, err := alice.circles.SetCreationFee(ctx, connect.NewRequest(&api.SetCreationFeeRequest{Fee: 1000}))
	expectLedgerError(t, err, connect.CodePermissionDenied, 100)

	if _, err := owner.circles.SetCreationFee(ctx, connect.NewRequest(&api.SetCreationFeeRequest{Fee: 1000})); err != nil {
		t.Fatalf("SetCreationFee failed: %v", err)
	}
	if _, err := owner.circles.SetMaxCirclesPerUser(ctx, connect.NewRequest(&api.SetMaxCirclesPerUserRequest{Max: 5})); err != nil {
		t.Fatalf("SetMaxCirclesPerUser failed: %v", err)
	}
	_, err = owner.circles.SetMaxCirclesPerUser(ctx, connect.NewRequest(&api.SetMaxCirclesPerUserRequest{Max: 0}))
	expectLedgerError(t, err, connect.CodeInvalidArgument, 101)

	createCircle(t, ts)

	info, err := alice.circles.GetLedgerInfo(ctx, connect.NewRequest(&api.GetLedgerInfoRequest{}))
	if err != nil {
		t.Fatalf("GetLedgerInfo failed: %v", err)
	}
	got := info.Msg
	if got.Owner != ts.owner {
		t.Errorf("expected owner %s, got %s", ts.owner, got.Owner)
	}
	if got.BlockHeight != 1000 {
		t.Errorf("expected block height 1000, got %d", got.BlockHeight)
	}
	if got.NextCircleID != 2 || got.TotalCircles != 1 {
		t.Errorf("expected next id 2 and 1 circle, got %d and %d", got.NextCircleID, got.TotalCircles)
	}
	if got.CreationFee != 1000 || got.MaxCirclesPerUser != 5 {
		t.Errorf("expected fee 1000 and max 5, got %d and %d", got.CreationFee, got.MaxCirclesPerUser)
	}
}
