package ledger

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/internal/storage"
)

// NewMember is one entry of a bulk member addition.
type NewMember struct {
	Address  string
	Nickname string
}

func validLength(s string, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= max
}

func loadCircle(tx storage.Tx, id uint64) (*models.Circle, error) {
	c, err := tx.GetCircle(id)
	if err != nil {
		return nil, notFound(err, ErrCircleNotFound, "circle %d", id)
	}
	return c, nil
}

// requireOpen fails unless the circle accepts expense and settlement mutations.
func requireOpen(c *models.Circle) error {
	if !c.Active {
		return ErrCircleInactive.withf("circle %d", c.ID)
	}
	if c.Paused {
		return ErrCirclePaused.withf("circle %d", c.ID)
	}
	return nil
}

func requireCreator(c *models.Circle, caller string) error {
	if c.Creator != caller {
		return ErrUnauthorized.withf("only the creator of circle %d may do this", c.ID)
	}
	return nil
}

func isMember(tx storage.Tx, circleID uint64, addr string) (bool, error) {
	_, err := tx.GetMember(circleID, addr)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func maxCirclesPerUser(tx storage.Tx) (uint64, error) {
	v, ok, err := tx.GetSetting(storage.SettingMaxCirclesPerUser)
	if err != nil {
		return 0, err
	}
	if !ok {
		return DefaultMaxCirclesPerUser, nil
	}
	return v, nil
}

// enroll admits addr into circle c and updates both membership indexes.
func (l *Ledger) enroll(o *op, c *models.Circle, addr, nickname string) error {
	if err := l.validatePrincipal(addr); err != nil {
		return ErrInvalidPrincipal.withf("%q", addr)
	}
	if !validLength(nickname, maxNicknameLen) {
		return ErrInvalidNickname.withf("nickname must be 1-%d characters", maxNicknameLen)
	}
	exists, err := isMember(o, c.ID, addr)
	if err != nil {
		return err
	}
	if exists {
		return ErrMemberExists.withf("%s in circle %d", addr, c.ID)
	}
	if c.MemberCount >= l.maxMembers {
		return ErrMaxMembers.withf("circle %d has %d members", c.ID, c.MemberCount)
	}

	limit, err := maxCirclesPerUser(o)
	if err != nil {
		return err
	}
	circles, err := o.ListUserCircles(addr)
	if err != nil {
		return err
	}
	if uint64(len(circles)) >= limit {
		return ErrLimitExceeded.withf("%s already belongs to %d circles", addr, len(circles))
	}

	m := &models.Member{
		CircleID: c.ID,
		Address:  addr,
		Nickname: nickname,
		JoinedAt: o.now,
		Active:   true,
	}
	if err := o.PutMember(m); err != nil {
		return err
	}
	if err := o.AddUserCircle(addr, c.ID); err != nil {
		return err
	}
	c.MemberCount++

	o.emit(EventMemberAdded, c.ID, slog.String("member", addr), slog.String("nickname", nickname))
	return nil
}

// CreateCircle creates a circle with the caller as creator and first member.
// When a creation fee is configured it is transferred to the ledger owner.
func (l *Ledger) CreateCircle(ctx context.Context, caller, name, nickname string) (uint64, error) {
	var id uint64
	err := l.update(ctx, "CreateCircle", caller, func(o *op) error {
		if !validLength(name, maxNameLen) {
			return ErrInvalidName.withf("name must be 1-%d characters", maxNameLen)
		}
		if !validLength(nickname, maxNicknameLen) {
			return ErrInvalidNickname.withf("nickname must be 1-%d characters", maxNicknameLen)
		}

		var err error
		id, err = o.NextID(storage.SeqCircle)
		if err != nil {
			return err
		}
		c := &models.Circle{
			ID:        id,
			Name:      name,
			Creator:   caller,
			CreatedAt: o.now,
			Active:    true,
		}
		if err := o.PutCircle(c); err != nil {
			return err
		}
		o.emit(EventCircleCreated, id, slog.String("name", name))
		if err := l.enroll(o, c, caller, nickname); err != nil {
			return err
		}

		fee, _, err := o.GetSetting(storage.SettingCreationFee)
		if err != nil {
			return err
		}
		if fee > 0 && caller != l.owner {
			if err := o.queueTransfer(caller, l.owner, fee, fee); err != nil {
				return err
			}
		}
		return o.PutCircle(c)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AddMember admits addr into the circle. Only the creator may add members.
func (l *Ledger) AddMember(ctx context.Context, caller string, circleID uint64, addr, nickname string) error {
	return l.AddMultipleMembers(ctx, caller, circleID, []NewMember{{Address: addr, Nickname: nickname}})
}

// AddMultipleMembers admits every member or none of them. The first failing
// entry's error is returned.
func (l *Ledger) AddMultipleMembers(ctx context.Context, caller string, circleID uint64, members []NewMember) error {
	name := "AddMultipleMembers"
	if len(members) == 1 {
		name = "AddMember"
	}
	return l.update(ctx, name, caller, func(o *op) error {
		if len(members) == 0 || len(members) > l.maxBatch {
			return ErrInvalidInput.withf("batch must have 1-%d entries", l.maxBatch)
		}
		c, err := loadCircle(o, circleID)
		if err != nil {
			return err
		}
		if err := requireCreator(c, caller); err != nil {
			return err
		}
		if !c.Active {
			return ErrCircleInactive.withf("circle %d", c.ID)
		}
		for _, m := range members {
			if err := l.enroll(o, c, m.Address, m.Nickname); err != nil {
				return err
			}
		}
		return o.PutCircle(c)
	})
}

// RemoveMember removes addr from the circle. The member must have no
// outstanding balance with any other member.
func (l *Ledger) RemoveMember(ctx context.Context, caller string, circleID uint64, addr string) error {
	return l.update(ctx, "RemoveMember", caller, func(o *op) error {
		c, err := loadCircle(o, circleID)
		if err != nil {
			return err
		}
		if err := requireCreator(c, caller); err != nil {
			return err
		}
		if addr == c.Creator {
			return ErrInvalidInput.withf("the creator cannot be removed")
		}
		if _, err := o.GetMember(circleID, addr); err != nil {
			return notFound(err, ErrMemberNotFound, "%s in circle %d", addr, circleID)
		}

		members, err := o.ListMembers(circleID)
		if err != nil {
			return err
		}
		for _, other := range members {
			if other == addr {
				continue
			}
			owes, err := o.GetBalance(circleID, addr, other)
			if err != nil {
				return err
			}
			owed, err := o.GetBalance(circleID, other, addr)
			if err != nil {
				return err
			}
			if owes != 0 || owed != 0 {
				return ErrNonZeroBalance.withf("%s and %s", addr, other)
			}
		}

		if err := o.DeleteMember(circleID, addr); err != nil {
			return err
		}
		if err := o.RemoveUserCircle(addr, circleID); err != nil {
			return err
		}
		c.MemberCount--
		o.emit(EventMemberRemoved, circleID, slog.String("member", addr))
		return o.PutCircle(c)
	})
}

// setPaused pauses or unpauses an active circle.
func (l *Ledger) setPaused(ctx context.Context, name, caller string, circleID uint64, paused bool) error {
	return l.update(ctx, name, caller, func(o *op) error {
		c, err := loadCircle(o, circleID)
		if err != nil {
			return err
		}
		if err := requireCreator(c, caller); err != nil {
			return err
		}
		if !c.Active {
			return ErrCircleInactive.withf("circle %d", c.ID)
		}
		c.Paused = paused
		if paused {
			o.emit(EventCirclePaused, circleID)
		} else {
			o.emit(EventCircleUnpaused, circleID)
		}
		return o.PutCircle(c)
	})
}

// PauseCircle blocks expense and settlement mutations until unpaused.
func (l *Ledger) PauseCircle(ctx context.Context, caller string, circleID uint64) error {
	return l.setPaused(ctx, "PauseCircle", caller, circleID, true)
}

func (l *Ledger) UnpauseCircle(ctx context.Context, caller string, circleID uint64) error {
	return l.setPaused(ctx, "UnpauseCircle", caller, circleID, false)
}

// DeactivateCircle permanently closes the circle to new activity. History is kept.
func (l *Ledger) DeactivateCircle(ctx context.Context, caller string, circleID uint64) error {
	return l.update(ctx, "DeactivateCircle", caller, func(o *op) error {
		c, err := loadCircle(o, circleID)
		if err != nil {
			return err
		}
		if err := requireCreator(c, caller); err != nil {
			return err
		}
		if !c.Active {
			return ErrCircleInactive.withf("circle %d is already deactivated", c.ID)
		}
		c.Active = false
		o.emit(EventCircleDeactivated, circleID)
		return o.PutCircle(c)
	})
}

func (l *Ledger) requireOwner(caller string) error {
	if caller != l.owner {
		return ErrOwnerOnly.withf("%s is not the ledger owner", caller)
	}
	return nil
}

// SetCreationFee sets the fee in microSTX charged for creating a circle.
func (l *Ledger) SetCreationFee(ctx context.Context, caller string, fee uint64) error {
	return l.update(ctx, "SetCreationFee", caller, func(o *op) error {
		if err := l.requireOwner(caller); err != nil {
			return err
		}
		if fee > math.MaxInt64 {
			return ErrInvalidInput.withf("fee %d too large", fee)
		}
		o.emit(EventSettingChanged, 0,
			slog.String("setting", string(storage.SettingCreationFee)),
			slog.Uint64("value", fee),
		)
		return o.PutSetting(storage.SettingCreationFee, fee)
	})
}

// SetMaxCirclesPerUser sets how many circles one principal may belong to.
func (l *Ledger) SetMaxCirclesPerUser(ctx context.Context, caller string, n uint64) error {
	return l.update(ctx, "SetMaxCirclesPerUser", caller, func(o *op) error {
		if err := l.requireOwner(caller); err != nil {
			return err
		}
		if n < 1 || n > MaxCirclesPerUserCeiling {
			return ErrInvalidName.withf("max circles per user must be 1-%d", MaxCirclesPerUserCeiling)
		}
		o.emit(EventSettingChanged, 0,
			slog.String("setting", string(storage.SettingMaxCirclesPerUser)),
			slog.Uint64("value", n),
		)
		return o.PutSetting(storage.SettingMaxCirclesPerUser, n)
	})
}

// GetCircle returns a circle by id.
func (l *Ledger) GetCircle(ctx context.Context, circleID uint64) (*models.Circle, error) {
	var c *models.Circle
	err := l.view(ctx, "GetCircle", func(tx storage.Tx) error {
		var err error
		c, err = loadCircle(tx, circleID)
		return err
	})
	return c, err
}

// GetMemberInfo returns a member of a circle.
func (l *Ledger) GetMemberInfo(ctx context.Context, circleID uint64, addr string) (*models.Member, error) {
	var m *models.Member
	err := l.view(ctx, "GetMemberInfo", func(tx storage.Tx) error {
		var err error
		m, err = tx.GetMember(circleID, addr)
		return notFound(err, ErrMemberNotFound, "%s in circle %d", addr, circleID)
	})
	return m, err
}

// GetCircleMembers returns member addresses in join order.
func (l *Ledger) GetCircleMembers(ctx context.Context, circleID uint64) ([]string, error) {
	var members []string
	err := l.view(ctx, "GetCircleMembers", func(tx storage.Tx) error {
		if _, err := loadCircle(tx, circleID); err != nil {
			return err
		}
		var err error
		members, err = tx.ListMembers(circleID)
		return err
	})
	return members, err
}

// GetMemberAtIndex returns the member at a zero-based join-order index.
func (l *Ledger) GetMemberAtIndex(ctx context.Context, circleID uint64, index uint32) (string, error) {
	members, err := l.GetCircleMembers(ctx, circleID)
	if err != nil {
		return "", err
	}
	if int(index) >= len(members) {
		return "", ErrMemberNotFound.withf("index %d in circle %d", index, circleID)
	}
	return members[index], nil
}

// IsCircleMember reports whether addr belongs to the circle.
func (l *Ledger) IsCircleMember(ctx context.Context, circleID uint64, addr string) (bool, error) {
	var ok bool
	err := l.view(ctx, "IsCircleMember", func(tx storage.Tx) error {
		var err error
		ok, err = isMember(tx, circleID, addr)
		return err
	})
	return ok, err
}

// GetUserCircles returns the circles addr belongs to, in join order.
func (l *Ledger) GetUserCircles(ctx context.Context, addr string) ([]uint64, error) {
	var ids []uint64
	err := l.view(ctx, "GetUserCircles", func(tx storage.Tx) error {
		var err error
		ids, err = tx.ListUserCircles(addr)
		return err
	})
	return ids, err
}

// GetCircleStats returns the circle's running totals.
func (l *Ledger) GetCircleStats(ctx context.Context, circleID uint64) (models.CircleStats, error) {
	c, err := l.GetCircle(ctx, circleID)
	if err != nil {
		return models.CircleStats{}, err
	}
	return c.Stats(), nil
}

// GetNextCircleID returns the id the next created circle will get.
func (l *Ledger) GetNextCircleID(ctx context.Context) (uint64, error) {
	var next uint64
	err := l.view(ctx, "GetNextCircleID", func(tx storage.Tx) error {
		var err error
		next, err = tx.PeekID(storage.SeqCircle)
		return err
	})
	return next, err
}

// GetTotalCircles returns how many circles have ever been created.
func (l *Ledger) GetTotalCircles(ctx context.Context) (uint64, error) {
	next, err := l.GetNextCircleID(ctx)
	if err != nil {
		return 0, err
	}
	return next - 1, nil
}

func (l *Ledger) GetCreationFee(ctx context.Context) (uint64, error) {
	var fee uint64
	err := l.view(ctx, "GetCreationFee", func(tx storage.Tx) error {
		var err error
		fee, _, err = tx.GetSetting(storage.SettingCreationFee)
		return err
	})
	return fee, err
}

func (l *Ledger) GetMaxCirclesPerUser(ctx context.Context) (uint64, error) {
	var n uint64
	err := l.view(ctx, "GetMaxCirclesPerUser", func(tx storage.Tx) error {
		var err error
		n, err = maxCirclesPerUser(tx)
		return err
	})
	return n, err
}
