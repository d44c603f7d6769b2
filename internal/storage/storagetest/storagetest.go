// Package storagetest holds the behavioral checks every storage.Store backend must pass.
package storagetest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/internal/storage"
)

var errAbort = errors.New("abort")

// Run exercises store against the storage.Tx contract.
func Run(t *testing.T, store storage.Store) {
	ctx := context.Background()

	t.Run("sequences start at one", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			peek, err := tx.PeekID(storage.SeqCircle)
			if err != nil {
				return err
			}
			if peek != 1 {
				t.Errorf("PeekID = %d, want 1", peek)
			}
			for want := uint64(1); want <= 3; want++ {
				got, err := tx.NextID(storage.SeqCircle)
				if err != nil {
					return err
				}
				if got != want {
					t.Errorf("NextID = %d, want %d", got, want)
				}
			}
			// Sequences are independent.
			got, err := tx.NextID(storage.SeqExpense)
			if err != nil {
				return err
			}
			if got != 1 {
				t.Errorf("expense NextID = %d, want 1", got)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		err = store.View(ctx, func(tx storage.Tx) error {
			peek, err := tx.PeekID(storage.SeqCircle)
			if err != nil {
				return err
			}
			if peek != 4 {
				t.Errorf("PeekID after commit = %d, want 4", peek)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})

	t.Run("circle and members round trip", func(t *testing.T) {
		circle := &models.Circle{
			ID: 100, Name: "Roommates", Creator: "alice",
			CreatedAt: 7, Active: true, MemberCount: 3,
		}
		err := store.Update(ctx, func(tx storage.Tx) error {
			if err := tx.PutCircle(circle); err != nil {
				return err
			}
			for i, addr := range []string{"alice", "carol", "bob"} {
				m := &models.Member{CircleID: 100, Address: addr, Nickname: addr, JoinedAt: uint64(i), Active: true}
				if err := tx.PutMember(m); err != nil {
					return err
				}
				if err := tx.AddUserCircle(addr, 100); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		err = store.View(ctx, func(tx storage.Tx) error {
			got, err := tx.GetCircle(100)
			if err != nil {
				return err
			}
			if !reflect.DeepEqual(got, circle) {
				t.Errorf("GetCircle = %+v, want %+v", got, circle)
			}

			members, err := tx.ListMembers(100)
			if err != nil {
				return err
			}
			want := []string{"alice", "carol", "bob"}
			if !reflect.DeepEqual(members, want) {
				t.Errorf("ListMembers = %v, want %v", members, want)
			}

			m, err := tx.GetMember(100, "carol")
			if err != nil {
				return err
			}
			if m.Nickname != "carol" || m.JoinedAt != 1 || !m.Active {
				t.Errorf("GetMember = %+v", m)
			}

			circles, err := tx.ListUserCircles("bob")
			if err != nil {
				return err
			}
			if !reflect.DeepEqual(circles, []uint64{100}) {
				t.Errorf("ListUserCircles = %v, want [100]", circles)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})

	t.Run("member update keeps join order", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			m, err := tx.GetMember(100, "alice")
			if err != nil {
				return err
			}
			m.Nickname = "Al"
			return tx.PutMember(m)
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		err = store.View(ctx, func(tx storage.Tx) error {
			members, err := tx.ListMembers(100)
			if err != nil {
				return err
			}
			if len(members) != 3 || members[0] != "alice" {
				t.Errorf("ListMembers = %v, want alice first", members)
			}
			m, err := tx.GetMember(100, "alice")
			if err != nil {
				return err
			}
			if m.Nickname != "Al" {
				t.Errorf("Nickname = %q, want Al", m.Nickname)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})

	t.Run("delete member", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			if err := tx.DeleteMember(100, "carol"); err != nil {
				return err
			}
			return tx.RemoveUserCircle("carol", 100)
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		err = store.View(ctx, func(tx storage.Tx) error {
			if _, err := tx.GetMember(100, "carol"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("GetMember after delete: got %v, want ErrNotFound", err)
			}
			members, err := tx.ListMembers(100)
			if err != nil {
				return err
			}
			if !reflect.DeepEqual(members, []string{"alice", "bob"}) {
				t.Errorf("ListMembers = %v, want [alice bob]", members)
			}
			circles, err := tx.ListUserCircles("carol")
			if err != nil {
				return err
			}
			if len(circles) != 0 {
				t.Errorf("ListUserCircles = %v, want empty", circles)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})

	t.Run("missing records return ErrNotFound", func(t *testing.T) {
		err := store.View(ctx, func(tx storage.Tx) error {
			if _, err := tx.GetCircle(999); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("GetCircle: got %v, want ErrNotFound", err)
			}
			if _, err := tx.GetExpense(999); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("GetExpense: got %v, want ErrNotFound", err)
			}
			if _, err := tx.GetSettlement(999); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("GetSettlement: got %v, want ErrNotFound", err)
			}
			if _, ok, err := tx.GetSetting(storage.SettingCreationFee); err != nil || ok {
				t.Errorf("GetSetting: got ok=%v err=%v, want unset", ok, err)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})

	t.Run("expense round trip and update", func(t *testing.T) {
		expense := &models.Expense{
			ID: 50, CircleID: 100, Description: "Groceries", Amount: 300,
			Payer: "alice", Participants: []string{"bob", "alice"},
			CreatedAt: 10, ExpiresAt: 144010,
		}
		err := store.Update(ctx, func(tx storage.Tx) error {
			return tx.PutExpense(expense)
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		err = store.Update(ctx, func(tx storage.Tx) error {
			e, err := tx.GetExpense(50)
			if err != nil {
				return err
			}
			e.Description = "Weekly groceries"
			e.Settled = true
			e.SettledAt = 20
			return tx.PutExpense(e)
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		err = store.View(ctx, func(tx storage.Tx) error {
			got, err := tx.GetExpense(50)
			if err != nil {
				return err
			}
			want := *expense
			want.Description = "Weekly groceries"
			want.Settled = true
			want.SettledAt = 20
			if !reflect.DeepEqual(got, &want) {
				t.Errorf("GetExpense = %+v, want %+v", got, &want)
			}
			ids, err := tx.ListCircleExpenses(100)
			if err != nil {
				return err
			}
			if !reflect.DeepEqual(ids, []uint64{50}) {
				t.Errorf("ListCircleExpenses = %v, want [50]", ids)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})

	t.Run("balances default to zero and zero deletes", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			if err := tx.SetBalance(100, "bob", "alice", 150); err != nil {
				return err
			}
			got, err := tx.GetBalance(100, "bob", "alice")
			if err != nil {
				return err
			}
			if got != 150 {
				t.Errorf("GetBalance in tx = %d, want 150", got)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		err = store.View(ctx, func(tx storage.Tx) error {
			if got, _ := tx.GetBalance(100, "alice", "bob"); got != 0 {
				t.Errorf("reverse balance = %d, want 0", got)
			}
			if got, _ := tx.GetBalance(100, "bob", "alice"); got != 150 {
				t.Errorf("balance = %d, want 150", got)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}

		err = store.Update(ctx, func(tx storage.Tx) error {
			return tx.SetBalance(100, "bob", "alice", 0)
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		err = store.View(ctx, func(tx storage.Tx) error {
			if got, _ := tx.GetBalance(100, "bob", "alice"); got != 0 {
				t.Errorf("balance after zero write = %d, want 0", got)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})

	t.Run("settlements append in order", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			for id := uint64(1); id <= 2; id++ {
				s := &models.Settlement{ID: id, CircleID: 100, Debtor: "bob", Creditor: "alice", Amount: id * 10, BlockHeight: 30}
				if err := tx.AppendSettlement(s); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		err = store.View(ctx, func(tx storage.Tx) error {
			ids, err := tx.ListCircleSettlements(100)
			if err != nil {
				return err
			}
			if !reflect.DeepEqual(ids, []uint64{1, 2}) {
				t.Errorf("ListCircleSettlements = %v, want [1 2]", ids)
			}
			s, err := tx.GetSettlement(2)
			if err != nil {
				return err
			}
			if s.Amount != 20 || s.Debtor != "bob" || s.Creditor != "alice" {
				t.Errorf("GetSettlement = %+v", s)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})

	t.Run("settings round trip", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			return tx.PutSetting(storage.SettingMaxCirclesPerUser, 25)
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		err = store.View(ctx, func(tx storage.Tx) error {
			v, ok, err := tx.GetSetting(storage.SettingMaxCirclesPerUser)
			if err != nil {
				return err
			}
			if !ok || v != 25 {
				t.Errorf("GetSetting = %d, %v; want 25, true", v, ok)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})

	t.Run("failed update rolls back", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			if err := tx.PutCircle(&models.Circle{ID: 200, Name: "Doomed", Creator: "alice", Active: true}); err != nil {
				return err
			}
			if err := tx.SetBalance(100, "alice", "bob", 99); err != nil {
				return err
			}
			if _, err := tx.NextID(storage.SeqSettlement); err != nil {
				return err
			}
			return errAbort
		})
		if !errors.Is(err, errAbort) {
			t.Fatalf("Update error = %v, want errAbort", err)
		}

		err = store.View(ctx, func(tx storage.Tx) error {
			if _, err := tx.GetCircle(200); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("GetCircle after rollback: got %v, want ErrNotFound", err)
			}
			if got, _ := tx.GetBalance(100, "alice", "bob"); got != 0 {
				t.Errorf("balance after rollback = %d, want 0", got)
			}
			if peek, _ := tx.PeekID(storage.SeqSettlement); peek != 1 {
				t.Errorf("settlement PeekID after rollback = %d, want 1", peek)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View failed: %v", err)
		}
	})
}
