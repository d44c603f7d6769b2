package badger

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/internal/storage"
)

const (
	prefixSeq          = "seq"
	prefixSetting      = "setting"
	prefixCircle       = "circle"
	prefixMember       = "member"
	prefixMemberIdx    = "memberidx"
	prefixUserCircle   = "usercircle"
	prefixUserPos      = "userpos"
	prefixExpense      = "expense"
	prefixCircleExp    = "circleexp"
	prefixBalance      = "balance"
	prefixSettlement   = "settlement"
	prefixCircleSettle = "circlesettle"

	// positionKey orders index entries that have no natural id order.
	positionKey = "meta/position"
)

// key joins a prefix and parts with '/'. uint64 parts are encoded big-endian.
func key(prefix string, parts ...any) []byte {
	b := []byte(prefix)
	for _, p := range parts {
		b = append(b, '/')
		switch v := p.(type) {
		case string:
			b = append(b, v...)
		case uint64:
			b = binary.BigEndian.AppendUint64(b, v)
		default:
			panic(fmt.Sprintf("badger: unsupported key part %T", p))
		}
	}
	return b
}

// indexPrefix returns the scan prefix for children of key(prefix, parts...).
func indexPrefix(prefix string, parts ...any) []byte {
	return append(key(prefix, parts...), '/')
}

func encodeUint(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

func decodeUint(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("badger: corrupt integer value of %d bytes", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// memberRecord stores a member with its position in the circle's join order.
type memberRecord struct {
	models.Member
	Pos uint64 `json:"pos"`
}

// badgerTx implements storage.Tx on a *badger.Txn.
type badgerTx struct {
	txn *badger.Txn
}

func (t *badgerTx) getJSON(k []byte, v any) error {
	item, err := t.txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return storage.ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func (t *badgerTx) putJSON(k []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return t.txn.Set(k, data)
}

func (t *badgerTx) getUint(k []byte) (uint64, bool, error) {
	item, err := t.txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return 0, false, err
	}
	v, err := decodeUint(val)
	return v, err == nil, err
}

func (t *badgerTx) exists(k []byte) (bool, error) {
	_, err := t.txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// scan calls fn for every key under prefix, in key order.
func (t *badgerTx) scan(prefix []byte, fn func(k, v []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := t.txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := fn(item.KeyCopy(nil), val); err != nil {
			return err
		}
	}
	return nil
}

// scanTrailingIDs returns the trailing 8-byte id of every key under prefix.
func (t *badgerTx) scanTrailingIDs(prefix []byte) ([]uint64, error) {
	var ids []uint64
	err := t.scan(prefix, func(k, _ []byte) error {
		id, err := decodeUint(k[len(k)-8:])
		if err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	return ids, err
}

func (t *badgerTx) nextPosition() (uint64, error) {
	pos, _, err := t.getUint([]byte(positionKey))
	if err != nil {
		return 0, err
	}
	pos++
	return pos, t.txn.Set([]byte(positionKey), encodeUint(pos))
}

// NextID increments and returns the named sequence.
func (t *badgerTx) NextID(seq storage.Sequence) (uint64, error) {
	k := key(prefixSeq, string(seq))
	current, _, err := t.getUint(k)
	if err != nil {
		return 0, fmt.Errorf("read sequence %s: %w", seq, err)
	}
	next := current + 1
	if err := t.txn.Set(k, encodeUint(next)); err != nil {
		return 0, fmt.Errorf("advance sequence %s: %w", seq, err)
	}
	return next, nil
}

// PeekID returns the value NextID would return without advancing it.
func (t *badgerTx) PeekID(seq storage.Sequence) (uint64, error) {
	current, _, err := t.getUint(key(prefixSeq, string(seq)))
	if err != nil {
		return 0, fmt.Errorf("read sequence %s: %w", seq, err)
	}
	return current + 1, nil
}

func (t *badgerTx) GetCircle(id uint64) (*models.Circle, error) {
	c := &models.Circle{}
	if err := t.getJSON(key(prefixCircle, id), c); err != nil {
		return nil, fmt.Errorf("get circle %d: %w", id, err)
	}
	return c, nil
}

func (t *badgerTx) PutCircle(c *models.Circle) error {
	if err := t.putJSON(key(prefixCircle, c.ID), c); err != nil {
		return fmt.Errorf("put circle %d: %w", c.ID, err)
	}
	return nil
}

func (t *badgerTx) getMemberRecord(circleID uint64, addr string) (*memberRecord, error) {
	rec := &memberRecord{}
	if err := t.getJSON(key(prefixMember, circleID, addr), rec); err != nil {
		return nil, fmt.Errorf("get member %s of circle %d: %w", addr, circleID, err)
	}
	return rec, nil
}

func (t *badgerTx) GetMember(circleID uint64, addr string) (*models.Member, error) {
	rec, err := t.getMemberRecord(circleID, addr)
	if err != nil {
		return nil, err
	}
	return &rec.Member, nil
}

// PutMember inserts or updates a member. New members get the next join position.
func (t *badgerTx) PutMember(m *models.Member) error {
	rec, err := t.getMemberRecord(m.CircleID, m.Address)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		pos, err := t.nextPosition()
		if err != nil {
			return fmt.Errorf("put member: %w", err)
		}
		rec = &memberRecord{Pos: pos}
		if err := t.txn.Set(key(prefixMemberIdx, m.CircleID, pos), []byte(m.Address)); err != nil {
			return fmt.Errorf("put member index: %w", err)
		}
	case err != nil:
		return err
	}

	rec.Member = *m
	if err := t.putJSON(key(prefixMember, m.CircleID, m.Address), rec); err != nil {
		return fmt.Errorf("put member: %w", err)
	}
	return nil
}

func (t *badgerTx) DeleteMember(circleID uint64, addr string) error {
	rec, err := t.getMemberRecord(circleID, addr)
	if err != nil {
		return err
	}
	if err := t.txn.Delete(key(prefixMemberIdx, circleID, rec.Pos)); err != nil {
		return fmt.Errorf("delete member index: %w", err)
	}
	if err := t.txn.Delete(key(prefixMember, circleID, addr)); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

func (t *badgerTx) ListMembers(circleID uint64) ([]string, error) {
	var members []string
	err := t.scan(indexPrefix(prefixMemberIdx, circleID), func(_, v []byte) error {
		members = append(members, string(v))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (t *badgerTx) ListUserCircles(addr string) ([]uint64, error) {
	var ids []uint64
	err := t.scan(indexPrefix(prefixUserCircle, addr), func(_, v []byte) error {
		id, err := decodeUint(v)
		if err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user circles: %w", err)
	}
	return ids, nil
}

func (t *badgerTx) AddUserCircle(addr string, circleID uint64) error {
	posKey := key(prefixUserPos, addr, circleID)
	ok, err := t.exists(posKey)
	if err != nil || ok {
		return err
	}
	pos, err := t.nextPosition()
	if err != nil {
		return fmt.Errorf("add user circle: %w", err)
	}
	if err := t.txn.Set(key(prefixUserCircle, addr, pos), encodeUint(circleID)); err != nil {
		return fmt.Errorf("add user circle: %w", err)
	}
	return t.txn.Set(posKey, encodeUint(pos))
}

func (t *badgerTx) RemoveUserCircle(addr string, circleID uint64) error {
	posKey := key(prefixUserPos, addr, circleID)
	pos, ok, err := t.getUint(posKey)
	if err != nil || !ok {
		return err
	}
	if err := t.txn.Delete(key(prefixUserCircle, addr, pos)); err != nil {
		return fmt.Errorf("remove user circle: %w", err)
	}
	return t.txn.Delete(posKey)
}

func (t *badgerTx) GetExpense(id uint64) (*models.Expense, error) {
	e := &models.Expense{}
	if err := t.getJSON(key(prefixExpense, id), e); err != nil {
		return nil, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

func (t *badgerTx) PutExpense(e *models.Expense) error {
	k := key(prefixExpense, e.ID)
	ok, err := t.exists(k)
	if err != nil {
		return fmt.Errorf("put expense %d: %w", e.ID, err)
	}
	if !ok {
		if err := t.txn.Set(key(prefixCircleExp, e.CircleID, e.ID), []byte{}); err != nil {
			return fmt.Errorf("put expense index: %w", err)
		}
	}
	if err := t.putJSON(k, e); err != nil {
		return fmt.Errorf("put expense %d: %w", e.ID, err)
	}
	return nil
}

func (t *badgerTx) ListCircleExpenses(circleID uint64) ([]uint64, error) {
	ids, err := t.scanTrailingIDs(indexPrefix(prefixCircleExp, circleID))
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return ids, nil
}

func (t *badgerTx) GetBalance(circleID uint64, debtor, creditor string) (uint64, error) {
	v, _, err := t.getUint(key(prefixBalance, circleID, debtor, creditor))
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return v, nil
}

func (t *badgerTx) SetBalance(circleID uint64, debtor, creditor string, amount uint64) error {
	k := key(prefixBalance, circleID, debtor, creditor)
	var err error
	if amount == 0 {
		err = t.txn.Delete(k)
	} else {
		err = t.txn.Set(k, encodeUint(amount))
	}
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	return nil
}

func (t *badgerTx) GetSettlement(id uint64) (*models.Settlement, error) {
	s := &models.Settlement{}
	if err := t.getJSON(key(prefixSettlement, id), s); err != nil {
		return nil, fmt.Errorf("get settlement %d: %w", id, err)
	}
	return s, nil
}

func (t *badgerTx) AppendSettlement(s *models.Settlement) error {
	k := key(prefixSettlement, s.ID)
	ok, err := t.exists(k)
	if err != nil {
		return fmt.Errorf("append settlement: %w", err)
	}
	if ok {
		return fmt.Errorf("append settlement: id %d already exists", s.ID)
	}
	if err := t.putJSON(k, s); err != nil {
		return fmt.Errorf("append settlement: %w", err)
	}
	if err := t.txn.Set(key(prefixCircleSettle, s.CircleID, s.ID), []byte{}); err != nil {
		return fmt.Errorf("append settlement index: %w", err)
	}
	return nil
}

func (t *badgerTx) ListCircleSettlements(circleID uint64) ([]uint64, error) {
	ids, err := t.scanTrailingIDs(indexPrefix(prefixCircleSettle, circleID))
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	return ids, nil
}

func (t *badgerTx) GetSetting(k storage.Setting) (uint64, bool, error) {
	v, ok, err := t.getUint(key(prefixSetting, string(k)))
	if err != nil {
		return 0, false, fmt.Errorf("get setting %s: %w", k, err)
	}
	return v, ok, nil
}

func (t *badgerTx) PutSetting(k storage.Setting, value uint64) error {
	if err := t.txn.Set(key(prefixSetting, string(k)), encodeUint(value)); err != nil {
		return fmt.Errorf("put setting %s: %w", k, err)
	}
	return nil
}
