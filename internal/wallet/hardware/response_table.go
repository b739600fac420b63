package hardware

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/pkg/errors"
)

// Slot is the pending response of one Key. It settles exactly once.
type Slot struct {
	key  Key
	done chan struct{}
	item ResponseItem
	err  error
}

func (s *Slot) Key() Key {
	return s.key
}

// Done is closed once the slot is settled.
func (s *Slot) Done() <-chan struct{} {
	return s.done
}

// Result returns the settled value. It must only be called after Done is closed.
func (s *Slot) Result() (ResponseItem, error) {
	return s.item, s.err
}

func (s *Slot) settled() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// settle must be called with the table lock held.
func (s *Slot) settle(item ResponseItem, err error) bool {
	if s.settled() {
		return false
	}

	s.item = item
	s.err = err
	close(s.done)

	return true
}

// ResponseTable correlates out of order device responses with the callers awaiting
// them. Every Key maps to exactly one Slot. Once poisoned, every slot, existing or
// created later, fails with the poison error.
type ResponseTable struct {
	id       string
	observer Observer

	mu           sync.Mutex
	slots        map[Key]*Slot
	order        []*Slot
	poison       error
	bundleLength int
}

// NewResponseTable creates an empty table. observer may be nil.
func NewResponseTable(observer Observer) *ResponseTable {
	return &ResponseTable{
		id:       uuid.NewString(),
		observer: observer,
		slots:    make(map[Key]*Slot),
	}
}

func (t *ResponseTable) ID() string {
	return t.id
}

func (t *ResponseTable) SetBundleLength(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bundleLength = n
}

func (t *ResponseTable) BundleLength() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.bundleLength
}

// Len returns the number of registered slots.
func (t *ResponseTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.slots)
}

// Err returns the poison error, if any.
func (t *ResponseTable) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.poison
}

// GetOrCreate returns the slot of key, registering it on first use.
func (t *ResponseTable) GetOrCreate(key Key) *Slot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.getOrCreateLocked(key)
}

func (t *ResponseTable) getOrCreateLocked(key Key) *Slot {
	s, ok := t.slots[key]
	if !ok {
		s = &Slot{key: key, done: make(chan struct{})}
		t.slots[key] = s
		t.order = append(t.order, s)
	}

	if t.poison != nil {
		s.settle(ResponseItem{}, t.poison)
	}

	return s
}

// Deliver settles the slot of item. Failed items reject the slot with a DeliveryError
// wrapping the converted device error. A slot settles once; later deliveries for the
// same key are ignored and Deliver reports false.
func (t *ResponseTable) Deliver(ctx context.Context, item ResponseItem) bool {
	var err error
	if !item.Success {
		err = &DeliveryError{Item: item, Err: itemError(item)}
	}

	t.mu.Lock()
	s := t.getOrCreateLocked(item.Key())
	accepted := s.settle(item, err)
	t.mu.Unlock()

	switch {
	case !accepted:
		t.observe(OutcomeIgnored)
		util.LogFromContext(ctx).Debug().
			Str("tableId", t.id).
			Str("network", item.Network).
			Str("path", item.Path).
			Msg("Ignoring device response for settled slot")
	case item.Success:
		t.observe(OutcomeSuccess)
	default:
		t.observe(OutcomeFailure)
	}

	return accepted
}

func itemError(item ResponseItem) error {
	if hwErr := ConvertDeviceError(item.Payload); hwErr != nil {
		return hwErr
	}

	return errors.New("device response failed without payload")
}

// Poison rejects every registered and every future slot with err. The first poison
// error is kept; later calls have no effect.
func (t *ResponseTable) Poison(err error) {
	if err == nil {
		err = ErrCommunicationInterrupted
	}

	t.mu.Lock()
	if t.poison != nil {
		t.mu.Unlock()
		return
	}

	t.poison = err
	for _, s := range t.order {
		s.settle(ResponseItem{}, err)
	}
	t.mu.Unlock()

	if t.observer != nil {
		t.observer.TablePoisoned()
	}
}

// Await blocks until the slot of key settles or ctx is done. After the table was
// poisoned it returns the poison error for every key.
func (t *ResponseTable) Await(ctx context.Context, key Key) (ResponseItem, error) {
	s := t.GetOrCreate(key)

	select {
	case <-s.Done():
	case <-ctx.Done():
		return ResponseItem{}, errors.Wrap(ctx.Err(), "awaiting device response")
	}

	if err := t.Err(); err != nil {
		return ResponseItem{}, err
	}

	return s.Result()
}

// AwaitAll awaits every slot registered so far, in registration order, and returns
// the first error met.
func (t *ResponseTable) AwaitAll(ctx context.Context) ([]ResponseItem, error) {
	t.mu.Lock()
	keys := make([]Key, 0, len(t.order))
	for _, s := range t.order {
		keys = append(keys, s.key)
	}
	t.mu.Unlock()

	items := make([]ResponseItem, 0, len(keys))
	for _, key := range keys {
		item, err := t.Await(ctx, key)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// FirstError returns the first settled item, in registration order, that failed with
// a device error message.
func (t *ResponseTable) FirstError() *ResponseItem {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.order {
		if s.settled() && s.item.HasError() {
			item := s.item
			return &item
		}
	}

	return nil
}

// Reset clears the registry and the poison state so the table can serve a new batch.
// Slots still pending are rejected with ErrTableReset.
func (t *ResponseTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.order {
		s.settle(ResponseItem{}, ErrTableReset)
	}

	t.slots = make(map[Key]*Slot)
	t.order = nil
	t.poison = nil
	t.bundleLength = 0
}

// Destroy poisons the table with ErrTableDestroyed and drops the registry. Only the
// owner of the batch calls it, after every consumer finished.
func (t *ResponseTable) Destroy() {
	t.Poison(ErrTableDestroyed)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.slots = make(map[Key]*Slot)
	t.order = nil
}

func (t *ResponseTable) observe(outcome string) {
	if t.observer != nil {
		t.observer.ItemDelivered(outcome)
	}
}
