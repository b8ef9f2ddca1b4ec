package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"escrow/internal/domain"
	"escrow/internal/domain/model"
	repo "escrow/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// in-memory transactional store
// =====================

// memStore backs the fake repos. The tx manager holds the lock for the
// whole transaction and restores a snapshot when fn fails, so the fakes
// honor the same all-or-nothing and per-account serialization guarantees
// the contract demands from a real store.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]decimal.Decimal
	orders   map[string]model.Order
	byRef    map[string]string
	entries  []model.LedgerEntry
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]decimal.Decimal{},
		orders:   map[string]model.Order{},
		byRef:    map[string]string{},
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.accounts {
		cp.accounts[k] = v
	}
	for k, v := range s.orders {
		cp.orders[k] = v
	}
	for k, v := range s.byRef {
		cp.byRef[k] = v
	}
	cp.entries = append(cp.entries, s.entries...)
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.accounts = snap.accounts
	s.orders = snap.orders
	s.byRef = snap.byRef
	s.entries = snap.entries
}

func (s *memStore) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.accounts[id]
	require.True(t, ok, "account %s missing", id)
	return b
}

func (s *memStore) order(t *testing.T, id string) model.Order {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	require.True(t, ok, "order %s missing", id)
	return o
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type memTxManager struct {
	store *memStore
}

func (m *memTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(&memTxRepos{store: m.store}); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type memTxRepos struct {
	store *memStore
}

func (r *memTxRepos) Orders() repo.OrderRepository              { return &memOrderRepo{store: r.store} }
func (r *memTxRepos) Accounts() repo.AccountRepository          { return &memAccountRepo{store: r.store} }
func (r *memTxRepos) LedgerEntries() repo.LedgerEntryRepository { return &memLedgerRepo{store: r.store} }

type memAccountRepo struct {
	store *memStore
}

func (r *memAccountRepo) FindByID(ctx context.Context, id string) (model.Account, error) {
	b, ok := r.store.accounts[id]
	if !ok {
		return model.Account{}, repo.ErrNotFound
	}
	return model.Account{ID: id, Balance: b}, nil
}

func (r *memAccountRepo) Debit(ctx context.Context, id string, amount decimal.Decimal) error {
	b, ok := r.store.accounts[id]
	if !ok {
		return repo.ErrNotFound
	}
	if b.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}
	r.store.accounts[id] = b.Sub(amount)
	return nil
}

func (r *memAccountRepo) Credit(ctx context.Context, id string, amount decimal.Decimal) error {
	b, ok := r.store.accounts[id]
	if !ok {
		return repo.ErrNotFound
	}
	r.store.accounts[id] = b.Add(amount)
	return nil
}

func (r *memAccountRepo) Create(ctx context.Context, account model.Account) error {
	r.store.accounts[account.ID] = account.Balance
	return nil
}

type memOrderRepo struct {
	store *memStore
}

func (r *memOrderRepo) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	o, ok := r.store.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error) {
	return r.FindByID(ctx, orderID)
}

func (r *memOrderRepo) FindByPaymentReference(ctx context.Context, ref string) (model.Order, bool, error) {
	id, ok := r.store.byRef[ref]
	if !ok {
		return model.Order{}, false, nil
	}
	return r.store.orders[id], true, nil
}

func (r *memOrderRepo) Create(ctx context.Context, order model.Order) error {
	if _, exists := r.store.orders[order.OrderID]; exists {
		return repo.ErrDuplicate
	}
	if _, exists := r.store.byRef[order.PaymentReference]; exists {
		return repo.ErrDuplicate
	}
	r.store.orders[order.OrderID] = order
	r.store.byRef[order.PaymentReference] = order.OrderID
	return nil
}

func (r *memOrderRepo) MarkDelivered(ctx context.Context, orderID string, deliveryReference string) error {
	o, ok := r.store.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = model.OrderStatusDelivered
	o.DeliveryReference = &deliveryReference
	r.store.orders[orderID] = o
	return nil
}

func (r *memOrderRepo) ListBySellerID(ctx context.Context, sellerID string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.store.orders {
		if o.SellerID == sellerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memLedgerRepo struct {
	store *memStore
}

func (r *memLedgerRepo) Create(ctx context.Context, entry model.LedgerEntry) error {
	entry.ID = int64(len(r.store.entries) + 1)
	r.store.entries = append(r.store.entries, entry)
	return nil
}

func (r *memLedgerRepo) ListByOrderID(ctx context.Context, orderID string) ([]model.LedgerEntry, error) {
	var out []model.LedgerEntry
	for _, e := range r.store.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

// =====================
// helpers
// =====================

type notifierStub struct {
	err   error
	calls chan string
}

func (n *notifierStub) Notify(ctx context.Context, orderID string, message string) error {
	if n.calls != nil {
		n.calls <- orderID
	}
	return n.err
}

func newTestUsecase(store *memStore, n Notifier) *SettlementUsecase {
	tx := &memTxManager{store: store}
	return NewSettlementUsecase(tx, &memOrderRepo{store: store}, n)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func initiateInput(orderID, ref string, amount string) InitiatePaymentInput {
	return InitiatePaymentInput{
		OrderID:          orderID,
		BuyerID:          "buyer1",
		SellerID:         "s1",
		Amount:           dec(amount),
		PaymentReference: ref,
	}
}

// =====================
// InitiatePayment
// =====================

func TestInitiatePayment_Success(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("100")
	uc := newTestUsecase(store, nil)

	order, err := uc.InitiatePayment(context.Background(), initiateInput("o1", "r1", "40"))
	require.NoError(t, err)

	assert.Equal(t, "o1", order.OrderID)
	assert.Equal(t, model.OrderStatusPendingConfirmation, order.Status)
	assert.True(t, store.balance(t, "buyer1").Equal(dec("60")))

	stored := store.order(t, "o1")
	assert.Equal(t, model.OrderStatusPendingConfirmation, stored.Status)
	assert.True(t, stored.Amount.Equal(dec("40")))

	entries, err := (&memLedgerRepo{store: store}).ListByOrderID(context.Background(), "o1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Delta.Equal(dec("-40")))
	assert.Equal(t, "buyer1", entries[0].AccountID)
}

func TestInitiatePayment_InsufficientBalance(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("30")
	uc := newTestUsecase(store, nil)

	_, err := uc.InitiatePayment(context.Background(), initiateInput("o1", "r1", "40"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// no order row, balance untouched
	assert.Equal(t, 0, store.orderCount())
	assert.True(t, store.balance(t, "buyer1").Equal(dec("30")))
}

func TestInitiatePayment_BuyerAccountMissing(t *testing.T) {
	store := newMemStore()
	uc := newTestUsecase(store, nil)

	_, err := uc.InitiatePayment(context.Background(), initiateInput("o1", "r1", "40"))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Equal(t, 0, store.orderCount())
}

func TestInitiatePayment_DuplicateReference(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("100")
	uc := newTestUsecase(store, nil)

	_, err := uc.InitiatePayment(context.Background(), initiateInput("o1", "r1", "40"))
	require.NoError(t, err)

	_, err = uc.InitiatePayment(context.Background(), initiateInput("o2", "r1", "40"))
	assert.ErrorIs(t, err, domain.ErrDuplicateOrder)

	// debited exactly once
	assert.True(t, store.balance(t, "buyer1").Equal(dec("60")))
	assert.Equal(t, 1, store.orderCount())
}

func TestInitiatePayment_ConcurrentDebits(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("100")
	uc := newTestUsecase(store, nil)

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.InitiatePayment(context.Background(),
				initiateInput(fmt.Sprintf("o%d", i), fmt.Sprintf("r%d", i), "30"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, short int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientBalance):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// 100 covers exactly three debits of 30
	assert.Equal(t, 3, ok)
	assert.Equal(t, workers-3, short)
	assert.True(t, store.balance(t, "buyer1").Equal(dec("10")))
	assert.Equal(t, 3, store.orderCount())
}

// =====================
// ConfirmDelivery
// =====================

func TestConfirmDelivery_Success(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("100")
	store.accounts["s1"] = dec("0")
	uc := newTestUsecase(store, nil)

	_, err := uc.InitiatePayment(context.Background(), initiateInput("o1", "r1", "100"))
	require.NoError(t, err)

	order, err := uc.ConfirmDelivery(context.Background(), "o1", "d1")
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusDelivered, order.Status)
	require.NotNil(t, order.DeliveryReference)
	assert.Equal(t, "d1", *order.DeliveryReference)
	assert.True(t, store.balance(t, "s1").Equal(dec("100")))

	// the two legs cancel out
	entries, err := (&memLedgerRepo{store: store}).ListByOrderID(context.Background(), "o1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Delta)
	}
	assert.True(t, sum.IsZero())
}

func TestConfirmDelivery_OrderNotFound(t *testing.T) {
	store := newMemStore()
	uc := newTestUsecase(store, nil)

	_, err := uc.ConfirmDelivery(context.Background(), "missing", "d1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestConfirmDelivery_InvalidTransition(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("100")
	store.accounts["s1"] = dec("0")
	uc := newTestUsecase(store, nil)

	_, err := uc.InitiatePayment(context.Background(), initiateInput("o1", "r1", "100"))
	require.NoError(t, err)
	_, err = uc.ConfirmDelivery(context.Background(), "o1", "d1")
	require.NoError(t, err)

	// second confirmation hits a terminal status
	_, err = uc.ConfirmDelivery(context.Background(), "o1", "d2")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// no double credit, reference unchanged
	assert.True(t, store.balance(t, "s1").Equal(dec("100")))
	assert.Equal(t, "d1", *store.order(t, "o1").DeliveryReference)
}

func TestConfirmDelivery_SettlementFailed(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("100")
	// seller account does not exist, so the credit fails
	uc := newTestUsecase(store, nil)

	_, err := uc.InitiatePayment(context.Background(), initiateInput("o1", "r1", "100"))
	require.NoError(t, err)

	_, err = uc.ConfirmDelivery(context.Background(), "o1", "d1")
	assert.ErrorIs(t, err, domain.ErrSettlementFailed)

	// order stays pending, nothing moved
	assert.Equal(t, model.OrderStatusPendingConfirmation, store.order(t, "o1").Status)
	assert.Nil(t, store.order(t, "o1").DeliveryReference)
}

func TestConfirmDelivery_NotifierFailureIsBestEffort(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("100")
	store.accounts["s1"] = dec("0")

	n := &notifierStub{err: errors.New("webhook down"), calls: make(chan string, 1)}
	uc := newTestUsecase(store, n)

	_, err := uc.InitiatePayment(context.Background(), initiateInput("o1", "r1", "100"))
	require.NoError(t, err)

	order, err := uc.ConfirmDelivery(context.Background(), "o1", "d1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, order.Status)

	select {
	case got := <-n.calls:
		assert.Equal(t, "o1", got)
	case <-time.After(time.Second):
		t.Fatal("notifier was never called")
	}
}

// =====================
// full scenario from the API contract
// =====================

func TestSettlementScenario(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("100")
	store.accounts["s1"] = dec("0")
	uc := newTestUsecase(store, nil)

	order, err := uc.InitiatePayment(context.Background(), InitiatePaymentInput{
		OrderID:          "o1",
		BuyerID:          "buyer1",
		SellerID:         "s1",
		Amount:           dec("100"),
		PaymentReference: "r1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPendingConfirmation, order.Status)
	assert.True(t, store.balance(t, "buyer1").IsZero())

	order, err = uc.ConfirmDelivery(context.Background(), "o1", "d1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, order.Status)
	assert.True(t, store.balance(t, "s1").Equal(dec("100")))
}

func TestListSellerOrders(t *testing.T) {
	store := newMemStore()
	store.accounts["buyer1"] = dec("100")
	store.accounts["b2"] = dec("100")
	uc := newTestUsecase(store, nil)

	_, err := uc.InitiatePayment(context.Background(), initiateInput("o1", "r1", "10"))
	require.NoError(t, err)
	_, err = uc.InitiatePayment(context.Background(), InitiatePaymentInput{
		OrderID: "o2", BuyerID: "b2", SellerID: "other-seller",
		Amount: dec("10"), PaymentReference: "r2",
	})
	require.NoError(t, err)

	orders, err := uc.ListSellerOrders(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].OrderID)
}
