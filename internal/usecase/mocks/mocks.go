package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iftihoq/gobank/internal/domain"
	"github.com/iftihoq/gobank/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByUserIDFunc       func(ctx context.Context, userID string) (*domain.Account, error)
	GetByAccountNoFunc    func(ctx context.Context, tx usecase.Transaction, accountNo string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Add seeds the in-memory store.
func (m *MockAccountRepository) Add(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByAccountNo(ctx context.Context, tx usecase.Transaction, accountNo string) (*domain.Account, error) {
	if m.GetByAccountNoFunc != nil {
		return m.GetByAccountNoFunc(ctx, tx, accountNo)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.AccountNo == accountNo {
			return acc, nil
		}
	}
	return nil, domain.ErrRecipientNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

// MockReserveRepository is a mock implementation of ReserveRepository.
type MockReserveRepository struct {
	mu      sync.RWMutex
	reserve *domain.BankReserve

	GetFunc           func(ctx context.Context) (*domain.BankReserve, error)
	GetForUpdateFunc  func(ctx context.Context, tx usecase.Transaction) (*domain.BankReserve, error)
	UpdateBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockReserveRepository(reserve *domain.BankReserve) *MockReserveRepository {
	return &MockReserveRepository{reserve: reserve}
}

func (m *MockReserveRepository) Get(ctx context.Context) (*domain.BankReserve, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.reserve == nil {
		return nil, domain.ErrReserveNotFound
	}
	return m.reserve, nil
}

func (m *MockReserveRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.BankReserve, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx)
	}
	return m.Get(ctx)
}

func (m *MockReserveRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reserve != nil && m.reserve.ID == id {
		m.reserve.Balance = balance
		m.reserve.UpdatedAt = updatedAt
	}
	return nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	order        []string

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error)
	ListByAccountFunc      func(ctx context.Context, accountID string, start, end *time.Time, limit, offset int) ([]*domain.Transaction, error)
	SumAmountByAccountFunc func(ctx context.Context, accountID string, start, end *time.Time) (decimal.Decimal, error)
	ListLoansByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	CountApprovedLoansFunc func(ctx context.Context, tx usecase.Transaction, accountID string) (int64, error)
	SetLoanApprovedFunc    func(ctx context.Context, tx usecase.Transaction, id string) error
	MarkLoanPaidFunc       func(ctx context.Context, tx usecase.Transaction, id string, balanceAfter decimal.Decimal) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

// Add seeds the in-memory store.
func (m *MockTransactionRepository) Add(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	m.order = append(m.order, txn.ID)
}

// All returns every recorded transaction in insertion order.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.transactions[id])
	}
	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.Add(txn)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, start, end *time.Time, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, start, end, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, id := range m.order {
		txn := m.transactions[id]
		if txn.AccountID != accountID {
			continue
		}
		if start != nil && txn.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && txn.CreatedAt.After(*end) {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

func (m *MockTransactionRepository) SumAmountByAccount(ctx context.Context, accountID string, start, end *time.Time) (decimal.Decimal, error) {
	if m.SumAmountByAccountFunc != nil {
		return m.SumAmountByAccountFunc(ctx, accountID, start, end)
	}
	txns, _ := m.ListByAccount(ctx, accountID, start, end, 0, 0)
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.Amount)
	}
	return sum, nil
}

func (m *MockTransactionRepository) ListLoansByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListLoansByAccountFunc != nil {
		return m.ListLoansByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, id := range m.order {
		txn := m.transactions[id]
		if txn.AccountID == accountID && (txn.Type == domain.TransactionLoan || txn.Type == domain.TransactionLoanPaid) {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) CountApprovedLoans(ctx context.Context, tx usecase.Transaction, accountID string) (int64, error) {
	if m.CountApprovedLoansFunc != nil {
		return m.CountApprovedLoansFunc(ctx, tx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, txn := range m.transactions {
		if txn.AccountID == accountID && txn.Type == domain.TransactionLoan && txn.LoanApproved {
			count++
		}
	}
	return count, nil
}

func (m *MockTransactionRepository) SetLoanApproved(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.SetLoanApprovedFunc != nil {
		return m.SetLoanApprovedFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if txn, ok := m.transactions[id]; ok {
		txn.LoanApproved = true
	}
	return nil
}

func (m *MockTransactionRepository) MarkLoanPaid(ctx context.Context, tx usecase.Transaction, id string, balanceAfter decimal.Decimal) error {
	if m.MarkLoanPaidFunc != nil {
		return m.MarkLoanPaidFunc(ctx, tx, id, balanceAfter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if txn, ok := m.transactions[id]; ok {
		txn.Type = domain.TransactionLoanPaid
		txn.BalanceAfter = balanceAfter
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, user *domain.User) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordFunc func(ctx context.Context, id, hashedPassword string, updatedAt time.Time) error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// Add seeds the in-memory store.
func (m *MockUserRepository) Add(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, user)
	}
	m.Add(user)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string, updatedAt time.Time) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hashedPassword, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		user.HashedPassword = hashedPassword
		user.UpdatedAt = updatedAt
	}
	return nil
}

// MockTransaction is a no-op database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Last *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.Last = &MockTransaction{}
	return m.Last, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockAccountNoGenerator is a mock implementation of AccountNoGenerator.
type MockAccountNoGenerator struct {
	mu      sync.Mutex
	numbers []string

	GenerateFunc func() string
}

func NewMockAccountNoGenerator(numbers ...string) *MockAccountNoGenerator {
	return &MockAccountNoGenerator{numbers: numbers}
}

func (m *MockAccountNoGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.numbers) == 0 {
		return "0000000000"
	}
	no := m.numbers[0]
	if len(m.numbers) > 1 {
		m.numbers = m.numbers[1:]
	}
	return no
}

// Notification is one captured Send call.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

// RecordingNotifier captures notifications instead of sending them.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []Notification

	SendFunc func(ctx context.Context, recipientEmail, subject, body string) error
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Send(ctx context.Context, recipientEmail, subject, body string) error {
	if n.SendFunc != nil {
		return n.SendFunc(ctx, recipientEmail, subject, body)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, Notification{Recipient: recipientEmail, Subject: subject, Body: body})
	return nil
}

// Sent returns the captured notifications.
func (n *RecordingNotifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.sent))
	copy(out, n.sent)
	return out
}

// PassthroughRetrier runs the operation once with no retries.
type PassthroughRetrier struct{}

func (PassthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
