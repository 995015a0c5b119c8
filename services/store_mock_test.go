package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"pos-service/models"
	"pos-service/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- In-memory Store ---
//
// mockStore keeps rows in maps and emulates a transaction by snapshotting
// every map on entry and restoring it when the callback fails.

type mockState struct {
	tables map[uint]models.Table
	menu   map[uint]models.MenuItem
	orders map[uint]models.Order
	bills  map[uint]models.Bill
	users  map[uint]models.User
	nextID uint
	clock  time.Time
}

func (s *mockState) clone() mockState {
	c := mockState{
		tables: make(map[uint]models.Table, len(s.tables)),
		menu:   make(map[uint]models.MenuItem, len(s.menu)),
		orders: make(map[uint]models.Order, len(s.orders)),
		bills:  make(map[uint]models.Bill, len(s.bills)),
		users:  make(map[uint]models.User, len(s.users)),
		nextID: s.nextID,
		clock:  s.clock,
	}
	for k, v := range s.tables {
		c.tables[k] = v
	}
	for k, v := range s.menu {
		c.menu[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range s.bills {
		c.bills[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

type mockStore struct {
	mu    *sync.Mutex
	state *mockState

	// markBilledShortfall makes MarkBilled report fewer rows than asked,
	// as if another transaction claimed them first.
	markBilledShortfall bool
	// failOrderCreate is returned by OrderRepository.Create when set.
	failOrderCreate error
}

func newMockStore() *mockStore {
	return &mockStore{
		mu: &sync.Mutex{},
		state: &mockState{
			tables: map[uint]models.Table{},
			menu:   map[uint]models.MenuItem{},
			orders: map[uint]models.Order{},
			bills:  map[uint]models.Bill{},
			users:  map[uint]models.User{},
			clock:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func (m *mockStore) id() uint {
	m.state.nextID++
	return m.state.nextID
}

func (m *mockStore) tick() time.Time {
	m.state.clock = m.state.clock.Add(time.Second)
	return m.state.clock
}

func (m *mockStore) Tables() repository.TableRepository       { return &mockTableRepo{m} }
func (m *mockStore) MenuItems() repository.MenuItemRepository { return &mockMenuRepo{m} }
func (m *mockStore) Orders() repository.OrderRepository       { return &mockOrderRepo{m} }
func (m *mockStore) Bills() repository.BillRepository         { return &mockBillRepo{m} }
func (m *mockStore) Users() repository.UserRepository         { return &mockUserRepo{m} }

func (m *mockStore) Transaction(_ context.Context, fn func(tx repository.Store) error) error {
	snapshot := m.state.clone()
	if err := fn(m); err != nil {
		*m.state = snapshot
		return err
	}
	return nil
}

func copyOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	o.Table = nil
	return o
}

// --- seeding helpers ---

func (m *mockStore) addTable(number string, status models.TableStatus) models.Table {
	t := models.Table{ID: m.id(), TableNumber: number, SeatingCapacity: 4, Status: status}
	m.state.tables[t.ID] = t
	return t
}

func (m *mockStore) addMenuItem(name string, category models.MenuCategory, price string, available bool) models.MenuItem {
	item := models.MenuItem{
		ID:          m.id(),
		Name:        name,
		Category:    category,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
	}
	m.state.menu[item.ID] = item
	return item
}

func (m *mockStore) table(id uint) models.Table { return m.state.tables[id] }
func (m *mockStore) order(id uint) models.Order { return m.state.orders[id] }
func (m *mockStore) bill(id uint) models.Bill   { return m.state.bills[id] }
func (m *mockStore) orderCount() int            { return len(m.state.orders) }
func (m *mockStore) billCount() int             { return len(m.state.bills) }

func (m *mockStore) setOrderStatus(id uint, s models.OrderStatus) {
	o := m.state.orders[id]
	o.Status = s
	m.state.orders[id] = o
}

// --- tables ---

type mockTableRepo struct{ m *mockStore }

func (r *mockTableRepo) Create(_ context.Context, t *models.Table) error {
	for _, existing := range r.m.state.tables {
		if existing.TableNumber == t.TableNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	t.ID = r.m.id()
	t.CreatedAt = r.m.tick()
	r.m.state.tables[t.ID] = *t
	return nil
}

func (r *mockTableRepo) FindByID(_ context.Context, id uint) (*models.Table, error) {
	t, ok := r.m.state.tables[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r *mockTableRepo) FindByIDForUpdate(ctx context.Context, id uint) (*models.Table, error) {
	return r.FindByID(ctx, id)
}

func (r *mockTableRepo) FindAll(_ context.Context) ([]models.Table, error) {
	tables := make([]models.Table, 0, len(r.m.state.tables))
	for _, t := range r.m.state.tables {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].TableNumber < tables[j].TableNumber })
	return tables, nil
}

func (r *mockTableRepo) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	t, ok := r.m.state.tables[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if number, ok := fields["table_number"].(string); ok {
		for otherID, existing := range r.m.state.tables {
			if otherID != id && existing.TableNumber == number {
				return gorm.ErrDuplicatedKey
			}
		}
		t.TableNumber = number
	}
	if capacity, ok := fields["seating_capacity"].(int); ok {
		t.SeatingCapacity = capacity
	}
	if status, ok := fields["status"].(models.TableStatus); ok {
		t.Status = status
	}
	r.m.state.tables[id] = t
	return nil
}

func (r *mockTableRepo) UpdateStatus(_ context.Context, id uint, status models.TableStatus) error {
	t, ok := r.m.state.tables[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	r.m.state.tables[id] = t
	return nil
}

func (r *mockTableRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.state.tables[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.state.tables, id)
	for oid, o := range r.m.state.orders {
		if o.TableID == id {
			delete(r.m.state.orders, oid)
		}
	}
	for bid, b := range r.m.state.bills {
		if b.TableID == id {
			delete(r.m.state.bills, bid)
		}
	}
	return nil
}

func (r *mockTableRepo) FindReadyForBill(_ context.Context) ([]models.ReadyForBillTable, error) {
	byTable := map[uint]*models.ReadyForBillTable{}
	for _, o := range r.m.state.orders {
		if o.Status != models.OrderStatusServed || o.IsBilled {
			continue
		}
		row, ok := byTable[o.TableID]
		if !ok {
			t := r.m.state.tables[o.TableID]
			row = &models.ReadyForBillTable{TableID: t.ID, TableNumber: t.TableNumber, Status: t.Status}
			byTable[o.TableID] = row
		}
		row.OrderCount++
		row.UnbilledTotal = row.UnbilledTotal.Add(o.TotalAmount)
	}
	rows := make([]models.ReadyForBillTable, 0, len(byTable))
	for _, row := range byTable {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TableNumber < rows[j].TableNumber })
	return rows, nil
}

// --- menu ---

type mockMenuRepo struct{ m *mockStore }

func (r *mockMenuRepo) Create(_ context.Context, item *models.MenuItem) error {
	item.ID = r.m.id()
	r.m.state.menu[item.ID] = *item
	return nil
}

func (r *mockMenuRepo) FindByID(_ context.Context, id uint) (*models.MenuItem, error) {
	item, ok := r.m.state.menu[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *mockMenuRepo) FindByIDs(_ context.Context, ids []uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	seen := map[uint]bool{}
	for _, id := range ids {
		if item, ok := r.m.state.menu[id]; ok && !seen[id] {
			items = append(items, item)
			seen[id] = true
		}
	}
	return items, nil
}

func (r *mockMenuRepo) FindAll(_ context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for _, item := range r.m.state.menu {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (r *mockMenuRepo) Update(_ context.Context, item *models.MenuItem) error {
	r.m.state.menu[item.ID] = *item
	return nil
}

func (r *mockMenuRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.state.menu[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.state.menu, id)
	for oid, o := range r.m.state.orders {
		for i := range o.Items {
			if o.Items[i].MenuItemID != nil && *o.Items[i].MenuItemID == id {
				o.Items[i].MenuItemID = nil
			}
		}
		r.m.state.orders[oid] = o
	}
	return nil
}

// --- orders ---

type mockOrderRepo struct{ m *mockStore }

func (r *mockOrderRepo) Create(_ context.Context, o *models.Order) error {
	if r.m.failOrderCreate != nil {
		return r.m.failOrderCreate
	}
	o.ID = r.m.id()
	o.CreatedAt = r.m.tick()
	for i := range o.Items {
		o.Items[i].ID = r.m.id()
		o.Items[i].OrderID = o.ID
		o.Items[i].ComputeSubtotal()
	}
	r.m.state.orders[o.ID] = copyOrder(*o)
	return nil
}

func (r *mockOrderRepo) FindByID(_ context.Context, id uint) (*models.Order, error) {
	o, ok := r.m.state.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	o = copyOrder(o)
	if t, ok := r.m.state.tables[o.TableID]; ok {
		o.Table = &t
	}
	return &o, nil
}

func (r *mockOrderRepo) FindByIDForUpdate(_ context.Context, id uint) (*models.Order, error) {
	o, ok := r.m.state.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *mockOrderRepo) FindByTableID(_ context.Context, tableID uint) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range r.m.state.orders {
		if o.TableID == tableID {
			orders = append(orders, copyOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (r *mockOrderRepo) FindUnbilledServedForUpdate(_ context.Context, tableID uint) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range r.m.state.orders {
		if o.TableID == tableID && o.Status == models.OrderStatusServed && !o.IsBilled {
			orders = append(orders, copyOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *mockOrderRepo) UpdateStatus(_ context.Context, id uint, status models.OrderStatus) error {
	o, ok := r.m.state.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	r.m.state.orders[id] = o
	return nil
}

func (r *mockOrderRepo) MarkBilled(_ context.Context, orderIDs []uint, billID uint) (int64, error) {
	var n int64
	for _, id := range orderIDs {
		o, ok := r.m.state.orders[id]
		if !ok || o.IsBilled {
			continue
		}
		bid := billID
		o.IsBilled = true
		o.BillID = &bid
		r.m.state.orders[id] = o
		n++
	}
	if r.m.markBilledShortfall && n > 0 {
		n--
	}
	return n, nil
}

// --- bills ---

type mockBillRepo struct{ m *mockStore }

func (r *mockBillRepo) Create(_ context.Context, b *models.Bill) error {
	b.ID = r.m.id()
	if b.GeneratedAt.IsZero() {
		b.GeneratedAt = r.m.tick()
	}
	stored := *b
	stored.Table = nil
	stored.Orders = nil
	r.m.state.bills[b.ID] = stored
	return nil
}

func (r *mockBillRepo) withRelations(b models.Bill) models.Bill {
	if t, ok := r.m.state.tables[b.TableID]; ok {
		b.Table = &t
	}
	var orders []models.Order
	for _, o := range r.m.state.orders {
		if o.BillID != nil && *o.BillID == b.ID {
			orders = append(orders, copyOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	b.Orders = orders
	return b
}

func (r *mockBillRepo) FindByID(_ context.Context, id uint) (*models.Bill, error) {
	b, ok := r.m.state.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	b = r.withRelations(b)
	return &b, nil
}

func (r *mockBillRepo) FindByIDForUpdate(_ context.Context, id uint) (*models.Bill, error) {
	b, ok := r.m.state.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *mockBillRepo) FindByStatus(_ context.Context, status models.BillStatus) ([]models.Bill, error) {
	var bills []models.Bill
	for _, b := range r.m.state.bills {
		if b.Status == status {
			bills = append(bills, r.withRelations(b))
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].GeneratedAt.After(bills[j].GeneratedAt) })
	return bills, nil
}

func (r *mockBillRepo) FindPendingOlderThan(_ context.Context, cutoff time.Time) ([]models.Bill, error) {
	var bills []models.Bill
	for _, b := range r.m.state.bills {
		if b.Status == models.BillStatusPendingPayment && b.GeneratedAt.Before(cutoff) {
			bills = append(bills, r.withRelations(b))
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].GeneratedAt.Before(bills[j].GeneratedAt) })
	return bills, nil
}

func (r *mockBillRepo) MarkPaid(_ context.Context, id uint, paidAt time.Time) error {
	b, ok := r.m.state.bills[id]
	if !ok || b.Status == models.BillStatusPaid {
		return gorm.ErrRecordNotFound
	}
	b.Status = models.BillStatusPaid
	b.PaidAt = &paidAt
	r.m.state.bills[id] = b
	return nil
}

func (r *mockBillRepo) SummarizePaidSince(_ context.Context, since time.Time) (*repository.BillSummary, error) {
	summary := &repository.BillSummary{}
	for _, b := range r.m.state.bills {
		if b.Status == models.BillStatusPaid && b.PaidAt != nil && !b.PaidAt.Before(since) {
			summary.Count++
			summary.Total = summary.Total.Add(b.TotalAmount)
		}
	}
	return summary, nil
}

func (r *mockBillRepo) SummarizePending(_ context.Context) (*repository.BillSummary, error) {
	summary := &repository.BillSummary{}
	for _, b := range r.m.state.bills {
		if b.Status == models.BillStatusPendingPayment {
			summary.Count++
			summary.Total = summary.Total.Add(b.TotalAmount)
		}
	}
	return summary, nil
}

// --- users ---

type mockUserRepo struct{ m *mockStore }

func (r *mockUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.m.state.users {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
		if u.Email != nil && existing.Email != nil && *existing.Email == *u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = r.m.id()
	u.CreatedAt = r.m.tick()
	r.m.state.users[u.ID] = *u
	return nil
}

func (r *mockUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.m.state.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *mockUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.m.state.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, u := range r.m.state.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *mockUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.state.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.state.users, id)
	return nil
}

// --- collaborators ---

type mockPublisher struct {
	messages [][]byte
	err      error
}

func (p *mockPublisher) Publish(_ context.Context, _ string, message []byte) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, message)
	return nil
}

type mockMetrics struct {
	counts map[string]int
}

func newMockMetrics() *mockMetrics { return &mockMetrics{counts: map[string]int{}} }

func (m *mockMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.counts[name]++
	return nil
}

var (
	admin   = models.Actor{UserID: 1, Username: "admin", Role: models.RoleAdmin}
	manager = models.Actor{UserID: 2, Username: "manager", Role: models.RoleManager}
	waiter  = models.Actor{UserID: 3, Username: "waiter", Role: models.RoleWaiter}
	cashier = models.Actor{UserID: 4, Username: "cashier", Role: models.RoleCashier}
)

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
