package services

import (
	"sort"
	"time"

	"restro_pos/internal/models"
	"restro_pos/internal/redis"

	"gorm.io/gorm"
)

// In-memory repositories for service tests. Lookups return copies, the way
// a real query would, so callers only see their writes after Apply/Update.

type fakeMenuRepo struct {
	items  map[uint]models.MenuItem
	nextID uint
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[uint]models.MenuItem)}
}

func (f *fakeMenuRepo) Create(item *models.MenuItem) error {
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = *item
	return nil
}

func (f *fakeMenuRepo) GetByID(id uint) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (f *fakeMenuRepo) GetAll() ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (f *fakeMenuRepo) GetByCategory(category string) ([]models.MenuItem, error) {
	all, _ := f.GetAll()
	var items []models.MenuItem
	for _, item := range all {
		if item.Category == category {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeMenuRepo) CountByCategory(category string) (int64, error) {
	items, _ := f.GetByCategory(category)
	return int64(len(items)), nil
}

func (f *fakeMenuRepo) Update(item *models.MenuItem) error {
	f.items[item.ID] = *item
	return nil
}

func (f *fakeMenuRepo) Delete(id uint) error {
	delete(f.items, id)
	return nil
}

type fakeStockRepo struct {
	items  map[uint]models.StockItem
	nextID uint
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{items: make(map[uint]models.StockItem)}
}

func (f *fakeStockRepo) Create(item *models.StockItem) error {
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = *item
	return nil
}

func (f *fakeStockRepo) GetByID(id uint) (*models.StockItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (f *fakeStockRepo) GetAll() ([]models.StockItem, error) {
	items := make([]models.StockItem, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (f *fakeStockRepo) GetLowStock() ([]models.StockItem, error) {
	all, _ := f.GetAll()
	var items []models.StockItem
	for _, item := range all {
		if item.Quantity <= item.LowStockThreshold {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeStockRepo) Update(item *models.StockItem) error {
	f.items[item.ID] = *item
	return nil
}

func (f *fakeStockRepo) Delete(id uint) error {
	delete(f.items, id)
	return nil
}

type fakeTableRepo struct {
	tables map[uint]models.Table
	nextID uint
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[uint]models.Table)}
}

func (f *fakeTableRepo) Create(table *models.Table) error {
	f.nextID++
	table.ID = f.nextID
	f.tables[table.ID] = *table
	return nil
}

func (f *fakeTableRepo) GetByID(id uint) (*models.Table, error) {
	table, ok := f.tables[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &table, nil
}

func (f *fakeTableRepo) GetAll() ([]models.Table, error) {
	tables := make([]models.Table, 0, len(f.tables))
	for _, table := range f.tables {
		tables = append(tables, table)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
	return tables, nil
}

func (f *fakeTableRepo) Update(table *models.Table) error {
	f.tables[table.ID] = *table
	return nil
}

func (f *fakeTableRepo) Delete(id uint) error {
	delete(f.tables, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]models.Category
	nextID     uint
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	f := &fakeCategoryRepo{categories: make(map[string]models.Category)}
	for _, name := range names {
		_ = f.Create(&models.Category{Name: name})
	}
	return f
}

func (f *fakeCategoryRepo) Create(category *models.Category) error {
	f.nextID++
	category.ID = f.nextID
	f.categories[category.Name] = *category
	return nil
}

func (f *fakeCategoryRepo) GetByName(name string) (*models.Category, error) {
	category, ok := f.categories[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &category, nil
}

func (f *fakeCategoryRepo) GetAll() ([]models.Category, error) {
	categories := make([]models.Category, 0, len(f.categories))
	for _, category := range f.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (f *fakeCategoryRepo) Delete(name string) error {
	delete(f.categories, name)
	return nil
}

// fakeOrderRepo mirrors the transactional repository: placements and status
// changes write the order together with its stock and table side effects.
type fakeOrderRepo struct {
	orders []models.Order
	nextID uint
	stock  *fakeStockRepo
	tables *fakeTableRepo
}

func newFakeOrderRepo(stock *fakeStockRepo, tables *fakeTableRepo) *fakeOrderRepo {
	return &fakeOrderRepo{stock: stock, tables: tables}
}

func (f *fakeOrderRepo) ApplyPlacement(order *models.Order, stockUpdates []models.StockItem, table *models.Table) error {
	f.nextID++
	order.ID = f.nextID
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	for i := range stockUpdates {
		_ = f.stock.Update(&stockUpdates[i])
	}
	if table != nil {
		table.CurrentOrderID = &order.ID
		_ = f.tables.Update(table)
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) ApplyStatusChange(order *models.Order, table *models.Table) error {
	for i := range f.orders {
		if f.orders[i].ID == order.ID {
			f.orders[i].Status = order.Status
		}
	}
	if table != nil {
		_ = f.tables.Update(table)
	}
	return nil
}

func (f *fakeOrderRepo) Save(order *models.Order) error {
	for i := range f.orders {
		if f.orders[i].ID == order.ID {
			f.orders[i] = *order
			return nil
		}
	}
	if order.ID == 0 {
		f.nextID++
		order.ID = f.nextID
	} else if order.ID > f.nextID {
		f.nextID = order.ID
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	for _, order := range f.orders {
		if order.ID == id {
			return &order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) GetByNumber(number string) (*models.Order, error) {
	for _, order := range f.orders {
		if order.OrderNumber == number {
			return &order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) GetAll() ([]models.Order, error) {
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeOrderRepo) GetByStatus(status string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range f.orders {
		if order.Status == status {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetActive() ([]models.Order, error) {
	var orders []models.Order
	for _, order := range f.orders {
		if !models.OrderStatus(order.Status).IsTerminal() {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetSince(t time.Time) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range f.orders {
		if !order.CreatedAt.Before(t) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) CountSince(t time.Time) (int64, error) {
	orders, _ := f.GetSince(t)
	return int64(len(orders)), nil
}

type fakeUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetAll() ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	delete(f.users, id)
	return nil
}

type capturingPublisher struct {
	events []*redis.OrderEvent
}

func (p *capturingPublisher) PublishOrderEvent(event *redis.OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}
