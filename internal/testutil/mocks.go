package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	Users map[string]*domain.User
	ByID  map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID returns the existing user or stores a new one
func (m *MockUserRepository) CreateOrGetByAuth0ID(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.Users[user.Auth0ID]; ok {
		existing.Email = user.Email
		return existing, nil
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// List returns every user ordered by email
func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.ByID))
	for _, u := range m.ByID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// UpdateAccess applies an administrator's access change
func (m *MockUserRepository) UpdateAccess(ctx context.Context, id uuid.UUID, update domain.UserAccessUpdate) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.IsStaff != nil {
		user.IsStaff = *update.IsStaff
	}
	if update.ClearUnit {
		user.UnitNumber = nil
	} else if update.UnitNumber != nil {
		n := *update.UnitNumber
		user.UnitNumber = &n
	}
	user.UpdatedAt = time.Now()
	return user, nil
}

// UpdateProfile changes a user's name and phone
func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone *string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Name = name
	user.Phone = phone
	user.UpdatedAt = time.Now()
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockUnitRepository is a mock implementation of domain.UnitRepository
type MockUnitRepository struct {
	mu       sync.Mutex
	Units    map[int32]*domain.Unit
	DeleteFn func(number int32) error
}

// NewMockUnitRepository creates a new MockUnitRepository
func NewMockUnitRepository() *MockUnitRepository {
	return &MockUnitRepository{Units: make(map[int32]*domain.Unit)}
}

// Create stores a unit
func (m *MockUnitRepository) Create(ctx context.Context, unit *domain.Unit) (*domain.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Units[unit.Number]; ok {
		return nil, domain.ErrAlreadyExists
	}
	unit.CreatedAt = time.Now()
	unit.UpdatedAt = unit.CreatedAt
	m.Units[unit.Number] = unit
	return unit, nil
}

// GetByNumber retrieves a unit
func (m *MockUnitRepository) GetByNumber(ctx context.Context, number int32) (*domain.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if unit, ok := m.Units[number]; ok {
		return unit, nil
	}
	return nil, domain.ErrUnitNotFound
}

// List returns units ordered by number
func (m *MockUnitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Unit, 0, len(m.Units))
	for _, u := range m.Units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// Update changes a unit's area and account number
func (m *MockUnitRepository) Update(ctx context.Context, number int32, area decimal.Decimal, accountNumber string) (*domain.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	unit, ok := m.Units[number]
	if !ok {
		return nil, domain.ErrUnitNotFound
	}
	unit.Area = area
	unit.AccountNumber = accountNumber
	unit.UpdatedAt = time.Now()
	return unit, nil
}

// Delete removes a unit
func (m *MockUnitRepository) Delete(ctx context.Context, number int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(number)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Units[number]; !ok {
		return domain.ErrUnitNotFound
	}
	delete(m.Units, number)
	return nil
}

// AddUnit adds a unit to the mock repository (helper for tests)
func (m *MockUnitRepository) AddUnit(unit *domain.Unit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Units[unit.Number] = unit
}

// MockMeterReadingRepository is a mock implementation of domain.MeterReadingRepository
type MockMeterReadingRepository struct {
	mu            sync.Mutex
	Readings      []*domain.MeterReading
	nextID        int64
	CreateBatchFn func(readings []*domain.MeterReading) (int, error)
}

// NewMockMeterReadingRepository creates a new MockMeterReadingRepository
func NewMockMeterReadingRepository() *MockMeterReadingRepository {
	return &MockMeterReadingRepository{nextID: 1}
}

// Create stores a reading and assigns its ID
func (m *MockMeterReadingRepository) Create(ctx context.Context, reading *domain.MeterReading) (*domain.MeterReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(reading)
	return reading, nil
}

// CreateBatch stores many readings
func (m *MockMeterReadingRepository) CreateBatch(ctx context.Context, readings []*domain.MeterReading) (int, error) {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(readings)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range readings {
		m.insertLocked(r)
	}
	return len(readings), nil
}

func (m *MockMeterReadingRepository) insertLocked(r *domain.MeterReading) {
	if r.ID == 0 {
		r.ID = m.nextID
	}
	if r.ID >= m.nextID {
		m.nextID = r.ID + 1
	}
	r.CreatedAt = time.Now()
	m.Readings = append(m.Readings, r)
}

// GetByID retrieves a reading
func (m *MockMeterReadingRepository) GetByID(ctx context.Context, id int64) (*domain.MeterReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Readings {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrReadingNotFound
}

// Update replaces a stored reading
func (m *MockMeterReadingRepository) Update(ctx context.Context, reading *domain.MeterReading) (*domain.MeterReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.Readings {
		if r.ID == reading.ID {
			reading.CreatedAt = r.CreatedAt
			m.Readings[i] = reading
			return reading, nil
		}
	}
	return nil, domain.ErrReadingNotFound
}

// ListByUnitUpTo returns the unit's readings at or before (upTo, upToID), newest first
func (m *MockMeterReadingRepository) ListByUnitUpTo(ctx context.Context, unitNumber int32, upTo time.Time, upToID int64, limit int) ([]*domain.MeterReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	upTo = util.DateOnly(upTo)
	var out []*domain.MeterReading
	for _, r := range m.Readings {
		if r.UnitNumber != unitNumber {
			continue
		}
		d := util.DateOnly(r.ReadingDate)
		if d.After(upTo) || (d.Equal(upTo) && r.ID > upToID) {
			continue
		}
		out = append(out, r)
	}
	sortReadingsDesc(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetLatestByUnit returns the newest reading of a unit
func (m *MockMeterReadingRepository) GetLatestByUnit(ctx context.Context, unitNumber int32) (*domain.MeterReading, error) {
	m.mu.Lock()
	var out []*domain.MeterReading
	for _, r := range m.Readings {
		if r.UnitNumber == unitNumber {
			out = append(out, r)
		}
	}
	m.mu.Unlock()
	if len(out) == 0 {
		return nil, domain.ErrReadingNotFound
	}
	sortReadingsDesc(out)
	return out[0], nil
}

// List returns readings matching filters ordered by date then unit
func (m *MockMeterReadingRepository) List(ctx context.Context, filters domain.MeterReadingFilters) ([]*domain.MeterReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.MeterReading
	for _, r := range m.Readings {
		if filters.UnitNumber != nil && r.UnitNumber != *filters.UnitNumber {
			continue
		}
		if filters.Year != nil && r.ReadingDate.Year() != *filters.Year {
			continue
		}
		month := int(r.ReadingDate.Month())
		if filters.FromMonth != nil && month < *filters.FromMonth {
			continue
		}
		if filters.ToMonth != nil && month > *filters.ToMonth {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ReadingDate.Equal(out[j].ReadingDate) {
			return out[i].ReadingDate.Before(out[j].ReadingDate)
		}
		if out[i].UnitNumber != out[j].UnitNumber {
			return out[i].UnitNumber < out[j].UnitNumber
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListYears returns distinct reading years, newest first
func (m *MockMeterReadingRepository) ListYears(ctx context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[int]bool)
	var years []int
	for _, r := range m.Readings {
		y := r.ReadingDate.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// AddReading adds a reading to the mock repository (helper for tests)
func (m *MockMeterReadingRepository) AddReading(reading *domain.MeterReading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(reading)
}

func sortReadingsDesc(readings []*domain.MeterReading) {
	sort.SliceStable(readings, func(i, j int) bool {
		di, dj := util.DateOnly(readings[i].ReadingDate), util.DateOnly(readings[j].ReadingDate)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return readings[i].ID > readings[j].ID
	})
}

// MockTariffRepository is a mock implementation of domain.TariffRepository
type MockTariffRepository struct {
	mu      sync.Mutex
	Tariffs []*domain.TariffPeriod
	// Referenced marks tariff IDs used by billed ledger entries
	Referenced map[int32]bool
	nextID     int32
}

// NewMockTariffRepository creates a new MockTariffRepository
func NewMockTariffRepository() *MockTariffRepository {
	return &MockTariffRepository{Referenced: make(map[int32]bool), nextID: 1}
}

// Create stores a tariff period
func (m *MockTariffRepository) Create(ctx context.Context, tariff *domain.TariffPeriod) (*domain.TariffPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(tariff)
	return tariff, nil
}

func (m *MockTariffRepository) insertLocked(t *domain.TariffPeriod) {
	if t.ID == 0 {
		t.ID = m.nextID
	}
	if t.ID >= m.nextID {
		m.nextID = t.ID + 1
	}
	t.CreatedAt = time.Now()
	m.Tariffs = append(m.Tariffs, t)
}

// GetByID retrieves a tariff period
func (m *MockTariffRepository) GetByID(ctx context.Context, id int32) (*domain.TariffPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Tariffs {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrTariffNotFound
}

// GetLatest returns the period with the greatest effective date
func (m *MockTariffRepository) GetLatest(ctx context.Context) (*domain.TariffPeriod, error) {
	return m.latestWhere(func(*domain.TariffPeriod) bool { return true })
}

// GetEffectiveAt returns the latest period effective on or before date
func (m *MockTariffRepository) GetEffectiveAt(ctx context.Context, date time.Time) (*domain.TariffPeriod, error) {
	d := util.DateOnly(date)
	return m.latestWhere(func(t *domain.TariffPeriod) bool {
		return !util.DateOnly(t.EffectiveDate).After(d)
	})
}

func (m *MockTariffRepository) latestWhere(keep func(*domain.TariffPeriod) bool) (*domain.TariffPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *domain.TariffPeriod
	for _, t := range m.Tariffs {
		if !keep(t) {
			continue
		}
		if best == nil || t.EffectiveDate.After(best.EffectiveDate) ||
			(t.EffectiveDate.Equal(best.EffectiveDate) && t.ID > best.ID) {
			best = t
		}
	}
	if best == nil {
		return nil, domain.ErrTariffNotFound
	}
	return best, nil
}

// List returns one page of periods, newest first
func (m *MockTariffRepository) List(ctx context.Context, page, pageSize int32) (*domain.PaginatedTariffs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*domain.TariffPeriod, len(m.Tariffs))
	copy(all, m.Tariffs)
	sort.SliceStable(all, func(i, j int) bool { return all[i].EffectiveDate.After(all[j].EffectiveDate) })

	total := int64(len(all))
	start := int((page - 1) * pageSize)
	if start > len(all) {
		start = len(all)
	}
	end := start + int(pageSize)
	if end > len(all) {
		end = len(all)
	}
	totalPages := int32(0)
	if pageSize > 0 {
		totalPages = int32((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &domain.PaginatedTariffs{
		Data:       all[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Delete removes a period unless a ledger entry references it
func (m *MockTariffRepository) Delete(ctx context.Context, id int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Referenced[id] {
		return domain.ErrReferentialConflict
	}
	for i, t := range m.Tariffs {
		if t.ID == id {
			m.Tariffs = append(m.Tariffs[:i], m.Tariffs[i+1:]...)
			return nil
		}
	}
	return domain.ErrTariffNotFound
}

// AddTariff adds a tariff period to the mock repository (helper for tests)
func (m *MockTariffRepository) AddTariff(tariff *domain.TariffPeriod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(tariff)
}

// MockOccupancyRepository is a mock implementation of domain.OccupancyRepository
type MockOccupancyRepository struct {
	mu          sync.Mutex
	Occupancies []*domain.Occupancy
	nextID      int32
}

// NewMockOccupancyRepository creates a new MockOccupancyRepository
func NewMockOccupancyRepository() *MockOccupancyRepository {
	return &MockOccupancyRepository{nextID: 1}
}

// Create stores an occupancy row
func (m *MockOccupancyRepository) Create(ctx context.Context, occupancy *domain.Occupancy) (*domain.Occupancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(occupancy)
	return occupancy, nil
}

func (m *MockOccupancyRepository) insertLocked(o *domain.Occupancy) {
	if o.ID == 0 {
		o.ID = m.nextID
	}
	if o.ID >= m.nextID {
		m.nextID = o.ID + 1
	}
	o.CreatedAt = time.Now()
	m.Occupancies = append(m.Occupancies, o)
}

// GetByID retrieves an occupancy row
func (m *MockOccupancyRepository) GetByID(ctx context.Context, id int32) (*domain.Occupancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.Occupancies {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrOccupancyNotFound
}

// Update replaces an occupancy row
func (m *MockOccupancyRepository) Update(ctx context.Context, occupancy *domain.Occupancy) (*domain.Occupancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.Occupancies {
		if o.ID == occupancy.ID {
			occupancy.CreatedAt = o.CreatedAt
			m.Occupancies[i] = occupancy
			return occupancy, nil
		}
	}
	return nil, domain.ErrOccupancyNotFound
}

// GetEffectiveAt returns the latest row with start date on or before date
func (m *MockOccupancyRepository) GetEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*domain.Occupancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := util.DateOnly(date)
	var best *domain.Occupancy
	for _, o := range m.Occupancies {
		if o.UnitNumber != unitNumber || util.DateOnly(o.StartDate).After(d) {
			continue
		}
		if best == nil || o.StartDate.After(best.StartDate) ||
			(o.StartDate.Equal(best.StartDate) && o.ID > best.ID) {
			best = o
		}
	}
	if best == nil {
		return nil, domain.ErrOccupancyNotFound
	}
	return best, nil
}

// List returns rows matching filters ordered by start date then unit
func (m *MockOccupancyRepository) List(ctx context.Context, filters domain.PeriodFilters) ([]*domain.Occupancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Occupancy
	for _, o := range m.Occupancies {
		if filters.UnitNumber != nil && o.UnitNumber != *filters.UnitNumber {
			continue
		}
		if filters.Year != nil && o.StartDate.Year() != *filters.Year {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].UnitNumber < out[j].UnitNumber
	})
	return out, nil
}

// ListLatestPerUnit returns each unit's newest occupancy row
func (m *MockOccupancyRepository) ListLatestPerUnit(ctx context.Context) ([]*domain.Occupancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	latest := make(map[int32]*domain.Occupancy)
	for _, o := range m.Occupancies {
		cur, ok := latest[o.UnitNumber]
		if !ok || o.StartDate.After(cur.StartDate) || (o.StartDate.Equal(cur.StartDate) && o.ID > cur.ID) {
			latest[o.UnitNumber] = o
		}
	}
	out := make([]*domain.Occupancy, 0, len(latest))
	for _, o := range latest {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitNumber < out[j].UnitNumber })
	return out, nil
}

// AddOccupancy adds an occupancy row to the mock repository (helper for tests)
func (m *MockOccupancyRepository) AddOccupancy(occupancy *domain.Occupancy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(occupancy)
}

// MockSurchargeRepository is a mock implementation of domain.SurchargeRepository
type MockSurchargeRepository struct {
	mu              sync.Mutex
	Heating         []*domain.HeatingSurcharge
	ParkingCards    []*domain.ParkingCard
	FamilyDiscounts []*domain.FamilyDiscount
	nextID          int32
}

// NewMockSurchargeRepository creates a new MockSurchargeRepository
func NewMockSurchargeRepository() *MockSurchargeRepository {
	return &MockSurchargeRepository{nextID: 1}
}

func (m *MockSurchargeRepository) id() int32 {
	id := m.nextID
	m.nextID++
	return id
}

// CreateHeating stores a heating surcharge
func (m *MockSurchargeRepository) CreateHeating(ctx context.Context, s *domain.HeatingSurcharge) (*domain.HeatingSurcharge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	s.CreatedAt = time.Now()
	m.Heating = append(m.Heating, s)
	return s, nil
}

// GetHeating retrieves a heating surcharge
func (m *MockSurchargeRepository) GetHeating(ctx context.Context, id int32) (*domain.HeatingSurcharge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.Heating {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrSurchargeNotFound
}

// UpdateHeating replaces a heating surcharge
func (m *MockSurchargeRepository) UpdateHeating(ctx context.Context, s *domain.HeatingSurcharge) (*domain.HeatingSurcharge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.Heating {
		if cur.ID == s.ID {
			s.CreatedAt = cur.CreatedAt
			m.Heating[i] = s
			return s, nil
		}
	}
	return nil, domain.ErrSurchargeNotFound
}

// ListHeating returns surcharges matching filters
func (m *MockSurchargeRepository) ListHeating(ctx context.Context, filters domain.PeriodFilters) ([]*domain.HeatingSurcharge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.HeatingSurcharge
	for _, s := range m.Heating {
		if filters.UnitNumber != nil && s.UnitNumber != *filters.UnitNumber {
			continue
		}
		if filters.Year != nil && (s.StartDate.Year() > *filters.Year || s.EndDate.Year() < *filters.Year) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// ListHeatingActiveAt returns the unit's surcharges whose range covers date
func (m *MockSurchargeRepository) ListHeatingActiveAt(ctx context.Context, unitNumber int32, date time.Time) ([]*domain.HeatingSurcharge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.HeatingSurcharge
	for _, s := range m.Heating {
		if s.UnitNumber == unitNumber && s.ActiveAt(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

// CreateParkingCard stores a parking card row
func (m *MockSurchargeRepository) CreateParkingCard(ctx context.Context, c *domain.ParkingCard) (*domain.ParkingCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	c.CreatedAt = time.Now()
	m.ParkingCards = append(m.ParkingCards, c)
	return c, nil
}

// GetParkingCard retrieves a parking card row
func (m *MockSurchargeRepository) GetParkingCard(ctx context.Context, id int32) (*domain.ParkingCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.ParkingCards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrSurchargeNotFound
}

// UpdateParkingCard replaces a parking card row
func (m *MockSurchargeRepository) UpdateParkingCard(ctx context.Context, c *domain.ParkingCard) (*domain.ParkingCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.ParkingCards {
		if cur.ID == c.ID {
			c.CreatedAt = cur.CreatedAt
			m.ParkingCards[i] = c
			return c, nil
		}
	}
	return nil, domain.ErrSurchargeNotFound
}

// ListParkingCards returns parking card rows matching filters
func (m *MockSurchargeRepository) ListParkingCards(ctx context.Context, filters domain.PeriodFilters) ([]*domain.ParkingCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ParkingCard
	for _, c := range m.ParkingCards {
		if filters.UnitNumber != nil && c.UnitNumber != *filters.UnitNumber {
			continue
		}
		if filters.Year != nil && c.StartDate.Year() != *filters.Year {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// GetParkingCardEffectiveAt returns the latest row starting on or before date
func (m *MockSurchargeRepository) GetParkingCardEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*domain.ParkingCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := util.DateOnly(date)
	var best *domain.ParkingCard
	for _, c := range m.ParkingCards {
		if c.UnitNumber != unitNumber || util.DateOnly(c.StartDate).After(d) {
			continue
		}
		if best == nil || c.StartDate.After(best.StartDate) || (c.StartDate.Equal(best.StartDate) && c.ID > best.ID) {
			best = c
		}
	}
	return best, nil
}

// CreateFamilyDiscount stores a family discount row
func (m *MockSurchargeRepository) CreateFamilyDiscount(ctx context.Context, d *domain.FamilyDiscount) (*domain.FamilyDiscount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.id()
	d.CreatedAt = time.Now()
	m.FamilyDiscounts = append(m.FamilyDiscounts, d)
	return d, nil
}

// GetFamilyDiscount retrieves a family discount row
func (m *MockSurchargeRepository) GetFamilyDiscount(ctx context.Context, id int32) (*domain.FamilyDiscount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.FamilyDiscounts {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, domain.ErrSurchargeNotFound
}

// UpdateFamilyDiscount replaces a family discount row
func (m *MockSurchargeRepository) UpdateFamilyDiscount(ctx context.Context, d *domain.FamilyDiscount) (*domain.FamilyDiscount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.FamilyDiscounts {
		if cur.ID == d.ID {
			d.CreatedAt = cur.CreatedAt
			m.FamilyDiscounts[i] = d
			return d, nil
		}
	}
	return nil, domain.ErrSurchargeNotFound
}

// ListFamilyDiscounts returns family discount rows matching filters
func (m *MockSurchargeRepository) ListFamilyDiscounts(ctx context.Context, filters domain.PeriodFilters) ([]*domain.FamilyDiscount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.FamilyDiscount
	for _, d := range m.FamilyDiscounts {
		if filters.UnitNumber != nil && d.UnitNumber != *filters.UnitNumber {
			continue
		}
		if filters.Year != nil && d.StartDate.Year() != *filters.Year {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// GetFamilyDiscountEffectiveAt returns the latest row starting on or before date
func (m *MockSurchargeRepository) GetFamilyDiscountEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*domain.FamilyDiscount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := util.DateOnly(date)
	var best *domain.FamilyDiscount
	for _, d := range m.FamilyDiscounts {
		if d.UnitNumber != unitNumber || util.DateOnly(d.StartDate).After(day) {
			continue
		}
		if best == nil || d.StartDate.After(best.StartDate) || (d.StartDate.Equal(best.StartDate) && d.ID > best.ID) {
			best = d
		}
	}
	return best, nil
}

// MockLedgerRepository is a mock implementation of domain.LedgerRepository.
// Append chains balances under a mutex like the row lock of the real store.
type MockLedgerRepository struct {
	mu       sync.Mutex
	Entries  []*domain.LedgerEntry
	nextID   int64
	AppendFn func(entry *domain.LedgerEntry) error
}

// NewMockLedgerRepository creates a new MockLedgerRepository
func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{nextID: 1}
}

// Append chains the entry onto its scope and stores it
func (m *MockLedgerRepository) Append(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if m.AppendFn != nil {
		if err := m.AppendFn(entry); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(entry), nil
}

// AppendMirrored stores the entry and its association copy, or neither
func (m *MockLedgerRepository) AppendMirrored(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, *domain.LedgerEntry, error) {
	if m.AppendFn != nil {
		if err := m.AppendFn(entry); err != nil {
			return nil, nil, err
		}
		if err := m.AppendFn(domain.MirrorOf(entry)); err != nil {
			return nil, nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	created := m.insertLocked(entry)
	return created, m.insertLocked(domain.MirrorOf(created)), nil
}

func (m *MockLedgerRepository) insertLocked(entry *domain.LedgerEntry) *domain.LedgerEntry {
	latest := m.latestLocked(entry.Scope, entry.UnitNumber)
	stored := *entry
	stored.Balance = domain.ChainBalance(latest, entry.Amount)
	stored.ID = m.nextID
	m.nextID++
	stored.CreatedAt = time.Now()
	m.Entries = append(m.Entries, &stored)
	out := stored
	return &out
}

// HasReadingCharge reports whether a unit entry references the reading
func (m *MockLedgerRepository) HasReadingCharge(ctx context.Context, unitNumber int32, readingID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Scope == domain.ScopeUnit && e.UnitNumber != nil && *e.UnitNumber == unitNumber &&
			e.ReadingID != nil && *e.ReadingID == readingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockLedgerRepository) latestLocked(scope domain.LedgerScope, unitNumber *int32) *domain.LedgerEntry {
	key := domain.ScopeKeyFor(scope, unitNumber)
	var latest *domain.LedgerEntry
	for _, e := range m.Entries {
		if e.ScopeKey() == key {
			latest = e
		}
	}
	return latest
}

// GetByID retrieves an entry
func (m *MockLedgerRepository) GetByID(ctx context.Context, id int64) (*domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrLedgerEntryNotFound
}

// GetLatest returns the newest entry of a scope
func (m *MockLedgerRepository) GetLatest(ctx context.Context, scope domain.LedgerScope, unitNumber *int32) (*domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	latest := m.latestLocked(scope, unitNumber)
	if latest == nil {
		return nil, domain.ErrLedgerEntryNotFound
	}
	return latest, nil
}

// List returns one page of entries matching filters, newest first
func (m *MockLedgerRepository) List(ctx context.Context, filters domain.LedgerFilters) (*domain.PaginatedLedgerEntries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*domain.LedgerEntry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		e := m.Entries[i]
		if filters.Scope != "" && e.Scope != filters.Scope {
			continue
		}
		if filters.UnitNumber != nil && (e.UnitNumber == nil || *e.UnitNumber != *filters.UnitNumber) {
			continue
		}
		if filters.StartDate != nil && e.Date.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && e.Date.After(*filters.EndDate) {
			continue
		}
		if filters.Type != nil && e.Type != *filters.Type {
			continue
		}
		matched = append(matched, e)
	}

	page, pageSize := filters.Page, filters.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	total := int64(len(matched))
	start := int((page - 1) * pageSize)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + int(pageSize)
	if end > len(matched) {
		end = len(matched)
	}
	return &domain.PaginatedLedgerEntries{
		Data:       matched[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: int32((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// ListLatestPerUnit returns each unit's newest entry
func (m *MockLedgerRepository) ListLatestPerUnit(ctx context.Context) ([]*domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	latest := make(map[int32]*domain.LedgerEntry)
	for _, e := range m.Entries {
		if e.Scope == domain.ScopeUnit && e.UnitNumber != nil {
			latest[*e.UnitNumber] = e
		}
	}
	out := make([]*domain.LedgerEntry, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].UnitNumber < *out[j].UnitNumber })
	return out, nil
}

// ListScope returns every entry of a scope in chain order
func (m *MockLedgerRepository) ListScope(ctx context.Context, scope domain.LedgerScope, unitNumber *int32) ([]*domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := domain.ScopeKeyFor(scope, unitNumber)
	var out []*domain.LedgerEntry
	for _, e := range m.Entries {
		if e.ScopeKey() == key {
			out = append(out, e)
		}
	}
	return out, nil
}

// MockArticleRepository is a mock implementation of domain.ArticleRepository
type MockArticleRepository struct {
	mu       sync.Mutex
	Articles map[int64]*domain.Article
	nextID   int64
}

// NewMockArticleRepository creates a new MockArticleRepository
func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[int64]*domain.Article), nextID: 1}
}

// AddArticle stores an article as given. A zero PublishedAt becomes now.
func (m *MockArticleRepository) AddArticle(a *domain.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == 0 {
		a.ID = m.nextID
	}
	if a.ID >= m.nextID {
		m.nextID = a.ID + 1
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now()
	}
	m.Articles[a.ID] = a
}

// Create stores an article published now
func (m *MockArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	a.ID = 0
	a.PublishedAt = time.Time{}
	m.AddArticle(a)
	return a, nil
}

// GetByID retrieves an article
func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

// List returns one page of articles, newest first
func (m *MockArticleRepository) List(ctx context.Context, page, pageSize int32) (*domain.PaginatedArticles, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*domain.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].PublishedAt.Equal(all[j].PublishedAt) {
			return all[i].PublishedAt.After(all[j].PublishedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := int64(len(all))
	start := int((page - 1) * pageSize)
	if start > len(all) {
		start = len(all)
	}
	end := start + int(pageSize)
	if end > len(all) {
		end = len(all)
	}
	totalPages := int32(0)
	if pageSize > 0 {
		totalPages = int32((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &domain.PaginatedArticles{
		Data:       all[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Update rewrites an article and bumps its publication time
func (m *MockArticleRepository) Update(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Articles[a.ID]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	existing.Title = a.Title
	existing.Content = a.Content
	existing.PublishedAt = time.Now()
	return existing, nil
}

// Delete removes an article
func (m *MockArticleRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(m.Articles, id)
	return nil
}
