package reservation

import (
	"context"
	"sync"

	bookingRepo "gardenly/database/repository/booking"
	offerRepo "gardenly/database/repository/offer"
	tariffRepo "gardenly/database/repository/tariff"
	"gardenly/models"
)

// memStore backs the repository fakes with one mutex so claims observe the
// same all-or-nothing behavior as the Mongo transactions.
type memStore struct {
	mu       sync.Mutex
	hours    map[string]map[string]map[int]bool // provider -> date -> hour -> available
	bookings map[string]*models.Booking
	offers   map[string]*models.Offer
	tariffs  map[string]*models.TariffConfig
}

func newMemStore() *memStore {
	return &memStore{
		hours:    map[string]map[string]map[int]bool{},
		bookings: map[string]*models.Booking{},
		offers:   map[string]*models.Offer{},
		tariffs:  map[string]*models.TariffConfig{},
	}
}

func (s *memStore) seedHours(providerID, date string, hours []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hours[providerID] == nil {
		s.hours[providerID] = map[string]map[int]bool{}
	}
	if s.hours[providerID][date] == nil {
		s.hours[providerID][date] = map[int]bool{}
	}
	for _, h := range hours {
		s.hours[providerID][date][h] = true
	}
}

func (s *memStore) availableHours(providerID, date string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int
	for h, avail := range s.hours[providerID][date] {
		if avail {
			out = append(out, h)
		}
	}
	return models.SortedHours(out)
}

// flipLocked marks hours unavailable if all are currently available.
// Caller holds the mutex.
func (s *memStore) flipLocked(providerID, date string, hours []int) bool {
	day := s.hours[providerID][date]
	for _, h := range hours {
		if !day[h] {
			return false
		}
	}
	for _, h := range hours {
		day[h] = false
	}
	return true
}

type fakeAvailRepo struct{ store *memStore }

func (f *fakeAvailRepo) GetDay(_ context.Context, providerID, date string) ([]int, error) {
	return f.store.availableHours(providerID, date), nil
}

func (f *fakeAvailRepo) GetRange(ctx context.Context, providerID, from, to string) (map[string][]int, error) {
	f.store.mu.Lock()
	dates := make([]string, 0, len(f.store.hours[providerID]))
	for date := range f.store.hours[providerID] {
		if date >= from && date <= to {
			dates = append(dates, date)
		}
	}
	f.store.mu.Unlock()

	out := map[string][]int{}
	for _, date := range dates {
		out[date] = f.store.availableHours(providerID, date)
	}
	return out, nil
}

func (f *fakeAvailRepo) SetAvailable(_ context.Context, providerID, date string, hours []int) error {
	f.store.seedHours(providerID, date, hours)
	return nil
}

func (f *fakeAvailRepo) SetUnavailable(_ context.Context, providerID, date string, hours []int) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, h := range hours {
		if f.store.hours[providerID][date] != nil {
			f.store.hours[providerID][date][h] = false
		}
	}
	return nil
}

func (f *fakeAvailRepo) ApplyDefaultSchedule(_ context.Context, providerID, date string) error {
	if len(f.store.availableHours(providerID, date)) == 0 {
		f.store.seedHours(providerID, date, models.DefaultScheduleHours())
	}
	return nil
}

func (f *fakeAvailRepo) ClearDay(_ context.Context, providerID, date string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.hours[providerID], date)
	return nil
}

func (f *fakeAvailRepo) EnsureIndexes() error { return nil }

type fakeBookingRepo struct{ store *memStore }

func (f *fakeBookingRepo) Insert(_ context.Context, b *models.Booking) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	cp := *b
	f.store.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	b, ok := f.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetActiveForProviderDay(_ context.Context, providerID, date string) ([]models.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []models.Booking
	for _, b := range f.store.bookings {
		if b.ProviderID == providerID && b.Date == date && b.Status.IsActive() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByOfferID(_ context.Context, offerID string) ([]models.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []models.Booking
	for _, b := range f.store.bookings {
		if b.OfferID == offerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id string, from []models.BookingStatus, to models.BookingStatus) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	b, ok := f.store.bookings[id]
	if !ok {
		return bookingRepo.ErrStatusConflict
	}
	for _, s := range from {
		if b.Status == s {
			b.Status = to
			return nil
		}
	}
	return bookingRepo.ErrStatusConflict
}

func (f *fakeBookingRepo) ClaimSlot(_ context.Context, b *models.Booking) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if !f.store.flipLocked(b.ProviderID, b.Date, b.Hours()) {
		return bookingRepo.ErrSlotConflict
	}
	cp := *b
	f.store.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) ClaimExisting(_ context.Context, b *models.Booking) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	stored, ok := f.store.bookings[b.ID]
	if !ok || stored.Status != models.BookingPending {
		return bookingRepo.ErrStatusConflict
	}
	if !f.store.flipLocked(b.ProviderID, b.Date, b.Hours()) {
		return bookingRepo.ErrSlotConflict
	}
	stored.Date = b.Date
	stored.StartHour = b.StartHour
	stored.Status = models.BookingConfirmed
	return nil
}

func (f *fakeBookingRepo) ReleaseSlot(_ context.Context, b *models.Booking, to models.BookingStatus) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	stored, ok := f.store.bookings[b.ID]
	if !ok || stored.Status.IsTerminal() {
		return bookingRepo.ErrStatusConflict
	}
	stored.Status = to
	day := f.store.hours[b.ProviderID][b.Date]
	for _, h := range b.Hours() {
		day[h] = true
	}
	return nil
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

type fakeOfferRepo struct{ store *memStore }

func (f *fakeOfferRepo) Insert(_ context.Context, o *models.Offer) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	cp := *o
	f.store.offers[o.ID] = &cp
	return nil
}

func (f *fakeOfferRepo) GetByID(_ context.Context, id string) (*models.Offer, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	o, ok := f.store.offers[id]
	if !ok {
		return nil, offerRepo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOfferRepo) Claim(_ context.Context, offerID, providerID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	o, ok := f.store.offers[offerID]
	if !ok || o.Status != models.OfferOpen {
		return offerRepo.ErrOfferClaimed
	}
	o.Status = models.OfferClaimed
	o.ClaimedBy = providerID
	return nil
}

func (f *fakeOfferRepo) UpdateStatus(_ context.Context, id string, status models.OfferStatus) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if o, ok := f.store.offers[id]; ok {
		o.Status = status
	}
	return nil
}

func (f *fakeOfferRepo) EnsureIndexes() error { return nil }

type fakeTariffRepo struct{ store *memStore }

func (f *fakeTariffRepo) Get(_ context.Context, providerID, serviceType string) (*models.TariffConfig, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	t, ok := f.store.tariffs[providerID+"|"+serviceType]
	if !ok {
		return nil, tariffRepo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTariffRepo) Save(_ context.Context, t *models.TariffConfig) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	cp := *t
	f.store.tariffs[t.ProviderID+"|"+t.ServiceType] = &cp
	return nil
}

// recordingExpiry captures scheduled sibling expiries.
type recordingExpiry struct {
	mu    sync.Mutex
	calls [][2]string // offerID, winningBookingID
}

func (r *recordingExpiry) ScheduleSiblingExpiry(_ context.Context, offerID, winningBookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]string{offerID, winningBookingID})
	return nil
}
