package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Owner != nil {
		owner := *u.Owner
		clone.Owner = &owner
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Phone == user.Phone {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.PendingOwner && (u.Role != domain.RoleOwner || u.IsApproved()) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) SetOwnerApproval(_ context.Context, id string, approved bool) error {
	u, ok := r.users[id]
	if !ok || u.Role != domain.RoleOwner || u.Owner == nil {
		return domain.ErrUserNotFound
	}
	u.Owner.Approved = approved
	return nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id string, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubAccommodationRepo struct {
	listings map[string]*domain.Accommodation
	nextID   int
}

func newStubAccommodationRepo() *stubAccommodationRepo {
	return &stubAccommodationRepo{listings: make(map[string]*domain.Accommodation)}
}

func cloneAccommodation(a *domain.Accommodation) *domain.Accommodation {
	clone := *a
	clone.Amenities = append([]string(nil), a.Amenities...)
	clone.Images = append([]domain.Image(nil), a.Images...)
	return &clone
}

func (r *stubAccommodationRepo) Create(_ context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	r.nextID++
	created := cloneAccommodation(a)
	created.ID = fmt.Sprintf("acc_%d", r.nextID)
	r.listings[created.ID] = cloneAccommodation(created)
	return cloneAccommodation(created), nil
}

func (r *stubAccommodationRepo) FindByID(_ context.Context, id string) (*domain.Accommodation, error) {
	a, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrAccommodationNotFound
	}
	return cloneAccommodation(a), nil
}

func (r *stubAccommodationRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Accommodation, error) {
	var out []*domain.Accommodation
	for _, a := range r.listings {
		if a.OwnerID == ownerID {
			out = append(out, cloneAccommodation(a))
		}
	}
	return out, nil
}

func (r *stubAccommodationRepo) List(_ context.Context, filter ports.ListAccommodationsFilter) ([]*domain.Accommodation, error) {
	allowed := make(map[string]struct{}, len(filter.OwnerIDs))
	for _, id := range filter.OwnerIDs {
		allowed[id] = struct{}{}
	}

	var out []*domain.Accommodation
	for _, a := range r.listings {
		if filter.OwnerIDs != nil {
			if _, ok := allowed[a.OwnerID]; !ok {
				continue
			}
		}
		if filter.City != "" && !strings.Contains(strings.ToLower(a.Address), strings.ToLower(filter.City)) {
			continue
		}
		if filter.MaxPrice > 0 && a.Price > filter.MaxPrice {
			continue
		}
		if filter.Amenity != "" {
			found := false
			for _, amenity := range a.Amenities {
				if amenity == filter.Amenity {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, cloneAccommodation(a))
	}
	return out, nil
}

func (r *stubAccommodationRepo) Update(_ context.Context, a *domain.Accommodation) error {
	if _, ok := r.listings[a.ID]; !ok {
		return domain.ErrAccommodationNotFound
	}
	r.listings[a.ID] = cloneAccommodation(a)
	return nil
}

func (r *stubAccommodationRepo) AppendImage(_ context.Context, id string, img domain.Image) error {
	a, ok := r.listings[id]
	if !ok {
		return domain.ErrAccommodationNotFound
	}
	a.Images = append(a.Images, img)
	return nil
}

func (r *stubAccommodationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return domain.ErrAccommodationNotFound
	}
	delete(r.listings, id)
	return nil
}

type stubBookingRepo struct {
	bookings map[string]*domain.Booking
	nextID   int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.nextID++
	clone := *b
	clone.ID = fmt.Sprintf("bkg_%d", r.nextID)
	clone.CreatedAt = time.Now().UTC().Add(time.Duration(r.nextID) * time.Second)
	clone.UpdatedAt = clone.CreatedAt
	stored := clone
	r.bookings[clone.ID] = &stored
	return &clone, nil
}

func (r *stubBookingRepo) FindByIDAndStudent(_ context.Context, id, studentID string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.StudentID != studentID {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) FindPending(_ context.Context, studentID, accommodationID string) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.StudentID == studentID && b.AccommodationID == accommodationID && b.Status == domain.BookingPending {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) ListByStudent(_ context.Context, studentID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.StudentID == studentID {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *stubBookingRepo) DeleteByAccommodation(_ context.Context, accommodationID string) error {
	for id, b := range r.bookings {
		if b.AccommodationID == accommodationID {
			delete(r.bookings, id)
		}
	}
	return nil
}

func (r *stubBookingRepo) DeleteByStudent(_ context.Context, studentID string) error {
	for id, b := range r.bookings {
		if b.StudentID == studentID {
			delete(r.bookings, id)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// External collaborator stubs
// ---------------------------------------------------------------------------

type stubMedia struct {
	uploaded []string
	deleted  []string
	// failOn lists public ids whose deletion fails.
	failOn map[string]bool
}

func newStubMedia() *stubMedia {
	return &stubMedia{failOn: make(map[string]bool)}
}

func (m *stubMedia) Upload(_ context.Context, _ []byte, _, filename string) (domain.Image, error) {
	m.uploaded = append(m.uploaded, filename)
	id := fmt.Sprintf("pub_%d", len(m.uploaded))
	return domain.Image{URL: "https://img.example/" + id, PublicID: id}, nil
}

func (m *stubMedia) Delete(_ context.Context, publicID string) error {
	m.deleted = append(m.deleted, publicID)
	if m.failOn[publicID] {
		return errors.New("media host unavailable")
	}
	return nil
}

type stubMailer struct {
	sent    []string // "to|subject"
	sendErr error
}

func (m *stubMailer) Send(to, subject, _ string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

type stubResetCodes struct {
	codes map[string]string
}

func newStubResetCodes() *stubResetCodes {
	return &stubResetCodes{codes: make(map[string]string)}
}

func (s *stubResetCodes) Put(_ context.Context, phone, code string) error {
	s.codes[phone] = code
	return nil
}

func (s *stubResetCodes) Get(_ context.Context, phone string) (string, error) {
	code, ok := s.codes[phone]
	if !ok {
		return "", domain.ErrResetCodeInvalid
	}
	return code, nil
}

func (s *stubResetCodes) Del(_ context.Context, phone string) error {
	delete(s.codes, phone)
	return nil
}

type stubNotifier struct {
	events []ports.BookingNotification
}

func (n *stubNotifier) Enqueue(event ports.BookingNotification) {
	n.events = append(n.events, event)
}

type stubDedup struct {
	seen map[string]bool
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, bookingID, kind string) (bool, error) {
	return d.seen[bookingID+":"+kind], nil
}

func (d *stubDedup) Mark(_ context.Context, bookingID, kind string) error {
	d.seen[bookingID+":"+kind] = true
	return nil
}
