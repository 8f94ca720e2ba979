package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

type adminFixture struct {
	svc            *AdminService
	users          *stubUserRepo
	accommodations *stubAccommodationRepo
	bookings       *stubBookingRepo
	media          *stubMedia
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	users := newStubUserRepo()
	accommodations := newStubAccommodationRepo()
	bookings := newStubBookingRepo()
	media := newStubMedia()

	return &adminFixture{
		svc:            NewAdminService(users, accommodations, bookings, media, zerolog.Nop()),
		users:          users,
		accommodations: accommodations,
		bookings:       bookings,
		media:          media,
	}
}

func TestApproveOwner(t *testing.T) {
	f := newAdminFixture(t)

	owner, err := f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500300",
		Role:  domain.RoleOwner,
		Owner: &domain.OwnerProfile{CompanyName: "Pending Homes"},
	})
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}

	approved, err := f.svc.ApproveOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ApproveOwner: %v", err)
	}
	if !approved.Owner.Approved {
		t.Error("returned user not approved")
	}

	stored, _ := f.users.FindByID(context.Background(), owner.ID)
	if !stored.IsApproved() {
		t.Error("approval not persisted")
	}
}

func TestApproveNonOwner(t *testing.T) {
	f := newAdminFixture(t)

	student, err := f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500301",
		Role:  domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("seed student: %v", err)
	}

	_, err = f.svc.ApproveOwner(context.Background(), student.ID)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListUsersPendingOwners(t *testing.T) {
	f := newAdminFixture(t)

	pending, _ := f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500302",
		Role:  domain.RoleOwner,
		Owner: &domain.OwnerProfile{},
	})
	f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500303",
		Role:  domain.RoleOwner,
		Owner: &domain.OwnerProfile{Approved: true},
	})
	f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500304",
		Role:  domain.RoleStudent,
	})

	got, err := f.svc.ListUsers(context.Background(), ports.UserFilter{PendingOwner: true})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(got) != 1 || got[0].ID != pending.ID {
		t.Fatalf("expected only the pending owner, got %+v", got)
	}
}

func TestDeleteOwnerCascades(t *testing.T) {
	f := newAdminFixture(t)

	owner, err := f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500305",
		Role:  domain.RoleOwner,
		Owner: &domain.OwnerProfile{Approved: true},
	})
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	listing, err := f.accommodations.Create(context.Background(), &domain.Accommodation{
		OwnerID: owner.ID,
		Name:    "Green View PG",
		Images:  []domain.Image{{URL: "https://img.example/a", PublicID: "img-a"}},
	})
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	if _, err := f.bookings.Create(context.Background(), &domain.Booking{
		StudentID:       "student-1",
		AccommodationID: listing.ID,
		Status:          domain.BookingPending,
	}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	if err := f.svc.DeleteUser(context.Background(), owner.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := f.users.FindByID(context.Background(), owner.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Error("owner record still present")
	}
	if _, err := f.accommodations.FindByID(context.Background(), listing.ID); !errors.Is(err, domain.ErrAccommodationNotFound) {
		t.Error("listing survived owner deletion")
	}
	if len(f.bookings.bookings) != 0 {
		t.Errorf("bookings survived owner deletion: %d left", len(f.bookings.bookings))
	}
	if len(f.media.deleted) != 1 || f.media.deleted[0] != "img-a" {
		t.Errorf("image not released: %v", f.media.deleted)
	}
}

func TestDeleteStudentRemovesBookings(t *testing.T) {
	f := newAdminFixture(t)

	student, err := f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500306",
		Role:  domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("seed student: %v", err)
	}
	if _, err := f.bookings.Create(context.Background(), &domain.Booking{
		StudentID:       student.ID,
		AccommodationID: "acc-1",
		Status:          domain.BookingPending,
	}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	if err := f.svc.DeleteUser(context.Background(), student.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if len(f.bookings.bookings) != 0 {
		t.Errorf("bookings survived student deletion: %d left", len(f.bookings.bookings))
	}
}

func TestDeleteUnknownUser(t *testing.T) {
	f := newAdminFixture(t)

	if err := f.svc.DeleteUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
