package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

type accommodationFixture struct {
	svc            *AccommodationService
	users          *stubUserRepo
	accommodations *stubAccommodationRepo
	bookings       *stubBookingRepo
	media          *stubMedia
	owner          *domain.User
}

func newAccommodationFixture(t *testing.T) *accommodationFixture {
	t.Helper()

	users := newStubUserRepo()
	accommodations := newStubAccommodationRepo()
	bookings := newStubBookingRepo()
	media := newStubMedia()

	owner, err := users.Create(context.Background(), &domain.User{
		Phone: "+919876500200",
		Role:  domain.RoleOwner,
		Owner: &domain.OwnerProfile{CompanyName: "Green View", Approved: true},
	})
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}

	return &accommodationFixture{
		svc:            NewAccommodationService(accommodations, bookings, users, media, zerolog.Nop()),
		users:          users,
		accommodations: accommodations,
		bookings:       bookings,
		media:          media,
		owner:          owner,
	}
}

func (f *accommodationFixture) seedListing(t *testing.T, ownerID string, images ...domain.Image) *domain.Accommodation {
	t.Helper()
	a, err := f.accommodations.Create(context.Background(), &domain.Accommodation{
		OwnerID: ownerID,
		Name:    "Green View PG",
		Address: "12 MG Road, Bengaluru",
		Price:   8500,
		Images:  images,
	})
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return a
}

func TestCreateAccommodationOwnerAlwaysSelf(t *testing.T) {
	f := newAccommodationFixture(t)

	// An owner naming someone else still creates for themselves.
	created, err := f.svc.Create(context.Background(), f.owner.ID, domain.RoleOwner, "someone-else", ports.AccommodationInput{
		Name:    "Sunrise PG",
		Address: "4 Brigade Road, Bengaluru",
		Price:   9000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.OwnerID != f.owner.ID {
		t.Errorf("owner id = %q, want %q", created.OwnerID, f.owner.ID)
	}
}

func TestCreateAccommodationAdminOnBehalf(t *testing.T) {
	f := newAccommodationFixture(t)

	created, err := f.svc.Create(context.Background(), "admin-1", domain.RoleAdmin, f.owner.ID, ports.AccommodationInput{
		Name:    "Sunrise PG",
		Address: "4 Brigade Road, Bengaluru",
		Price:   9000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.OwnerID != f.owner.ID {
		t.Errorf("owner id = %q, want %q", created.OwnerID, f.owner.ID)
	}
}

func TestCreateAccommodationTargetMustBeOwner(t *testing.T) {
	f := newAccommodationFixture(t)

	student, err := f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500201",
		Role:  domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("seed student: %v", err)
	}

	_, err = f.svc.Create(context.Background(), "admin-1", domain.RoleAdmin, student.ID, ports.AccommodationInput{
		Name: "Nope",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateForeignListingReadsAsMissing(t *testing.T) {
	f := newAccommodationFixture(t)
	listing := f.seedListing(t, f.owner.ID)

	other, err := f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500202",
		Role:  domain.RoleOwner,
		Owner: &domain.OwnerProfile{Approved: true},
	})
	if err != nil {
		t.Fatalf("seed second owner: %v", err)
	}

	_, err = f.svc.Update(context.Background(), other.ID, domain.RoleOwner, listing.ID, ports.AccommodationInput{Name: "Hijack"})
	if !errors.Is(err, domain.ErrAccommodationNotFound) {
		t.Fatalf("expected ErrAccommodationNotFound, got %v", err)
	}

	// Admins bypass the ownership scope.
	updated, err := f.svc.Update(context.Background(), "admin-1", domain.RoleAdmin, listing.ID, ports.AccommodationInput{Name: "Renamed"})
	if err != nil {
		t.Fatalf("admin Update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestDeleteCascadeContinuesOnImageFailure(t *testing.T) {
	f := newAccommodationFixture(t)
	listing := f.seedListing(t, f.owner.ID,
		domain.Image{URL: "https://img.example/a", PublicID: "img-a"},
		domain.Image{URL: "https://img.example/b", PublicID: "img-b"},
	)
	f.media.failOn["img-a"] = true

	if _, err := f.bookings.Create(context.Background(), &domain.Booking{
		StudentID:       "student-1",
		AccommodationID: listing.ID,
		Status:          domain.BookingPending,
	}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	if err := f.svc.Delete(context.Background(), f.owner.ID, domain.RoleOwner, listing.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(f.media.deleted) != 2 {
		t.Errorf("expected both image deletions attempted, got %v", f.media.deleted)
	}
	if _, err := f.accommodations.FindByID(context.Background(), listing.ID); !errors.Is(err, domain.ErrAccommodationNotFound) {
		t.Error("listing still present after delete")
	}
	if len(f.bookings.bookings) != 0 {
		t.Errorf("bookings not cascaded: %d left", len(f.bookings.bookings))
	}
}

func TestAttachImage(t *testing.T) {
	f := newAccommodationFixture(t)
	listing := f.seedListing(t, f.owner.ID)

	updated, err := f.svc.AttachImage(context.Background(), f.owner.ID, domain.RoleOwner, listing.ID, []byte("jpeg-bytes"), "room.jpg")
	if err != nil {
		t.Fatalf("AttachImage: %v", err)
	}
	if len(updated.Images) != 1 || updated.Images[0].PublicID == "" {
		t.Fatalf("image not attached: %+v", updated.Images)
	}

	stored, _ := f.accommodations.FindByID(context.Background(), listing.ID)
	if len(stored.Images) != 1 {
		t.Error("image not persisted")
	}
}

func TestBrowseHidesUnapprovedOwners(t *testing.T) {
	f := newAccommodationFixture(t)

	pending, err := f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500203",
		Role:  domain.RoleOwner,
		Owner: &domain.OwnerProfile{CompanyName: "Pending Homes", Approved: false},
	})
	if err != nil {
		t.Fatalf("seed pending owner: %v", err)
	}

	visible := f.seedListing(t, f.owner.ID)
	f.seedListing(t, pending.ID)

	results, err := f.svc.Browse(context.Background(), ports.BrowseFilter{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(results) != 1 || results[0].ID != visible.ID {
		t.Fatalf("expected only the approved owner's listing, got %+v", results)
	}
}

func TestBrowseNoApprovedOwners(t *testing.T) {
	f := newAccommodationFixture(t)
	f.owner.Owner.Approved = false
	f.users.users[f.owner.ID].Owner.Approved = false
	f.seedListing(t, f.owner.ID)

	results, err := f.svc.Browse(context.Background(), ports.BrowseFilter{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %+v", results)
	}
}

func TestGetPublicUnapprovedOwner(t *testing.T) {
	f := newAccommodationFixture(t)

	pending, err := f.users.Create(context.Background(), &domain.User{
		Phone: "+919876500204",
		Role:  domain.RoleOwner,
		Owner: &domain.OwnerProfile{Approved: false},
	})
	if err != nil {
		t.Fatalf("seed pending owner: %v", err)
	}
	hidden := f.seedListing(t, pending.ID)

	_, err = f.svc.GetPublic(context.Background(), hidden.ID)
	if !errors.Is(err, domain.ErrAccommodationNotFound) {
		t.Fatalf("expected ErrAccommodationNotFound, got %v", err)
	}

	visible := f.seedListing(t, f.owner.ID)
	got, err := f.svc.GetPublic(context.Background(), visible.ID)
	if err != nil {
		t.Fatalf("GetPublic: %v", err)
	}
	if got.ID != visible.ID {
		t.Errorf("got %q, want %q", got.ID, visible.ID)
	}
}
