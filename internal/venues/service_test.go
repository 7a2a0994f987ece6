package venues

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepo struct {
	venues       map[uuid.UUID]*Venue
	activeEvents int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{venues: make(map[uuid.UUID]*Venue)}
}

func (r *stubRepo) CreateVenue(_ context.Context, v *Venue) error {
	r.venues[v.ID] = v
	return nil
}

func (r *stubRepo) GetVenueByID(_ context.Context, id uuid.UUID) (*Venue, error) {
	v, ok := r.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *stubRepo) GetVenues(_ context.Context, _ VenueFilters) (*PaginatedVenues, error) {
	return &PaginatedVenues{}, nil
}

func (r *stubRepo) GetVenuesByVendorID(_ context.Context, vendorID uuid.UUID) ([]Venue, error) {
	var out []Venue
	for _, v := range r.venues {
		if v.VendorID == vendorID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubRepo) UpdateVenue(_ context.Context, v *Venue) error {
	r.venues[v.ID] = v
	return nil
}

func (r *stubRepo) DeleteVenue(_ context.Context, id uuid.UUID) error {
	delete(r.venues, id)
	return nil
}

func (r *stubRepo) CountActiveEventsForVenue(_ context.Context, _ uuid.UUID) (int64, error) {
	return r.activeEvents, nil
}

func seedVenue(repo *stubRepo, vendorID uuid.UUID) *Venue {
	v := &Venue{
		ID:       uuid.New(),
		VendorID: vendorID,
		Name:     "Grand Hall",
		Address:  "12 Main St",
		City:     "Pune",
		Capacity: 500,
	}
	repo.venues[v.ID] = v
	return v
}

func strPtr(s string) *string { return &s }

func TestLocationEditLockAfterTwoEdits(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	vendorID := uuid.New()
	venue := seedVenue(repo, vendorID)
	ctx := context.Background()

	// First location edit
	resp, err := svc.UpdateVenue(ctx, venue.ID.String(), vendorID.String(), UpdateVenueRequest{
		Address: strPtr("34 Side St"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Venue.LocationEditCount)
	assert.False(t, resp.Venue.IsLocationLocked)
	assert.Equal(t, 1, resp.RemainingEdits)

	// Second location edit locks the venue
	resp, err = svc.UpdateVenue(ctx, venue.ID.String(), vendorID.String(), UpdateVenueRequest{
		City: strPtr("Mumbai"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Venue.LocationEditCount)
	assert.True(t, resp.Venue.IsLocationLocked)
	assert.Equal(t, 0, resp.RemainingEdits)

	// Third location edit is rejected
	_, err = svc.UpdateVenue(ctx, venue.ID.String(), vendorID.String(), UpdateVenueRequest{
		Address: strPtr("99 Other Rd"),
	})
	assert.ErrorIs(t, err, ErrLocationLocked)

	stored := repo.venues[venue.ID]
	assert.Equal(t, "34 Side St", stored.Address)
	assert.Equal(t, "Mumbai", stored.City)
}

func TestNonLocationEditsNeverLock(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	vendorID := uuid.New()
	venue := seedVenue(repo, vendorID)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cap := 600 + i
		resp, err := svc.UpdateVenue(ctx, venue.ID.String(), vendorID.String(), UpdateVenueRequest{
			Name:     strPtr("Grand Hall Renamed"),
			Capacity: &cap,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Venue.LocationEditCount)
		assert.False(t, resp.Venue.IsLocationLocked)
	}
}

func TestUnchangedLocationFieldsDoNotCountAsEdit(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	vendorID := uuid.New()
	venue := seedVenue(repo, vendorID)

	// Same values resubmitted
	resp, err := svc.UpdateVenue(context.Background(), venue.ID.String(), vendorID.String(), UpdateVenueRequest{
		Address: strPtr("12 Main St"),
		City:    strPtr("Pune"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Venue.LocationEditCount)
}

func TestUpdateVenueOwnershipEnforced(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	venue := seedVenue(repo, uuid.New())

	_, err := svc.UpdateVenue(context.Background(), venue.ID.String(), uuid.New().String(), UpdateVenueRequest{
		Name: strPtr("Hijacked"),
	})
	assert.ErrorIs(t, err, ErrNotVenueOwner)
}

func TestDeleteVenueBlockedWithActiveEvents(t *testing.T) {
	repo := newStubRepo()
	repo.activeEvents = 3
	svc := NewService(repo)
	vendorID := uuid.New()
	venue := seedVenue(repo, vendorID)

	err := svc.DeleteVenue(context.Background(), venue.ID.String(), vendorID.String())
	assert.ErrorIs(t, err, ErrVenueHasEvents)
	assert.Contains(t, repo.venues, venue.ID)
}

func TestDeleteVenueWithoutEvents(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	vendorID := uuid.New()
	venue := seedVenue(repo, vendorID)

	err := svc.DeleteVenue(context.Background(), venue.ID.String(), vendorID.String())
	require.NoError(t, err)
	assert.NotContains(t, repo.venues, venue.ID)
}

func TestGetVenueNotFound(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.GetVenueByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
