package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autolot/car-inventory-service/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type missCache struct{}

func (missCache) Get(string) ([]byte, error)              { return nil, errors.New("cache miss") }
func (missCache) Set(string, []byte, time.Duration) error { return nil }
func (missCache) Delete(string) error                     { return nil }

type stubCarRepo struct {
	cars         []*domain.Car
	car          *domain.Car
	err          error
	lastCriteria domain.FilterCriteria
	filterCalled bool
	createCalled bool
	deleteCalled bool
}

func (r *stubCarRepo) ListAll(context.Context) ([]*domain.Car, error) {
	return r.cars, r.err
}

func (r *stubCarRepo) ListByFilter(_ context.Context, criteria domain.FilterCriteria) ([]*domain.Car, error) {
	r.filterCalled = true
	r.lastCriteria = criteria
	return r.cars, r.err
}

func (r *stubCarRepo) ListRecommended(context.Context, domain.RecommendedCriteria) ([]*domain.Car, error) {
	return r.cars, r.err
}

func (r *stubCarRepo) GetCarByID(context.Context, int64) (*domain.Car, error) {
	return r.car, r.err
}

func (r *stubCarRepo) CreateCar(_ context.Context, car *domain.Car) (*domain.Car, error) {
	r.createCalled = true
	if r.err != nil {
		return nil, r.err
	}
	car.ID = 7
	return car, nil
}

func (r *stubCarRepo) UpdateCar(_ context.Context, car *domain.Car) (*domain.Car, error) {
	if r.err != nil {
		return nil, r.err
	}
	return car, nil
}

func (r *stubCarRepo) DeleteCar(context.Context, int64) error {
	r.deleteCalled = true
	return r.err
}

type stubImageStore struct {
	paths       []string
	saveErr     error
	saveCalled  bool
	removedDirs []string
}

func (s *stubImageStore) SaveAll(_ context.Context, dir string, _ []*multipart.FileHeader) ([]string, error) {
	s.saveCalled = true
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return s.paths, nil
}

func (s *stubImageStore) RemoveDir(dir string) error {
	s.removedDirs = append(s.removedDirs, dir)
	return nil
}

type recordingHub struct {
	events []domain.ChangeEvent
}

func (h *recordingHub) Subscribe() (string, <-chan domain.ChangeEvent) { return "", nil }
func (h *recordingHub) Unsubscribe(string)                             {}
func (h *recordingHub) Close()                                         {}
func (h *recordingHub) Publish(event domain.ChangeEvent) {
	h.events = append(h.events, event)
}

func newTestCarService(repo *stubCarRepo, images *stubImageStore, hub *recordingHub) *CarService {
	return NewCarService(repo, images, hub, nopLogger{}, validator.New(), missCache{}, domain.RecommendedCriteria{})
}

func validCar() *domain.Car {
	return &domain.Car{
		Brand:        "toyota",
		Model:        "corolla",
		Year:         2021,
		Price:        20000,
		Mileage:      15000,
		FuelType:     "Petrol",
		Transmission: "manual",
		Color:        "red",
	}
}

func TestFilterByAttributeNumericParse(t *testing.T) {
	repo := &stubCarRepo{}
	svc := newTestCarService(repo, &stubImageStore{}, &recordingHub{})

	_, err := svc.FilterByAttribute(context.Background(), domain.FilterPrice, "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	assert.False(t, repo.filterCalled, "no query may be built from a bad parameter")

	_, err = svc.FilterByAttribute(context.Background(), domain.FilterPrice, "20000")
	require.NoError(t, err)
	assert.Equal(t, 20000, repo.lastCriteria.Anchor)
	assert.Equal(t, domain.FilterPrice, repo.lastCriteria.Field)
}

func TestFilterByAttributeExactMatch(t *testing.T) {
	repo := &stubCarRepo{}
	svc := newTestCarService(repo, &stubImageStore{}, &recordingHub{})

	_, err := svc.FilterByAttribute(context.Background(), domain.FilterBrand, "toyota")
	require.NoError(t, err)
	assert.Equal(t, "toyota", repo.lastCriteria.Value)
}

func TestCreateCarPublishesSingleAddedEvent(t *testing.T) {
	repo := &stubCarRepo{}
	images := &stubImageStore{paths: []string{"images/batch/1.jpg", "images/batch/2.jpg"}}
	hub := &recordingHub{}
	svc := newTestCarService(repo, images, hub)

	created, err := svc.CreateCar(context.Background(), validCar(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"images/batch/1.jpg", "images/batch/2.jpg"}, created.ImagePaths)
	require.Len(t, hub.events, 1)
	assert.Equal(t, domain.CarAdded, hub.events[0].Kind)
	assert.Equal(t, created.ID, hub.events[0].CarID)
	assert.Same(t, created, hub.events[0].Car)
}

func TestCreateCarValidationFailureSkipsStorage(t *testing.T) {
	repo := &stubCarRepo{}
	images := &stubImageStore{}
	hub := &recordingHub{}
	svc := newTestCarService(repo, images, hub)

	_, err := svc.CreateCar(context.Background(), &domain.Car{Brand: "toyota"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.False(t, images.saveCalled)
	assert.False(t, repo.createCalled)
	assert.Empty(t, hub.events)
}

func TestCreateCarImageFailureSkipsInsert(t *testing.T) {
	repo := &stubCarRepo{}
	images := &stubImageStore{saveErr: errors.New("disk full")}
	hub := &recordingHub{}
	svc := newTestCarService(repo, images, hub)

	_, err := svc.CreateCar(context.Background(), validCar(), nil)
	require.Error(t, err)
	assert.False(t, repo.createCalled, "no row may be created when images fail to write")
	assert.Empty(t, hub.events)
}

func TestCreateCarInsertFailureCleansUpImages(t *testing.T) {
	repo := &stubCarRepo{err: errors.New("connection reset")}
	images := &stubImageStore{paths: []string{"images/batch/1.jpg"}}
	hub := &recordingHub{}
	svc := newTestCarService(repo, images, hub)

	_, err := svc.CreateCar(context.Background(), validCar(), nil)
	require.Error(t, err)
	assert.Len(t, images.removedDirs, 1, "written images are cleaned up after a failed insert")
	assert.Empty(t, hub.events)
}

func TestCreateCarTooManyImages(t *testing.T) {
	svc := newTestCarService(&stubCarRepo{}, &stubImageStore{}, &recordingHub{})

	files := make([]*multipart.FileHeader, domain.MaxImagesPerCar+1)
	_, err := svc.CreateCar(context.Background(), validCar(), files)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestUpdateCarPublishesUpdatedEvent(t *testing.T) {
	repo := &stubCarRepo{}
	hub := &recordingHub{}
	svc := newTestCarService(repo, &stubImageStore{}, hub)

	updated, err := svc.UpdateCar(context.Background(), "12", validCar())
	require.NoError(t, err)
	assert.Equal(t, int64(12), updated.ID)

	require.Len(t, hub.events, 1)
	assert.Equal(t, domain.CarUpdated, hub.events[0].Kind)
}

func TestUpdateCarInvalidID(t *testing.T) {
	hub := &recordingHub{}
	svc := newTestCarService(&stubCarRepo{}, &stubImageStore{}, hub)

	_, err := svc.UpdateCar(context.Background(), "abc", validCar())
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	assert.Empty(t, hub.events)
}

func TestUpdateCarNotFoundEmitsNoEvent(t *testing.T) {
	repo := &stubCarRepo{err: domain.ErrCarNotFound}
	hub := &recordingHub{}
	svc := newTestCarService(repo, &stubImageStore{}, hub)

	_, err := svc.UpdateCar(context.Background(), "12", validCar())
	assert.ErrorIs(t, err, domain.ErrCarNotFound)
	assert.Empty(t, hub.events)
}

func TestDeleteCarPublishesDeletedEventAndRemovesImages(t *testing.T) {
	existing := validCar()
	existing.ID = 5
	existing.ImagePaths = []string{"images/batch-dir/1.jpg"}

	repo := &stubCarRepo{car: existing}
	images := &stubImageStore{}
	hub := &recordingHub{}
	svc := newTestCarService(repo, images, hub)

	require.NoError(t, svc.DeleteCar(context.Background(), "5"))

	require.Len(t, hub.events, 1)
	assert.Equal(t, domain.CarDeleted, hub.events[0].Kind)
	assert.Equal(t, int64(5), hub.events[0].CarID)
	assert.Nil(t, hub.events[0].Car, "deletions carry only the id")

	assert.Equal(t, []string{"batch-dir"}, images.removedDirs)
}

func TestDeleteCarNotFound(t *testing.T) {
	repo := &stubCarRepo{err: domain.ErrCarNotFound}
	hub := &recordingHub{}
	svc := newTestCarService(repo, &stubImageStore{}, hub)

	err := svc.DeleteCar(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrCarNotFound)
	assert.False(t, repo.deleteCalled)
	assert.Empty(t, hub.events)
}

func TestDeleteCarInvalidID(t *testing.T) {
	svc := newTestCarService(&stubCarRepo{}, &stubImageStore{}, &recordingHub{})

	err := svc.DeleteCar(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
