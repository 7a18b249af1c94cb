package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sitterhub/config"
	"sitterhub/infras/kafka"
	kafkaMocks "sitterhub/infras/kafka/mocks"
	"sitterhub/infras/otel/mocks"
	bookingMocks "sitterhub/internal/domains/booking/mocks"
	"sitterhub/internal/domains/booking/model"
	"sitterhub/internal/domains/booking/model/dto"
	"sitterhub/internal/domains/booking/service"
	sitterMocks "sitterhub/internal/domains/sitter/service/mocks"
	"sitterhub/internal/pricing"
	cacheMocks "sitterhub/shared/cache/mocks"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	"sitterhub/shared/failure"
	gRepo "sitterhub/shared/repository"
)

const topic = "booking-events"

type fixture struct {
	repo      *bookingMocks.MockBooking
	sitters   *sitterMocks.MockSitter
	publisher *kafkaMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
	svc       service.Booking
	cfg       *config.Config
	evicted   *[]string
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Booking.AutoDecline = true
	cfg.Kafka.Topics.BookingEvents = topic

	f := fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		sitters:   sitterMocks.NewMockSitter(ctrl),
		publisher: kafkaMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		cfg:       cfg,
		evicted:   &[]string{},
	}
	f.svc = service.New(f.repo, f.sitters, f.publisher, cfg, f.cache, mocks.NewOtel())

	var mu sync.Mutex
	evict := func(_ context.Context, key string) error {
		mu.Lock()
		defer mu.Unlock()

		*f.evicted = append(*f.evicted, key)

		return nil
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(evict).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(evict).AnyTimes()

	return f
}

// events records every published batch.
func (f fixture) events() <-chan []kafka.Message {
	ch := make(chan []kafka.Message, 8)

	f.publisher.EXPECT().PublishAsync(gomock.Any(), topic, gomock.Any()).
		Do(func(_ context.Context, _ string, messages ...kafka.Message) {
			ch <- messages
		}).AnyTimes()

	return ch
}

func receive(t *testing.T, ch <-chan []kafka.Message) []model.Event {
	t.Helper()

	select {
	case messages := <-ch:
		events := make([]model.Event, len(messages))
		for i, message := range messages {
			event, ok := message.Value.(model.Event)
			require.True(t, ok)
			assert.Equal(t, event.BookingID, message.Key)

			events[i] = event
		}

		return events
	case <-time.After(time.Second):
		t.Fatal("expected a published event")

		return nil
	}
}

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.DateOnly, value)
	require.NoError(t, err)

	return parsed
}

func pendingBooking(t *testing.T) model.Booking {
	return model.Booking{
		ID:            "bk-1",
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
		County:        "Kent",
		StartDate:     date(t, "2024-06-01"),
		EndDate:       date(t, "2024-06-08"),
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentUnpaid,
	}
}

func rateCard() pricing.RateCard {
	return pricing.RateCard{
		BaseRateCents: 5000,
		Addons:        []pricing.Addon{{ID: "walk", Name: "Extra walk", PriceCents: 1000}},
		DiscountTiers: []pricing.DiscountTier{{MinDays: 3, Percentage: 5}, {MinDays: 7, Percentage: 10}},
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Customer:          dto.CustomerRequest{Name: "Dana", Email: "dana@example.com"},
		Pet:               dto.PetRequest{Name: "Biscuit", Breed: "Beagle"},
		Booking:           dto.StayRequest{StartDate: "2024-06-01", EndDate: "2024-06-08", County: "Kent"},
		SelectedSitterIDs: []string{"st-1", "st-2"},
		SelectedAddonIDs:  []string{"walk"},
	}
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)
	events := f.events()

	f.sitters.EXPECT().ActiveCount(gomock.Any(), []string{"st-1", "st-2"}).Return(2, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, submission model.Submission) error {
			booking := submission.Booking
			assert.Equal(t, model.StatusPending, booking.Status)
			assert.Equal(t, model.PaymentUnpaid, booking.PaymentStatus)
			assert.Nil(t, booking.AssignedSitterID)
			assert.Nil(t, booking.TotalCostCents)
			assert.Equal(t, constant.ContextGuest, booking.CreatedBy)

			require.Len(t, submission.Recipients, 2)
			for _, recipient := range submission.Recipients {
				assert.Equal(t, model.RecipientNotified, recipient.Status)
				assert.Equal(t, booking.ID, recipient.BookingID)
			}

			require.Len(t, submission.Addons, 1)
			assert.Nil(t, submission.Addons[0].PriceCentsAtBooking)
			require.Len(t, submission.Pets, 1)
			assert.Equal(t, "Biscuit", submission.Pets[0].Name)

			return nil
		})

	res, err := f.svc.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, model.StatusPending, res.Status)

	published := receive(t, events)
	require.Len(t, published, 1)
	assert.Equal(t, model.EventCreated, published[0].Type)
	assert.Equal(t, []string{"st-1", "st-2"}, published[0].SitterIDs)
}

func TestBookingService_Create_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *dto.CreateBookingRequest)
		setup  func(f fixture)
	}{
		{
			name:   "end not after start",
			mutate: func(req *dto.CreateBookingRequest) { req.Booking.EndDate = req.Booking.StartDate },
			setup:  func(fixture) {},
		},
		{
			name:   "end before start",
			mutate: func(req *dto.CreateBookingRequest) { req.Booking.EndDate = "2024-05-01" },
			setup:  func(fixture) {},
		},
		{
			name:   "inactive sitter selected",
			mutate: func(*dto.CreateBookingRequest) {},
			setup: func(f fixture) {
				f.sitters.EXPECT().ActiveCount(gomock.Any(), gomock.Any()).Return(1, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			req := createRequest()
			tt.mutate(&req)

			_, err := f.svc.Create(context.Background(), req)

			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestBookingService_Accept(t *testing.T) {
	f := newFixture(t)
	events := f.events()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
	f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{ID: "rc-1", Status: model.RecipientNotified}, nil)
	f.sitters.EXPECT().RateCard(gomock.Any(), "st-1").Return(rateCard(), nil)
	f.repo.EXPECT().GetAddons(gomock.Any(), "bk-1").Return([]model.AddonSelection{{AddonID: "walk"}, {AddonID: "retired"}}, nil)
	f.repo.EXPECT().Accept(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acceptance model.Acceptance) error {
			assert.Equal(t, "bk-1", acceptance.BookingID)
			assert.Equal(t, "st-1", acceptance.SitterID)
			assert.Equal(t, pricing.CostBreakdown{BaseRate: 35000, AddOnsCost: 1000, Discount: 3500, TotalCost: 32500}, acceptance.Cost)
			assert.Equal(t, map[string]int64{"walk": 1000, "retired": 0}, acceptance.AddonPrices)

			return nil
		})

	res, err := f.svc.Accept(context.Background(), "bk-1", "st-1")

	require.NoError(t, err)
	assert.True(t, res.Frozen)
	assert.Equal(t, 7, res.Nights)
	assert.Equal(t, int64(32500), res.TotalCost)

	published := receive(t, events)
	require.Len(t, published, 1)
	assert.Equal(t, model.EventAccepted, published[0].Type)
	assert.Equal(t, "st-1", published[0].SitterID)
	assert.Equal(t, model.StatusAccepted, published[0].Status)
}

func TestBookingService_Accept_Rejected(t *testing.T) {
	accepted := func(t *testing.T) model.Booking {
		booking := pendingBooking(t)
		booking.Status = model.StatusAccepted

		return booking
	}

	tests := []struct {
		name     string
		setup    func(t *testing.T, f fixture)
		wantCode int
	}{
		{
			name: "booking missing",
			setup: func(_ *testing.T, f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "sitter was not offered the booking",
			setup: func(t *testing.T, f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
				f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "already accepted by someone else",
			setup: func(t *testing.T, f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(t), nil)
				f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{ID: "rc-1", Status: model.RecipientNotified}, nil)
			},
			wantCode: 409,
		},
		{
			name: "repeated accept by the same sitter",
			setup: func(t *testing.T, f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accepted(t), nil)
				f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{ID: "rc-1", Status: model.RecipientAccepted}, nil)
			},
			wantCode: 409,
		},
		{
			name: "sitter already declined",
			setup: func(t *testing.T, f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
				f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{ID: "rc-1", Status: model.RecipientDeclined}, nil)
			},
			wantCode: 409,
		},
		{
			name: "conditional update matched nothing",
			setup: func(t *testing.T, f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
				f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{ID: "rc-1", Status: model.RecipientNotified}, nil)
				f.sitters.EXPECT().RateCard(gomock.Any(), "st-1").Return(rateCard(), nil)
				f.repo.EXPECT().GetAddons(gomock.Any(), "bk-1").Return(nil, nil)
				f.repo.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(fmt.Errorf("booking bk-1 is no longer pending: %w", gRepo.ErrNoRowsAffected))
			},
			wantCode: 409,
		},
		{
			name: "database failure",
			setup: func(t *testing.T, f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
				f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{ID: "rc-1", Status: model.RecipientNotified}, nil)
				f.sitters.EXPECT().RateCard(gomock.Any(), "st-1").Return(rateCard(), nil)
				f.repo.EXPECT().GetAddons(gomock.Any(), "bk-1").Return(nil, nil)
				f.repo.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			_, err := f.svc.Accept(context.Background(), "bk-1", "st-1")

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

// The repository mock plays the database: one compare-and-set on the booking status.
func TestBookingService_Accept_ConcurrentSittersOneWins(t *testing.T) {
	f := newFixture(t)
	f.events()

	var (
		mu     sync.Mutex
		status = model.StatusPending
		winner string
	)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil).Times(2)
	f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, sitterID string) (model.Recipient, error) {
			return model.Recipient{ID: "rc-" + sitterID, SitterID: sitterID, Status: model.RecipientNotified}, nil
		}).Times(2)
	f.sitters.EXPECT().RateCard(gomock.Any(), gomock.Any()).Return(rateCard(), nil).Times(2)
	f.repo.EXPECT().GetAddons(gomock.Any(), "bk-1").Return(nil, nil).Times(2)
	f.repo.EXPECT().Accept(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acceptance model.Acceptance) error {
			mu.Lock()
			defer mu.Unlock()

			if status != model.StatusPending {
				return fmt.Errorf("booking is no longer pending: %w", gRepo.ErrNoRowsAffected)
			}

			status = model.StatusAccepted
			winner = acceptance.SitterID

			return nil
		}).Times(2)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)

	for _, sitterID := range []string{"st-1", "st-2"} {
		wg.Add(1)

		go func(sitterID string) {
			defer wg.Done()

			_, err := f.svc.Accept(context.Background(), "bk-1", sitterID)

			switch {
			case err == nil:
				succeeded.Add(1)
			case failure.IsConflict(err):
				conflicts.Add(1)
			}
		}(sitterID)
	}

	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(1), conflicts.Load())
	assert.Contains(t, []string{"st-1", "st-2"}, winner)
}

func TestBookingService_Cost_FrozenIgnoresRateCardChanges(t *testing.T) {
	f := newFixture(t)

	sitter := "st-1"
	booking := pendingBooking(t)
	booking.Status = model.StatusAccepted
	booking.AssignedSitterID = &sitter
	booking.BaseRateAtBookingCents = int64Ptr(35000)
	booking.AddonsTotalCostCents = int64Ptr(1000)
	booking.DiscountAppliedCents = int64Ptr(3500)
	booking.TotalCostCents = int64Ptr(32500)

	// No RateCard expectation: the engine must not run for a frozen booking.
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

	res, err := f.svc.Cost(context.Background(), "bk-1", "st-2")

	require.NoError(t, err)
	assert.True(t, res.Frozen)
	assert.Equal(t, "st-1", res.SitterID)
	assert.Equal(t, pricing.CostBreakdown{BaseRate: 35000, AddOnsCost: 1000, Discount: 3500, TotalCost: 32500}, res.CostBreakdown)
}

func TestBookingService_Cost_LiveQuote(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
	f.sitters.EXPECT().RateCard(gomock.Any(), "st-2").Return(rateCard(), nil)
	f.repo.EXPECT().GetAddons(gomock.Any(), "bk-1").Return([]model.AddonSelection{{AddonID: "walk"}}, nil)

	res, err := f.svc.Cost(context.Background(), "bk-1", "st-2")

	require.NoError(t, err)
	assert.False(t, res.Frozen)
	assert.Equal(t, int64(32500), res.TotalCost)
}

func TestBookingService_Cost_PendingNeedsSitter(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)

	_, err := f.svc.Cost(context.Background(), "bk-1", "")

	assert.Equal(t, 400, failure.GetCode(err))
}

func TestBookingService_Decline(t *testing.T) {
	tests := []struct {
		name           string
		bookingDecline bool
		wantEvents     []string
	}{
		{name: "other sitters still undecided", wantEvents: []string{model.EventRecipientDecline}},
		{name: "last sitter declines", bookingDecline: true, wantEvents: []string{model.EventRecipientDecline, model.EventDeclined}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			events := f.events()

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
			f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{ID: "rc-1", Status: model.RecipientNotified}, nil)
			f.repo.EXPECT().Decline(gomock.Any(), "bk-1", "st-1", true).Return(tt.bookingDecline, nil)

			require.NoError(t, f.svc.Decline(context.Background(), "bk-1", "st-1"))

			got := []string{}
			for range tt.wantEvents {
				for _, event := range receive(t, events) {
					got = append(got, event.Type)
				}
			}

			assert.ElementsMatch(t, tt.wantEvents, got)
		})
	}
}

func TestBookingService_Decline_AutoDeclineDisabled(t *testing.T) {
	f := newFixture(t)
	f.events()
	f.cfg.Booking.AutoDecline = false

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
	f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{ID: "rc-1", Status: model.RecipientNotified}, nil)
	f.repo.EXPECT().Decline(gomock.Any(), "bk-1", "st-1", false).Return(false, nil)

	assert.NoError(t, f.svc.Decline(context.Background(), "bk-1", "st-1"))
}

func TestBookingService_Decline_Rejected(t *testing.T) {
	t.Run("already answered", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
		f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-1").Return(model.Recipient{ID: "rc-1", Status: model.RecipientDeclined}, nil)
		f.repo.EXPECT().Decline(gomock.Any(), "bk-1", "st-1", true).Return(false, fmt.Errorf("wrapped: %w", gRepo.ErrNoRowsAffected))

		err := f.svc.Decline(context.Background(), "bk-1", "st-1")

		assert.True(t, failure.IsConflict(err))
	})

	t.Run("not a recipient", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
		f.repo.EXPECT().GetRecipient(gomock.Any(), "bk-1", "st-9").Return(model.Recipient{}, nil)

		err := f.svc.Decline(context.Background(), "bk-1", "st-9")

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	t.Run("records audit and publishes", func(t *testing.T) {
		f := newFixture(t)
		events := f.events()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
		f.repo.EXPECT().Cancel(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, audit model.Override) error {
				assert.Equal(t, "bk-1", audit.BookingID)
				assert.Equal(t, "admin-1", audit.AdminID)
				assert.Equal(t, model.OverrideActionCancel, audit.Action)
				assert.Equal(t, "customer request", audit.Reason)
				assert.JSONEq(t, `{"status":"CANCELED_BY_ADMIN"}`, audit.Changes)

				return nil
			})

		require.NoError(t, f.svc.Cancel(ctx, "bk-1", dto.CancelBookingRequest{Reason: "customer request"}))

		// cache entries are gone by the time Cancel returns
		assert.Equal(t, []string{"booking:get:bk-1", "booking:gets:*", "booking:count:*"}, *f.evicted)

		published := receive(t, events)
		assert.Equal(t, model.EventCanceled, published[0].Type)
	})

	t.Run("terminal booking conflicts", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking(t)
		booking.Status = model.StatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Cancel(gomock.Any(), gomock.Any()).Return(fmt.Errorf("wrapped: %w", gRepo.ErrNoRowsAffected))

		err := f.svc.Cancel(ctx, "bk-1", dto.CancelBookingRequest{Reason: "late"})

		assert.True(t, failure.IsConflict(err))
	})
}

func acceptedBooking(t *testing.T) model.Booking {
	booking := pendingBooking(t)
	booking.Status = model.StatusAccepted
	booking.AssignedSitterID = stringPtr("st-1")
	booking.BaseRateAtBookingCents = int64Ptr(35000)
	booking.AddonsTotalCostCents = int64Ptr(0)
	booking.DiscountAppliedCents = int64Ptr(3500)
	booking.TotalCostCents = int64Ptr(31500)

	return booking
}

func stringPtr(v string) *string {
	return &v
}

func TestBookingService_Override(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	paid := model.PaymentPaid
	accepted := model.StatusAccepted
	pending := model.StatusPending
	early := "2024-05-01"
	later := "2024-06-10"

	fullFrozen := func(status *string, reason string) dto.OverrideBookingRequest {
		return dto.OverrideBookingRequest{
			Status:                 status,
			BaseRateAtBookingCents: int64Ptr(0),
			AddonsTotalCostCents:   int64Ptr(0),
			DiscountAppliedCents:   int64Ptr(0),
			TotalCostCents:         int64Ptr(0),
			Reason:                 reason,
		}
	}

	tests := []struct {
		name     string
		booking  func(t *testing.T) model.Booking
		req      dto.OverrideBookingRequest
		repoErr  error
		repo     bool
		wantCode int
		check    func(t *testing.T, changes map[string]any, audit model.Override)
	}{
		{
			name:     "nothing to change",
			req:      dto.OverrideBookingRequest{Reason: "noop"},
			wantCode: 400,
		},
		{
			name:     "end date moved before start",
			req:      dto.OverrideBookingRequest{EndDate: &early, Reason: "typo"},
			wantCode: 400,
		},
		{
			name:     "accepted without frozen cost",
			req:      dto.OverrideBookingRequest{Status: &accepted, Reason: "phone booking"},
			wantCode: 400,
		},
		{
			name:     "partial frozen cost",
			req:      dto.OverrideBookingRequest{TotalCostCents: int64Ptr(100), Reason: "discount"},
			wantCode: 400,
		},
		{
			name:     "frozen cost on a pending booking",
			req:      fullFrozen(nil, "manual quote"),
			wantCode: 400,
		},
		{
			name:     "assigned sitter on a pending booking",
			req:      dto.OverrideBookingRequest{AssignedSitterID: stringPtr("st-2"), Reason: "reassign"},
			wantCode: 400,
		},
		{
			name:     "accepted booking cannot return to pending",
			booking:  acceptedBooking,
			req:      dto.OverrideBookingRequest{Status: &pending, Reason: "reopen"},
			wantCode: 400,
		},
		{
			name: "payment and dates",
			req:  dto.OverrideBookingRequest{PaymentStatus: &paid, EndDate: &later, Reason: "paid by phone"},
			repo: true,
			check: func(t *testing.T, changes map[string]any, audit model.Override) {
				assert.Equal(t, model.PaymentPaid, changes[model.FieldPaymentStatus])
				assert.Equal(t, date(t, "2024-06-10"), changes[model.FieldEndDate])
				assert.NotContains(t, changes, model.FieldTotalCostCents)
				assert.Equal(t, model.OverrideActionEdit, audit.Action)

				var logged map[string]any
				require.NoError(t, json.Unmarshal([]byte(audit.Changes), &logged))
				assert.Equal(t, "2024-06-10", logged[model.FieldEndDate])
			},
		},
		{
			name: "accepted with full frozen cost",
			req:  fullFrozen(&accepted, "comped stay"),
			repo: true,
			check: func(t *testing.T, changes map[string]any, _ model.Override) {
				assert.Equal(t, int64(0), changes[model.FieldTotalCostCents])
			},
		},
		{
			name:    "accepted booking keeps its frozen cost when refunded",
			booking: acceptedBooking,
			req:     dto.OverrideBookingRequest{PaymentStatus: stringPtr(model.PaymentRefunded), Reason: "refund"},
			repo:    true,
			check: func(t *testing.T, changes map[string]any, _ model.Override) {
				assert.Len(t, changes, 1)
			},
		},
		{
			name:     "status changed underneath",
			req:      dto.OverrideBookingRequest{PaymentStatus: &paid, Reason: "paid by phone"},
			repo:     true,
			repoErr:  fmt.Errorf("wrapped: %w", gRepo.ErrNoRowsAffected),
			wantCode: 409,
			check:    func(*testing.T, map[string]any, model.Override) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.events()

			booking := pendingBooking(t)
			if tt.booking != nil {
				booking = tt.booking(t)
			}

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			if tt.repo {
				f.repo.EXPECT().Override(gomock.Any(), booking.Status, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, changes map[string]any, audit model.Override) error {
						assert.Equal(t, "admin-1", audit.AdminID)
						tt.check(t, changes, audit)

						return tt.repoErr
					})
			}

			err := f.svc.Override(ctx, "bk-1", tt.req)
			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_ExpireStale(t *testing.T) {
	f := newFixture(t)
	events := f.events()

	cutoff := date(t, "2024-06-01")
	f.repo.EXPECT().ExpireCreatedBefore(gomock.Any(), cutoff, constant.ContextSystem).Return([]string{"bk-1", "bk-2"}, nil)

	ids, err := f.svc.ExpireStale(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, []string{"bk-1", "bk-2"}, ids)

	published := receive(t, events)
	require.Len(t, published, 2)
	assert.Equal(t, model.EventExpired, published[0].Type)
	assert.Equal(t, model.StatusExpired, published[1].Status)
}

func TestBookingService_CompleteFinished_NothingToDo(t *testing.T) {
	f := newFixture(t)

	// No publisher expectation: an empty sweep publishes nothing.
	f.repo.EXPECT().CompleteEndedBefore(gomock.Any(), date(t, "2024-06-10"), constant.ContextSystem).Return([]string{}, nil)

	ids, err := f.svc.CompleteFinished(context.Background(), date(t, "2024-06-10").Add(15*time.Hour))

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBookingService_Get_SitterVisibility(t *testing.T) {
	sitterCtx := func(id string) context.Context {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

		return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSitter)
	}

	setup := func(t *testing.T, f fixture) {
		f.cache.EXPECT().Get(gomock.Any(), "booking:get:bk-1", gomock.Any()).Return(errors.New("redis: nil"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(t), nil)
		f.repo.EXPECT().GetPets(gomock.Any(), "bk-1").Return([]model.Pet{{Name: "Biscuit"}}, nil)
		f.repo.EXPECT().GetRecipients(gomock.Any(), "bk-1").Return([]model.Recipient{{SitterID: "st-1", Status: model.RecipientNotified}}, nil)
		f.repo.EXPECT().GetAddons(gomock.Any(), "bk-1").Return(nil, nil)
	}

	t.Run("offered sitter sees redacted booking", func(t *testing.T) {
		f := newFixture(t)
		setup(t, f)

		res, err := f.svc.Get(sitterCtx("st-1"), "bk-1")

		require.NoError(t, err)
		assert.Empty(t, res.CustomerEmail)
		assert.Nil(t, res.Recipients)
		assert.Len(t, res.Pets, 1)
	})

	t.Run("other sitter gets not found", func(t *testing.T) {
		f := newFixture(t)
		setup(t, f)

		_, err := f.svc.Get(sitterCtx("st-9"), "bk-1")

		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("admin sees everything", func(t *testing.T) {
		f := newFixture(t)
		setup(t, f)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleAdmin)
		res, err := f.svc.Get(ctx, "bk-1")

		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", res.CustomerEmail)
		assert.Len(t, res.Recipients, 1)
	})
}

func TestOpportunityFilter(t *testing.T) {
	filter := service.OpportunityFilter("st-1")

	where, args := filter.GetWhereClause()

	assert.Equal(t,
		"(bookings.status = :status AND bookings.id IN (SELECT booking_id FROM booking_sitter_recipients WHERE sitter_id = :recipient_sitter_id AND status = :recipient_status))",
		where,
	)
	assert.Equal(t, model.StatusPending, args["status"])
	assert.Equal(t, "st-1", args["recipient_sitter_id"])
	assert.Equal(t, model.RecipientNotified, args["recipient_status"])
}

func TestBookingService_Opportunities(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{pendingBooking(t)}, nil)

	res, err := f.svc.Opportunities(context.Background(), "st-1", gDto.QueryParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Empty(t, res.Bookings[0].CustomerEmail)
	assert.Equal(t, 1, res.TotalData)
}
