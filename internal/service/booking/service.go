// Package booking owns the booking record lifecycle: creation from a selected
// package, the payment-gated confirmation workflow, and the admin status
// override.
package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
	"github.com/alhaqtravel/umrah-booking/internal/traveler"
)

type Repository interface {
	CreateBooking(ctx context.Context, b *domain.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
	SetPaymentResult(ctx context.Context, id uuid.UUID, status domain.BookingStatus, ps domain.PaymentStatus) (*domain.Booking, error)
	SetPaymentIntentSecret(ctx context.Context, id uuid.UUID, secret string) error
	SetPaymentStatus(ctx context.Context, id uuid.UUID, ps domain.PaymentStatus) error
	Stats(ctx context.Context) (domain.BookingStats, error)
}

type Catalog interface {
	ResolveActivePackage(ctx context.Context, id uuid.UUID) (*domain.TravelPackage, error)
}

type PaymentBridge interface {
	CreateIntent(ctx context.Context, amountCents int64, bookingID uuid.UUID, customerEmail string) (string, error)
	ConfirmCardPayment(ctx context.Context, clientSecret string, card domain.CardDetails, billing domain.BillingDetails) error
}

type Producer interface {
	PublishBookingEvent(ctx context.Context, eventType string, b domain.Booking) error
}

type Auditor interface {
	LogStatusOverride(ctx context.Context, actorID uuid.UUID, b domain.Booking, from domain.BookingStatus) error
}

// UseCase is the surface the HTTP layer consumes.
type UseCase interface {
	CreateBooking(ctx context.Context, actor domain.User, in CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, actor domain.User, id uuid.UUID) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, actor domain.User) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context, actor domain.User) ([]domain.Booking, error)
	CreatePaymentIntent(ctx context.Context, actor domain.User, bookingID uuid.UUID) (string, error)
	ConfirmPayment(ctx context.Context, actor domain.User, bookingID uuid.UUID, clientSecret string, card domain.CardDetails) (*domain.Booking, error)
	OverrideStatus(ctx context.Context, actor domain.User, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
	Stats(ctx context.Context, actor domain.User) (domain.BookingStats, error)
}

type Service struct {
	bookings  Repository
	catalog   Catalog
	bridge    PaymentBridge
	producer  Producer
	audit     Auditor
	validator *traveler.Validator
	logger    observability.Logger
}

type ServiceOption func(*Service)

func WithAuditor(a Auditor) ServiceOption {
	return func(s *Service) {
		s.audit = a
	}
}

func WithProducer(p Producer) ServiceOption {
	return func(s *Service) {
		s.producer = p
	}
}

func NewService(bookings Repository, catalog Catalog, bridge PaymentBridge, validator *traveler.Validator, logger observability.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		bookings:  bookings,
		catalog:   catalog,
		bridge:    bridge,
		validator: validator,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateBookingInput struct {
	PackageID      uuid.UUID            `json:"package_id"`
	NumberOfRooms  int                  `json:"number_of_rooms"`
	NumberOfGuests int                  `json:"number_of_guests"`
	CustomerName   string               `json:"customer_name"`
	CustomerEmail  string               `json:"customer_email"`
	CustomerPhone  string               `json:"customer_phone"`
	PersonalInfo   *domain.PersonalInfo `json:"personal_info,omitempty"`
}

// CreateBooking resolves the package, validates traveler info when the
// payment-gated flow is used, and persists the booking in a single insert.
// The total is fixed here and never recomputed.
func (s *Service) CreateBooking(ctx context.Context, actor domain.User, in CreateBookingInput) (*domain.Booking, error) {
	if actor.ID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	pkg, err := s.catalog.ResolveActivePackage(ctx, in.PackageID)
	if err != nil {
		return nil, err
	}

	if in.PersonalInfo != nil {
		if err := s.validator.Validate(*in.PersonalInfo); err != nil {
			return nil, err
		}
	}

	name := in.CustomerName
	if name == "" && in.PersonalInfo != nil {
		name = in.PersonalInfo.GivenName + " " + in.PersonalInfo.Surname
	}
	email := in.CustomerEmail
	if email == "" && in.PersonalInfo != nil {
		email = in.PersonalInfo.Email
	}
	phone := in.CustomerPhone
	if phone == "" && in.PersonalInfo != nil {
		phone = in.PersonalInfo.Phone
	}

	b, err := domain.NewBooking(pkg.ID, actor.ID, pkg.PriceCents, in.NumberOfRooms, in.NumberOfGuests, name, email, phone, in.PersonalInfo)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.CreateBooking(ctx, &b); err != nil {
		return nil, err
	}

	s.logger.WithField("booking_id", b.ID).Info("booking created in status ", b.Status)
	return &b, nil
}

// GetBooking returns the booking to its owner or an admin; anyone else gets
// not-found so booking ids do not leak.
func (s *Service) GetBooking(ctx context.Context, actor domain.User, id uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != actor.ID && !actor.IsAdmin() {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *Service) ListMyBookings(ctx context.Context, actor domain.User) ([]domain.Booking, error) {
	if actor.ID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	return s.bookings.ListByUser(ctx, actor.ID)
}

func (s *Service) ListAllBookings(ctx context.Context, actor domain.User) ([]domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.bookings.ListAll(ctx)
}

// CreatePaymentIntent asks the bridge for a client secret covering the
// booking's stored total and pins that secret on the booking. Only the owner
// of a pending_payment booking may start the payment step. Calling it again
// replaces the pinned secret; only the latest intent can confirm.
func (s *Service) CreatePaymentIntent(ctx context.Context, actor domain.User, bookingID uuid.UUID) (string, error) {
	b, err := s.GetBooking(ctx, actor, bookingID)
	if err != nil {
		return "", err
	}
	if b.Status != domain.BookingStatusPendingPayment {
		return "", domain.ErrConflict
	}

	secret, err := s.bridge.CreateIntent(ctx, b.TotalCents, b.ID, b.CustomerEmail)
	if err != nil {
		return "", err
	}
	if err := s.bookings.SetPaymentIntentSecret(ctx, b.ID, secret); err != nil {
		return "", err
	}
	return secret, nil
}

// ConfirmPayment submits the card to the bridge against the intent pinned on
// the booking by CreatePaymentIntent. Success drives the one
// system transition, pending_payment to confirmed, and marks the payment
// paid. A decline surfaces the bridge's message verbatim, records the failed
// payment, and leaves the booking in pending_payment so the customer may
// retry.
func (s *Service) ConfirmPayment(ctx context.Context, actor domain.User, bookingID uuid.UUID, clientSecret string, card domain.CardDetails) (*domain.Booking, error) {
	b, err := s.GetBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusPendingPayment {
		return nil, domain.ErrConflict
	}
	// The presented secret must be the one minted for this booking's amount;
	// a secret from any other intent cannot drive the transition.
	if b.PaymentIntentSecret == "" || clientSecret != b.PaymentIntentSecret {
		return nil, domain.ErrConflict
	}

	billing := domain.BillingDetails{Name: b.CustomerName, Email: b.CustomerEmail}
	if err := s.bridge.ConfirmCardPayment(ctx, clientSecret, card, billing); err != nil {
		var paymentErr *domain.PaymentError
		if errors.As(err, &paymentErr) {
			observability.PaymentAttempts.WithLabelValues("declined").Inc()
			if serr := s.bookings.SetPaymentStatus(ctx, b.ID, domain.PaymentStatusFailed); serr != nil {
				s.logger.Error("failed to record declined payment", serr)
			}
		}
		return nil, err
	}

	updated, err := s.bookings.SetPaymentResult(ctx, b.ID, domain.BookingStatusConfirmed, domain.PaymentStatusPaid)
	if err != nil {
		// Charge went through but the confirm step did not complete; the
		// booking stays pending_payment and the reconcile worker will
		// surface it.
		s.logger.WithField("booking_id", b.ID).Error("payment captured but status update failed", err)
		return nil, err
	}

	observability.PaymentAttempts.WithLabelValues("succeeded").Inc()
	s.publish(ctx, "booking.confirmed", *updated)
	return updated, nil
}

// OverrideStatus is the admin escape hatch: any booking may be forced to
// pending, confirmed, or cancelled regardless of its current state.
func (s *Service) OverrideStatus(ctx context.Context, actor domain.User, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !domain.AdminSettable(status) {
		return nil, &domain.ValidationError{Field: "status", Message: "must be pending, confirmed or cancelled"}
	}

	current, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		if aerr := s.audit.LogStatusOverride(ctx, actor.ID, *updated, current.Status); aerr != nil {
			s.logger.Error("failed to audit status override", aerr)
		}
	}
	s.publish(ctx, "booking.status_changed", *updated)
	return updated, nil
}

func (s *Service) Stats(ctx context.Context, actor domain.User) (domain.BookingStats, error) {
	if !actor.IsAdmin() {
		return domain.BookingStats{}, domain.ErrForbidden
	}
	return s.bookings.Stats(ctx)
}

func (s *Service) publish(ctx context.Context, eventType string, b domain.Booking) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishBookingEvent(ctx, eventType, b); err != nil {
		s.logger.WithField("booking_id", b.ID).Warn("failed to publish "+eventType+": ", err)
	}
}

var _ UseCase = (*Service)(nil)
