package reservation

import (
	"context"
	"errors"
	"time"

	"courtside/internal/court"
	"courtside/internal/email"
	"courtside/internal/guest"
	"courtside/internal/metrics"
)

var (
	ErrGuestNotFound       = errors.New("guest does not exist")
	ErrScheduleNotFound    = errors.New("schedule does not exist")
	ErrSlotAlreadyBooked   = errors.New("this time slot is already booked")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotReadyToPlay      = errors.New("cannot cancel/reschedule because it's not in ready to play status")
	ErrPastSchedule        = errors.New("can cancel/reschedule only future dates")
)

type Service interface {
	Book(ctx context.Context, guestID, scheduleID int) (*Reservation, error)
	Find(ctx context.Context, id int) (*Reservation, error)
	Cancel(ctx context.Context, id int) (*Reservation, error)
	Reschedule(ctx context.Context, previousReservationID, scheduleID int) (*RescheduledReservation, error)
}

type service struct {
	repo         Repository
	scheduleRepo court.Repository
	guestRepo    guest.Repository
	emailService *email.Service
	now          func() time.Time
}

func NewService(
	repo Repository,
	scheduleRepo court.Repository,
	guestRepo guest.Repository,
	emailService *email.Service,
) Service {
	return newService(repo, scheduleRepo, guestRepo, emailService, time.Now)
}

// newService lets tests pin the clock; refund tiers and timing validation
// depend on a single "now" sampled per operation.
func newService(
	repo Repository,
	scheduleRepo court.Repository,
	guestRepo guest.Repository,
	emailService *email.Service,
	now func() time.Time,
) *service {
	return &service{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		guestRepo:    guestRepo,
		emailService: emailService,
		now:          now,
	}
}

func (s *service) Book(ctx context.Context, guestID, scheduleID int) (*Reservation, error) {
	g, err := s.guestRepo.FindByID(ctx, guestID)
	if err != nil {
		return nil, ErrGuestNotFound
	}

	schedule, err := s.scheduleRepo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, ErrScheduleNotFound
	}

	booked, err := s.repo.ScheduleIsBooked(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, ErrSlotAlreadyBooked
	}

	// The partial unique index backs this up if another booking slips in
	// between the check and the insert.
	reservation, err := s.repo.Create(ctx, guestID, scheduleID, SlotPrice)
	if err != nil {
		return nil, err
	}

	metrics.RecordReservation("booked")

	if s.emailService != nil {
		s.emailService.SendReservationConfirmation(ctx, g.Email, g.Name, reservation.ID, schedule.StartDateTime)
	}

	return reservation, nil
}

func (s *service) Find(ctx context.Context, id int) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id int) (*Reservation, error) {
	reservation, err := s.cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	refund, _ := reservation.RefundValue.Float64()
	metrics.RecordCancellation(refund)

	if s.emailService != nil {
		if g, gerr := s.guestRepo.FindByID(ctx, reservation.GuestID); gerr == nil {
			s.emailService.SendCancellationReceipt(ctx, g.Email, g.Name, reservation.ID, reservation.RefundValue)
		}
	}

	return reservation, nil
}

// cancel is the validate-then-mutate step shared by Cancel and the first half
// of Reschedule. It returns the mutated, persisted reservation.
func (s *service) cancel(ctx context.Context, id int) (*Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status != StatusReadyToPlay {
		return nil, ErrNotReadyToPlay
	}

	schedule, err := s.scheduleRepo.GetScheduleByID(ctx, reservation.ScheduleID)
	if err != nil {
		return nil, ErrScheduleNotFound
	}

	now := s.now()
	if schedule.StartDateTime.Before(now) {
		return nil, ErrPastSchedule
	}

	refund := RefundAmount(now, schedule.StartDateTime, reservation.Value)

	return s.repo.Cancel(ctx, id, reservation.Value.Sub(refund), refund)
}

func (s *service) Reschedule(ctx context.Context, previousReservationID, scheduleID int) (*RescheduledReservation, error) {
	previous, err := s.cancel(ctx, previousReservationID)
	if err != nil {
		return nil, err
	}

	previous, err = s.repo.MarkRescheduled(ctx, previous.ID)
	if err != nil {
		return nil, err
	}

	newReservation, err := s.Book(ctx, previous.GuestID, scheduleID)
	if err != nil {
		return nil, err
	}

	metrics.RecordReschedule()

	return &RescheduledReservation{
		Reservation:         *newReservation,
		PreviousReservation: previous,
	}, nil
}
