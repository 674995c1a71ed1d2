package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"team-availability-api/internal/middleware"
	"team-availability-api/internal/store"
	"team-availability-api/internal/wire"
)

const dateLayout = "2006-01-02"

// monthRange returns the inclusive [first day, last day] of a month as
// YYYY-MM-DD strings. month is zero-based; time.Date normalizes
// out-of-range values the same way the calendar client's native date
// arithmetic does (month 12 of 2024 is January 2025).
func monthRange(year, month int) (string, string) {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC)
	return first.Format(dateLayout), last.Format(dateLayout)
}

func (h *Handler) GetUnavailabilityForMonth(ctx context.Context, req *wire.GetUnavailabilityForMonthRequest) (*wire.GetUnavailabilityForMonthResponse, error) {
	start, end := monthRange(int(req.Year), int(req.Month))

	markers, err := h.store.ListUnavailabilityForRange(ctx, start, end)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	out := make([]*wire.UnavailabilityRecord, len(markers))
	for i := range markers {
		out[i] = toRecord(&markers[i])
	}
	return &wire.GetUnavailabilityForMonthResponse{Records: out}, nil
}

func (h *Handler) GetCurrentUserUnavailability(ctx context.Context, req *wire.GetCurrentUserUnavailabilityRequest) (*wire.GetCurrentUserUnavailabilityResponse, error) {
	userID := middleware.UserID(ctx)
	if userID == "" {
		// anonymous viewers get no personal overlay, not an error
		return &wire.GetCurrentUserUnavailabilityResponse{}, nil
	}

	start, end := monthRange(int(req.Year), int(req.Month))

	dates, err := h.store.ListUserUnavailableDates(ctx, userID, start, end)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &wire.GetCurrentUserUnavailabilityResponse{Dates: dates}, nil
}

func (h *Handler) ToggleUnavailability(ctx context.Context, req *wire.ToggleUnavailabilityRequest) (*wire.ToggleUnavailabilityResponse, error) {
	userID := middleware.UserID(ctx)
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, "must be logged in to update availability")
	}

	// round-trip through time.Parse rejects both bad formats and
	// impossible calendar days like 2024-02-30
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, status.Error(codes.InvalidArgument, "date must be YYYY-MM-DD")
	}

	unavailable, err := h.store.ToggleUnavailability(ctx, userID, req.Date)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &wire.ToggleUnavailabilityResponse{Unavailable: unavailable}, nil
}

func toRecord(m *store.MonthMarker) *wire.UnavailabilityRecord {
	r := &wire.UnavailabilityRecord{
		Id:          m.ID,
		UserId:      m.UserID,
		Date:        m.Date,
		DisplayName: displayName(m),
		Unavailable: m.EffectivelyUnavailable(),
	}
	if !m.CreatedAt.IsZero() {
		r.CreatedAt = timestamppb.New(m.CreatedAt)
	}
	return r
}

// name, else email, else "Unknown" for markers whose owner is gone
func displayName(m *store.MonthMarker) string {
	if m.OwnerName != nil && *m.OwnerName != "" {
		return *m.OwnerName
	}
	if m.OwnerEmail != nil && *m.OwnerEmail != "" {
		return *m.OwnerEmail
	}
	return "Unknown"
}
