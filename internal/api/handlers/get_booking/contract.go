package get_booking

import (
	"context"

	"github.com/nguyenhau8209/PetHaven/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, requesterID string, isStaff bool) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
