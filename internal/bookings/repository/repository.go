package repository

import (
	"context"

	mongotx "aeroclub/pkg/db/mongo"
	"aeroclub/pkg/model"
)

// BookingRepository is the booking store. Mongo and PostgreSQL implement it.
//
// A limit of zero or less on Find means no limit. Update and Delete return
// the record as it is after the update, or as it was before the delete.
type BookingRepository interface {
	Find(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context, filter model.BookingFilter) (int64, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	Insert(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, id string, booking *model.Booking) (*model.Booking, error)
	Delete(ctx context.Context, id string) (*model.Booking, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}
