package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so route
// registration stays in one place.
type HandlerBundle struct {
	// Availability endpoints
	GetAvailabilityHandler      gin.HandlerFunc
	SetAvailabilityHandler      gin.HandlerFunc
	ApplyDefaultScheduleHandler gin.HandlerFunc
	ClearDayHandler             gin.HandlerFunc

	// Slot endpoints
	GetValidStartHoursHandler gin.HandlerFunc
	GetFirstAvailableHandler  gin.HandlerFunc
	RankProvidersHandler      gin.HandlerFunc

	// Quote endpoints
	CreateQuoteHandler gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler   gin.HandlerFunc
	CancelBookingHandler   gin.HandlerFunc
	StartBookingHandler    gin.HandlerFunc
	CompleteBookingHandler gin.HandlerFunc

	// Offer endpoints
	CreateOfferHandler gin.HandlerFunc
	ClaimOfferHandler  gin.HandlerFunc

	// Tariff endpoints
	GetTariffHandler  gin.HandlerFunc
	SaveTariffHandler gin.HandlerFunc

	// Draft endpoints
	SaveDraftHandler   gin.HandlerFunc
	GetDraftHandler    gin.HandlerFunc
	DeleteDraftHandler gin.HandlerFunc
}
