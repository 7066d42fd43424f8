package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mikededo/hubbl-sub002/internal/auth"
	"github.com/mikededo/hubbl-sub002/internal/metrics"
	"github.com/mikededo/hubbl-sub002/internal/schedule"
	"github.com/mikededo/hubbl-sub002/internal/zone"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// BookAppointment godoc
// @Summary      Book appointment
// @Description  Admits a booking into a gym zone's calendar if the zone has capacity for the whole interval.
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BookAppointmentRequest  true  "Appointment data"
// @Success      201      {object}  Appointment
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /appointments [post]
func (h *Handler) BookAppointment(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body BookAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := parseRequest(userID, body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		status, message := admissionError(err)
		metrics.RecordAdmission("rejected")
		c.JSON(status, gin.H{"error": message})
		return
	}

	metrics.RecordAdmission("admitted")
	c.JSON(http.StatusCreated, appt)
}

// CancelAppointment godoc
// @Summary      Cancel appointment
// @Description  Soft-deletes an appointment of the current user. Cancelling twice is rejected.
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        appointmentID  path      int  true  "Appointment ID"
// @Success      200            {object}  CancelAppointmentResponse
// @Failure      400            {object}  gin.H
// @Failure      403            {object}  gin.H
// @Failure      404            {object}  gin.H
// @Failure      409            {object}  gin.H
// @Failure      500            {object}  gin.H
// @Router       /appointments/{appointmentID}/cancel [post]
func (h *Handler) CancelAppointment(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	appointmentID, err := strconv.Atoi(c.Param("appointmentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, appointmentID); err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own appointments"})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "Appointment is already cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		}
		return
	}

	metrics.RecordCancellation()
	c.JSON(http.StatusOK, CancelAppointmentResponse{Message: "Appointment cancelled successfully"})
}

// DeleteAppointment godoc
// @Summary      Delete appointment
// @Description  Physically removes an appointment record. Owner only, irreversible.
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        appointmentID  path      int  true  "Appointment ID"
// @Success      200            {object}  gin.H
// @Failure      400            {object}  gin.H
// @Failure      403            {object}  gin.H
// @Failure      404            {object}  gin.H
// @Failure      500            {object}  gin.H
// @Router       /admin/appointments/{appointmentID} [delete]
func (h *Handler) DeleteAppointment(c *gin.Context) {
	role, exists := auth.GetUserRole(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	appointmentID, err := strconv.Atoi(c.Param("appointmentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), role, appointmentID); err != nil {
		switch {
		case errors.Is(err, ErrDeleteNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		case errors.Is(err, ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete appointment"})
		}
		return
	}

	metrics.RecordDeletion()
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}

// ListMyAppointments godoc
// @Summary      List my appointments
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Appointment
// @Failure      500  {object}  gin.H
// @Router       /appointments [get]
func (h *Handler) ListMyAppointments(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	appts, err := h.service.GetUserAppointments(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appts)
}

// GetAvailability godoc
// @Summary      Zone availability
// @Description  Returns the bookable start times for a duration on a zone's day, on the fixed 15-minute grid.
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        zoneID    path      int     true  "Gym zone ID"
// @Param        date      query     string  true  "Date (2006-01-02)"
// @Param        duration  query     int     true  "Duration in minutes"
// @Success      200       {object}  AvailabilityResponse
// @Failure      400       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Failure      500       {object}  gin.H
// @Router       /zones/{zoneID}/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	zoneID, err := strconv.Atoi(c.Param("zoneID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone ID"})
		return
	}

	date, err := schedule.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use 2006-01-02"})
		return
	}

	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a positive number of minutes"})
		return
	}

	starts, err := h.service.Availability(c.Request.Context(), zoneID, date, duration)
	if err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gym zone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability"})
		return
	}

	metrics.RecordAvailabilityQuery()

	rendered := make([]string, 0, len(starts))
	for _, t := range starts {
		rendered = append(rendered, t.String())
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		ZoneID:          zoneID,
		Date:            date.String(),
		DurationMinutes: duration,
		Starts:          rendered,
	})
}

func parseRequest(userID int, body BookAppointmentRequest) (Request, error) {
	date, err := schedule.ParseDate(body.Date)
	if err != nil {
		return Request{}, errors.New("invalid date, use 2006-01-02")
	}

	start, err := schedule.ParseTimeOfDay(body.StartTime)
	if err != nil {
		return Request{}, errors.New("invalid start_time, use HH:MM:SS")
	}

	end, err := schedule.ParseTimeOfDay(body.EndTime)
	if err != nil {
		return Request{}, errors.New("invalid end_time, use HH:MM:SS")
	}

	return Request{
		UserID: userID,
		ZoneID: body.ZoneID,
		Date:   date,
		Start:  start,
		End:    end,
	}, nil
}

// admissionError maps each rejection to its HTTP status. Every reason keeps
// a distinct, stable message so clients never have to guess.
func admissionError(err error) (int, string) {
	var policyErr *PolicyError
	switch {
	case errors.Is(err, ErrInvalidTimeRange):
		return http.StatusBadRequest, ErrInvalidTimeRange.Error()
	case errors.Is(err, ErrPastEvent):
		return http.StatusBadRequest, ErrPastEvent.Error()
	case errors.Is(err, zone.ErrZoneNotFound):
		return http.StatusNotFound, zone.ErrZoneNotFound.Error()
	case errors.Is(err, ErrOutsideOperatingHours):
		return http.StatusBadRequest, ErrOutsideOperatingHours.Error()
	case errors.Is(err, ErrCapacityExceeded):
		return http.StatusConflict, ErrCapacityExceeded.Error()
	case errors.As(err, &policyErr):
		return http.StatusForbidden, policyErr.Reason
	case errors.Is(err, ErrDuplicateBooking):
		return http.StatusConflict, ErrDuplicateBooking.Error()
	default:
		return http.StatusInternalServerError, "Failed to book appointment"
	}
}
