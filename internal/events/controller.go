package events

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Geocoder resolves a street address to coordinates. Optional; a nil
// geocoder disables the best-effort coordinate fill on creation.
type Geocoder interface {
	Locate(address string) (lat, lon float64, err error)
}

// Handler owns the authenticated event routes.
type Handler struct {
	DB       *gorm.DB
	Geocoder Geocoder
}

type createEventDTO struct {
	EventCreator string `json:"eventCreator"`
	Date         string `json:"date"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	// pointers so an omitted coordinate is distinguishable from an explicit 0
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsPublic  bool     `json:"isPublic"`
}

// EventSummary is the projection returned by the list endpoint.
type EventSummary struct {
	EventCreator string  `json:"eventCreator"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	Date         string  `json:"date"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var body createEventDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.String(http.StatusBadRequest, "Could not parse request: "+err.Error())
		return
	}

	event := Event{
		EventCreator: body.EventCreator,
		Slug:         slug.Make(fmt.Sprintf("%s %s", body.Address, body.Date)),
		Date:         body.Date,
		Description:  body.Description,
		Address:      body.Address,
		IsPublic:     body.IsPublic,
	}
	if body.Latitude != nil {
		event.Latitude = *body.Latitude
	}
	if body.Longitude != nil {
		event.Longitude = *body.Longitude
	}

	// best effort: never fails the request
	if h.Geocoder != nil && body.Latitude == nil && body.Longitude == nil && event.Address != "" {
		if lat, lon, err := h.Geocoder.Locate(event.Address); err != nil {
			log.Printf("geocode %q failed: %v", event.Address, err)
		} else {
			event.Latitude = lat
			event.Longitude = lon
		}
	}

	if err := h.DB.Create(&event).Error; err != nil {
		c.String(http.StatusBadRequest, "Could not create event: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.GetHeader("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id.")
		return
	}

	var event Event
	err = h.DB.Preload("Volunteers", func(db *gorm.DB) *gorm.DB {
		return db.Order("volunteers.id ASC")
	}).First(&event, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Event not found.")
			return
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, event)
}

// GetEvents lists all events restricted to
// {eventCreator, description, address, date, latitude, longitude}.
func (h *Handler) GetEvents(c *gin.Context) {
	var summaries []EventSummary
	err := h.DB.Model(&Event{}).
		Select("event_creator", "description", "address", "date", "latitude", "longitude").
		Find(&summaries).Error
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// AddToEvent appends a volunteer to the event's list. Existing entries are
// never touched; join order is the insertion order.
func (h *Handler) AddToEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.GetHeader("eventid"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id.")
		return
	}
	userID, err := strconv.ParseUint(c.GetHeader("userid"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id.")
		return
	}

	volunteer := Volunteer{
		EventID:  uint(eventID),
		UserID:   uint(userID),
		Username: c.GetHeader("username"),
	}

	if err := h.DB.Create(&volunteer).Error; err != nil {
		c.String(http.StatusNotFound, "Could not add to event: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": 1})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.GetHeader("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id.")
		return
	}

	res := h.DB.Delete(&Event{}, uint(id))
	if res.Error != nil {
		c.String(http.StatusNotFound, "Could not delete event: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		c.String(http.StatusNotFound, "Event not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": res.RowsAffected})
}
