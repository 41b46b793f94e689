package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rehlatours/umrahbooking/internal/domain"
	"github.com/rehlatours/umrahbooking/internal/service/booking"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.submit)
	router.GET("/", h.list)
	router.GET("/:bookingID", h.get)
	router.PATCH("/:bookingID/status", h.updateStatus)
	router.GET("/:bookingID/pdf", h.pdf)
}

type submitBookingRequest struct {
	Name         string `json:"name"`
	RegisterDate string `json:"register_date"`
	Gender       string `json:"gender"`
	PlaceOfBirth string `json:"place_of_birth"`
	BirthDate    string `json:"birth_date"`
	FatherName   string `json:"father_name"`
	MotherName   string `json:"mother_name"`

	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Occupation string `json:"occupation"`

	SpecificDisease bool   `json:"specific_disease"`
	Illness         string `json:"illness"`
	SpecialNeeds    bool   `json:"special_needs"`
	Wheelchair      bool   `json:"wheelchair"`

	NIKNumber      string `json:"nik_number"`
	PassportNumber string `json:"passport_number"`
	DateOfIssue    string `json:"date_of_issue"`
	ExpiryDate     string `json:"expiry_date"`
	PlaceOfIssue   string `json:"place_of_issue"`

	PhoneNumber    string `json:"phone_number"`
	WhatsappNumber string `json:"whatsapp_number"`
	Email          string `json:"email"`

	HasPerformedUmrah bool `json:"has_performed_umrah"`
	HasPerformedHajj  bool `json:"has_performed_hajj"`

	EmergencyContactName  string `json:"emergency_contact_name"`
	Relationship          string `json:"relationship"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`

	MaritalStatus  string `json:"mariage_status"`
	UmrahPackageID int64  `json:"umrah_package"`
	PaymentMethod  string `json:"payment_method"`
	TermsOfService bool   `json:"terms_of_service"`
}

func (r *submitBookingRequest) toDomain() (*domain.Booking, error) {
	b := &domain.Booking{
		Name:                  r.Name,
		Gender:                domain.Gender(r.Gender),
		PlaceOfBirth:          r.PlaceOfBirth,
		FatherName:            r.FatherName,
		MotherName:            r.MotherName,
		Address:               r.Address,
		City:                  r.City,
		Province:              r.Province,
		PostalCode:            r.PostalCode,
		Occupation:            r.Occupation,
		SpecificDisease:       r.SpecificDisease,
		Illness:               r.Illness,
		SpecialNeeds:          r.SpecialNeeds,
		Wheelchair:            r.Wheelchair,
		NIKNumber:             r.NIKNumber,
		PassportNumber:        r.PassportNumber,
		PlaceOfIssue:          r.PlaceOfIssue,
		PhoneNumber:           r.PhoneNumber,
		WhatsappNumber:        r.WhatsappNumber,
		Email:                 r.Email,
		HasPerformedUmrah:     r.HasPerformedUmrah,
		HasPerformedHajj:      r.HasPerformedHajj,
		EmergencyContactName:  r.EmergencyContactName,
		Relationship:          domain.Relationship(r.Relationship),
		EmergencyContactPhone: r.EmergencyContactPhone,
		MaritalStatus:         domain.MaritalStatus(r.MaritalStatus),
		UmrahPackageID:        r.UmrahPackageID,
		PaymentMethod:         domain.PaymentMethod(r.PaymentMethod),
		TermsOfService:        r.TermsOfService,
	}

	var err error
	if b.RegisterDate, err = parseDate(r.RegisterDate, "register_date"); err != nil {
		return nil, err
	}
	if b.BirthDate, err = parseDate(r.BirthDate, "birth_date"); err != nil {
		return nil, err
	}
	if b.DateOfIssue, err = parseDate(r.DateOfIssue, "date_of_issue"); err != nil {
		return nil, err
	}
	if b.ExpiryDate, err = parseDate(r.ExpiryDate, "expiry_date"); err != nil {
		return nil, err
	}
	return b, nil
}

// parseDate accepts YYYY-MM-DD and leaves zero for an absent value so the
// field rules can report it as missing rather than malformed.
func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: expected YYYY-MM-DD", field)
	}
	return t, nil
}

func (h *BookingHandler) submit(c *gin.Context) {
	var req submitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := req.toDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Submit(c.Request.Context(), b)
	if err != nil {
		var vErr *booking.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"errors": vErr.Messages})
		case errors.Is(err, domain.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Data pendaftaran sudah terdaftar"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("bookingID"), domain.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) pdf(c *gin.Context) {
	bookingID := c.Param("bookingID")
	buf, err := h.service.ConfirmationPDF(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="confirmation-%s.pdf"`, bookingID))
	c.Data(http.StatusOK, "application/pdf", buf)
}
