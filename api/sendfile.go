package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rehlatours/umrahbooking/internal/domain"
	"github.com/rehlatours/umrahbooking/internal/pdf"
	"github.com/rehlatours/umrahbooking/internal/whatsapp"
)

const defaultCaption = "Terima kasih atas pemesanan Anda. Berikut adalah konfirmasi pemesanan Anda."

// SendFileHandler renders a confirmation PDF from a posted form payload and
// forwards it through the WhatsApp transport. It accepts the current payload
// (umrahFormData + bookingId) and the legacy one (bookingData).
type SendFileHandler struct {
	client *whatsapp.Client
}

func NewSendFileHandler(client *whatsapp.Client) *SendFileHandler {
	return &SendFileHandler{client: client}
}

func (h *SendFileHandler) Register(router *gin.RouterGroup) {
	router.POST("/send-file", h.sendFile)
	router.GET("/test-pdf", h.testPDF)
	router.POST("/test-pdf", h.testPDF)
}

// umrahFormPayload mirrors the form data shape the frontend posts: snake_case
// keys, YYYY-MM-DD date strings, the package carried by name.
type umrahFormPayload struct {
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

	MaritalStatus string `json:"mariage_status"`
	UmrahPackage  string `json:"umrah_package"`
	PaymentMethod string `json:"payment_method"`
}

func (p *umrahFormPayload) toBooking(bookingID string) *domain.Booking {
	return &domain.Booking{
		BookingID:             bookingID,
		Status:                domain.StatusPendingReview,
		Name:                  p.Name,
		RegisterDate:          looseDate(p.RegisterDate),
		Gender:                domain.Gender(p.Gender),
		PlaceOfBirth:          p.PlaceOfBirth,
		BirthDate:             looseDate(p.BirthDate),
		FatherName:            p.FatherName,
		MotherName:            p.MotherName,
		Address:               p.Address,
		City:                  p.City,
		Province:              p.Province,
		PostalCode:            p.PostalCode,
		Occupation:            p.Occupation,
		SpecificDisease:       p.SpecificDisease,
		Illness:               p.Illness,
		SpecialNeeds:          p.SpecialNeeds,
		Wheelchair:            p.Wheelchair,
		NIKNumber:             p.NIKNumber,
		PassportNumber:        p.PassportNumber,
		DateOfIssue:           looseDate(p.DateOfIssue),
		ExpiryDate:            looseDate(p.ExpiryDate),
		PlaceOfIssue:          p.PlaceOfIssue,
		PhoneNumber:           p.PhoneNumber,
		WhatsappNumber:        p.WhatsappNumber,
		Email:                 p.Email,
		HasPerformedUmrah:     p.HasPerformedUmrah,
		HasPerformedHajj:      p.HasPerformedHajj,
		EmergencyContactName:  p.EmergencyContactName,
		Relationship:          domain.Relationship(p.Relationship),
		EmergencyContactPhone: p.EmergencyContactPhone,
		MaritalStatus:         domain.MaritalStatus(p.MaritalStatus),
		PackageName:           p.UmrahPackage,
		PaymentMethod:         domain.PaymentMethod(p.PaymentMethod),
		TermsOfService:        true,
	}
}

// looseDate parses YYYY-MM-DD and tolerates absent or malformed values; the
// PDF renders "-" for a zero date.
func looseDate(value string) time.Time {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

type legacyBookingData struct {
	BookingID      string `json:"bookingId"`
	CustomerName   string `json:"customerName"`
	Email          string `json:"email"`
	WhatsappNumber string `json:"whatsappNumber"`
	PhoneNumber    string `json:"phoneNumber"`
	PackageName    string `json:"packageName"`
	PaymentMethod  string `json:"paymentMethod"`
}

func (l *legacyBookingData) toBooking() *domain.Booking {
	payment := domain.PaymentSixtyPct
	if l.PaymentMethod == "Lunas" || l.PaymentMethod == "lunas" {
		payment = domain.PaymentFull
	}
	return &domain.Booking{
		BookingID:      l.BookingID,
		Status:         domain.StatusPendingReview,
		Name:           l.CustomerName,
		RegisterDate:   time.Now(),
		Gender:         domain.GenderMale,
		PhoneNumber:    l.PhoneNumber,
		WhatsappNumber: l.WhatsappNumber,
		Email:          l.Email,
		Relationship:   domain.RelationParents,
		MaritalStatus:  domain.MaritalSingle,
		PackageName:    l.PackageName,
		PaymentMethod:  payment,
		TermsOfService: true,
	}
}

func (h *SendFileHandler) sendFile(c *gin.Context) {
	phone := c.PostForm("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	if !h.client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WhatsApp API configuration missing"})
		return
	}

	caption := c.PostForm("caption")
	if caption == "" {
		caption = defaultCaption
	}
	isForwarded := c.PostForm("is_forwarded") == "true"
	duration, _ := strconv.Atoi(c.PostForm("duration"))

	var b *domain.Booking
	var bookingID string

	if raw := c.PostForm("umrahFormData"); raw != "" {
		var payload umrahFormPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid umrahFormData format"})
			return
		}
		bookingID = c.PostForm("bookingId")
		if bookingID == "" {
			bookingID = domain.GenerateBookingID()
		}
		b = payload.toBooking(bookingID)
	} else if raw := c.PostForm("bookingData"); raw != "" {
		var legacy legacyBookingData
		if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookingData format"})
			return
		}
		if legacy.BookingID == "" {
			legacy.BookingID = domain.GenerateBookingID()
		}
		bookingID = legacy.BookingID
		b = legacy.toBooking()
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either umrahFormData or bookingData is required"})
		return
	}

	buf, err := pdf.Confirmation(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("render pdf: %v", err)})
		return
	}

	fileName := fmt.Sprintf("confirmation-%s-%s.pdf", bookingID, uuid.NewString())
	if err := h.client.SendFile(c.Request.Context(), phone, caption, fileName, buf, isForwarded, duration); err != nil {
		if errors.Is(err, whatsapp.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "WhatsApp API configuration missing"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send WhatsApp message", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "PDF confirmation sent successfully",
		"bookingId": bookingID,
		"phone":     phone,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// sampleBooking feeds the test-pdf endpoint a fully populated record.
var sampleBooking = domain.Booking{
	BookingID:             "RT-TEST",
	Status:                domain.StatusPendingReview,
	SubmissionDate:        time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
	Name:                  "Ahmad Abdullah",
	RegisterDate:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	Gender:                domain.GenderMale,
	PlaceOfBirth:          "Jakarta",
	BirthDate:             time.Date(1985, 3, 20, 0, 0, 0, 0, time.UTC),
	FatherName:            "Abdullah Rahman",
	MotherName:            "Siti Aminah",
	Address:               "Jl. Merdeka No. 123",
	City:                  "Jakarta",
	Province:              "DKI Jakarta",
	PostalCode:            "12345",
	Occupation:            "Software Engineer",
	NIKNumber:             "3171012003850001",
	PassportNumber:        "A1234567",
	DateOfIssue:           time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	ExpiryDate:            time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC),
	PlaceOfIssue:          "Jakarta",
	PhoneNumber:           "+6281234567890",
	WhatsappNumber:        "+6281234567890",
	Email:                 "ahmad.abdullah@email.com",
	EmergencyContactName:  "Fatimah Abdullah",
	Relationship:          domain.RelationSpouse,
	EmergencyContactPhone: "+6281987654321",
	MaritalStatus:         domain.MaritalMarried,
	PackageName:           "Paket Umrah Premium 14 Hari",
	PaymentMethod:         domain.PaymentFull,
	TermsOfService:        true,
}

func (h *SendFileHandler) testPDF(c *gin.Context) {
	buf, err := pdf.Confirmation(&sampleBooking)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="confirmation-%s.pdf"`, sampleBooking.BookingID))
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/pdf", buf)
}
