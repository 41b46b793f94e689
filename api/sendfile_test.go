package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rehlatours/umrahbooking/internal/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSendFileRouter(client *whatsapp.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewSendFileHandler(client).Register(router.Group("/api"))
	return router
}

func postForm(t *testing.T, router *gin.Engine, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSendFile_PhoneRequired(t *testing.T) {
	router := setupSendFileRouter(whatsapp.NewClient(whatsapp.Config{}))

	rec := postForm(t, router, "/api/send-file", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Phone number is required")
}

func TestSendFile_NotConfigured(t *testing.T) {
	router := setupSendFileRouter(whatsapp.NewClient(whatsapp.Config{}))

	rec := postForm(t, router, "/api/send-file", map[string]string{"phone": "081234567890"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "WhatsApp API configuration missing")
}

func TestSendFile_PayloadRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("transport must not be reached without a payload")
	}))
	defer server.Close()

	client := whatsapp.NewClient(whatsapp.Config{Endpoint: server.URL, Username: "user", Password: "pass"})
	rec := postForm(t, setupSendFileRouter(client), "/api/send-file", map[string]string{
		"phone": "081234567890",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Either umrahFormData or bookingData is required")
}

func TestSendFile_LegacyBookingData(t *testing.T) {
	var gotPath string
	var gotFile []byte
	var gotFileName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFileName = header.Filename
		gotFile, _ = io.ReadAll(file)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := whatsapp.NewClient(whatsapp.Config{Endpoint: server.URL, Username: "user", Password: "pass"})
	bookingData, _ := json.Marshal(map[string]string{
		"bookingId":      "RT-A1B2",
		"customerName":   "Ahmad Abdullah",
		"whatsappNumber": "081234567890",
		"packageName":    "Paket Umrah Premium 14 Hari",
		"paymentMethod":  "Lunas",
	})
	rec := postForm(t, setupSendFileRouter(client), "/api/send-file", map[string]string{
		"phone":       "081234567890",
		"bookingData": string(bookingData),
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/send/file", gotPath)
	assert.Regexp(t, `^confirmation-RT-A1B2-[0-9a-f-]{36}\.pdf$`, gotFileName)
	assert.True(t, bytes.HasPrefix(gotFile, []byte("%PDF")))

	var resp struct {
		Success   bool   `json:"success"`
		BookingID string `json:"bookingId"`
		Phone     string `json:"phone"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "RT-A1B2", resp.BookingID)
	assert.Equal(t, "081234567890", resp.Phone)
}

func TestSendFile_UmrahFormDataGeneratesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := whatsapp.NewClient(whatsapp.Config{Endpoint: server.URL, Username: "user", Password: "pass"})
	formData, _ := json.Marshal(map[string]interface{}{
		"name":            "Ahmad Abdullah",
		"birth_date":      "1985-03-20",
		"whatsapp_number": "081234567890",
		"umrah_package":   "Paket Umrah Premium 14 Hari",
		"payment_method":  "lunas",
	})
	rec := postForm(t, setupSendFileRouter(client), "/api/send-file", map[string]string{
		"phone":         "081234567890",
		"umrahFormData": string(formData),
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		BookingID string `json:"bookingId"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Regexp(t, `^RT-[A-Z0-9]{4}$`, resp.BookingID)
}

func TestSendFile_InvalidFormDataJSON(t *testing.T) {
	client := whatsapp.NewClient(whatsapp.Config{Endpoint: "http://localhost:1", Username: "user", Password: "pass"})
	rec := postForm(t, setupSendFileRouter(client), "/api/send-file", map[string]string{
		"phone":         "081234567890",
		"umrahFormData": "{not json",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid umrahFormData format")
}

func TestSendFile_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session expired", http.StatusBadRequest)
	}))
	defer server.Close()

	client := whatsapp.NewClient(whatsapp.Config{Endpoint: server.URL, Username: "user", Password: "pass"})
	bookingData, _ := json.Marshal(map[string]string{"customerName": "Ahmad"})
	rec := postForm(t, setupSendFileRouter(client), "/api/send-file", map[string]string{
		"phone":       "081234567890",
		"bookingData": string(bookingData),
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to send WhatsApp message")
}

func TestTestPDF(t *testing.T) {
	router := setupSendFileRouter(whatsapp.NewClient(whatsapp.Config{}))

	req := httptest.NewRequest(http.MethodGet, "/api/test-pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "confirmation-RT-TEST.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}
