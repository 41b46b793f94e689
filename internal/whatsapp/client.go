package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rehlatours/umrahbooking/internal/domain"
)

// DefaultDuration is the message retention passed to the API when the caller
// does not override it.
const DefaultDuration = 3600

var ErrNotConfigured = errors.New("whatsapp api configuration missing")

// Config carries the transport endpoint and basic-auth credentials. It is
// injected explicitly so tests can point the client at a fake server.
type Config struct {
	Endpoint string
	Username string
	Password string
}

func (c Config) complete() bool {
	return c.Endpoint != "" && c.Username != "" && c.Password != ""
}

type Message struct {
	Phone          string `json:"phone"`
	Message        string `json:"message"`
	ReplyMessageID string `json:"reply_message_id,omitempty"`
	IsForwarded    bool   `json:"is_forwarded"`
	Duration       int    `json:"duration"`
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Configured() bool { return c.cfg.complete() }

// SendMessage posts a text message to {endpoint}/send/message. A zero
// Duration is replaced with DefaultDuration.
func (c *Client) SendMessage(ctx context.Context, msg Message) error {
	if !c.cfg.complete() {
		return ErrNotConfigured
	}
	if msg.Duration == 0 {
		msg.Duration = DefaultDuration
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/send/message", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	return c.do(req)
}

// SendFile posts a document to {endpoint}/send/file as a multipart form with
// phone, caption, file, is_forwarded and duration parts.
func (c *Client) SendFile(ctx context.Context, phone, caption, fileName string, file []byte, isForwarded bool, duration int) error {
	if !c.cfg.complete() {
		return ErrNotConfigured
	}
	if duration == 0 {
		duration = DefaultDuration
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	_ = form.WriteField("phone", phone)
	_ = form.WriteField("caption", caption)
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := part.Write(file); err != nil {
		return err
	}
	_ = form.WriteField("is_forwarded", strconv.FormatBool(isForwarded))
	_ = form.WriteField("duration", strconv.Itoa(duration))
	if err := form.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/send/file", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// NormalizePhone converts a phone number to the bare international digit form
// the API expects: 0xxxx -> 62xxxx, 8xxxx -> 628xxxx, 62xxxx unchanged.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()

	switch {
	case strings.HasPrefix(cleaned, "0"):
		return "62" + cleaned[1:]
	case strings.HasPrefix(cleaned, "62"):
		return cleaned
	case strings.HasPrefix(cleaned, "8"):
		return "62" + cleaned
	}
	return cleaned
}

// ConfirmationMessage renders the registration confirmation for a booking.
// op is "create" or "update" and switches the wording, not the layout.
func ConfirmationMessage(b *domain.Booking, op string) string {
	operationText := "Terima kasih telah mendaftar"
	actionText := "Pendaftaran Anda"
	if op == "update" {
		operationText = "Update pendaftaran Anda"
		actionText = "Status pendaftaran Anda"
	}
	statusText := b.Status.Phrase()
	registerDate := b.RegisterDate
	if registerDate.IsZero() {
		registerDate = b.SubmissionDate
	}

	return fmt.Sprintf(`*Assalamualaikum %s*

%s Umroh bersama Rehla Tours.

*Detail Pendaftaran:*
📋 ID Pemesanan: %s
📅 Tanggal Pendaftaran: %s
👤 Nama: %s
📱 WhatsApp: %s
📧 Email: %s
🏷️ Status: %s

%s %s. Kami akan menghubungi Anda kembali untuk informasi selanjutnya.

*Rehla Tours*
📞 0812-3456-7890
🌐 www.rehlatours.com`,
		b.Name,
		operationText,
		b.BookingID,
		registerDate.Format("02/01/2006"),
		b.Name,
		b.ContactPhone(),
		b.Email,
		statusText,
		actionText,
		statusText,
	)
}
