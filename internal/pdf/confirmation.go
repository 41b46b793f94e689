// Package pdf renders booking confirmation documents. The layout is fixed
// and the builder carries no state, so identical bookings always produce
// identical documents and calls are safe to run concurrently.
package pdf

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rehlatours/umrahbooking/internal/domain"
)

const (
	labelWidth = 55
	rowHeight  = 7
)

// Confirmation renders the booking into an A4 confirmation PDF and returns
// the raw document bytes.
func Confirmation(b *domain.Booking) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	// Pin the metadata clock so identical bookings produce identical bytes.
	doc.SetCreationDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.SetModificationDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.SetTitle("Konfirmasi Pendaftaran Umroh", true)
	doc.AddPage()

	doc.SetFont("Arial", "B", 18)
	doc.CellFormat(0, 12, "Konfirmasi Pendaftaran Umroh", "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 11)
	doc.CellFormat(0, 7, "Rehla Tours", "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "ID Pemesanan: "+b.BookingID, "", 1, "C", false, 0, "")
	doc.Ln(4)

	section(doc, "Informasi Pribadi")
	row(doc, "Nama", b.Name)
	row(doc, "Jenis Kelamin", b.Gender.Label())
	row(doc, "Tempat Lahir", b.PlaceOfBirth)
	row(doc, "Tanggal Lahir", formatDate(b.BirthDate))
	row(doc, "Nama Ayah", b.FatherName)
	row(doc, "Nama Ibu", b.MotherName)
	row(doc, "Status Pernikahan", b.MaritalStatus.Label())
	row(doc, "Pekerjaan", b.Occupation)

	section(doc, "Kontak")
	row(doc, "Nomor Telepon", b.PhoneNumber)
	row(doc, "Nomor WhatsApp", b.WhatsappNumber)
	row(doc, "Email", b.Email)

	section(doc, "Alamat")
	row(doc, "Alamat Lengkap", b.Address)
	row(doc, "Kota", b.City)
	row(doc, "Provinsi", b.Province)
	row(doc, "Kode Pos", b.PostalCode)

	section(doc, "Dokumen")
	row(doc, "NIK", b.NIKNumber)
	row(doc, "Nomor Paspor", b.PassportNumber)
	row(doc, "Tanggal Terbit Paspor", formatDate(b.DateOfIssue))
	row(doc, "Tanggal Berakhir Paspor", formatDate(b.ExpiryDate))
	row(doc, "Tempat Terbit Paspor", b.PlaceOfIssue)

	section(doc, "Kesehatan")
	row(doc, "Memiliki Penyakit Khusus", boolLabel(b.SpecificDisease))
	if b.SpecificDisease {
		row(doc, "Detail Penyakit", b.Illness)
	}
	row(doc, "Penanganan Khusus", boolLabel(b.SpecialNeeds))
	row(doc, "Kursi Roda", boolLabel(b.Wheelchair))
	row(doc, "Sudah Pernah Umroh", boolLabel(b.HasPerformedUmrah))
	row(doc, "Sudah Pernah Haji", boolLabel(b.HasPerformedHajj))

	section(doc, "Kontak Darurat")
	row(doc, "Nama", b.EmergencyContactName)
	row(doc, "Hubungan", b.Relationship.Label())
	row(doc, "Nomor Telepon", b.EmergencyContactPhone)

	section(doc, "Paket & Pembayaran")
	row(doc, "Paket Umroh", b.PackageName)
	row(doc, "Metode Pembayaran", b.PaymentMethod.Label())
	row(doc, "Tanggal Pendaftaran", formatDate(b.RegisterDate))
	row(doc, "Tanggal Submission", formatDate(b.SubmissionDate))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(doc *fpdf.Fpdf, title string) {
	doc.Ln(3)
	doc.SetFont("Arial", "B", 12)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	doc.SetFont("Arial", "", 10)
}

func row(doc *fpdf.Fpdf, label, value string) {
	doc.CellFormat(labelWidth, rowHeight, label, "", 0, "L", false, 0, "")
	doc.MultiCell(0, rowHeight, value, "", "L", false)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

func boolLabel(v bool) string {
	if v {
		return "Ya"
	}
	return "Tidak"
}
