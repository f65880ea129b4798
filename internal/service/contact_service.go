package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sadiclarsan/web/internal/db"
	"gorm.io/gorm"
)

// ErrContactInvalid signals that the submitted form failed validation;
// the field messages travel alongside in ContactInput.Validate's map.
var ErrContactInvalid = errors.New("contact form is invalid")

// ContactInput carries a public contact-form submission.
type ContactInput struct {
	FullName string
	Email    string
	Phone    string
	Subject  string
	Message  string
}

// Validate returns a field-to-message map; an empty map means the input
// is acceptable.
func (in ContactInput) Validate() map[string]string {
	problems := map[string]string{}

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		problems["fullName"] = "Ad Soyad zorunludur"
	} else if len([]rune(fullName)) > 100 {
		problems["fullName"] = "Ad Soyad en fazla 100 karakter olabilir"
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		problems["email"] = "E-posta zorunludur"
	} else if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		problems["email"] = "Geçerli bir e-posta adresi giriniz"
	}

	if len([]rune(strings.TrimSpace(in.Phone))) > 15 {
		problems["phone"] = "Telefon en fazla 15 karakter olabilir"
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		problems["subject"] = "Konu zorunludur"
	} else if len([]rune(subject)) > 200 {
		problems["subject"] = "Konu en fazla 200 karakter olabilir"
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		problems["message"] = "Mesaj zorunludur"
	} else if len([]rune(message)) > 1000 {
		problems["message"] = "Mesaj en fazla 1000 karakter olabilir"
	}

	return problems
}

// ContactService persists and manages contact messages.
type ContactService struct {
	db *gorm.DB
}

// NewContactService creates a ContactService instance.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// Submit validates and stores a contact message.
func (s *ContactService) Submit(input ContactInput) (*db.Contact, error) {
	if problems := input.Validate(); len(problems) > 0 {
		return nil, ErrContactInvalid
	}

	contact := db.Contact{
		FullName:    strings.TrimSpace(input.FullName),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Subject:     strings.TrimSpace(input.Subject),
		Message:     strings.TrimSpace(input.Message),
		CreatedDate: time.Now(),
	}
	if err := s.db.Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListByDateDesc returns all messages, newest first.
func (s *ContactService) ListByDateDesc() ([]db.Contact, error) {
	var messages []db.Contact
	if err := s.db.Order("created_date desc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkAsRead flags a message as read. A missing row is a silent no-op.
func (s *ContactService) MarkAsRead(id uint) error {
	return s.db.Model(&db.Contact{}).Where("id = ?", id).Update("is_read", true).Error
}
