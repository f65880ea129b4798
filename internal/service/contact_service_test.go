package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sadiclarsan/web/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupContactServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:contact-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func validContact() ContactInput {
	return ContactInput{
		FullName: "Ayşe Yılmaz",
		Email:    "ayse@example.com",
		Phone:    "05551234567",
		Subject:  "Teklif talebi",
		Message:  "Endüstriyel mutfak havalandırması için teklif rica ederim.",
	}
}

func TestContactInputValidate(t *testing.T) {
	if problems := validContact().Validate(); len(problems) != 0 {
		t.Fatalf("expected valid input, got %v", problems)
	}

	empty := ContactInput{}
	problems := empty.Validate()
	for _, field := range []string{"fullName", "email", "subject", "message"} {
		if problems[field] == "" {
			t.Fatalf("expected a message for %s, got %v", field, problems)
		}
	}

	bad := validContact()
	bad.Email = "not-an-email"
	if msg := bad.Validate()["email"]; msg == "" {
		t.Fatal("expected email format message")
	}

	long := validContact()
	long.Message = strings.Repeat("a", 1001)
	if msg := long.Validate()["message"]; msg == "" {
		t.Fatal("expected message length error")
	}
}

func TestContactSubmitAndList(t *testing.T) {
	gdb := setupContactServiceTestDB(t)
	svc := NewContactService(gdb)

	if _, err := svc.Submit(ContactInput{}); !errors.Is(err, ErrContactInvalid) {
		t.Fatalf("expected ErrContactInvalid, got %v", err)
	}
	var count int64
	gdb.Model(&db.Contact{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid submit must not persist, found %d rows", count)
	}

	first, err := svc.Submit(validContact())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if first.IsRead {
		t.Fatal("new message must start unread")
	}

	later := validContact()
	later.Subject = "İkinci konu"
	if _, err := svc.Submit(later); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	// Separate the timestamps for a stable order.
	if err := gdb.Model(&db.Contact{}).Where("subject = ?", "İkinci konu").
		Update("created_date", time.Now().Add(time.Minute)).Error; err != nil {
		t.Fatalf("adjust timestamp: %v", err)
	}

	messages, err := svc.ListByDateDesc()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Subject != "İkinci konu" {
		t.Fatalf("expected newest first, got %q", messages[0].Subject)
	}
}

func TestMarkAsRead(t *testing.T) {
	gdb := setupContactServiceTestDB(t)
	svc := NewContactService(gdb)

	msg, err := svc.Submit(validContact())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.MarkAsRead(msg.ID); err != nil {
		t.Fatalf("mark as read: %v", err)
	}
	var reloaded db.Contact
	if err := gdb.First(&reloaded, msg.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsRead {
		t.Fatal("expected message to be read")
	}

	// Missing rows are a silent no-op.
	if err := svc.MarkAsRead(999); err != nil {
		t.Fatalf("mark missing row: %v", err)
	}
}
