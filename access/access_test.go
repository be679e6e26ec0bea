package access

import (
	"errors"
	"fmt"
	"testing"

	"yearbook/db"
	"yearbook/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrapping test db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	db.Instance = gdb
	models.Init()
}

var testUserSeq int

func createTestUser(t *testing.T, name string) *models.User {
	t.Helper()
	testUserSeq++
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@example.com", name, testUserSeq),
		Password: "irrelevant",
	}
	if err := db.Instance.Create(&user).Error; err != nil {
		t.Fatalf("creating user %s: %v", name, err)
	}
	return &user
}

func createGlobalAdmin(t *testing.T, name string) *models.User {
	t.Helper()
	user := createTestUser(t, name)
	grant := models.Grant{UserID: user.ID, GrantorID: user.ID, Permission: models.PermissionAdmin}
	if err := db.Instance.Create(&grant).Error; err != nil {
		t.Fatalf("granting admin to %s: %v", name, err)
	}
	user.Grants = []models.Grant{grant}
	return user
}

func createTestAlbum(t *testing.T, owner *models.User, capacity int) *models.Album {
	t.Helper()
	album := models.Album{
		Name:            "Class of 2026",
		OwnerID:         owner.ID,
		Status:          models.AlbumStatusApproved,
		StudentCapacity: capacity,
	}
	if err := db.Instance.Create(&album).Error; err != nil {
		t.Fatalf("creating album: %v", err)
	}
	return &album
}

func createTestClass(t *testing.T, album *models.Album, name string) *models.AlbumClass {
	t.Helper()
	class := models.AlbumClass{AlbumID: album.ID, Name: name}
	if err := db.Instance.Create(&class).Error; err != nil {
		t.Fatalf("creating class %s: %v", name, err)
	}
	return &class
}

func addMember(t *testing.T, album *models.Album, user *models.User, role string) {
	t.Helper()
	member := models.AlbumMember{AlbumID: album.ID, UserID: user.ID, Role: role}
	if err := db.Instance.Create(&member).Error; err != nil {
		t.Fatalf("adding member: %v", err)
	}
}

func assertKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *access.Error, got %T: %v", err, err)
	}
	if ae.Kind != kind {
		t.Errorf("expected error kind %d, got %d (%v)", kind, ae.Kind, err)
	}
}

func countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Instance.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	return count
}
