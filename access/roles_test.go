package access

import (
	"testing"

	"yearbook/db"
	"yearbook/models"
)

func TestResolveRole(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	globalAdmin := createGlobalAdmin(t, "platform")
	albumAdmin := createTestUser(t, "helper")
	member := createTestUser(t, "friend")
	student := createTestUser(t, "student")
	stranger := createTestUser(t, "stranger")

	album := createTestAlbum(t, owner, 0)
	class := createTestClass(t, album, "8A")
	addMember(t, album, albumAdmin, models.AlbumRoleAdmin)
	addMember(t, album, member, models.AlbumRoleMember)
	accessRow := models.AlbumClassAccess{
		AlbumID: album.ID, UserID: &student.ID, ClassID: class.ID,
		StudentName: "Student", Status: models.AccessStatusApproved,
	}
	if err := db.Instance.Create(&accessRow).Error; err != nil {
		t.Fatalf("creating access row: %v", err)
	}

	tests := []struct {
		name      string
		user      *models.User
		want      Role
		canManage bool
		canView   bool
	}{
		{"owner", owner, Role{IsOwner: true}, true, true},
		{"global admin", globalAdmin, Role{IsGlobalAdmin: true}, true, true},
		{"album admin", albumAdmin, Role{IsAlbumAdmin: true, IsMember: true}, true, true},
		{"member", member, Role{IsMember: true}, false, true},
		{"approved student", student, Role{IsMember: true}, false, true},
		{"stranger", stranger, Role{}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRole(tt.user, album)
			if err != nil {
				t.Fatalf("ResolveRole() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveRole() = %+v, want %+v", got, tt.want)
			}
			if got.CanManage() != tt.canManage {
				t.Errorf("CanManage() = %v, want %v", got.CanManage(), tt.canManage)
			}
			if got.CanView() != tt.canView {
				t.Errorf("CanView() = %v, want %v", got.CanView(), tt.canView)
			}
		})
	}
}

func TestRequireViewMasksExistingAlbum(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	stranger := createTestUser(t, "stranger")
	album := createTestAlbum(t, owner, 0)

	// A non-member probing a real album id must get the same answer as a
	// missing album
	_, _, err := RequireView(stranger, album.ID)
	assertKind(t, err, KindNotFound)

	_, _, err = RequireView(stranger, album.ID+1000)
	assertKind(t, err, KindNotFound)

	if _, _, err = RequireView(owner, album.ID); err != nil {
		t.Errorf("owner should view their album: %v", err)
	}
}

func TestRequireManageForbiddenForViewers(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	member := createTestUser(t, "friend")
	album := createTestAlbum(t, owner, 0)
	addMember(t, album, member, models.AlbumRoleMember)

	_, _, err := RequireManage(member, album.ID)
	assertKind(t, err, KindForbidden)
}

func TestRequireViewUnauthenticated(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	album := createTestAlbum(t, owner, 0)

	_, _, err := RequireView(nil, album.ID)
	assertKind(t, err, KindUnauthenticated)

	_, _, err = RequireView(&models.User{}, album.ID)
	assertKind(t, err, KindUnauthenticated)
}
