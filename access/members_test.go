package access

import (
	"testing"

	"yearbook/db"
	"yearbook/models"
)

func TestUpsertMemberOwnerOnly(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	helper := createTestUser(t, "helper")
	target := createTestUser(t, "target")
	album := createTestAlbum(t, owner, 0)
	addMember(t, album, helper, models.AlbumRoleAdmin)

	// Album admins manage students, not the team
	_, err := UpsertMember(helper, album.ID, target.ID, models.AlbumRoleMember)
	assertKind(t, err, KindForbidden)

	member, err := UpsertMember(owner, album.ID, target.ID, models.AlbumRoleMember)
	if err != nil {
		t.Fatalf("owner upsert: %v", err)
	}
	if member.Role != models.AlbumRoleMember {
		t.Errorf("expected member role, got %s", member.Role)
	}
	// Upsert changes the role in place
	member, err = UpsertMember(owner, album.ID, target.ID, models.AlbumRoleAdmin)
	if err != nil {
		t.Fatalf("owner upsert to admin: %v", err)
	}
	if member.Role != models.AlbumRoleAdmin {
		t.Errorf("expected admin role, got %s", member.Role)
	}
	if got := countRows(t, &models.AlbumMember{}, "album_id = ? AND user_id = ?", album.ID, target.ID); got != 1 {
		t.Errorf("expected 1 membership row, got %d", got)
	}

	_, err = UpsertMember(owner, album.ID, target.ID, "superuser")
	assertKind(t, err, KindInvalidOperation)

	_, err = UpsertMember(owner, album.ID, owner.ID, models.AlbumRoleAdmin)
	assertKind(t, err, KindInvalidOperation)

	_, err = UpsertMember(owner, album.ID, target.ID+1000, models.AlbumRoleMember)
	assertKind(t, err, KindNotFound)
}

func TestRemoveMemberGuards(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	helper := createTestUser(t, "helper")
	other := createTestUser(t, "other")
	album := createTestAlbum(t, owner, 0)
	addMember(t, album, helper, models.AlbumRoleAdmin)
	addMember(t, album, other, models.AlbumRoleMember)

	// The owner can never be removed, by anyone
	err := RemoveMember(helper, album.ID, owner.ID)
	assertKind(t, err, KindInvalidOperation)
	err = RemoveMember(owner, album.ID, owner.ID)
	assertKind(t, err, KindInvalidOperation)

	// Managers may not remove themselves
	err = RemoveMember(helper, album.ID, helper.ID)
	assertKind(t, err, KindInvalidOperation)

	if err := RemoveMember(helper, album.ID, other.ID); err != nil {
		t.Fatalf("admin removes member: %v", err)
	}
	err = RemoveMember(helper, album.ID, other.ID)
	assertKind(t, err, KindNotFound)
}

func TestRosterPrecedence(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	helper := createTestUser(t, "helper")
	friend := createTestUser(t, "friend")
	student := createTestUser(t, "student")
	album := createTestAlbum(t, owner, 0)
	class := createTestClass(t, album, "8A")
	addMember(t, album, helper, models.AlbumRoleAdmin)
	addMember(t, album, friend, models.AlbumRoleMember)

	rows := []models.AlbumClassAccess{
		{AlbumID: album.ID, UserID: &student.ID, ClassID: class.ID, StudentName: "Student", Status: models.AccessStatusApproved},
		// The helper is also registered as a student; admin must win
		{AlbumID: album.ID, UserID: &helper.ID, ClassID: class.ID, StudentName: "Helper", Status: models.AccessStatusApproved},
		// No account yet
		{AlbumID: album.ID, ClassID: class.ID, StudentName: "Ghost", Email: "ghost@example.com", Status: models.AccessStatusApproved},
		// Rejected rows stay off the roster
		{AlbumID: album.ID, ClassID: class.ID, StudentName: "Rejected", Status: models.AccessStatusRejected},
	}
	for i := range rows {
		if err := db.Instance.Create(&rows[i]).Error; err != nil {
			t.Fatalf("creating access row %d: %v", i, err)
		}
	}

	roster, err := Roster(owner, album.ID)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	byName := map[string]string{}
	for _, entry := range roster {
		byName[entry.Name] = entry.Role
	}
	want := map[string]string{
		"owner":   RosterRoleOwner,
		"helper":  RosterRoleAdmin,
		"friend":  RosterRoleMember,
		"Student": RosterRoleStudent,
		"Ghost":   RosterRoleNone,
	}
	if len(roster) != len(want) {
		t.Errorf("expected %d roster entries, got %d (%+v)", len(want), len(roster), roster)
	}
	for name, role := range want {
		if byName[name] != role {
			t.Errorf("expected %s to have role %s, got %s", name, role, byName[name])
		}
	}

	// Students never see the roster
	_, err = Roster(student, album.ID)
	assertKind(t, err, KindForbidden)
}
