package access

import (
	"testing"
	"time"

	"yearbook/db"
	"yearbook/models"
)

func TestIssueInvitePermissions(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	helper := createTestUser(t, "helper")
	member := createTestUser(t, "friend")
	album := createTestAlbum(t, owner, 0)
	addMember(t, album, helper, models.AlbumRoleAdmin)
	addMember(t, album, member, models.AlbumRoleMember)

	tests := []struct {
		name     string
		issuer   *models.User
		role     string
		wantKind Kind
		wantErr  bool
	}{
		{"owner issues admin", owner, models.AlbumRoleAdmin, 0, false},
		{"owner issues member", owner, models.AlbumRoleMember, 0, false},
		{"album admin issues member", helper, models.AlbumRoleMember, 0, false},
		{"album admin issues admin", helper, models.AlbumRoleAdmin, KindForbidden, true},
		{"member issues member", member, models.AlbumRoleMember, KindForbidden, true},
		{"owner issues bogus role", owner, "superuser", KindInvalidOperation, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invite, err := IssueInvite(tt.issuer, album.ID, tt.role)
			if tt.wantErr {
				assertKind(t, err, tt.wantKind)
				return
			}
			if err != nil {
				t.Fatalf("IssueInvite() error: %v", err)
			}
			if invite.Token == "" {
				t.Error("expected a token")
			}
			if invite.ExpiresAt <= time.Now().Unix() {
				t.Error("expected a future expiry")
			}
		})
	}
}

func TestRedeemInviteGrantsMembership(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	joiner := createTestUser(t, "joiner")
	album := createTestAlbum(t, owner, 0)

	invite, err := IssueInvite(owner, album.ID, models.AlbumRoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	albumID, err := RedeemInvite(joiner, invite.Token)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if albumID != album.ID {
		t.Errorf("expected album %d, got %d", album.ID, albumID)
	}
	member := models.AlbumMember{}
	if err := db.Instance.First(&member, "album_id = ? AND user_id = ?", album.ID, joiner.ID).Error; err != nil {
		t.Fatalf("loading membership: %v", err)
	}
	if member.Role != models.AlbumRoleAdmin {
		t.Errorf("expected admin role, got %s", member.Role)
	}
}

func TestRedeemInviteIdempotent(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	joiner := createTestUser(t, "joiner")
	album := createTestAlbum(t, owner, 0)

	invite, _ := IssueInvite(owner, album.ID, models.AlbumRoleMember)
	if _, err := RedeemInvite(joiner, invite.Token); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if _, err := RedeemInvite(joiner, invite.Token); err != nil {
		t.Fatalf("second redeem: %v", err)
	}
	if got := countRows(t, &models.AlbumMember{}, "album_id = ? AND user_id = ?", album.ID, joiner.ID); got != 1 {
		t.Errorf("expected 1 membership row, got %d", got)
	}
}

func TestRedeemInviteUpgradeOnly(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	joiner := createTestUser(t, "joiner")
	album := createTestAlbum(t, owner, 0)

	memberInvite, _ := IssueInvite(owner, album.ID, models.AlbumRoleMember)
	adminInvite, _ := IssueInvite(owner, album.ID, models.AlbumRoleAdmin)

	if _, err := RedeemInvite(joiner, memberInvite.Token); err != nil {
		t.Fatalf("redeem member: %v", err)
	}
	// member -> admin: upgrade in place
	if _, err := RedeemInvite(joiner, adminInvite.Token); err != nil {
		t.Fatalf("redeem admin: %v", err)
	}
	member := models.AlbumMember{}
	db.Instance.First(&member, "album_id = ? AND user_id = ?", album.ID, joiner.ID)
	if member.Role != models.AlbumRoleAdmin {
		t.Fatalf("expected upgrade to admin, got %s", member.Role)
	}
	// admin -> member invite: never a downgrade
	if _, err := RedeemInvite(joiner, memberInvite.Token); err != nil {
		t.Fatalf("redeem member again: %v", err)
	}
	db.Instance.First(&member, "album_id = ? AND user_id = ?", album.ID, joiner.ID)
	if member.Role != models.AlbumRoleAdmin {
		t.Errorf("role was downgraded to %s", member.Role)
	}
}

func TestRedeemInviteExpiredAndUnknown(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	joiner := createTestUser(t, "joiner")
	album := createTestAlbum(t, owner, 0)

	_, err := RedeemInvite(joiner, "no-such-token")
	assertKind(t, err, KindNotFound)

	invite, _ := IssueInvite(owner, album.ID, models.AlbumRoleMember)
	invite.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	if err := db.Instance.Save(invite).Error; err != nil {
		t.Fatalf("expiring invite: %v", err)
	}
	_, err = RedeemInvite(joiner, invite.Token)
	assertKind(t, err, KindGone)
	if got := countRows(t, &models.AlbumMember{}, "album_id = ?", album.ID); got != 0 {
		t.Errorf("expired invite must not grant membership, got %d rows", got)
	}
}

func TestRevokeInvite(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	helper := createTestUser(t, "helper")
	joiner := createTestUser(t, "joiner")
	album := createTestAlbum(t, owner, 0)
	addMember(t, album, helper, models.AlbumRoleAdmin)

	adminInvite, _ := IssueInvite(owner, album.ID, models.AlbumRoleAdmin)

	// Revoking an admin invite mirrors issuing one
	err := RevokeInvite(helper, adminInvite.ID)
	assertKind(t, err, KindForbidden)

	if err := RevokeInvite(owner, adminInvite.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	// Idempotent
	if err := RevokeInvite(owner, adminInvite.ID); err != nil {
		t.Errorf("second revoke: %v", err)
	}
	_, err = RedeemInvite(joiner, adminInvite.Token)
	assertKind(t, err, KindGone)

	memberInvite, _ := IssueInvite(helper, album.ID, models.AlbumRoleMember)
	if err := RevokeInvite(helper, memberInvite.ID); err != nil {
		t.Errorf("album admin revoking member invite: %v", err)
	}
}

func TestRedeemByOwnerIsNoOp(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")
	album := createTestAlbum(t, owner, 0)

	invite, _ := IssueInvite(owner, album.ID, models.AlbumRoleMember)
	albumID, err := RedeemInvite(owner, invite.Token)
	if err != nil || albumID != album.ID {
		t.Fatalf("owner redeem: %v (album %d)", err, albumID)
	}
	if got := countRows(t, &models.AlbumMember{}, "album_id = ?", album.ID); got != 0 {
		t.Errorf("owner must not get a membership row, got %d", got)
	}
}
