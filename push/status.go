package push

import "yearbook/models"

// AccessStatusChanged announces a registration decision to the student.
func AccessStatusChanged(album *models.Album, email, status, reason string) {
	notification := Notification{
		Type:    NotificationTypeAccessStatus,
		AlbumID: album.ID,
		Email:   email,
		Title:   album.Name,
		Body:    "Your registration is now: " + status,
		Data:    map[string]string{"status": status},
	}
	if reason != "" {
		notification.Data["reason"] = reason
	}
	_ = notification.Send()
}

// AlbumStatusChanged announces a platform review decision to the owner.
func AlbumStatusChanged(album *models.Album, ownerEmail string) {
	notification := Notification{
		Type:    NotificationTypeAlbumStatus,
		AlbumID: album.ID,
		Email:   ownerEmail,
		Title:   album.Name,
		Body:    "Your album is now: " + album.Status,
		Data:    map[string]string{"status": album.Status},
	}
	_ = notification.Send()
}
