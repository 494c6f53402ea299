package services

import (
	"fmt"

	"backend/models"

	"gorm.io/gorm"
)

type notifyDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _notify notifyDeps

func InitNotifyDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_notify = notifyDeps{db: db, rt: rt, ps: ps}
}

// EmitAlert persists an alert and fans it out over websocket and push.
// Safe to call before InitNotifyDeps (no-op), so services don't need to
// care whether notifications are wired.
func EmitAlert(userID uint, kind, message string) {
	if _notify.db == nil {
		return
	}
	a := &models.Alert{UserID: userID, Kind: kind, Message: message}
	_ = _notify.db.Create(a).Error

	if _notify.rt != nil {
		_notify.rt.BroadcastAlert(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if _notify.ps != nil {
		title := "Lahap"
		if kind == models.AlertReportReady {
			title = "Report ready"
		}
		_notify.ps.PushToUser(userID, title, message, map[string]string{
			"kind": kind, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}

func ListAlerts(db *gorm.DB, userID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&alerts).Error
	return alerts, err
}

func MarkAlertsRead(db *gorm.DB, userID uint) error {
	return db.Model(&models.Alert{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
