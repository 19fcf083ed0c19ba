package model

import "time"

// ConfigKeyNotificationID is the single key the payment workflow reads:
// the IPN channel id Pesapal assigned at registration time.
const ConfigKeyNotificationID = "notification_id"

type ConfigEntry struct {
	ConfigID  string     `json:"config_id"`
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
