package dto

type Settings struct {
	OnCallReminders          bool `json:"onCallReminders"`
	TwoFactorAuthentication  bool `json:"twoFactorAuthentication"`
	DispatcherSessionTimeout int  `json:"dispatcherSessionTimeout"`
}

type SettingsUpdate struct {
	OnCallReminders          *bool `json:"onCallReminders"`
	TwoFactorAuthentication  *bool `json:"twoFactorAuthentication"`
	DispatcherSessionTimeout *int  `json:"dispatcherSessionTimeout" binding:"omitempty,min=0"`
}
