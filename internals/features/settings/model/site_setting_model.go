package model

import (
	"time"

	"github.com/google/uuid"
)

type SiteSettingModel struct {
	SiteSettingId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:site_setting_id" json:"site_setting_id"`

	SiteSettingName            string `gorm:"not null;default:'Coaching Center';column:site_setting_name" json:"site_setting_name"`
	SiteSettingShortName       string `gorm:"column:site_setting_short_name" json:"site_setting_short_name"`
	SiteSettingThemeColor      string `gorm:"default:'#1d4ed8';column:site_setting_theme_color" json:"site_setting_theme_color"`
	SiteSettingBackgroundColor string `gorm:"default:'#ffffff';column:site_setting_background_color" json:"site_setting_background_color"`
	SiteSettingIcon192Url      string `gorm:"column:site_setting_icon_192_url" json:"site_setting_icon_192_url"`
	SiteSettingIcon512Url      string `gorm:"column:site_setting_icon_512_url" json:"site_setting_icon_512_url"`
	SiteSettingWebsiteUrl      string `gorm:"column:site_setting_website_url" json:"site_setting_website_url"`

	SiteSettingSmsEnabled        bool   `gorm:"default:false;column:site_setting_sms_enabled" json:"site_setting_sms_enabled"`
	SiteSettingSmsApiKey         string `gorm:"column:site_setting_sms_api_key" json:"-"`
	SiteSettingSmsSenderId       string `gorm:"column:site_setting_sms_sender_id" json:"site_setting_sms_sender_id"`
	SiteSettingResultSmsTemplate string `gorm:"column:site_setting_result_sms_template" json:"site_setting_result_sms_template"`

	SiteSettingCreatedAt time.Time  `gorm:"column:site_setting_created_at;autoCreateTime" json:"site_setting_created_at"`
	SiteSettingUpdatedAt *time.Time `gorm:"column:site_setting_updated_at;autoUpdateTime" json:"site_setting_updated_at,omitempty"`
}

func (SiteSettingModel) TableName() string { return "site_settings" }
