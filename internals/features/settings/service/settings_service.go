package service

import (
	"sync"

	"gorm.io/gorm"

	"coachingku_backend/internals/features/settings/model"
	"coachingku_backend/internals/logger"
)

// DefaultResultSmsTemplate is used until an admin configures one.
const DefaultResultSmsTemplate = "Dear guardian, {studentName} scored {score}/{total} ({percentage}%, grade {grade}, rank {rank}) in {testName}. Highest: {highest}. {website}"

// Snapshot is an immutable copy of the stored settings. Readers get the
// cached snapshot; writers persist then swap it.
type Snapshot struct {
	Name              string
	ShortName         string
	ThemeColor        string
	BackgroundColor   string
	Icon192Url        string
	Icon512Url        string
	WebsiteUrl        string
	SmsEnabled        bool
	SmsApiKey         string
	SmsSenderId       string
	ResultSmsTemplate string
}

var (
	mu      sync.RWMutex
	current Snapshot
	loaded  bool
)

func fromModel(m model.SiteSettingModel) Snapshot {
	tmpl := m.SiteSettingResultSmsTemplate
	if tmpl == "" {
		tmpl = DefaultResultSmsTemplate
	}
	return Snapshot{
		Name:              m.SiteSettingName,
		ShortName:         m.SiteSettingShortName,
		ThemeColor:        m.SiteSettingThemeColor,
		BackgroundColor:   m.SiteSettingBackgroundColor,
		Icon192Url:        m.SiteSettingIcon192Url,
		Icon512Url:        m.SiteSettingIcon512Url,
		WebsiteUrl:        m.SiteSettingWebsiteUrl,
		SmsEnabled:        m.SiteSettingSmsEnabled,
		SmsApiKey:         m.SiteSettingSmsApiKey,
		SmsSenderId:       m.SiteSettingSmsSenderId,
		ResultSmsTemplate: tmpl,
	}
}

// Load initializes the settings row explicitly at startup — creating the
// default row if none exists — and primes the snapshot cache.
func Load(db *gorm.DB) error {
	var row model.SiteSettingModel
	err := db.Order("site_setting_created_at ASC").First(&row).Error
	if err == gorm.ErrRecordNotFound {
		row = model.SiteSettingModel{
			SiteSettingName:       "Coaching Center",
			SiteSettingThemeColor: "#1d4ed8",
		}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		logger.Log.Info("site settings initialized with defaults")
	} else if err != nil {
		return err
	}

	mu.Lock()
	current = fromModel(row)
	loaded = true
	mu.Unlock()
	return nil
}

// Get returns the cached snapshot. Callers must not rely on it being fresh
// across an Update from another process; Reload covers that case.
func Get() (Snapshot, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return current, loaded
}

// Reload re-reads the row and swaps the snapshot.
func Reload(db *gorm.DB) error {
	return Load(db)
}

// Update persists the given column changes and refreshes the snapshot.
func Update(db *gorm.DB, changes map[string]interface{}) error {
	var row model.SiteSettingModel
	if err := db.Order("site_setting_created_at ASC").First(&row).Error; err != nil {
		return err
	}
	if err := db.Model(&row).Updates(changes).Error; err != nil {
		return err
	}
	return Reload(db)
}
