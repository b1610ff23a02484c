package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/system/settings/model"
)

// Nama section yang dikenal; request dengan section di luar ini ditolak.
const (
	SectionGeneral        = "general"
	SectionEmailTemplates = "email_templates"
	SectionNotifications  = "notifications"
	SectionLocalization   = "localization"
)

var ErrUnknownSection = errors.New("unknown settings section")

// SettingsService: akses singleton system_settings.
type SettingsService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db, now: time.Now}
}

func defaultGeneral() datatypes.JSONMap {
	return datatypes.JSONMap{
		"site_name":     "Kursusku",
		"site_url":      "https://kursusku.id",
		"contact_email": "halo@kursusku.id",
		"logo_url":      "",
	}
}

func defaultEmailTemplates() datatypes.JSONMap {
	return datatypes.JSONMap{
		"certificate_issued": "Halo {{name}}, sertifikat {{course}} kamu sudah terbit.",
		"payment_success":    "Halo {{name}}, pembayaran {{course}} berhasil.",
	}
}

func defaultNotifications() datatypes.JSONMap {
	return datatypes.JSONMap{
		"email_enabled":         true,
		"notify_on_certificate": true,
		"notify_on_payment":     true,
	}
}

func defaultLocalization() datatypes.JSONMap {
	return datatypes.JSONMap{
		"default_language":    "en",
		"supported_languages": []any{"en", "id", "ar"},
		"default_currency":    "USD",
	}
}

// GetOrCreate: ambil dokumen settings pertama; kalau belum ada, buat
// dengan default skema. Idempotent — dipanggil dua kali hasilnya row sama.
func (s *SettingsService) GetOrCreate() (*model.SystemSettingsModel, error) {
	var settings model.SystemSettingsModel
	err := s.DB.Order("created_at ASC").First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = model.SystemSettingsModel{
		SettingsGeneral:        defaultGeneral(),
		SettingsEmailTemplates: defaultEmailTemplates(),
		SettingsNotifications:  defaultNotifications(),
		SettingsLocalization:   defaultLocalization(),
	}
	if err := s.DB.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSections merge tiap section yang dikirim ke objek nested yang
// sudah ada. Merge-nya SHALLOW per section: key yang dikirim menimpa key
// yang sama, key lain dan section lain tidak tersentuh. Sengaja tidak
// deep-merge dan tidak overwrite map utuh.
func (s *SettingsService) UpdateSections(partial map[string]map[string]any, actorID *uuid.UUID) (*model.SystemSettingsModel, error) {
	settings, err := s.GetOrCreate()
	if err != nil {
		return nil, err
	}

	for section, values := range partial {
		if len(values) == 0 {
			continue
		}
		var target *datatypes.JSONMap
		switch section {
		case SectionGeneral:
			target = &settings.SettingsGeneral
		case SectionEmailTemplates:
			target = &settings.SettingsEmailTemplates
		case SectionNotifications:
			target = &settings.SettingsNotifications
		case SectionLocalization:
			target = &settings.SettingsLocalization
		default:
			return nil, ErrUnknownSection
		}
		if *target == nil {
			*target = datatypes.JSONMap{}
		}
		for k, v := range values {
			(*target)[k] = v
		}
	}

	settings.SettingsUpdatedBy = actorID
	settings.UpdatedAt = s.now()

	if err := s.DB.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
