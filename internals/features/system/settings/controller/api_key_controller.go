package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/system/settings/dto"
	"kursusku_backend/internals/features/system/settings/model"
	helper "kursusku_backend/internals/helpers"
)

type APIKeyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAPIKeyController(db *gorm.DB) *APIKeyController {
	return &APIKeyController{DB: db, Validate: validator.New()}
}

func (ctrl *APIKeyController) GetAll(c *fiber.Ctx) error {
	var keys []model.APIKeyModel
	if err := ctrl.DB.Order("created_at DESC").Find(&keys).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil API keys")
	}
	return helper.JsonOK(c, "", keys)
}

func (ctrl *APIKeyController) Create(c *fiber.Ctx) error {
	var req dto.CreateAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	name := strings.TrimSpace(req.Name)

	// 🔍 Cek nama duplikat; index unik parsial di DB jadi jaring kedua
	var count int64
	if err := ctrl.DB.Model(&model.APIKeyModel{}).
		Where("api_key_name = ?", name).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek nama API key")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Nama API key sudah dipakai")
	}

	value, err := helper.GenerateVerifyToken()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal generate API key")
	}

	key := model.APIKeyModel{
		APIKeyName:     name,
		APIKeyValue:    value,
		APIKeyScopes:   pq.StringArray(req.Scopes),
		APIKeyIsActive: true,
	}
	if err := ctrl.DB.Create(&key).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama API key sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat API key")
	}
	return helper.JsonCreated(c, "API key berhasil dibuat", key)
}

func (ctrl *APIKeyController) Regenerate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var key model.APIKeyModel
	if err := ctrl.DB.First(&key, "api_key_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "API key tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil API key")
	}

	value, err := helper.GenerateVerifyToken()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal generate nilai baru")
	}
	if err := ctrl.DB.Model(&key).Updates(map[string]interface{}{
		"api_key_value": value,
		"updated_at":    time.Now(),
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal regenerate API key")
	}
	key.APIKeyValue = value
	return helper.JsonUpdated(c, "API key berhasil di-regenerate", key)
}

func (ctrl *APIKeyController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var key model.APIKeyModel
	if err := ctrl.DB.First(&key, "api_key_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "API key tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil API key")
	}
	if err := ctrl.DB.Delete(&key).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hapus API key")
	}
	return helper.JsonDeleted(c, "API key berhasil dihapus", fiber.Map{"deleted_id": id})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "uq_api_keys_name") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
