package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/users/users/dto"
	"kursusku_backend/internals/features/users/users/model"
	helper "kursusku_backend/internals/helpers"
)

type UserAdminController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db, Validate: validator.New()}
}

func (ctrl *UserAdminController) GetAll(c *fiber.Ctx) error {
	params := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := ctrl.DB.Model(&model.UserModel{})

	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("user_name ILIKE ? OR user_email ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data user")
	}

	var users []model.UserModel
	if err := q.Order("created_at DESC").
		Limit(params.Limit()).Offset(params.Offset()).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data user")
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, usr := range users {
		resp = append(resp, toUserResponse(usr))
	}
	return helper.JsonList(c, "", resp, helper.BuildMeta(total, params))
}

func (ctrl *UserAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))
	var count int64
	if err := ctrl.DB.Model(&model.UserModel{}).
		Where("user_email = ?", email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek email")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
	}

	role := req.UserRole
	if role == "" {
		role = "trainee"
	}
	usr := model.UserModel{
		UserName:         strings.TrimSpace(req.UserName),
		UserEmail:        email,
		UserPasswordHash: string(hash),
		UserRole:         role,
		UserIsActive:     true,
	}
	if err := ctrl.DB.Create(&usr).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}
	return helper.JsonCreated(c, "User berhasil dibuat", toUserResponse(usr))
}

// GetByEmail dipakai layar admin sebelum bulk upload sertifikat.
func (ctrl *UserAdminController) GetByEmail(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query email wajib diisi")
	}

	var usr model.UserModel
	if err := ctrl.DB.First(&usr, "user_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil user")
	}
	return helper.JsonOK(c, "", toUserResponse(usr))
}

func (ctrl *UserAdminController) SetActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	var usr model.UserModel
	if err := ctrl.DB.First(&usr, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil user")
	}

	if err := ctrl.DB.Model(&usr).Updates(map[string]interface{}{
		"user_is_active": body.IsActive,
		"updated_at":     time.Now(),
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update status user")
	}
	usr.UserIsActive = body.IsActive
	return helper.JsonUpdated(c, "Status user berhasil diupdate", toUserResponse(usr))
}
