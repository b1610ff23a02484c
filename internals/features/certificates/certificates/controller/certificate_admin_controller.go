package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "kursusku_backend/internals/features/certificates/audits/service"
	"kursusku_backend/internals/features/certificates/certificates/dto"
	"kursusku_backend/internals/features/certificates/certificates/service"
	helper "kursusku_backend/internals/helpers"
)

type CertificateAdminController struct {
	DB       *gorm.DB
	Service  *service.CertificateService
	Audit    *auditService.AuditRecorder
	Validate *validator.Validate
}

func NewCertificateAdminController(db *gorm.DB) *CertificateAdminController {
	audit := auditService.NewAuditRecorder(db)
	return &CertificateAdminController{
		DB:       db,
		Service:  service.NewCertificateService(db, audit),
		Audit:    audit,
		Validate: validator.New(),
	}
}

// actorID ambil user admin dari token (diset AuthMiddleware).
func actorID(c *fiber.Ctx) *uuid.UUID {
	raw, _ := c.Locals("user_id").(string)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// mapServiceErr terjemahkan error service ke status HTTP.
func mapServiceErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCertificateNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCourseNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicatePair):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrTraineeNameRequired):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan, coba lagi nanti")
	}
}

func (ctrl *CertificateAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cert, err := ctrl.Service.Create(req, actorID(c), c.IP())
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonCreated(c, "Sertifikat berhasil dibuat", cert)
}

func (ctrl *CertificateAdminController) GetAll(c *fiber.Ctx) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	certs, total, err := ctrl.Service.List(filter)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data sertifikat")
	}
	return helper.JsonList(c, "", certs, helper.BuildMeta(total, filter.Params))
}

func (ctrl *CertificateAdminController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	cert, err := ctrl.Service.GetByID(id)
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonOK(c, "", cert)
}

func (ctrl *CertificateAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cert, err := ctrl.Service.Update(id, req, actorID(c), c.IP())
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonUpdated(c, "Sertifikat berhasil diupdate", cert)
}

func (ctrl *CertificateAdminController) Regenerate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	cert, err := ctrl.Service.Regenerate(id, actorID(c), c.IP())
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonUpdated(c, "Token verifikasi berhasil di-regenerate", cert)
}

func (ctrl *CertificateAdminController) Revoke(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.RevokeCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cert, err := ctrl.Service.Revoke(id, req.Reason, actorID(c), c.IP())
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonUpdated(c, "Sertifikat berhasil dicabut", cert)
}

func (ctrl *CertificateAdminController) Restore(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	cert, err := ctrl.Service.Restore(id, actorID(c), c.IP())
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonUpdated(c, "Sertifikat berhasil dipulihkan", cert)
}

func (ctrl *CertificateAdminController) BulkCreate(c *fiber.Ctx) error {
	var req dto.BulkCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result := ctrl.Service.BulkCreate(req, actorID(c), c.IP())
	return helper.JsonOK(c, "Bulk upload selesai", result)
}

func (ctrl *CertificateAdminController) History(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if _, err := ctrl.Service.GetByID(id); err != nil {
		return mapServiceErr(c, err)
	}
	entries, err := ctrl.Audit.History(id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil riwayat sertifikat")
	}
	return helper.JsonOK(c, "", entries)
}

// Export: format=json|csv, lang untuk meratakan judul multi-bahasa.
func (ctrl *CertificateAdminController) Export(c *fiber.Ctx) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	filter.Params = helper.ParseFiber(c, "issued_at", "desc", helper.ExportOpts)

	certs, _, err := ctrl.Service.List(filter)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal export sertifikat")
	}

	lang := c.Query("lang", helper.FallbackLanguage)
	format := strings.ToLower(c.Query("format", "json"))
	switch format {
	case "json":
		return helper.JsonOK(c, "", service.ExportJSON(certs, lang))
	case "csv":
		data, err := service.ExportCSV(certs, lang)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun CSV")
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="certificates.csv"`)
		return c.Send(data)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Format export harus json atau csv")
	}
}

func (ctrl *CertificateAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ctrl.Service.Delete(id, actorID(c), c.IP()); err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonDeleted(c, "Sertifikat berhasil dihapus", fiber.Map{"deleted_id": id})
}

/* =========================================================
   Query parsing
========================================================= */

func parseListFilter(c *fiber.Ctx) (service.ListFilter, error) {
	filter := service.ListFilter{
		Q:      strings.TrimSpace(c.Query("q")),
		Params: helper.ParseFiber(c, "issued_at", "desc", helper.AdminOpts),
	}

	if v := c.Query("is_valid"); v != "" {
		b := v == "true" || v == "1"
		filter.IsValid = &b
	}
	if v := c.Query("is_revoked"); v != "" {
		b := v == "true" || v == "1"
		filter.IsRevoked = &b
	}
	if v := c.Query("course_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errors.New("course_id tidak valid")
		}
		filter.CourseID = &id
	}
	if v := c.Query("issued_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errors.New("issued_from harus format YYYY-MM-DD")
		}
		filter.IssuedFrom = &t
	}
	if v := c.Query("issued_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errors.New("issued_to harus format YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.IssuedTo = &end
	}
	return filter, nil
}
