package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "kursusku_backend/internals/features/certificates/audits/service"
	"kursusku_backend/internals/features/certificates/certificates/service"
	helper "kursusku_backend/internals/helpers"
)

type CertificateVerifyController struct {
	Service *service.CertificateService
}

func NewCertificateVerifyController(db *gorm.DB) *CertificateVerifyController {
	return &CertificateVerifyController{
		Service: service.NewCertificateService(db, auditService.NewAuditRecorder(db)),
	}
}

// Verify: endpoint publik, lookup by nomor sertifikat + token opsional.
// Apapun hasilnya response selalu 200 dengan tri-state di body —
// scanner QR tidak perlu bedakan status HTTP.
func (ctrl *CertificateVerifyController) Verify(c *fiber.Ctx) error {
	number := c.Params("number")
	token := c.Query("token")
	lang := c.Query("lang", helper.FallbackLanguage)

	result := ctrl.Service.Verify(number, token, lang)
	return helper.JsonOK(c, result.Message, result)
}
