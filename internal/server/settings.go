package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settingsdomain "github.com/hazimzaman/new-invoices/internal/settings/domain"
)

type settingsRequest struct {
	BusinessName  string `json:"business_name"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	WiseEmail     string `json:"wise_email"`
	Address       string `json:"address"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	SwiftCode     string `json:"swift_code"`
	LogoURL       string `json:"logo_url"`
	InvoiceNumber int64  `json:"invoice_number"`
	InvoicePrefix string `json:"invoice_prefix"`
	EmailTemplate string `json:"email_template"`
	EmailSubject  string `json:"email_subject"`
	SMTPHost      string `json:"smtp_host"`
	SMTPPort      int    `json:"smtp_port"`
	SMTPUsername  string `json:"smtp_username"`
	SMTPPassword  string `json:"smtp_password"`
	SMTPFrom      string `json:"smtp_from"`
}

func (s *Server) GetSettings(c *gin.Context) {
	item, err := s.settingsSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) UpsertSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.settingsSvc.Upsert(c.Request.Context(), settingsdomain.UpsertSettingsRequest{
		BusinessName:  req.BusinessName,
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		WiseEmail:     req.WiseEmail,
		Address:       req.Address,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		SwiftCode:     req.SwiftCode,
		LogoURL:       req.LogoURL,
		InvoiceNumber: req.InvoiceNumber,
		InvoicePrefix: req.InvoicePrefix,
		EmailTemplate: req.EmailTemplate,
		EmailSubject:  req.EmailSubject,
		SMTPHost:      req.SMTPHost,
		SMTPPort:      req.SMTPPort,
		SMTPUsername:  req.SMTPUsername,
		SMTPPassword:  req.SMTPPassword,
		SMTPFrom:      req.SMTPFrom,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}
