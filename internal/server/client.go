package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/hazimzaman/new-invoices/internal/client/domain"
)

type clientRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Address     string `json:"client_address"`
	TaxNumber   string `json:"tax_number"`
	TaxType     string `json:"tax_type"`
	Currency    string `json:"currency"`
}

func (s *Server) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.clientSvc.Create(c.Request.Context(), clientdomain.CreateClientRequest{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Address:     req.Address,
		TaxNumber:   req.TaxNumber,
		TaxType:     req.TaxType,
		Currency:    req.Currency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (s *Server) ListClients(c *gin.Context) {
	resp, err := s.clientSvc.List(c.Request.Context(), clientdomain.ListClientRequest{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Clients})
}

func (s *Server) GetClientByID(c *gin.Context) {
	item, err := s.clientSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.clientSvc.Update(c.Request.Context(), clientdomain.UpdateClientRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Address:     req.Address,
		TaxNumber:   req.TaxNumber,
		TaxType:     req.TaxType,
		Currency:    req.Currency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) DeleteClient(c *gin.Context) {
	if err := s.clientSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
