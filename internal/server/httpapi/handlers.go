package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/dmitrijs2005/dealdocs/internal/server/services"
	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status"`
}

type categoryReport struct {
	Category      string                     `json:"category"`
	Status        string                     `json:"status"`
	Subcategories []models.SubcategoryStatus `json:"subcategories"`
}

func (r *Router) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}

func (r *Router) createDocument(c *gin.Context) {
	var in services.CreateDocumentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		r.badRequest(c, err)
		return
	}

	user := currentUser(c)
	doc, err := r.documents.CreateDocument(c.Request.Context(), in, user)
	if err != nil {
		r.fail(c, err)
		return
	}

	r.logger.Info(c.Request.Context(), "Document created", "id", doc.ID, "user", user.ID)
	c.JSON(http.StatusCreated, doc)
}

func (r *Router) listDocuments(c *gin.Context) {
	docs, err := r.documents.ListDocuments(c.Request.Context(), currentUser(c))
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (r *Router) getDocument(c *gin.Context) {
	doc, err := r.documents.GetDocument(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (r *Router) transitionStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.badRequest(c, err)
		return
	}

	user := currentUser(c)
	doc, err := r.documents.TransitionStatus(c.Request.Context(), c.Param("id"), req.Status, user)
	if err != nil {
		r.fail(c, err)
		return
	}

	r.logger.Info(c.Request.Context(), "Status changed", "id", doc.ID, "user", user.ID, "status", doc.Status)
	c.JSON(http.StatusOK, doc)
}

func (r *Router) shareDocument(c *gin.Context) {
	var in services.ShareInput
	if err := c.ShouldBindJSON(&in); err != nil {
		r.badRequest(c, err)
		return
	}

	grant, err := r.documents.ShareDocument(c.Request.Context(), c.Param("id"), in, currentUser(c))
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, grant)
}

func (r *Router) downloadURL(c *gin.Context) {
	url, err := r.documents.DownloadURL(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (r *Router) presignUpload(c *gin.Context) {
	key, url, err := r.documents.PresignUpload(c.Request.Context(), currentUser(c))
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}

func (r *Router) listCategories(c *gin.Context) {
	categories, err := r.catalog.ListCategories(c.Request.Context())
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (r *Router) listSubcategories(c *gin.Context) {
	subs, err := r.catalog.ListSubcategories(c.Request.Context(), c.Param("category"))
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (r *Router) statusReport(c *gin.Context) {
	report, err := r.catalog.StatusReport(c.Request.Context(), currentUser(c))
	if err != nil {
		r.fail(c, err)
		return
	}

	out := make([]categoryReport, 0, len(report))
	for _, cs := range report {
		out = append(out, categoryReport{Category: cs.Category, Status: cs.Label(), Subcategories: cs.Subcategories})
	}
	c.JSON(http.StatusOK, out)
}
