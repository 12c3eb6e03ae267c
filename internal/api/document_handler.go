package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rag-chat/internal/service"
	"rag-chat/pkg/config"
	"rag-chat/pkg/logger"
)

type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) AddDocument(c *gin.Context) {
	var req service.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if max := config.GlobalConfig.Vector.MaxTextLength; max > 0 && len(req.Text) > max {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document text exceeds the maximum length"})
		return
	}

	doc, err := h.documentService.Add(c.Request.Context(), req)
	if err != nil {
		logger.L.Error("Error adding document", zap.Error(err), zap.String("documentID", req.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add document"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Document added successfully",
		"vector_id":  doc.ID,
		"dimensions": len(doc.Embedding),
	})
}

func (h *DocumentHandler) SearchDocuments(c *gin.Context) {
	var req service.SearchDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	n := req.NResults
	if n <= 0 {
		n = config.GlobalConfig.Vector.DefaultSearchResults
	}
	if max := config.GlobalConfig.Vector.MaxSearchResults; max > 0 && n > max {
		n = max
	}

	hits, err := h.documentService.Search(c.Request.Context(), req.Query, n)
	if err != nil {
		logger.L.Error("Error searching documents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       req.Query,
		"results":     hits,
		"total_count": len(hits),
	})
}

func (h *DocumentHandler) GetAllDocuments(c *gin.Context) {
	docs, err := h.documentService.GetAll(c.Request.Context())
	if err != nil {
		logger.L.Error("Error getting documents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "total_count": len(docs)})
}

func (h *DocumentHandler) GetCollectionInfo(c *gin.Context) {
	info, err := h.documentService.Info(c.Request.Context())
	if err != nil {
		logger.L.Error("Error getting collection info", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve collection info"})
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	documentID := c.Param("document_id")

	doc, err := h.documentService.Get(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found: " + documentID})
		} else {
			logger.L.Error("Error getting document", zap.Error(err), zap.String("documentID", documentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	documentID := c.Param("document_id")

	if err := h.documentService.Delete(c.Request.Context(), documentID); err != nil {
		logger.L.Error("Error deleting document", zap.Error(err), zap.String("documentID", documentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully", "document_id": documentID})
}

func (h *DocumentHandler) DeleteAllDocuments(c *gin.Context) {
	count, err := h.documentService.DeleteAll(c.Request.Context())
	if err != nil {
		logger.L.Error("Error deleting all documents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted_count": count})
}
