package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mediaUC "github.com/ngoctranq/linkvault/internal/application/usecase/media"
	"github.com/ngoctranq/linkvault/pkg/apperror"
	"github.com/ngoctranq/linkvault/pkg/logger"
)

type MediaHandler struct {
	registerMediaUC *mediaUC.RegisterMediaUseCase
	getMediaUC      *mediaUC.GetMediaUseCase
	listMediaUC     *mediaUC.ListMediaUseCase
	searchMediaUC   *mediaUC.SearchMediaUseCase
	previewMediaUC  *mediaUC.PreviewMediaUseCase
	logger          logger.Logger
}

func NewMediaHandler(
	registerUC *mediaUC.RegisterMediaUseCase,
	getUC *mediaUC.GetMediaUseCase,
	listUC *mediaUC.ListMediaUseCase,
	searchUC *mediaUC.SearchMediaUseCase,
	previewUC *mediaUC.PreviewMediaUseCase,
	log logger.Logger,
) *MediaHandler {
	return &MediaHandler{
		registerMediaUC: registerUC,
		getMediaUC:      getUC,
		listMediaUC:     listUC,
		searchMediaUC:   searchUC,
		previewMediaUC:  previewUC,
		logger:          log,
	}
}

// RegisterMedia handles POST /media. A brand-new URL answers 201; a URL
// whose canonical form is already registered answers 200 with the existing
// record, so resubmitting a known link is never an error.
func (h *MediaHandler) RegisterMedia(c *gin.Context) {
	caller, ok := GetIdentityFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("caller identity not found in context", nil))
		return
	}

	var req RegisterMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("request body must be JSON with a 'url' field", err))
		return
	}

	output, err := h.registerMediaUC.Execute(c.Request.Context(), mediaUC.RegisterMediaInput{
		URL:    req.URL,
		Caller: caller,
	})
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	c.JSON(status, ToMediaItemDTO(output.Item))
}

func (h *MediaHandler) GetMedia(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid media ID", err))
		return
	}

	output, err := h.getMediaUC.Execute(c.Request.Context(), mediaUC.GetMediaInput{MediaID: mediaID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToMediaItemDTO(output.Item))
}

func (h *MediaHandler) ListMedia(c *gin.Context) {
	filter, err := parseMediaFilter(c)
	if err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	output, err := h.listMediaUC.Execute(c.Request.Context(), mediaUC.ListMediaInput{
		Filter: filter,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, MediaListResponse{
		Media:      toMediaItemDTOs(output.Items),
		Pagination: NewPaginationDTO(output.Page, output.Limit, output.Total),
	})
}

func (h *MediaHandler) SearchMedia(c *gin.Context) {
	filter, err := parseMediaFilter(c)
	if err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	output, err := h.searchMediaUC.Execute(c.Request.Context(), mediaUC.SearchMediaInput{
		Query:  c.Query("q"),
		Filter: filter,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, MediaSearchResponse{
		Media:      toMediaItemDTOs(output.Items),
		Pagination: NewPaginationDTO(output.Page, output.Limit, output.Total),
		Query:      output.Query,
	})
}

// PreviewMedia handles GET /media/extract. It shows what registration would
// store for a URL without persisting anything.
func (h *MediaHandler) PreviewMedia(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.Error(apperror.NewInvalidInput("'url' query parameter is required", nil))
		return
	}

	output, err := h.previewMediaUC.Execute(c.Request.Context(), mediaUC.PreviewMediaInput{URL: rawURL})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, MediaPreviewDTO{
		URL:              output.URL,
		NormalizedURL:    output.NormalizedURL,
		Platform:         string(output.Platform),
		ExtractionStatus: string(output.ExtractionStatus),
	})
}
