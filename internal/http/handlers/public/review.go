package public

import (
	"errors"
	"strconv"

	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewRequest 提交评价请求
type ReviewRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Rating      int    `json:"rating" binding:"required"`
}

func (h *Handler) resolveReviewProduct(c *gin.Context) (uint, bool) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "Product not found", nil)
			return 0, false
		}
		respondError(c, response.CodeInternal, "Failed to fetch product", err)
		return 0, false
	}
	return product.ID, true
}

// GetProductReviews 商品评价列表
func (h *Handler) GetProductReviews(c *gin.Context) {
	productID, ok := h.resolveReviewProduct(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	reviews, total, err := h.ReviewService.GetProductReviews(productID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch reviews", err)
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

// CreateProductReview 提交商品评价（重复提交覆盖，同步重算商品评分）
func (h *Handler) CreateProductReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := h.resolveReviewProduct(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	review, err := h.ReviewService.CreateUpdateReview(uid, productID, service.ReviewInput{
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRatingInvalid):
			respondError(c, response.CodeBadRequest, "Rating must be between 1 and 5", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "Invalid request", nil)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to save review", err)
		}
		return
	}
	response.SuccessWithMsg(c, "Review updated successfully", review)
}

// GetMyProductReview 获取当前用户对商品的评价
func (h *Handler) GetMyProductReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := h.resolveReviewProduct(c)
	if !ok {
		return
	}

	review, err := h.ReviewService.GetMyReview(productID, uid)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			respondError(c, response.CodeNotFound, "Review not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch review", err)
		return
	}
	response.Success(c, review)
}
