package crud

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/pkg/auth"
)

// ListQuery is a parsed list request.
type ListQuery struct {
	Offset int
	Limit  int
	Params url.Values
}

// Page is one page of a listing.
type Page[E any] struct {
	Items  []E   `json:"items"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

// Service is the resource backend. E is the view returned to clients, C the
// create payload and U the update payload.
type Service[E, C, U any] interface {
	Get(ctx context.Context, iss auth.Issuer, id string) (E, error)
	List(ctx context.Context, iss auth.Issuer, q ListQuery) (Page[E], error)
	Create(ctx context.Context, iss auth.Issuer, payload *C) (E, error)
	Update(ctx context.Context, iss auth.Issuer, id string, payload *U) (E, error)
	Delete(ctx context.Context, iss auth.Issuer, id string) (E, error)
}

// Resource serves a Service over HTTP.
type Resource[E, C, U any] struct {
	svc    Service[E, C, U]
	policy Policy
	logger *zap.Logger
}

// NewResource creates a Resource.
func NewResource[E, C, U any](svc Service[E, C, U], policy Policy, logger *zap.Logger) *Resource[E, C, U] {
	if logger == nil {
		logger = zap.NewNop()
	}
	useJSONFieldNames()
	policy.Pagination = policy.Pagination.withDefaults()
	return &Resource[E, C, U]{svc: svc, policy: policy, logger: logger}
}

// Register mounts the collection and item routes on g.
func (r *Resource[E, C, U]) Register(g gin.IRoutes) {
	g.GET("", r.list)
	g.POST("", r.create)
	g.GET("/:id", r.get)
	g.PUT("/:id", r.update)
	g.PATCH("/:id", r.update)
	g.DELETE("/:id", r.delete)
}

// ActionFunc handles a custom route and returns the status and body to send.
type ActionFunc func(c *gin.Context, iss auth.Issuer) (int, any, error)

// Action wraps fn with the resource's authorization and error mapping, so
// routes outside plain CRUD behave like the rest of the resource.
func (r *Resource[E, C, U]) Action(fn ActionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		iss, ok := r.authorize(c)
		if !ok {
			return
		}
		status, body, err := fn(c, iss)
		if err != nil {
			r.fail(c, err)
			return
		}
		c.JSON(status, body)
	}
}

func (r *Resource[E, C, U]) list(c *gin.Context) {
	iss, ok := r.authorize(c)
	if !ok {
		return
	}

	offset, limit, err := r.policy.Pagination.Window(c.Query("offset"), c.Query("limit"))
	if err != nil {
		r.fail(c, err)
		return
	}

	page, err := r.svc.List(c.Request.Context(), iss, ListQuery{
		Offset: offset,
		Limit:  limit,
		Params: c.Request.URL.Query(),
	})
	if err != nil {
		r.fail(c, err)
		return
	}
	if page.Items == nil {
		page.Items = []E{}
	}
	c.JSON(http.StatusOK, page)
}

func (r *Resource[E, C, U]) get(c *gin.Context) {
	iss, ok := r.authorize(c)
	if !ok {
		return
	}
	item, err := r.svc.Get(c.Request.Context(), iss, c.Param("id"))
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Resource[E, C, U]) create(c *gin.Context) {
	iss, ok := r.authorize(c)
	if !ok {
		return
	}
	var payload C
	if err := c.ShouldBindJSON(&payload); err != nil {
		WriteError(c, BindError(err))
		return
	}
	item, err := r.svc.Create(c.Request.Context(), iss, &payload)
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (r *Resource[E, C, U]) update(c *gin.Context) {
	iss, ok := r.authorize(c)
	if !ok {
		return
	}
	var payload U
	if err := c.ShouldBindJSON(&payload); err != nil {
		WriteError(c, BindError(err))
		return
	}
	item, err := r.svc.Update(c.Request.Context(), iss, c.Param("id"), &payload)
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Resource[E, C, U]) delete(c *gin.Context) {
	iss, ok := r.authorize(c)
	if !ok {
		return
	}
	item, err := r.svc.Delete(c.Request.Context(), iss, c.Param("id"))
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Resource[E, C, U]) authorize(c *gin.Context) (auth.Issuer, bool) {
	iss := auth.IssuerFrom(c.Request.Context())
	if err := r.policy.authorize(c.Request.Method, iss); err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			WriteError(c, Unauthorized())
		} else {
			r.fail(c, err)
		}
		return auth.Issuer{}, false
	}
	return iss, true
}

func (r *Resource[E, C, U]) fail(c *gin.Context, err error) {
	e := r.policy.mapError(err)
	if e.Status >= http.StatusInternalServerError {
		r.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	WriteError(c, e)
}
