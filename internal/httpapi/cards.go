package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iancoleman/strcase"

	store "github.com/likearthian/cardstore"
	"github.com/likearthian/cardstore/card"
)

// filterFields maps snake cased query keys to card document fields.
var filterFields = map[string]string{
	"group":         card.FieldGroup,
	card.FieldGroup: card.FieldGroup,
	card.FieldFront: card.FieldFront,
	card.FieldBack:  card.FieldBack,
}

// Query parameters that are not filters.
const (
	paramSort   = "sort"
	paramLimit  = "limit"
	paramOffset = "offset"
)

type cardHandler struct {
	cards CardStore
}

func (h *cardHandler) list(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := queryOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	it, err := h.cards.FilterBy(c.Request.Context(), filter, opts...)
	if err != nil {
		h.fail(c, err)
		return
	}

	cards, err := store.Collect(it)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *cardHandler) get(c *gin.Context) {
	found, err := h.cards.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if found == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *cardHandler) create(c *gin.Context) {
	var newCard card.Card
	if err := c.ShouldBindJSON(&newCard); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if newCard.ID == uuid.Nil {
		newCard.ID = uuid.New()
	}

	if err := h.cards.InsertOne(c.Request.Context(), newCard); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCard)
}

func (h *cardHandler) createBatch(c *gin.Context) {
	var cards []card.Card
	if err := c.ShouldBindJSON(&cards); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for i := range cards {
		if cards[i].ID == uuid.Nil {
			cards[i].ID = uuid.New()
		}
	}

	if err := h.cards.InsertMany(c.Request.Context(), cards); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, cards)
}

func (h *cardHandler) replace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}

	var replacement card.Card
	if err := c.ShouldBindJSON(&replacement); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if replacement.ID != uuid.Nil && replacement.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card id does not match path"})
		return
	}
	replacement.ID = id

	if err := h.cards.ReplaceOne(c.Request.Context(), replacement); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, replacement)
}

func (h *cardHandler) delete(c *gin.Context) {
	if err := h.cards.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *cardHandler) deleteMatching(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if filter.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refusing to delete without a filter"})
		return
	}

	if err := h.cards.DeleteMany(c.Request.Context(), filter); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *cardHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidID), errors.Is(err, store.ErrEmptyBatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrKeyAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "card already exists"})
	case errors.Is(err, store.ErrKeyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// filterFromQuery turns filter query parameters into a store filter. Keys
// may be given in camel or snake case; repeated keys match any value.
func filterFromQuery(c *gin.Context) (store.Filter, error) {
	filterMap := map[string]any{}
	for key, values := range c.Request.URL.Query() {
		if key == paramSort || key == paramLimit || key == paramOffset {
			continue
		}

		field, ok := filterFields[strcase.ToSnake(key)]
		if !ok {
			return store.Filter{}, errors.New("unknown filter field: " + key)
		}

		filterMap[field] = values
	}

	return store.FromMap(filterMap), nil
}

func queryOptions(c *gin.Context) ([]store.QueryOption, error) {
	var opts []store.QueryOption
	if s := c.Query(paramSort); s != "" {
		sorter := strings.Split(s, ",")
		for i, f := range sorter {
			f = strings.TrimSpace(f)
			prefix := ""
			if strings.HasPrefix(f, "-") || strings.HasPrefix(f, "+") {
				prefix, f = f[:1], f[1:]
			}
			sorter[i] = prefix + strcase.ToSnake(f)
		}
		opts = append(opts, store.WithSorter(sorter...))
	}

	if s := c.Query(paramLimit); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			return nil, errors.New("invalid limit")
		}
		opts = append(opts, store.WithLimit(limit))
	}

	if s := c.Query(paramOffset); s != "" {
		offset, err := strconv.ParseInt(s, 10, 64)
		if err != nil || offset < 0 {
			return nil, errors.New("invalid offset")
		}
		opts = append(opts, store.WithOffset(offset))
	}

	return opts, nil
}
