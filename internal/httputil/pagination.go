package httputil

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// ParsePagination reads offset (default 0) and limit (default 50, at most 100).
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", maxLimit)
	}

	return offset, limit, nil
}

// ParseTimeRange reads the optional RFC 3339 bounds created_at_from and created_at_to.
// Absent parameters yield nil bounds.
func ParseTimeRange(c *gin.Context) (from, to *time.Time, err error) {
	parse := func(name string) (*time.Time, error) {
		raw, ok := c.GetQuery(name)
		if !ok || raw == "" {
			return nil, nil
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s parameter: must be an RFC 3339 timestamp", name)
		}
		parsed = parsed.UTC()
		return &parsed, nil
	}

	if from, err = parse("created_at_from"); err != nil {
		return nil, nil, err
	}
	if to, err = parse("created_at_to"); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("invalid time range: created_at_from is after created_at_to")
	}

	return from, to, nil
}
