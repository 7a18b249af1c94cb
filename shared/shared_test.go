package shared_test

import (
	"sitterhub/shared"
	"sitterhub/shared/constant"
	"sitterhub/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 40, limit: 0, expected: 1},
		{name: "exact division", total: 40, limit: 10, expected: 4},
		{name: "remainder rounds up", total: 41, limit: 10, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type override struct {
		Status     string `db:"status"`
		TotalCents *int64 `db:"total_cost_cents"`
		Discount   *int64 `db:"discount_applied_cents"`
		Reason     string
	}

	zero := int64(0)
	total := int64(45000)

	fields := shared.TransformFields(override{
		Status:     "ACCEPTED",
		TotalCents: &total,
		Discount:   &zero,
		Reason:     "not persisted",
	}, "admin-1")

	assert.Equal(t, "ACCEPTED", fields["status"])
	assert.Equal(t, int64(45000), fields["total_cost_cents"])
	assert.Equal(t, int64(0), fields["discount_applied_cents"], "pointer to zero is still an explicit write")
	assert.NotContains(t, fields, "Reason")
	assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
}

func TestTransformFields_SkipsZeroValues(t *testing.T) {
	type partial struct {
		Status string `db:"status"`
		Total  *int64 `db:"total_cost_cents"`
	}

	fields := shared.TransformFields(partial{}, "admin-1")

	assert.Len(t, fields, 2)
	assert.NotContains(t, fields, "status")
	assert.NotContains(t, fields, "total_cost_cents")
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("bk-1", "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, "bk-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get", shared.BuildCacheKey("booking:get"))
	assert.Equal(t, "booking:get:bk-1", shared.BuildCacheKey("booking:get", "bk-1"))
	assert.Equal(t, "limiter:10.0.0.1:curl", shared.BuildCacheKey("limiter", "10.0.0.1", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	pending := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "PENDING_SITTER_ACCEPTANCE"},
		},
	}
	accepted := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "ACCEPTED"},
		},
	}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, pending)
	second := shared.BuildCacheKeyWithQuery("booking:gets", params, pending)
	other := shared.BuildCacheKeyWithQuery("booking:gets", params, accepted)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "booking:gets:")
}
