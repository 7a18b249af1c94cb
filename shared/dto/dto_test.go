package dto_test

import (
	"net/http/httptest"
	"sitterhub/shared/constant"
	"sitterhub/shared/dto"
	"sitterhub/shared/model"
	"sitterhub/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: createdAt.Add(time.Hour),
		CreatedBy:  "admin-1",
		ModifiedBy: "sitter-1",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, "admin-1", metadata.CreatedBy)
	assert.Equal(t, "sitter-1", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	sortable := []string{"created_at", "start_date"}

	tests := []struct {
		name     string
		query    string
		defaults bool
		expected dto.QueryParams
	}{
		{name: "all params", query: "page=2&limit=20&sort_by=start_date&sort_dir=asc", expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_date", SortDir: "ASC"}},
		{name: "defaults applied", query: "", defaults: true, expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit, SortBy: "created_at", SortDir: constant.DefaultValueSortDir}},
		{name: "no defaults", query: "", expected: dto.QueryParams{}},
		{name: "invalid numbers fall back", query: "page=-1&limit=abc", defaults: true, expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit, SortBy: "created_at", SortDir: constant.DefaultValueSortDir}},
		{name: "limit capped", query: "limit=5000", expected: dto.QueryParams{Limit: constant.MaxValueLimit}},
		{name: "unknown sort dir ignored", query: "sort_dir=sideways", expected: dto.QueryParams{}},
		{name: "unlisted sort column ignored", query: "sort_by=password_hash", expected: dto.QueryParams{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/bookings?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.defaults, sortable...)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		where  string
		args   map[string]any
	}{
		{
			name:   "eq with arg name",
			filter: dto.Filter{Field: "status", ArgName: "expected_status", Operator: dto.FilterOperatorEq, Value: "PENDING_SITTER_ACCEPTANCE", Table: "bookings"},
			where:  "bookings.status = :expected_status",
			args:   map[string]any{"expected_status": "PENDING_SITTER_ACCEPTANCE"},
		},
		{
			name:   "in expands slice",
			filter: dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"PENDING_SITTER_ACCEPTANCE", "ACCEPTED"}},
			where:  "status IN (:status_0, :status_1) ",
			args:   map[string]any{"status_0": "PENDING_SITTER_ACCEPTANCE", "status_1": "ACCEPTED"},
		},
		{
			name:   "less or equal",
			filter: dto.Filter{Field: "end_date", Operator: dto.FilterOperatorLessEq, Value: "2025-05-03"},
			where:  "end_date <= :end_date",
			args:   map[string]any{"end_date": "2025-05-03"},
		},
		{
			name:   "in with empty list matches nothing",
			filter: dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{}},
			where:  "FALSE",
			args:   map[string]any{},
		},
		{
			name:   "like is case insensitive",
			filter: dto.Filter{Field: "full_name", Operator: dto.FilterOperatorLike, Value: "sam", Table: "sitters"},
			where:  "LOWER(sitters.full_name) LIKE LOWER(:full_name) ",
			args:   map[string]any{"full_name": "%sam%"},
		},
		{
			name:   "is null",
			filter: dto.Filter{Field: "assigned_sitter_id", Operator: dto.FilterIsNull},
			where:  "assigned_sitter_id IS NULL",
			args:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: "bk-1"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "ACCEPTED"},
					dto.Filter{Field: "assigned_sitter_id", Operator: dto.FilterIsNull},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(id = :id AND (status = :status OR assigned_sitter_id IS NULL))", where)
	assert.Equal(t, map[string]any{"id": "bk-1", "status": "ACCEPTED"}, args)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestFilter_InQuery(t *testing.T) {
	filter := dto.Filter{
		Field:    "id",
		Table:    "bookings",
		Operator: dto.FilterOperatorInQuery,
		Value: dto.SubQuery{
			Query: "SELECT booking_id FROM booking_sitter_recipients WHERE sitter_id = :sitter_id",
			Args:  map[string]any{"sitter_id": "st-1"},
		},
	}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "bookings.id IN (SELECT booking_id FROM booking_sitter_recipients WHERE sitter_id = :sitter_id)", where)
	assert.Equal(t, map[string]any{"sitter_id": "st-1"}, args)
}
